package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"printcost/services"
)

// HandleReportProfitability returns a handler that aggregates the full
// history into a profitability summary.
func HandleReportProfitability(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := loadHistory(app)
		if err != nil {
			log.Printf("report_profitability: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo leer el historial"})
		}

		entries := make([]services.RecordEntry, 0, len(records))
		for _, rec := range records {
			entries = append(entries, services.RecordEntryFromHistory(*rec))
		}

		return e.JSON(http.StatusOK, services.AggregateProfitability(entries))
	}
}
