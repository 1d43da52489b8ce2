package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"printcost/services"
)

// HandleHistorySave returns a handler that stores a calculation in the
// history. The payload is normalized before saving, so the client may send
// partial or legacy-shaped records; a missing breakdown is recomputed from
// the inputs and the effective parameters.
func HandleHistorySave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var raw services.RawRecord
		if err := e.BindBody(&raw); err != nil {
			log.Printf("history_save: could not decode body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Cuerpo JSON inválido"})
		}
		if raw == nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Cuerpo JSON vacío"})
		}

		rec := services.NormalizeRecord(raw, loadDefaultParams(app))
		if rec.Date == "" {
			rec.Date = time.Now().Format("02/01/2006")
		}
		if rec.Total == 0 {
			rec.Total = rec.Breakdown.TotalFinal
		}

		col, err := app.FindCollectionByNameOrId("history")
		if err != nil {
			return fmt.Errorf("history_save: could not find history collection: %w", err)
		}

		record := core.NewRecord(col)
		if err := setHistoryFields(record, rec); err != nil {
			return fmt.Errorf("history_save: %w", err)
		}

		if err := app.Save(record); err != nil {
			log.Printf("history_save: could not save record: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo guardar el registro"})
		}

		rec.ID = record.Id
		return e.JSON(http.StatusCreated, rec)
	}
}
