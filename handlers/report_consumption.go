package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"printcost/services"
)

// loadJobOutcomes fetches all recorded print job outcomes, oldest first.
func loadJobOutcomes(app *pocketbase.PocketBase) ([]services.JobOutcome, error) {
	records, err := app.FindRecordsByFilter("print_failures", "id != ''", "created", 0, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("could not query print_failures: %w", err)
	}

	jobs := make([]services.JobOutcome, 0, len(records))
	for _, rec := range records {
		jobs = append(jobs, services.JobOutcome{
			Status:        rec.GetString("status"),
			Hours:         rec.GetFloat("hours"),
			MaterialGrams: rec.GetFloat("material_grams"),
			EnergyKwh:     rec.GetFloat("energy_kwh"),
			Completion:    rec.GetFloat("completion"),
		})
	}
	return jobs, nil
}

// HandleReportConsumption returns a handler that totals hours, material and
// energy across all recorded print jobs.
func HandleReportConsumption(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		jobs, err := loadJobOutcomes(app)
		if err != nil {
			log.Printf("report_consumption: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudieron leer los trabajos"})
		}

		return e.JSON(http.StatusOK, services.AggregateConsumption(jobs))
	}
}
