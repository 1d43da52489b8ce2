package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"printcost/services"
)

// defaultCostParams is the built-in fallback used when the cost_params
// collection is empty. Matches the seeded "Parámetros estándar" snapshot.
var defaultCostParams = services.CostParams{
	FilamentCostPerKg:  25000,
	PowerWatts:         200,
	EnergyCostPerKwh:   40,
	LaborPerHour:       1000,
	WearPercent:        5,
	OperationalPercent: 5,
	ProfitPercent:      40,
}

// loadDefaultParams returns the oldest stored cost parameter snapshot, or the
// built-in defaults when none has been saved yet.
func loadDefaultParams(app *pocketbase.PocketBase) services.CostParams {
	records, err := app.FindRecordsByFilter("cost_params", "id != ''", "created", 1, 0, nil)
	if err != nil || len(records) == 0 {
		return defaultCostParams
	}
	return paramsFromRecord(records[0])
}

func paramsFromRecord(rec *core.Record) services.CostParams {
	return services.CostParams{
		FilamentCostPerKg:  rec.GetFloat("filament_cost_per_kg"),
		PowerWatts:         rec.GetFloat("power_watts"),
		EnergyCostPerKwh:   rec.GetFloat("energy_cost_per_kwh"),
		LaborPerHour:       rec.GetFloat("labor_per_hour"),
		WearPercent:        rec.GetFloat("wear_percent"),
		OperationalPercent: rec.GetFloat("operational_percent"),
		ProfitPercent:      rec.GetFloat("profit_percent"),
	}
}

// HandleParamsGet returns a handler that serves the effective default cost
// parameters.
func HandleParamsGet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, loadDefaultParams(app))
	}
}

// HandleParamsSave returns a handler that updates the default cost parameter
// snapshot, creating it when the collection is still empty.
func HandleParamsSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var params services.CostParams
		if err := e.BindBody(&params); err != nil {
			log.Printf("params_save: could not decode body: %v", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Cuerpo JSON inválido"})
		}

		records, err := app.FindRecordsByFilter("cost_params", "id != ''", "created", 1, 0, nil)
		if err != nil {
			return fmt.Errorf("params_save: could not query cost_params: %w", err)
		}

		var rec *core.Record
		if len(records) > 0 {
			rec = records[0]
		} else {
			col, err := app.FindCollectionByNameOrId("cost_params")
			if err != nil {
				return fmt.Errorf("params_save: could not find cost_params collection: %w", err)
			}
			rec = core.NewRecord(col)
			rec.Set("name", "Parámetros estándar")
		}

		rec.Set("filament_cost_per_kg", params.FilamentCostPerKg)
		rec.Set("power_watts", params.PowerWatts)
		rec.Set("energy_cost_per_kwh", params.EnergyCostPerKwh)
		rec.Set("labor_per_hour", params.LaborPerHour)
		rec.Set("wear_percent", params.WearPercent)
		rec.Set("operational_percent", params.OperationalPercent)
		rec.Set("profit_percent", params.ProfitPercent)

		if err := app.Save(rec); err != nil {
			log.Printf("params_save: could not save: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudieron guardar los parámetros"})
		}

		return e.JSON(http.StatusOK, paramsFromRecord(rec))
	}
}
