package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Seed inserts the default cost parameter snapshot so the calculator works
// out of the box. Safe to call on every startup because it returns early if
// any cost_params records already exist.
func Seed(app *pocketbase.PocketBase) error {
	paramsCol, err := app.FindCollectionByNameOrId("cost_params")
	if err != nil {
		return fmt.Errorf("seed: could not find cost_params collection: %w", err)
	}

	existing, err := app.FindAllRecords(paramsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query cost_params: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: cost_params collection is empty – inserting defaults …")

	record := core.NewRecord(paramsCol)
	record.Set("name", "Parámetros estándar")
	record.Set("filament_cost_per_kg", 25000.0)
	record.Set("power_watts", 200.0)
	record.Set("energy_cost_per_kwh", 40.0)
	record.Set("labor_per_hour", 1000.0)
	record.Set("wear_percent", 5.0)
	record.Set("operational_percent", 5.0)
	record.Set("profit_percent", 40.0)

	if err := app.Save(record); err != nil {
		return fmt.Errorf("seed: could not save default cost params: %w", err)
	}

	log.Printf("seed: default cost params %q created (%s)\n", record.GetString("name"), record.Id)
	return nil
}
