// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"printcost/collections"
	"printcost/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// DefaultTestParams returns the cost parameter snapshot most tests use.
func DefaultTestParams() services.CostParams {
	return services.CostParams{
		FilamentCostPerKg:  25000,
		PowerWatts:         200,
		EnergyCostPerKwh:   40,
		LaborPerHour:       1000,
		WearPercent:        5,
		OperationalPercent: 5,
		ProfitPercent:      40,
	}
}

// CreateTestCostParams creates a named cost parameter record and returns it.
func CreateTestCostParams(t *testing.T, app *pocketbase.PocketBase, name string, params services.CostParams) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("cost_params")
	if err != nil {
		t.Fatalf("failed to find cost_params collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("filament_cost_per_kg", params.FilamentCostPerKg)
	record.Set("power_watts", params.PowerWatts)
	record.Set("energy_cost_per_kwh", params.EnergyCostPerKwh)
	record.Set("labor_per_hour", params.LaborPerHour)
	record.Set("wear_percent", params.WearPercent)
	record.Set("operational_percent", params.OperationalPercent)
	record.Set("profit_percent", params.ProfitPercent)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test cost params: %v", err)
	}

	return record
}

// CreateTestHistoryRecord saves a history record built from a canonical
// record value. Inputs, params, breakdown and stock changes are stored as
// JSON the same way the save handler stores them.
func CreateTestHistoryRecord(t *testing.T, app *pocketbase.PocketBase, rec services.HistoryRecord) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("history")
	if err != nil {
		t.Fatalf("failed to find history collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("product_name", rec.ProductName)
	record.Set("category", rec.Category)
	record.Set("date", rec.Date)
	record.Set("inputs", mustJSON(t, rec.Inputs))
	record.Set("params", mustJSON(t, rec.Params))
	record.Set("breakdown", mustJSON(t, rec.Breakdown))
	record.Set("total", rec.Total)
	record.Set("quantity", rec.Quantity)
	record.Set("status", rec.Status)
	if rec.StockChanges != nil {
		record.Set("stock_changes", mustJSON(t, rec.StockChanges))
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test history record: %v", err)
	}

	return record
}

// CreateTestFailure creates a print job outcome record.
func CreateTestFailure(t *testing.T, app *pocketbase.PocketBase, status string, hours, grams, kwh, completion float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("print_failures")
	if err != nil {
		t.Fatalf("failed to find print_failures collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("product_name", "Pieza de prueba")
	record.Set("material_type", "PLA")
	record.Set("status", status)
	record.Set("hours", hours)
	record.Set("material_grams", grams)
	record.Set("energy_kwh", kwh)
	record.Set("completion", completion)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test failure record: %v", err)
	}

	return record
}

// CreateTestConsumption creates a material consumption record.
func CreateTestConsumption(t *testing.T, app *pocketbase.PocketBase, materialType string, grams float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("material_consumption")
	if err != nil {
		t.Fatalf("failed to find material_consumption collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("material_type", materialType)
	record.Set("grams", grams)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test consumption record: %v", err)
	}

	return record
}

// CreateTestWaitlistEntry creates a waitlist record with the given status.
func CreateTestWaitlistEntry(t *testing.T, app *pocketbase.PocketBase, email, status string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("waitlist")
	if err != nil {
		t.Fatalf("failed to find waitlist collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("email", email)
	record.Set("name", "Test User")
	record.Set("status", status)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test waitlist entry: %v", err)
	}

	return record
}

// AssertJSONContains checks that body contains all specified fragments.
func AssertJSONContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected response to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal %T: %v", v, err)
	}
	return string(b)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
