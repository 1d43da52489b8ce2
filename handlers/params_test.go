package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"printcost/services"
	"printcost/testhelpers"
)

func TestHandleParamsGet_BuiltInDefaults(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleParamsGet(app)

	req := httptest.NewRequest(http.MethodGet, "/api/params", nil)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var params services.CostParams
	if err := json.Unmarshal(rec.Body.Bytes(), &params); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if params.FilamentCostPerKg != 25000 || params.ProfitPercent != 40 {
		t.Errorf("expected built-in defaults, got %+v", params)
	}
}

func TestHandleParamsSave_CreatesAndUpdates(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	save := HandleParamsSave(app)

	req := newJSONRequest(http.MethodPut, "/api/params",
		`{"filament_cost_per_kg": 18000, "power_watts": 150, "energy_cost_per_kwh": 55,
		  "labor_per_hour": 1200, "wear_percent": 10, "operational_percent": 8, "profit_percent": 35}`)
	rec := httptest.NewRecorder()
	if err := save(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	records, err := app.FindAllRecords("cost_params")
	if err != nil {
		t.Fatalf("could not query cost_params: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record after first save, got %d", len(records))
	}

	// Second save updates in place instead of creating another snapshot
	req = newJSONRequest(http.MethodPut, "/api/params",
		`{"filament_cost_per_kg": 19000, "power_watts": 150, "energy_cost_per_kwh": 55,
		  "labor_per_hour": 1200, "wear_percent": 10, "operational_percent": 8, "profit_percent": 35}`)
	rec = httptest.NewRecorder()
	if err := save(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	records, err = app.FindAllRecords("cost_params")
	if err != nil {
		t.Fatalf("could not query cost_params: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record after second save, got %d", len(records))
	}
	if got := records[0].GetFloat("filament_cost_per_kg"); got != 19000 {
		t.Errorf("expected updated filament cost 19000, got %v", got)
	}

	effective := loadDefaultParams(app)
	if effective.FilamentCostPerKg != 19000 {
		t.Errorf("expected loadDefaultParams to return 19000, got %v", effective.FilamentCostPerKg)
	}
}
