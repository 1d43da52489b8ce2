package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"printcost/services"
	"printcost/testhelpers"
)

func createSoldRecord(t *testing.T, app *pocketbase.PocketBase, product, date string, qty, unitPrice, unitCost float64) {
	t.Helper()
	testhelpers.CreateTestHistoryRecord(t, app, services.HistoryRecord{
		ProductName: product,
		Date:        date,
		Total:       unitPrice,
		Quantity:    qty,
		Status:      services.StatusSold,
		Breakdown:   services.CostBreakdown{Subtotal: unitCost, TotalFinal: unitPrice},
	})
}

func createDatedFailure(t *testing.T, app *pocketbase.PocketBase, date string, grams, pieces, materialLost, energyLost float64) {
	t.Helper()
	col, err := app.FindCollectionByNameOrId("print_failures")
	if err != nil {
		t.Fatalf("print_failures collection not found: %v", err)
	}
	rec := core.NewRecord(col)
	rec.Set("product_name", "Maceta")
	rec.Set("material_type", "PLA")
	rec.Set("status", services.JobFailed)
	rec.Set("material_grams", grams)
	rec.Set("pieces_failed", pieces)
	rec.Set("material_cost_lost", materialLost)
	rec.Set("energy_cost_lost", energyLost)
	rec.Set("date", date)
	if err := app.Save(rec); err != nil {
		t.Fatalf("could not save failure record: %v", err)
	}
}

func createDatedConsumption(t *testing.T, app *pocketbase.PocketBase, material, date string, grams float64) {
	t.Helper()
	col, err := app.FindCollectionByNameOrId("material_consumption")
	if err != nil {
		t.Fatalf("material_consumption collection not found: %v", err)
	}
	rec := core.NewRecord(col)
	rec.Set("material_type", material)
	rec.Set("grams", grams)
	rec.Set("date", date)
	if err := app.Save(rec); err != nil {
		t.Fatalf("could not save consumption record: %v", err)
	}
}

func fetchMonthlyReport(t *testing.T, app *pocketbase.PocketBase, target string) services.MonthlyReport {
	t.Helper()
	handler := HandleReportMonthly(app)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Period string                 `json:"period"`
		Report services.MonthlyReport `json:"report"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	return resp.Report
}

func TestHandleReportMonthly_FiltersByMonth(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	createSoldRecord(t, app, "Maceta", "15/08/2026", 2, 1000, 400)
	createSoldRecord(t, app, "Llavero", "20/07/2026", 1, 500, 100)
	createDatedFailure(t, app, "10/08/2026", 150, 3, 1000, 250)
	createDatedConsumption(t, app, "PLA", "12/08/2026", 500)

	report := fetchMonthlyReport(t, app, "/api/reports/monthly?month=2026-08")

	// Only the August sale counts: 2 x 1000
	if report.TotalRevenue != 2000 {
		t.Errorf("expected revenue 2000, got %v", report.TotalRevenue)
	}
	if report.TotalCost != 800 {
		t.Errorf("expected cost 800, got %v", report.TotalCost)
	}
	if len(report.Products) != 1 || report.Products[0].Product != "Maceta" {
		t.Fatalf("expected only Maceta in the period, got %+v", report.Products)
	}
	if report.Losses.GramsLost != 150 || report.Losses.Cost != 1250 {
		t.Errorf("expected losses 150g / 1250, got %+v", report.Losses)
	}
	if len(report.Consumption) != 1 || report.Consumption[0].Grams != 500 {
		t.Errorf("expected 500g PLA consumption, got %+v", report.Consumption)
	}
}

func TestHandleReportMonthly_NoFilterCoversEverything(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	createSoldRecord(t, app, "Maceta", "15/08/2026", 1, 1000, 400)
	createSoldRecord(t, app, "Llavero", "20/07/2026", 1, 500, 100)

	report := fetchMonthlyReport(t, app, "/api/reports/monthly")

	if report.TotalRevenue != 1500 {
		t.Errorf("expected revenue 1500 across all months, got %v", report.TotalRevenue)
	}
	if len(report.Products) != 2 {
		t.Errorf("expected both products, got %+v", report.Products)
	}
}

func TestHandleReportMonthly_IgnoresDrafts(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	testhelpers.CreateTestHistoryRecord(t, app, services.HistoryRecord{
		ProductName: "Maceta",
		Date:        "15/08/2026",
		Total:       1000,
		Quantity:    1,
		Status:      services.StatusDraft,
	})

	report := fetchMonthlyReport(t, app, "/api/reports/monthly")
	if report.TotalRevenue != 0 {
		t.Errorf("expected drafts to be excluded, got revenue %v", report.TotalRevenue)
	}
	if len(report.Insights) != 1 {
		t.Fatalf("expected only the fallback insight, got %v", report.Insights)
	}
}
