package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"printcost/services"
)

// monthMatches reports whether a record date falls in the given "2006-01"
// month. An empty month disables filtering.
func monthMatches(date, month string) bool {
	if month == "" {
		return true
	}
	return services.ParseRecordDate(date).Format("2006-01") == month
}

// buildMonthlyReportData assembles the report inputs for one month from sold
// history records, failure records and consumption records. An empty month
// covers everything ever recorded.
func buildMonthlyReportData(app *pocketbase.PocketBase, month string) (services.ReportExportData, error) {
	history, err := loadHistory(app)
	if err != nil {
		return services.ReportExportData{}, err
	}

	var sales []services.SaleEntry
	for _, rec := range history {
		if rec.Status != services.StatusSold || !monthMatches(rec.Date, month) {
			continue
		}

		qty := rec.Quantity
		if qty < 1 {
			qty = 1
		}
		unitPrice := rec.Total
		if unitPrice == 0 {
			unitPrice = rec.Breakdown.TotalFinal
		}

		sales = append(sales, services.SaleEntry{
			Product:   rec.ProductName,
			Quantity:  qty,
			UnitPrice: unitPrice,
			Cost:      rec.Breakdown.Subtotal * qty,
		})
	}

	failureRecords, err := app.FindRecordsByFilter("print_failures", "status = 'fallida'", "created", 0, 0, nil)
	if err != nil {
		failureRecords = nil
	}
	var failures []services.FailureEntry
	for _, rec := range failureRecords {
		if !monthMatches(rec.GetString("date"), month) {
			continue
		}
		failures = append(failures, services.FailureEntry{
			Product:          rec.GetString("product_name"),
			GramsLost:        rec.GetFloat("material_grams"),
			PiecesFailed:     rec.GetFloat("pieces_failed"),
			MaterialCostLost: rec.GetFloat("material_cost_lost"),
			EnergyCostLost:   rec.GetFloat("energy_cost_lost"),
		})
	}

	consumptionRecords, err := app.FindRecordsByFilter("material_consumption", "id != ''", "created", 0, 0, nil)
	if err != nil {
		consumptionRecords = nil
	}
	var consumption []services.ConsumptionEntry
	for _, rec := range consumptionRecords {
		if !monthMatches(rec.GetString("date"), month) {
			continue
		}
		consumption = append(consumption, services.ConsumptionEntry{
			MaterialType: rec.GetString("material_type"),
			Grams:        rec.GetFloat("grams"),
		})
	}

	period := month
	if period == "" {
		period = "Histórico"
	}

	return services.ReportExportData{
		Title:         "Informe mensual",
		Period:        period,
		GeneratedDate: time.Now().Format("02/01/2006"),
		Report:        services.BuildMonthlyReport(sales, failures, consumption),
	}, nil
}

// HandleReportMonthly returns a handler that serves the monthly report.
// The optional "month" query parameter uses the "2006-01" format; when
// absent the report covers the full history.
func HandleReportMonthly(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		month := e.Request.URL.Query().Get("month")

		data, err := buildMonthlyReportData(app, month)
		if err != nil {
			log.Printf("report_monthly: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "No se pudo generar el informe"})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"period": data.Period,
			"report": data.Report,
		})
	}
}
