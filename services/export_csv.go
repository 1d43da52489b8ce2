package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// GenerateHistoryCSV renders history rows as CSV with a header row.
func GenerateHistoryCSV(rows []HistoryExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"fecha", "producto", "categoria", "cantidad", "costo_unitario", "precio_unitario", "total", "estado"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range rows {
		record := []string{
			r.Date,
			r.ProductName,
			r.Category,
			FormatQty(r.Quantity),
			formatCSVAmount(r.UnitCost),
			formatCSVAmount(r.UnitPrice),
			formatCSVAmount(r.Total),
			r.Status,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateReportCSV renders a monthly report's product table as CSV.
func GenerateReportCSV(data ReportExportData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"producto", "cantidad", "precio_promedio", "ingresos", "costo", "margen_pct"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, p := range data.Report.Products {
		record := []string{
			p.Product,
			FormatQty(p.Quantity),
			formatCSVAmount(p.AvgUnitPrice),
			formatCSVAmount(p.Revenue),
			formatCSVAmount(p.Cost),
			formatCSVAmount(p.Margin),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	totals := []string{
		"TOTAL",
		"",
		"",
		formatCSVAmount(data.Report.TotalRevenue),
		formatCSVAmount(data.Report.TotalCost),
		formatCSVAmount(data.Report.NetMarginPercent),
	}
	if err := w.Write(totals); err != nil {
		return nil, fmt.Errorf("write csv totals: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// formatCSVAmount keeps CSV numeric columns machine-readable: plain decimal
// point, 2 places, no currency symbol or grouping.
func formatCSVAmount(v float64) string {
	return strconv.FormatFloat(Round2(v), 'f', 2, 64)
}
