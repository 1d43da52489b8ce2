package services

// ReportExportData holds everything the report renderers need: the computed
// monthly report plus presentation metadata supplied by the caller.
type ReportExportData struct {
	Title         string
	Period        string
	GeneratedDate string
	Report        MonthlyReport
}

// HistoryExportRow is one flattened history record for tabular exports.
type HistoryExportRow struct {
	Date        string
	ProductName string
	Category    string
	Quantity    float64
	UnitCost    float64
	UnitPrice   float64
	Total       float64
	Status      string
}

// HistoryExportRows flattens normalized records for CSV/XLSX export,
// preserving input order.
func HistoryExportRows(records []HistoryRecord) []HistoryExportRow {
	rows := make([]HistoryExportRow, 0, len(records))
	for _, rec := range records {
		unitPrice := rec.Total
		if unitPrice == 0 {
			unitPrice = rec.Breakdown.TotalFinal
		}
		rows = append(rows, HistoryExportRow{
			Date:        rec.Date,
			ProductName: rec.ProductName,
			Category:    rec.Category,
			Quantity:    rec.Quantity,
			UnitCost:    rec.Breakdown.Subtotal,
			UnitPrice:   unitPrice,
			Total:       unitPrice * rec.Quantity,
			Status:      rec.Status,
		})
	}
	return rows
}
