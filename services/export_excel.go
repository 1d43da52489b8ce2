package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateReportExcel creates an Excel workbook for a monthly report and
// returns the file contents as a byte slice.
func GenerateReportExcel(data ReportExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet names are capped at 31 chars.
	sheetName := data.Title
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Reporte"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F"}
	lastCol := columns[len(columns)-1]

	widths := []float64{32, 10, 16, 16, 16, 10}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	rowStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}

	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	})
	if err != nil {
		return nil, fmt.Errorf("create section style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header rows ─────────────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if data.Period != "" {
		if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
			return nil, fmt.Errorf("merge period: %w", err)
		}
		f.SetCellValue(sheetName, "A2", "Período: "+data.Period)
		f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)
	}

	if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A3", "Generado: "+data.GeneratedDate)
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	// ── Sales by product ────────────────────────────────────────────────

	row := 5
	f.SetCellValue(sheetName, cell("A", row), "Ventas por producto")
	f.SetCellStyle(sheetName, cell("A", row), cell("A", row), sectionStyle)
	row++

	headers := []string{"Producto", "Cantidad", "Precio promedio", "Ingresos", "Costo", "Margen %"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(columns[i], row), h)
	}
	f.SetCellStyle(sheetName, cell("A", row), cell(lastCol, row), headerStyle)
	row++

	for _, p := range data.Report.Products {
		f.SetCellValue(sheetName, cell("A", row), sanitizeExcelCell(p.Product))
		f.SetCellValue(sheetName, cell("B", row), p.Quantity)
		f.SetCellValue(sheetName, cell("C", row), FormatMoney(p.AvgUnitPrice))
		f.SetCellValue(sheetName, cell("D", row), FormatMoney(p.Revenue))
		f.SetCellValue(sheetName, cell("E", row), FormatMoney(p.Cost))
		f.SetCellValue(sheetName, cell("F", row), p.Margin)
		f.SetCellStyle(sheetName, cell("A", row), cell(lastCol, row), rowStyle)
		row++
	}

	// ── Losses ──────────────────────────────────────────────────────────

	row++
	f.SetCellValue(sheetName, cell("A", row), "Pérdidas por fallas")
	f.SetCellStyle(sheetName, cell("A", row), cell("A", row), sectionStyle)
	row++

	lossHeaders := []string{"Gramos perdidos", "Piezas falladas", "Costo de pérdidas", "% de ingresos"}
	for i, h := range lossHeaders {
		f.SetCellValue(sheetName, cell(columns[i], row), h)
	}
	f.SetCellStyle(sheetName, cell("A", row), cell("D", row), headerStyle)
	row++

	f.SetCellValue(sheetName, cell("A", row), data.Report.Losses.GramsLost)
	f.SetCellValue(sheetName, cell("B", row), data.Report.Losses.PiecesFailed)
	f.SetCellValue(sheetName, cell("C", row), FormatMoney(data.Report.Losses.Cost))
	f.SetCellValue(sheetName, cell("D", row), data.Report.Losses.Percent)
	f.SetCellStyle(sheetName, cell("A", row), cell("D", row), rowStyle)
	row++

	// ── Consumption by material ─────────────────────────────────────────

	row++
	f.SetCellValue(sheetName, cell("A", row), "Consumo por material")
	f.SetCellStyle(sheetName, cell("A", row), cell("A", row), sectionStyle)
	row++

	f.SetCellValue(sheetName, cell("A", row), "Material")
	f.SetCellValue(sheetName, cell("B", row), "Gramos")
	f.SetCellStyle(sheetName, cell("A", row), cell("B", row), headerStyle)
	row++

	for _, c := range data.Report.Consumption {
		f.SetCellValue(sheetName, cell("A", row), sanitizeExcelCell(c.MaterialType))
		f.SetCellValue(sheetName, cell("B", row), c.Grams)
		f.SetCellStyle(sheetName, cell("A", row), cell("B", row), rowStyle)
		row++
	}

	// ── Summary ─────────────────────────────────────────────────────────

	row++
	summaries := []struct {
		label string
		value string
	}{
		{"Ingresos totales:", FormatMoney(data.Report.TotalRevenue)},
		{"Costos totales:", FormatMoney(data.Report.TotalCost)},
		{fmt.Sprintf("Ganancia neta (%.1f%%):", data.Report.NetMarginPercent), FormatMoney(data.Report.NetProfit)},
	}
	for _, s := range summaries {
		f.SetCellValue(sheetName, cell("C", row), s.label)
		f.SetCellStyle(sheetName, cell("C", row), cell("C", row), summaryLabelStyle)
		f.SetCellValue(sheetName, cell("D", row), s.value)
		f.SetCellStyle(sheetName, cell("D", row), cell("D", row), summaryValueStyle)
		row++
	}

	// ── Insights ────────────────────────────────────────────────────────

	row++
	f.SetCellValue(sheetName, cell("A", row), "Recomendaciones")
	f.SetCellStyle(sheetName, cell("A", row), cell("A", row), sectionStyle)
	row++
	for _, insight := range data.Report.Insights {
		f.SetCellValue(sheetName, cell("A", row), sanitizeExcelCell(insight))
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateHistoryExcel creates an Excel workbook listing history records.
func GenerateHistoryExcel(rows []HistoryExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Historial"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	rowStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	widths := []float64{14, 30, 16, 10, 16, 16, 16, 10}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	headers := []string{"Fecha", "Producto", "Categoría", "Cantidad", "Costo unitario", "Precio unitario", "Total", "Estado"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(columns[i], 1), h)
	}
	f.SetCellStyle(sheetName, "A1", "H1", headerStyle)

	for i, r := range rows {
		rowNum := i + 2
		f.SetCellValue(sheetName, cell("A", rowNum), sanitizeExcelCell(r.Date))
		f.SetCellValue(sheetName, cell("B", rowNum), sanitizeExcelCell(r.ProductName))
		f.SetCellValue(sheetName, cell("C", rowNum), sanitizeExcelCell(r.Category))
		f.SetCellValue(sheetName, cell("D", rowNum), r.Quantity)
		f.SetCellValue(sheetName, cell("E", rowNum), FormatMoney(r.UnitCost))
		f.SetCellValue(sheetName, cell("F", rowNum), FormatMoney(r.UnitPrice))
		f.SetCellValue(sheetName, cell("G", rowNum), FormatMoney(r.Total))
		f.SetCellValue(sheetName, cell("H", rowNum), sanitizeExcelCell(r.Status))
		f.SetCellStyle(sheetName, cell("A", rowNum), cell("H", rowNum), rowStyle)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
