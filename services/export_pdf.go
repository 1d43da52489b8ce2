package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateReportPDF creates a PDF document from a monthly report using
// maroto/v2. It returns the raw PDF bytes or an error.
func GenerateReportPDF(data ReportExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addReportHeader(m, data)
	addProductTable(m, data.Report)
	addLossSection(m, data.Report)
	addConsumptionSection(m, data.Report)
	addReportSummary(m, data.Report)
	addInsightSection(m, data.Report)
	addReportFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addReportHeader(m core.Maroto, data ReportExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Período: %s", data.Period), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Generado: %s", data.GeneratedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	m.AddRows(row.New(4))
}

func addSectionTitle(m core.Maroto, title string) {
	m.AddRows(row.New(4))
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(title, props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)
}

func addProductTable(m core.Maroto, report MonthlyReport) {
	addSectionTitle(m, "Ventas por producto")

	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(4).Add(text.New("Producto", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Cant.", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Precio prom.", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Ingresos", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Costo", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Margen", headerText)).WithStyle(&headerCell),
		),
	)

	baseText := props.Text{Size: 7, Align: align.Center}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	for i, p := range report.Products {
		var cellStyle *props.Cell
		if i%2 == 1 {
			cellStyle = &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
		}

		colProduct := col.New(4).Add(text.New(p.Product, leftText))
		colQty := col.New(1).Add(text.New(FormatQty(p.Quantity), rightText))
		colPrice := col.New(2).Add(text.New(FormatMoney(p.AvgUnitPrice), rightText))
		colRevenue := col.New(2).Add(text.New(FormatMoney(p.Revenue), rightText))
		colCost := col.New(2).Add(text.New(FormatMoney(p.Cost), rightText))
		colMargin := col.New(1).Add(text.New(fmt.Sprintf("%.1f%%", p.Margin), rightText))

		if cellStyle != nil {
			colProduct = colProduct.WithStyle(cellStyle)
			colQty = colQty.WithStyle(cellStyle)
			colPrice = colPrice.WithStyle(cellStyle)
			colRevenue = colRevenue.WithStyle(cellStyle)
			colCost = colCost.WithStyle(cellStyle)
			colMargin = colMargin.WithStyle(cellStyle)
		}

		m.AddRows(row.New(7).Add(colProduct, colQty, colPrice, colRevenue, colCost, colMargin))
	}
}

func addLossSection(m core.Maroto, report MonthlyReport) {
	addSectionTitle(m, "Pérdidas por fallas")

	labelText := props.Text{Size: 8, Align: align.Left}
	valueText := props.Text{Size: 8, Align: align.Right}

	lines := []struct {
		label string
		value string
	}{
		{"Gramos perdidos", FormatQty(report.Losses.GramsLost)},
		{"Piezas falladas", FormatQty(report.Losses.PiecesFailed)},
		{"Costo de pérdidas", FormatMoney(report.Losses.Cost)},
		{"Porcentaje de los ingresos", fmt.Sprintf("%.1f%%", report.Losses.Percent)},
	}
	for _, line := range lines {
		m.AddRows(
			row.New(6).Add(
				col.New(8).Add(text.New(line.label, labelText)),
				col.New(4).Add(text.New(line.value, valueText)),
			),
		)
	}
}

func addConsumptionSection(m core.Maroto, report MonthlyReport) {
	addSectionTitle(m, "Consumo por material")

	labelText := props.Text{Size: 8, Align: align.Left}
	valueText := props.Text{Size: 8, Align: align.Right}

	for _, c := range report.Consumption {
		m.AddRows(
			row.New(6).Add(
				col.New(8).Add(text.New(c.MaterialType, labelText)),
				col.New(4).Add(text.New(FormatQty(c.Grams)+" g", valueText)),
			),
		)
	}

	m.AddRows(
		row.New(6).Add(
			col.New(8).Add(text.New("Total", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left})),
			col.New(4).Add(text.New(FormatQty(report.TotalGrams)+" g", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right})),
		),
	)
}

func addReportSummary(m core.Maroto, report MonthlyReport) {
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	valueStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}

	lines := []struct {
		label string
		value string
	}{
		{"Ingresos totales", FormatMoney(report.TotalRevenue)},
		{"Costos totales", FormatMoney(report.TotalCost)},
		{fmt.Sprintf("Ganancia neta (%.1f%%)", report.NetMarginPercent), FormatMoney(report.NetProfit)},
	}
	for _, line := range lines {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(text.New(line.label, labelStyle)).WithStyle(summaryCell),
				col.New(4).Add(text.New(line.value, valueStyle)).WithStyle(summaryCell),
			),
		)
	}
}

func addInsightSection(m core.Maroto, report MonthlyReport) {
	addSectionTitle(m, "Recomendaciones")

	for _, insight := range report.Insights {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(
					text.New("• "+insight, props.Text{Size: 8, Align: align.Left}),
				),
			),
		)
	}
}

func addReportFooter(m core.Maroto, data ReportExportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generado el %s", data.GeneratedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
