package services

import (
	"fmt"
	"sort"
)

// SaleEntry is one sale line fed into the monthly report.
// Cost is the entry's total production cost, not a per-unit figure.
type SaleEntry struct {
	Product   string  `json:"product"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Cost      float64 `json:"cost"`
}

// FailureEntry is one recorded print failure with its losses.
type FailureEntry struct {
	Product          string  `json:"product"`
	GramsLost        float64 `json:"grams_lost"`
	PiecesFailed     float64 `json:"pieces_failed"`
	MaterialCostLost float64 `json:"material_cost_lost"`
	EnergyCostLost   float64 `json:"energy_cost_lost"`
}

// ConsumptionEntry is the material actually consumed, by material type.
type ConsumptionEntry struct {
	MaterialType string  `json:"material_type"`
	Grams        float64 `json:"grams"`
}

// ProductSales is the monthly rollup for one product. AvgUnitPrice is the
// simple mean of the entry unit prices, not revenue-weighted.
type ProductSales struct {
	Product      string  `json:"product"`
	Quantity     float64 `json:"quantity"`
	Revenue      float64 `json:"revenue"`
	AvgUnitPrice float64 `json:"avg_unit_price"`
	Cost         float64 `json:"cost"`
	Margin       float64 `json:"margin"`
}

// LossSummary aggregates the period's failure losses.
type LossSummary struct {
	GramsLost    float64 `json:"grams_lost"`
	PiecesFailed float64 `json:"pieces_failed"`
	Cost         float64 `json:"cost"`
	Percent      float64 `json:"percent"`
}

// MaterialUsage is the period consumption for one material type.
type MaterialUsage struct {
	MaterialType string  `json:"material_type"`
	Grams        float64 `json:"grams"`
}

// MonthlyReport is the period summary combining sales, failures and
// consumption. It is recomputed on demand and never persisted.
type MonthlyReport struct {
	TotalRevenue     float64         `json:"total_revenue"`
	TotalCost        float64         `json:"total_cost"`
	NetProfit        float64         `json:"net_profit"`
	NetMarginPercent float64         `json:"net_margin_percent"`
	Products         []ProductSales  `json:"products"`
	TopProducts      []ProductSales  `json:"top_products"`
	Losses           LossSummary     `json:"losses"`
	Consumption      []MaterialUsage `json:"consumption"`
	TotalGrams       float64         `json:"total_grams"`
	Insights         []string        `json:"insights"`
}

// BuildMonthlyReport combines a period's sales, failures and material
// consumption into a report. Every numeric field is rounded to 2 decimals at
// construction; empty inputs yield a zero-valued report whose insights list
// still carries the fallback message.
func BuildMonthlyReport(sales []SaleEntry, failures []FailureEntry, consumption []ConsumptionEntry) MonthlyReport {
	report := MonthlyReport{}

	// ── Sales grouped by product ────────────────────────────────────────
	type productAccum struct {
		quantity float64
		revenue  float64
		cost     float64
		prices   float64
		entries  int
	}
	productIndex := make(map[string]int)
	var productOrder []string
	accums := make([]productAccum, 0)

	var totalRevenue, totalCost float64

	for _, sale := range sales {
		product := sale.Product
		if product == "" {
			product = DefaultProductName
		}
		qty := clampNonNegative(sale.Quantity)
		price := finiteOr(sale.UnitPrice, 0)
		cost := finiteOr(sale.Cost, 0)
		revenue := price * qty

		idx, ok := productIndex[product]
		if !ok {
			idx = len(accums)
			productIndex[product] = idx
			productOrder = append(productOrder, product)
			accums = append(accums, productAccum{})
		}
		a := &accums[idx]
		a.quantity += qty
		a.revenue += revenue
		a.cost += cost
		a.prices += price
		a.entries++

		totalRevenue += revenue
		totalCost += cost
	}

	for i, product := range productOrder {
		a := accums[i]
		avgPrice := 0.0
		if a.entries > 0 {
			avgPrice = a.prices / float64(a.entries)
		}
		report.Products = append(report.Products, ProductSales{
			Product:      product,
			Quantity:     Round2(a.quantity),
			Revenue:      Round2(a.revenue),
			AvgUnitPrice: Round2(avgPrice),
			Cost:         Round2(a.cost),
			Margin:       Round2(productMargin(a.revenue, a.cost)),
		})
	}

	// ── Top products by revenue ─────────────────────────────────────────
	top := make([]ProductSales, len(report.Products))
	copy(top, report.Products)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Revenue > top[j].Revenue
	})
	if len(top) > rankingLimit {
		top = top[:rankingLimit]
	}
	report.TopProducts = top

	// ── Loss analysis ───────────────────────────────────────────────────
	var gramsLost, piecesFailed, lossCost float64
	for _, f := range failures {
		gramsLost += clampNonNegative(f.GramsLost)
		piecesFailed += clampNonNegative(f.PiecesFailed)
		lossCost += finiteOr(f.MaterialCostLost, 0) + finiteOr(f.EnergyCostLost, 0)
	}
	lossPercent := 0.0
	if totalRevenue > 0 {
		lossPercent = lossCost / totalRevenue * 100
	}
	report.Losses = LossSummary{
		GramsLost:    Round2(gramsLost),
		PiecesFailed: Round2(piecesFailed),
		Cost:         Round2(lossCost),
		Percent:      Round2(lossPercent),
	}

	// ── Consumption by material type ────────────────────────────────────
	materialIndex := make(map[string]int)
	var totalGrams float64
	for _, c := range consumption {
		material := c.MaterialType
		if material == "" {
			material = DefaultMaterialName
		}
		grams := clampNonNegative(c.Grams)
		idx, ok := materialIndex[material]
		if !ok {
			idx = len(report.Consumption)
			materialIndex[material] = idx
			report.Consumption = append(report.Consumption, MaterialUsage{MaterialType: material})
		}
		report.Consumption[idx].Grams += grams
		totalGrams += grams
	}
	for i := range report.Consumption {
		report.Consumption[i].Grams = Round2(report.Consumption[i].Grams)
	}
	report.TotalGrams = Round2(totalGrams)

	// ── Net profitability ───────────────────────────────────────────────
	netProfit := totalRevenue - totalCost
	report.TotalRevenue = Round2(totalRevenue)
	report.TotalCost = Round2(totalCost)
	report.NetProfit = Round2(netProfit)
	report.NetMarginPercent = Round2(marginPercent(netProfit, totalRevenue))

	report.Insights = buildInsights(report)

	return report
}

// productMargin recomputes the margin from a product's aggregated revenue
// and cost; 0 when the revenue subtotal is not positive.
func productMargin(revenue, cost float64) float64 {
	if revenue > 0 {
		return (revenue - cost) / revenue * 100
	}
	return 0
}

// buildInsights runs independent, non-exclusive checks over the report and
// always returns at least the fallback message.
func buildInsights(report MonthlyReport) []string {
	var insights []string

	if report.Losses.Cost > 0 {
		insights = append(insights, fmt.Sprintf(
			"Reducir fallas de impresión: las pérdidas del período suman %s (%.1f%% de los ingresos).",
			FormatMoney(report.Losses.Cost), report.Losses.Percent))
	}

	if len(report.TopProducts) > 0 {
		insights = append(insights, fmt.Sprintf(
			"Potenciar %s, el producto con mayores ingresos del período (%s).",
			report.TopProducts[0].Product, FormatMoney(report.TopProducts[0].Revenue)))
	}

	if len(report.Consumption) > 1 {
		insights = append(insights, fmt.Sprintf(
			"Revisar el consumo por material: se usaron %d materiales distintos en el período.",
			len(report.Consumption)))
	}

	if len(insights) == 0 {
		insights = append(insights,
			"Sin datos suficientes para generar recomendaciones este período.")
	}

	return insights
}
