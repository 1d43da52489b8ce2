package services

import (
	"math"
	"sort"
	"time"
)

// rankingLimit caps the top-N product rankings.
const rankingLimit = 5

// DefaultProductName is used in rollups when a record has no product name.
const DefaultProductName = "Producto"

// RecordEntry is the record-like view the profitability aggregator consumes.
// Total is the explicit sale price when one was stored; the breakdown
// supplies the fallback price and the cost basis.
type RecordEntry struct {
	ProductName string        `json:"product_name"`
	Category    string        `json:"category"`
	Date        string        `json:"date"`
	Total       float64       `json:"total"`
	Quantity    float64       `json:"quantity"`
	Breakdown   CostBreakdown `json:"breakdown"`
}

// EntryProfit is the per-record profitability line.
type EntryProfit struct {
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Quantity    float64 `json:"quantity"`
	Revenue     float64 `json:"revenue"`
	Cost        float64 `json:"cost"`
	Profit      float64 `json:"profit"`
	Margin      float64 `json:"margin"`
}

// ProductProfit is the rollup for one (category, product) pair. Its margin
// is recomputed from the aggregated revenue and cost, not averaged from the
// entry-level margins, so high-count low-value products carry no extra weight.
type ProductProfit struct {
	Category    string  `json:"category"`
	ProductName string  `json:"product_name"`
	Entries     int     `json:"entries"`
	Quantity    float64 `json:"quantity"`
	Revenue     float64 `json:"revenue"`
	Cost        float64 `json:"cost"`
	Profit      float64 `json:"profit"`
	Margin      float64 `json:"margin"`
}

// ProfitabilitySummary is the full aggregation result.
type ProfitabilitySummary struct {
	TotalRevenue  float64         `json:"total_revenue"`
	TotalCost     float64         `json:"total_cost"`
	TotalProfit   float64         `json:"total_profit"`
	AverageMargin float64         `json:"average_margin"`
	Entries       []EntryProfit   `json:"entries"`
	Products      []ProductProfit `json:"products"`
	TopByProfit   []ProductProfit `json:"top_by_profit"`
	TopByMargin   []ProductProfit `json:"top_by_margin"`
	Recent        []EntryProfit   `json:"recent"`
}

// RecordEntryFromHistory adapts a normalized history record for aggregation.
func RecordEntryFromHistory(rec HistoryRecord) RecordEntry {
	return RecordEntry{
		ProductName: rec.ProductName,
		Category:    rec.Category,
		Date:        rec.Date,
		Total:       rec.Total,
		Quantity:    rec.Quantity,
		Breakdown:   rec.Breakdown,
	}
}

// AggregateProfitability folds records into global totals, per-product
// rollups and top-5 rankings. Malformed numeric fields are coerced to 0;
// an empty input yields a zero-valued summary with empty rankings.
func AggregateProfitability(records []RecordEntry) ProfitabilitySummary {
	summary := ProfitabilitySummary{}

	productIndex := make(map[[2]string]int)

	for _, r := range records {
		qty := finiteOr(r.Quantity, 1)
		if qty < 1 {
			qty = 1
		}

		unitPrice := finiteOr(r.Total, 0)
		if unitPrice == 0 {
			unitPrice = finiteOr(r.Breakdown.TotalFinal, 0)
		}
		unitCost := finiteOr(r.Breakdown.Subtotal, 0)

		revenue := unitPrice * qty
		cost := unitCost * qty
		profit := revenue - cost

		entry := EntryProfit{
			ProductName: r.ProductName,
			Category:    r.Category,
			Date:        r.Date,
			Quantity:    qty,
			Revenue:     revenue,
			Cost:        cost,
			Profit:      profit,
			Margin:      marginPercent(profit, revenue),
		}
		summary.Entries = append(summary.Entries, entry)

		summary.TotalRevenue += revenue
		summary.TotalCost += cost

		category := r.Category
		if category == "" {
			category = DefaultCategory
		}
		name := r.ProductName
		if name == "" {
			name = DefaultProductName
		}

		key := [2]string{category, name}
		idx, ok := productIndex[key]
		if !ok {
			idx = len(summary.Products)
			productIndex[key] = idx
			summary.Products = append(summary.Products, ProductProfit{
				Category:    category,
				ProductName: name,
			})
		}
		p := &summary.Products[idx]
		p.Entries++
		p.Quantity += qty
		p.Revenue += revenue
		p.Cost += cost
	}

	for i := range summary.Products {
		p := &summary.Products[i]
		p.Profit = p.Revenue - p.Cost
		p.Margin = marginPercent(p.Profit, p.Revenue)
	}

	summary.TotalProfit = summary.TotalRevenue - summary.TotalCost
	summary.AverageMargin = marginPercent(summary.TotalProfit, summary.TotalRevenue)

	summary.TopByProfit = topProducts(summary.Products, func(p ProductProfit) float64 { return p.Profit })
	summary.TopByMargin = topProducts(summary.Products, func(p ProductProfit) float64 { return p.Margin })
	summary.Recent = recentEntries(summary.Entries)

	return summary
}

// topProducts returns at most rankingLimit products sorted descending by the
// given key. Ties keep input order (stable sort, no secondary key).
func topProducts(products []ProductProfit, key func(ProductProfit) float64) []ProductProfit {
	ranked := make([]ProductProfit, len(products))
	copy(ranked, products)
	sort.SliceStable(ranked, func(i, j int) bool {
		return key(ranked[i]) > key(ranked[j])
	})
	if len(ranked) > rankingLimit {
		ranked = ranked[:rankingLimit]
	}
	return ranked
}

// recentEntries orders entries newest-first by parsed date, stable on ties.
func recentEntries(entries []EntryProfit) []EntryProfit {
	ordered := make([]EntryProfit, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ParseRecordDate(ordered[i].Date).After(ParseRecordDate(ordered[j].Date))
	})
	return ordered
}

// recordDateLayouts are tried in order: DD/MM/YYYY style first, ISO after.
var recordDateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseRecordDate parses a stored record date. Unparsable dates sort as the
// epoch, i.e. older than anything with a real date.
func ParseRecordDate(s string) time.Time {
	for _, layout := range recordDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Unix(0, 0).UTC()
}

// marginPercent is profit as a percentage of revenue, 0 when revenue is not
// strictly positive (never divides by zero).
func marginPercent(profit, revenue float64) float64 {
	if revenue > 0 {
		return profit / revenue * 100
	}
	return 0
}

// finiteOr coerces NaN and infinities to a default.
func finiteOr(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}
