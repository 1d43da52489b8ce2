package services

import (
	"encoding/json"
	"math"
	"strconv"
)

// Record status values.
const (
	StatusDraft = "draft"
	StatusSold  = "sold"
)

// Stock change reasons.
const (
	ReasonSold    = "sold"
	ReasonRestock = "restock"
)

// DefaultCategory is assigned when a record carries no usable category.
const DefaultCategory = "General"

// StockChange is one append-only inventory delta tied to a HistoryRecord.
type StockChange struct {
	Timestamp  string `json:"timestamp"`
	Change     int    `json:"change"`
	StockAfter int    `json:"stock_after"`
	Reason     string `json:"reason"`
	Type       string `json:"type"`
}

// HistoryRecord is one saved quotation/production entry in canonical shape.
// The embedded breakdown is a snapshot: later changes to the default cost
// parameters never retroactively alter a stored record.
type HistoryRecord struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	ProductName  string        `json:"product_name"`
	Category     string        `json:"category"`
	Inputs       JobInputs     `json:"inputs"`
	Params       CostParams    `json:"params"`
	Breakdown    CostBreakdown `json:"breakdown"`
	Total        float64       `json:"total"`
	Quantity     float64       `json:"quantity"`
	Status       string        `json:"status"`
	StockChanges []StockChange `json:"stock_changes"`
}

// RawRecord is a stored record as it comes back from persistence: a loose
// JSON object that may be missing fields or use legacy field names.
type RawRecord map[string]any

// NormalizeRecord adapts a raw stored record into the canonical shape,
// re-deriving the breakdown via ComputeBreakdown when none was stored.
// Returns nil only when raw itself is absent. Tolerates arbitrarily
// malformed input without panicking; every field falls back through a fixed
// alias order (canonical key, then legacy aliases, then default).
func NormalizeRecord(raw RawRecord, fallbackParams CostParams) *HistoryRecord {
	if raw == nil {
		return nil
	}

	rec := &HistoryRecord{
		ID:          rawString(raw, "id"),
		Date:        rawString(raw, "date"),
		ProductName: rawString(raw, "product_name", "productName", "name"),
		Category:    rawString(raw, "category"),
		Inputs:      normalizeInputs(raw),
		StockChanges: normalizeStockChanges(
			rawSlice(raw, "stock_changes", "stockChanges"),
		),
	}

	if rec.Category == "" {
		rec.Category = DefaultCategory
	}

	if params, ok := rawMap(raw, "params"); ok {
		rec.Params = decodeParams(params)
	} else {
		rec.Params = fallbackParams
	}

	if breakdown, ok := rawMap(raw, "breakdown"); ok {
		rec.Breakdown = decodeBreakdown(breakdown)
	} else {
		rec.Breakdown = ComputeBreakdown(rec.Inputs, rec.Params)
	}

	rec.Total, _ = rawNumber(raw, "total")

	rec.Quantity = 1
	if qty, ok := rawNumber(raw, "quantity"); ok && qty >= 0 {
		rec.Quantity = qty
	}

	rec.Status = normalizeStatus(raw)

	return rec
}

// normalizeInputs decodes the canonical inputs object, falling back to the
// legacy top-level "time" / "material" fields when it is missing.
func normalizeInputs(raw RawRecord) JobInputs {
	if m, ok := rawMap(raw, "inputs"); ok {
		t, _ := rawNumber(m, "time_minutes", "timeMinutes", "time")
		g, _ := rawNumber(m, "material_grams", "materialGrams", "material")
		a, _ := rawNumber(m, "assembly_minutes", "assemblyMinutes", "assembly")
		return JobInputs{TimeMinutes: t, MaterialGrams: g, AssemblyMinutes: a}
	}

	t, _ := rawNumber(raw, "time")
	g, _ := rawNumber(raw, "material")
	a, _ := rawNumber(raw, "assembly")
	return JobInputs{TimeMinutes: t, MaterialGrams: g, AssemblyMinutes: a}
}

func normalizeStatus(raw RawRecord) string {
	switch rawString(raw, "status") {
	case StatusSold:
		return StatusSold
	case StatusDraft:
		return StatusDraft
	}
	// Legacy records carried a boolean "sold" flag instead of a status.
	if sold, ok := raw["sold"].(bool); ok && sold {
		return StatusSold
	}
	return StatusDraft
}

// normalizeStockChanges normalizes each entry independently: the reason is
// inferred from the sign of the change when absent (negative means a sale),
// and the type mirrors the reason.
func normalizeStockChanges(entries []any) []StockChange {
	var changes []StockChange
	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		change, _ := rawNumber(m, "change")
		after, _ := rawNumber(m, "stock_after", "stockAfter")

		reason := rawString(m, "reason")
		if reason != ReasonSold && reason != ReasonRestock {
			if change < 0 {
				reason = ReasonSold
			} else {
				reason = ReasonRestock
			}
		}

		changes = append(changes, StockChange{
			Timestamp:  rawString(m, "timestamp"),
			Change:     int(change),
			StockAfter: int(after),
			Reason:     reason,
			Type:       reason,
		})
	}
	return changes
}

func decodeParams(m map[string]any) CostParams {
	var p CostParams
	p.FilamentCostPerKg, _ = rawNumber(m, "filament_cost_per_kg", "filamentCostPerKg")
	p.PowerWatts, _ = rawNumber(m, "power_watts", "powerWatts")
	p.EnergyCostPerKwh, _ = rawNumber(m, "energy_cost_per_kwh", "energyCostPerKwh")
	p.LaborPerHour, _ = rawNumber(m, "labor_per_hour", "laborPerHour")
	p.WearPercent, _ = rawNumber(m, "wear_percent", "wearPercent")
	p.OperationalPercent, _ = rawNumber(m, "operational_percent", "operationalPercent")
	p.ProfitPercent, _ = rawNumber(m, "profit_percent", "profitPercent")
	return p
}

func decodeBreakdown(m map[string]any) CostBreakdown {
	var b CostBreakdown
	b.MaterialCost, _ = rawNumber(m, "material_cost", "materialCost")
	b.EnergyCost, _ = rawNumber(m, "energy_cost", "energyCost")
	b.LaborCost, _ = rawNumber(m, "labor_cost", "laborCost")
	b.BaseCost, _ = rawNumber(m, "base_cost", "baseCost")
	b.WearCost, _ = rawNumber(m, "wear_cost", "wearCost")
	b.OperatingCost, _ = rawNumber(m, "operating_cost", "operatingCost")
	b.Subtotal, _ = rawNumber(m, "subtotal", "totalCost")
	b.Profit, _ = rawNumber(m, "profit")
	b.TotalFinal, _ = rawNumber(m, "total_final", "totalFinal", "finalPrice")
	b.SuggestedPrice, _ = rawNumber(m, "suggested_price", "suggestedPrice")
	if b.SuggestedPrice == 0 {
		b.SuggestedPrice = b.TotalFinal
	}
	return b
}

// rawNumber looks keys up in priority order and returns the first value that
// coerces to a finite float64.
func rawNumber(m map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		v, ok := m[key]
		if !ok {
			continue
		}
		if n, ok := coerceNumber(v); ok {
			return n, true
		}
	}
	return 0, false
}

func coerceNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func rawString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func rawMap(m map[string]any, key string) (map[string]any, bool) {
	sub, ok := m[key].(map[string]any)
	return sub, ok && sub != nil
}

func rawSlice(m map[string]any, keys ...string) []any {
	for _, key := range keys {
		if s, ok := m[key].([]any); ok {
			return s
		}
	}
	return nil
}
