// Package services provides the costing and report aggregation pipeline:
// pure functions that turn raw print-job measurements into itemized cost
// breakdowns and roll collections of saved records up into profitability,
// consumption and monthly report summaries.
package services

import "math"

// JobInputs holds the physical measurements of a single print job.
type JobInputs struct {
	TimeMinutes     float64 `json:"time_minutes"`
	MaterialGrams   float64 `json:"material_grams"`
	AssemblyMinutes float64 `json:"assembly_minutes"`
}

// CostParams is a named, shareable snapshot of the cost configuration.
// Percentages are on the 0-100 scale and divided by 100 before use.
type CostParams struct {
	FilamentCostPerKg  float64 `json:"filament_cost_per_kg"`
	PowerWatts         float64 `json:"power_watts"`
	EnergyCostPerKwh   float64 `json:"energy_cost_per_kwh"`
	LaborPerHour       float64 `json:"labor_per_hour"`
	WearPercent        float64 `json:"wear_percent"`
	OperationalPercent float64 `json:"operational_percent"`
	ProfitPercent      float64 `json:"profit_percent"`
}

// CostBreakdown is the itemized cost/price decomposition of one job.
// Produced only by ComputeBreakdown; every field is rounded to 2 decimals
// at the point of computation and never re-rounded downstream.
type CostBreakdown struct {
	MaterialCost   float64 `json:"material_cost"`
	EnergyCost     float64 `json:"energy_cost"`
	LaborCost      float64 `json:"labor_cost"`
	BaseCost       float64 `json:"base_cost"`
	WearCost       float64 `json:"wear_cost"`
	OperatingCost  float64 `json:"operating_cost"`
	Subtotal       float64 `json:"subtotal"`
	Profit         float64 `json:"profit"`
	TotalFinal     float64 `json:"total_final"`
	SuggestedPrice float64 `json:"suggested_price"`
}

// ComputeBreakdown converts one job's raw inputs plus a parameter snapshot
// into an itemized breakdown. Deterministic, no validation, no side effects:
// the caller is responsible for rejecting negative or non-finite inputs.
//
// Each output field is the 2-decimal rounding of its own formula over the
// unrounded intermediates, so breakdown invariants hold at rounding
// precision rather than by summing already-rounded fields.
func ComputeBreakdown(inputs JobInputs, params CostParams) CostBreakdown {
	printHours := inputs.TimeMinutes / 60
	assemblyHours := inputs.AssemblyMinutes / 60
	materialKg := inputs.MaterialGrams / 1000

	materialCost := materialKg * params.FilamentCostPerKg
	energyCost := (params.PowerWatts / 1000) * printHours * params.EnergyCostPerKwh
	laborCost := assemblyHours * params.LaborPerHour
	baseCost := materialCost + energyCost + laborCost

	wearCost := baseCost * params.WearPercent / 100
	operatingCost := baseCost * params.OperationalPercent / 100
	subtotal := baseCost + wearCost + operatingCost

	profit := subtotal * params.ProfitPercent / 100
	totalFinal := subtotal + profit

	return CostBreakdown{
		MaterialCost:   Round2(materialCost),
		EnergyCost:     Round2(energyCost),
		LaborCost:      Round2(laborCost),
		BaseCost:       Round2(baseCost),
		WearCost:       Round2(wearCost),
		OperatingCost:  Round2(operatingCost),
		Subtotal:       Round2(subtotal),
		Profit:         Round2(profit),
		TotalFinal:     Round2(totalFinal),
		SuggestedPrice: Round2(totalFinal),
	}
}

// Round2 rounds half-up to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
