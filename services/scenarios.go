package services

import (
	"fmt"
	"sort"
)

// DefaultMaterialName labels scenarios that omit their material.
const DefaultMaterialName = "Material"

// ScenarioInput is one hypothetical production plan. Scenarios are never
// persisted; they exist only for the duration of a comparison call.
// Per-unit material/energy costs and consumption scale with the completion
// fraction; failure and other costs are committed amounts and do not.
type ScenarioInput struct {
	Name                 string  `json:"name"`
	Material             string  `json:"material"`
	Quantity             float64 `json:"quantity"`
	UnitPrice            float64 `json:"unit_price"`
	MaterialCostPerUnit  float64 `json:"material_cost_per_unit"`
	EnergyCostPerUnit    float64 `json:"energy_cost_per_unit"`
	FailureCost          float64 `json:"failure_cost"`
	OtherCosts           float64 `json:"other_costs"`
	PrintHoursPerUnit    float64 `json:"print_hours_per_unit"`
	MaterialGramsPerUnit float64 `json:"material_grams_per_unit"`
	EnergyKwhPerUnit     float64 `json:"energy_kwh_per_unit"`
	Completion           float64 `json:"completion"`
	SharesFixedCosts     bool    `json:"shares_fixed_costs"`
}

// ScenarioResult carries the evaluated economics of one scenario.
// Revenue assumes the full quantity sells regardless of completion (a
// committed order); the consumption fields report resources spent so far.
type ScenarioResult struct {
	Name               string  `json:"name"`
	Material           string  `json:"material"`
	Quantity           float64 `json:"quantity"`
	UnitPrice          float64 `json:"unit_price"`
	Completion         float64 `json:"completion"`
	Revenue            float64 `json:"revenue"`
	MaterialCost       float64 `json:"material_cost"`
	EnergyCost         float64 `json:"energy_cost"`
	FailureCost        float64 `json:"failure_cost"`
	OtherCosts         float64 `json:"other_costs"`
	AllocatedFixedCost float64 `json:"allocated_fixed_cost"`
	TotalCost          float64 `json:"total_cost"`
	NetProfit          float64 `json:"net_profit"`
	Margin             float64 `json:"margin"`
	HoursUsed          float64 `json:"hours_used"`
	GramsUsed          float64 `json:"grams_used"`
	KwhUsed            float64 `json:"kwh_used"`
	Best               bool    `json:"best"`
}

// ComparatorResult is the full comparison output. Both rankings are complete
// reorderings of the evaluated scenarios, not filtered lists.
type ComparatorResult struct {
	Scenarios        []ScenarioResult `json:"scenarios"`
	BestScenario     *ScenarioResult  `json:"best_scenario"`
	ByProfit         []ScenarioResult `json:"by_profit"`
	ByMargin         []ScenarioResult `json:"by_margin"`
	SharedFixedCosts float64          `json:"shared_fixed_costs"`
}

// CompareScenarios evaluates the scenarios against each other, allocating
// sharedFixedCosts across the participating ones proportionally to revenue
// share, falling back to quantity share when every participant prices at
// zero, and to zero when quantities are zero too. Exactly one scenario (the
// first maximum by net profit) is flagged Best; an empty input yields a nil
// BestScenario and empty lists.
func CompareScenarios(scenarios []ScenarioInput, sharedFixedCosts float64) ComparatorResult {
	if sharedFixedCosts < 0 {
		sharedFixedCosts = 0
	}

	normalized := make([]ScenarioInput, len(scenarios))
	for i, s := range scenarios {
		normalized[i] = normalizeScenario(s, i)
	}

	// Fixed-cost allocation base across participants only.
	var participantRevenue, participantQty float64
	for _, s := range normalized {
		if s.SharesFixedCosts {
			participantRevenue += s.UnitPrice * s.Quantity
			participantQty += s.Quantity
		}
	}

	results := make([]ScenarioResult, 0, len(normalized))
	for _, s := range normalized {
		revenue := s.UnitPrice * s.Quantity

		var allocated float64
		if s.SharesFixedCosts {
			switch {
			case participantRevenue > 0:
				allocated = sharedFixedCosts * revenue / participantRevenue
			case participantQty > 0:
				allocated = sharedFixedCosts * s.Quantity / participantQty
			}
		}

		materialCost := s.MaterialCostPerUnit * s.Quantity * s.Completion
		energyCost := s.EnergyCostPerUnit * s.Quantity * s.Completion
		totalCost := materialCost + energyCost + s.FailureCost + s.OtherCosts + allocated
		netProfit := revenue - totalCost

		results = append(results, ScenarioResult{
			Name:               s.Name,
			Material:           s.Material,
			Quantity:           s.Quantity,
			UnitPrice:          s.UnitPrice,
			Completion:         s.Completion,
			Revenue:            revenue,
			MaterialCost:       materialCost,
			EnergyCost:         energyCost,
			FailureCost:        s.FailureCost,
			OtherCosts:         s.OtherCosts,
			AllocatedFixedCost: allocated,
			TotalCost:          totalCost,
			NetProfit:          netProfit,
			Margin:             marginPercent(netProfit, revenue),
			HoursUsed:          s.PrintHoursPerUnit * s.Quantity * s.Completion,
			GramsUsed:          s.MaterialGramsPerUnit * s.Quantity * s.Completion,
			KwhUsed:            s.EnergyKwhPerUnit * s.Quantity * s.Completion,
		})
	}

	result := ComparatorResult{
		Scenarios:        results,
		SharedFixedCosts: sharedFixedCosts,
	}

	if len(results) > 0 {
		best := 0
		for i, r := range results {
			if r.NetProfit > results[best].NetProfit {
				best = i
			}
		}
		results[best].Best = true
		bestCopy := results[best]
		result.BestScenario = &bestCopy
	}

	result.ByProfit = rankScenarios(results, func(r ScenarioResult) float64 { return r.NetProfit })
	result.ByMargin = rankScenarios(results, func(r ScenarioResult) float64 { return r.Margin })

	return result
}

// normalizeScenario clamps quantities, prices and costs to non-negative
// values, clamps completion into [0,1] and fills positional defaults for
// blank names and materials.
func normalizeScenario(s ScenarioInput, position int) ScenarioInput {
	s.Quantity = clampNonNegative(s.Quantity)
	s.UnitPrice = clampNonNegative(s.UnitPrice)
	s.MaterialCostPerUnit = clampNonNegative(s.MaterialCostPerUnit)
	s.EnergyCostPerUnit = clampNonNegative(s.EnergyCostPerUnit)
	s.FailureCost = clampNonNegative(s.FailureCost)
	s.OtherCosts = clampNonNegative(s.OtherCosts)
	s.PrintHoursPerUnit = clampNonNegative(s.PrintHoursPerUnit)
	s.MaterialGramsPerUnit = clampNonNegative(s.MaterialGramsPerUnit)
	s.EnergyKwhPerUnit = clampNonNegative(s.EnergyKwhPerUnit)
	s.Completion = clamp01(s.Completion)

	if s.Name == "" {
		s.Name = fmt.Sprintf("Escenario %d", position+1)
	}
	if s.Material == "" {
		s.Material = DefaultMaterialName
	}
	return s
}

func rankScenarios(results []ScenarioResult, key func(ScenarioResult) float64) []ScenarioResult {
	ranked := make([]ScenarioResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return key(ranked[i]) > key(ranked[j])
	})
	return ranked
}

func clampNonNegative(v float64) float64 {
	v = finiteOr(v, 0)
	if v < 0 {
		return 0
	}
	return v
}

func clamp01(v float64) float64 {
	v = finiteOr(v, 0)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
