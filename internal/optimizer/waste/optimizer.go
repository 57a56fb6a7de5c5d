// Package waste implements the waste reduction optimizer. It splits the
// current spoilage-driven waste into a preventable and an unavoidable share
// based on storage method, handling frequency, and contamination history, and
// projects the achievable reduction with its monetary value.
package waste

import (
	"fmt"

	"feedguard/internal/config"
	"feedguard/internal/optimizer/calc"
	"feedguard/internal/types"
)

// preventableBase is the share of current waste considered preventable for
// each storage method before handling and contamination corrections. Ambient
// storage leaves the most room for improvement.
var preventableBase = map[types.StorageMethod]float64{
	types.StorageAmbient:      0.70,
	types.StorageRefrigerated: 0.45,
	types.StorageFrozen:       0.30,
	types.StorageControlled:   0.40,
}

// handlingAdjustment corrects the preventable share for how often batches are
// inspected and rotated. Infrequent handling leaves more waste preventable.
var handlingAdjustment = map[types.HandlingFrequency]float64{
	types.HandlingHourly:  -0.10,
	types.HandlingDaily:   0,
	types.HandlingWeekly:  0.10,
	types.HandlingMonthly: 0.20,
}

// contaminationShift moves waste from the preventable to the unavoidable
// share: a contaminated history means more of the loss happens regardless of
// practice.
var contaminationShift = map[types.ContaminationLevel]float64{
	types.ContaminationNone:   0,
	types.ContaminationLow:    0.05,
	types.ContaminationMedium: 0.15,
	types.ContaminationHigh:   0.30,
}

const (
	// Preventable share is kept inside (0, 1): some waste is always
	// preventable, and none of it can be entirely so.
	minPreventableShare = 0.05
	maxPreventableShare = 0.90

	// residualPreventableFactor is the fraction of preventable waste that
	// persists even under optimized practice. This keeps the optimized waste
	// strictly above the unavoidable floor.
	residualPreventableFactor = 0.15

	// The 30-day projection is sampled every third day.
	simulationDays     = 30
	simulationStepDays = 3
)

// Optimizer computes waste reduction plans.
type Optimizer struct {
	wasteValuePerKg float64
}

// New creates a waste Optimizer from the optimizer configuration.
func New(cfg config.OptimizerConfig) *Optimizer {
	return &Optimizer{wasteValuePerKg: cfg.WasteValuePerKg}
}

// Optimize computes the full waste reduction plan for a validated request.
//
// The optimized waste is always within (0, current_waste] for a non-zero
// current waste: the unavoidable share plus a residual slice of the
// preventable share. The salvageable quantity is the portion of the initial
// batch still usable after optimization, initial_quantity - optimized_waste.
// A zero spoilage percentage yields zero waste and a fully salvageable batch.
func (o *Optimizer) Optimize(req types.WasteRequest) (*types.WasteResult, error) {
	if req.SpoilagePercentage == nil {
		// Validation guarantees presence; this guard protects direct callers.
		return nil, types.NewComputationError("waste request is missing required fields", nil)
	}
	spoilage := *req.SpoilagePercentage

	base, ok := preventableBase[req.StorageMethod]
	if !ok {
		return nil, types.NewComputationError(
			fmt.Sprintf("no waste profile for storage method %q", req.StorageMethod), nil)
	}

	share := calc.Clamp(
		base+handlingAdjustment[req.HandlingFrequency]-contaminationShift[req.ContaminationHistory],
		minPreventableShare, maxPreventableShare)

	currentWaste := calc.Round2(req.InitialQuantity * spoilage / 100)
	preventable := calc.Round2(currentWaste * share)
	unavoidable := calc.Round2(currentWaste - preventable)

	optimized := calc.Round2(unavoidable + residualPreventableFactor*preventable)
	reduction := calc.Round2(currentWaste - optimized)
	salvageable := calc.Round2(req.InitialQuantity - optimized)

	reductionPct := 0.0
	if currentWaste > 0 {
		reductionPct = calc.Round2(reduction / currentWaste * 100)
	}

	return &types.WasteResult{
		CurrentWaste:             currentWaste,
		OptimizedWaste:           optimized,
		SalvageableQuantity:      salvageable,
		WasteReductionPercentage: reductionPct,
		CostSavings:              calc.Round2(reduction * o.wasteValuePerKg),
		WasteBreakdown: types.WasteBreakdown{
			PreventableWaste: preventable,
			UnavoidableWaste: unavoidable,
			PreventionRate:   reductionPct,
		},
		Recommendations: buildRecommendations(req, spoilage, reduction, o.wasteValuePerKg),
		Simulation:      simulate(currentWaste, optimized),
	}, nil
}

// simulate produces a linear 30-day projection of waste declining from the
// current level to the optimized target, sampled every third day.
func simulate(currentWaste, optimized float64) types.WasteSimulation {
	steps := simulationDays / simulationStepDays
	days := make([]int, 0, steps+1)
	amounts := make([]float64, 0, steps+1)

	for day := 0; day <= simulationDays; day += simulationStepDays {
		frac := float64(day) / float64(simulationDays)
		days = append(days, day)
		amounts = append(amounts, calc.Round2(currentWaste-(currentWaste-optimized)*frac))
	}

	return types.WasteSimulation{
		Days:        days,
		WasteAmount: amounts,
		TargetWaste: optimized,
	}
}

// buildRecommendations evaluates the advisory rules in a fixed order: storage
// upgrades first, then handling cadence, sanitation, and loss monitoring.
func buildRecommendations(req types.WasteRequest, spoilage, reduction, wasteValue float64) []types.Recommendation {
	recs := make([]types.Recommendation, 0, 4)
	monthlySavings := calc.Round2(reduction * wasteValue)

	if req.StorageMethod == types.StorageAmbient {
		recs = append(recs, types.Recommendation{
			Title:  "Upgrade from ambient storage",
			Impact: types.ImpactHigh,
			Description: "Ambient storage drives the largest preventable losses. " +
				"Moving batches to refrigerated or controlled-atmosphere storage " +
				"cuts spoilage substantially.",
			Category:         "Storage",
			PotentialSavings: fmt.Sprintf("up to %.2f INR per cycle", monthlySavings),
		})
	}

	if req.HandlingFrequency == types.HandlingWeekly || req.HandlingFrequency == types.HandlingMonthly {
		recs = append(recs, types.Recommendation{
			Title:  "Increase inspection and rotation frequency",
			Impact: types.ImpactMedium,
			Description: fmt.Sprintf("Batches handled %s develop spoilage that "+
				"daily rotation would catch early. Move to at least daily "+
				"inspection of stored feed.", req.HandlingFrequency),
			Category: "Handling",
		})
	}

	if req.ContaminationHistory == types.ContaminationMedium || req.ContaminationHistory == types.ContaminationHigh {
		recs = append(recs, types.Recommendation{
			Title:  "Review sanitation protocol",
			Impact: types.ImpactHigh,
			Description: "A history of contamination raises the unavoidable share " +
				"of waste. Deep-clean storage areas and audit the intake chain to " +
				"stop recurring contamination at its source.",
			Category: "Sanitation",
		})
	}

	if spoilage > 20 {
		recs = append(recs, types.Recommendation{
			Title:  "Add continuous spoilage monitoring",
			Impact: types.ImpactMedium,
			Description: fmt.Sprintf("A spoilage rate of %.0f%% is well above the "+
				"achievable baseline. Temperature and humidity sensors in the "+
				"storage area give early warning before losses compound.",
				spoilage),
			Category: "Monitoring",
		})
	}

	return recs
}
