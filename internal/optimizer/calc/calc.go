// Package calc provides the numeric helpers shared by the optimizers:
// saturation curves, deviation banding, environmental impact, and cost
// estimation. All functions are pure and deterministic.
package calc

import (
	"math"

	"feedguard/internal/types"
)

// curveSteepness controls how quickly the convergence curve approaches its
// target. A value of 3 front-loads roughly 95% of the progress into the first
// two thirds of the duration.
const curveSteepness = 3.0

// Saturate maps a non-negative load onto a percentage with diminishing
// returns: 100 * (1 - e^-x). The result approaches but never reaches 100,
// and is strictly increasing in x.
func Saturate(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return 100 * (1 - math.Exp(-x))
}

// ConvergenceFraction returns the fraction of the target value reached at
// time t of a process with the given duration. The curve rises fast and
// plateaus, and is normalized so that ConvergenceFraction(duration, duration)
// is exactly 1 (the trace ends at the final value).
func ConvergenceFraction(t, duration float64) float64 {
	if duration <= 0 || t >= duration {
		return 1
	}
	if t <= 0 {
		return 0
	}
	raw := 1 - math.Exp(-curveSteepness*t/duration)
	return raw / (1 - math.Exp(-curveSteepness))
}

// SampleTimes returns n+1 evenly spaced sample times from 0 to duration
// inclusive. n must be at least 1.
func SampleTimes(duration float64, n int) []float64 {
	if n < 1 {
		n = 1
	}
	times := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		times[i] = duration * float64(i) / float64(n)
	}
	return times
}

// DeviationStatus bands the deviation of current from optimal into
// good/warning/critical using a percentage threshold. A deviation below the
// threshold is good, below twice the threshold a warning, anything beyond
// critical. A zero optimal yields good (no meaningful deviation exists).
func DeviationStatus(current, optimal, thresholdPct float64) types.DeviationStatus {
	if optimal == 0 {
		return types.StatusGood
	}
	deviation := math.Abs((current - optimal) / optimal * 100)
	switch {
	case deviation < thresholdPct:
		return types.StatusGood
	case deviation < thresholdPct*2:
		return types.StatusWarning
	default:
		return types.StatusCritical
	}
}

// EnvironmentalImpact aggregates derived environmental metrics for a batch.
type EnvironmentalImpact struct {
	CarbonFootprint float64
	EfficiencyScore float64
}

// Environmental computes the carbon footprint of the consumed energy and a
// 0-100 resource efficiency score for the batch. carbonFactor is the grid's
// kg CO2 per kWh.
func Environmental(energyKWh, waterLiters, batchKg, carbonFactor float64) EnvironmentalImpact {
	energyEfficiency := Clamp(100-(energyKWh/batchKg)*10, 0, 100)
	waterEfficiency := Clamp(100-(waterLiters/batchKg)*2, 0, 100)

	return EnvironmentalImpact{
		CarbonFootprint: Round2(energyKWh * carbonFactor),
		EfficiencyScore: Round1((energyEfficiency + waterEfficiency) / 2),
	}
}

// CostEstimate prices the energy and labor consumed by a treatment run.
func CostEstimate(energyKWh, laborHours, energyRate, laborRate float64) float64 {
	return Round2(energyKWh*energyRate + laborHours*laborRate)
}

// Clamp restricts v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
