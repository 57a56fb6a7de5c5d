// Package temperature implements the treatment temperature optimizer. Given
// the current process parameters it computes the optimal treatment
// temperature, effectiveness and microbial-reduction estimates with a
// convergence trace, resource impact figures, and rule-based recommendations.
//
// Optimize is a pure function of its request: identical requests always yield
// identical results.
package temperature

import (
	"fmt"
	"math"

	"feedguard/internal/config"
	"feedguard/internal/optimizer/calc"
	"feedguard/internal/types"
)

// feedProfile holds per-feed-type treatment characteristics.
type feedProfile struct {
	// killMidpoint is the temperature (°C) at which microbial kill is most
	// effective for this feed type.
	killMidpoint float64
	// waterFactor scales the base water demand of the treatment.
	waterFactor float64
}

// feedProfiles is the authoritative table of feed type characteristics.
var feedProfiles = map[types.FeedType]feedProfile{
	types.FeedFermentation: {killMidpoint: 38, waterFactor: 1.2},
	types.FeedSilage:       {killMidpoint: 42, waterFactor: 1.1},
	types.FeedConcentrate:  {killMidpoint: 65, waterFactor: 0.9},
	types.FeedMixed:        {killMidpoint: 52, waterFactor: 1.0},
	types.FeedOther:        {killMidpoint: 50, waterFactor: 1.0},
}

// adjustmentWindows limits how far a single treatment run may move the
// temperature from its current value. Poor equipment narrows the safe window.
var adjustmentWindows = map[types.EquipmentStatus]float64{
	types.EquipmentPoor:     5,
	types.EquipmentModerate: 15,
	types.EquipmentGood:     30,
}

// Effectiveness and microbial reduction saturation weights. Both responses
// grow with the size of the temperature adjustment and the treatment
// duration, with diminishing returns toward 100%.
const (
	effectivenessAdjWeight      = 0.04
	effectivenessDurationWeight = 0.015
	microbialAdjWeight          = 0.03
	microbialDurationWeight     = 0.02
)

// humidityBiasDegrees is the maximum upward temperature bias applied at 100%
// ambient humidity to compensate for condensation risk.
const humidityBiasDegrees = 2.0

// simulationSteps is the number of intervals in the convergence trace
// (producing simulationSteps+1 samples).
const simulationSteps = 20

// Optimizer computes temperature treatment plans. It carries only the
// economic coefficients it needs from the service configuration.
type Optimizer struct {
	energyRate   float64
	laborRate    float64
	carbonFactor float64
}

// New creates a temperature Optimizer from the optimizer configuration.
func New(cfg config.OptimizerConfig) *Optimizer {
	return &Optimizer{
		energyRate:   cfg.EnergyRatePerKWh,
		laborRate:    cfg.LaborRatePerHour,
		carbonFactor: cfg.GridCarbonFactor,
	}
}

// Optimize computes the full treatment plan for a validated request.
//
// The optimal temperature is the feed type's microbial-kill midpoint clamped
// to the requested ideal range, biased upward with ambient humidity, and
// reachable within the equipment's safe adjustment window. A degenerate ideal
// range (low == high) pins the optimum to that single value.
func (o *Optimizer) Optimize(req types.TemperatureRequest) (*types.TemperatureResult, error) {
	if req.CurrentTemperature == nil || req.IdealRange == nil || req.AmbientHumidity == nil {
		// Validation guarantees presence; this guard protects direct callers.
		return nil, types.NewComputationError("temperature request is missing required fields", nil)
	}
	current := *req.CurrentTemperature
	humidity := *req.AmbientHumidity
	idealRange := *req.IdealRange

	if req.BatchSize <= 0 {
		// Validation guarantees batch_size >= 100; this guard protects the
		// per-kg efficiency math below.
		return nil, types.NewComputationError(
			fmt.Sprintf("batch size must be positive, got %v", req.BatchSize), nil)
	}

	profile, ok := feedProfiles[req.FeedType]
	if !ok {
		return nil, types.NewComputationError(
			fmt.Sprintf("no treatment profile for feed type %q", req.FeedType), nil)
	}

	optimal := o.optimalTemperature(current, humidity, idealRange, req.EquipmentStatus, profile)
	adjustment := calc.Round1(optimal - current)
	absAdj := math.Abs(adjustment)

	effectiveness := calc.Round2(calc.Saturate(
		effectivenessAdjWeight*absAdj + effectivenessDurationWeight*req.StorageDuration))
	microbial := calc.Round2(calc.Saturate(
		microbialAdjWeight*absAdj + microbialDurationWeight*req.StorageDuration))

	energy := o.energyConsumption(absAdj, req.StorageDuration, req.BatchSize)
	water := o.waterUsage(absAdj, req.BatchSize, profile)
	impact := calc.Environmental(energy, water, req.BatchSize, o.carbonFactor)

	laborHours := req.StorageDuration / 60
	cost := calc.CostEstimate(energy, laborHours, o.energyRate, o.laborRate)

	return &types.TemperatureResult{
		OptimalTemperature:    optimal,
		TemperatureAdjustment: adjustment,
		Effectiveness:         effectiveness,
		MicrobialReduction:    microbial,
		EnergyConsumption:     energy,
		CarbonFootprint:       impact.CarbonFootprint,
		WaterUsage:            water,
		CostEstimate:          cost,
		EfficiencyScore:       efficiencyScore(effectiveness, impact.EfficiencyScore),
		Recommendations:       buildRecommendations(req, humidity, adjustment, energy, o.energyRate),
		ParameterComparison:   compareParameters(req, current, humidity, optimal),
		Simulation:            simulate(req.StorageDuration, effectiveness, microbial),
	}, nil
}

// optimalTemperature resolves the target treatment temperature.
func (o *Optimizer) optimalTemperature(current, humidity float64, idealRange [2]float64, equipment types.EquipmentStatus, profile feedProfile) float64 {
	low, high := idealRange[0], idealRange[1]

	// Degenerate range pins the optimum outright.
	if low == high {
		return calc.Round1(low)
	}

	target := calc.Clamp(profile.killMidpoint, low, high)

	// Higher humidity biases the optimum upward to offset condensation risk.
	target += (humidity / 100) * humidityBiasDegrees
	target = calc.Clamp(target, low, high)

	// Limit the step to the equipment's safe adjustment window.
	window := adjustmentWindows[equipment]
	step := calc.Clamp(target-current, -window, window)

	return calc.Round1(calc.Clamp(current+step, low, high))
}

// energyConsumption estimates the run's energy draw in kWh. Larger
// adjustments, longer runs, and bigger batches all increase it.
func (o *Optimizer) energyConsumption(absAdj, duration, batchSize float64) float64 {
	const baseEnergy = 10.0
	return calc.Round2(baseEnergy +
		0.5*absAdj +
		(duration/60)*15 +
		(batchSize/1000)*10)
}

// waterUsage estimates the run's water demand in liters, scaled by the feed
// type's water factor.
func (o *Optimizer) waterUsage(absAdj, batchSize float64, profile feedProfile) float64 {
	const baseWater = 20.0
	return calc.Round2((baseWater + (batchSize/100)*15 + 0.8*absAdj) * profile.waterFactor)
}

// efficiencyScore blends treatment effectiveness with resource efficiency.
func efficiencyScore(effectiveness, resourceEfficiency float64) float64 {
	return calc.Round1(calc.Clamp(0.6*effectiveness+0.4*resourceEfficiency, 0, 100))
}

// simulate produces the convergence trace: both response curves sampled at a
// fixed cadence from 0 to the storage duration, ending exactly at the final
// effectiveness and microbial reduction values.
func simulate(duration, effectiveness, microbial float64) []types.SimulationPoint {
	times := calc.SampleTimes(duration, simulationSteps)
	points := make([]types.SimulationPoint, len(times))
	for i, tm := range times {
		frac := calc.ConvergenceFraction(tm, duration)
		points[i] = types.SimulationPoint{
			Time:               calc.Round2(tm),
			Effectiveness:      calc.Round2(effectiveness * frac),
			MicrobialReduction: calc.Round2(microbial * frac),
		}
	}
	return points
}

// compareParameters builds the current-vs-optimal table, one row per tracked
// parameter with a tolerance-band status.
func compareParameters(req types.TemperatureRequest, current, humidity, optimal float64) []types.ParameterComparison {
	rows := make([]types.ParameterComparison, 0, 4)

	tempDiff := calc.Round1(optimal - current)
	rows = append(rows, types.ParameterComparison{
		Parameter:  "Temperature",
		Current:    fmt.Sprintf("%.1f°C", current),
		Optimal:    fmt.Sprintf("%.1f°C", optimal),
		Difference: fmt.Sprintf("%+.1f°C", tempDiff),
		Status:     calc.DeviationStatus(current, optimal, 10),
	})

	optimalDuration := calc.Clamp(req.StorageDuration, 70, 100)
	durationDiff := optimalDuration - req.StorageDuration
	durationStatus := types.StatusGood
	if math.Abs(durationDiff) >= 10 {
		durationStatus = types.StatusWarning
	}
	rows = append(rows, types.ParameterComparison{
		Parameter:  "Duration",
		Current:    fmt.Sprintf("%.0f min", req.StorageDuration),
		Optimal:    fmt.Sprintf("%.0f min", optimalDuration),
		Difference: fmt.Sprintf("%+.0f min", durationDiff),
		Status:     durationStatus,
	})

	const optimalHumidity = 55.0
	humidityDiff := optimalHumidity - humidity
	humidityStatus := types.StatusGood
	if humidity >= 70 {
		humidityStatus = types.StatusWarning
	}
	rows = append(rows, types.ParameterComparison{
		Parameter:  "Ambient Humidity",
		Current:    fmt.Sprintf("%.0f%%", humidity),
		Optimal:    fmt.Sprintf("%.0f%%", optimalHumidity),
		Difference: fmt.Sprintf("%+.0f%%", humidityDiff),
		Status:     humidityStatus,
	})

	batchStatus := types.StatusGood
	batchDifference := "Within range"
	if req.BatchSize < 1000 || req.BatchSize > 3000 {
		batchStatus = types.StatusWarning
		batchDifference = "Adjust"
	}
	rows = append(rows, types.ParameterComparison{
		Parameter:  "Batch Size",
		Current:    fmt.Sprintf("%.0f kg", req.BatchSize),
		Optimal:    "1000-3000 kg",
		Difference: batchDifference,
		Status:     batchStatus,
	})

	return rows
}
