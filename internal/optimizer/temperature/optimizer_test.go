package temperature

import (
	"math"
	"reflect"
	"testing"

	"feedguard/internal/config"
	"feedguard/internal/types"
)

func testConfig() config.OptimizerConfig {
	return config.OptimizerConfig{
		EnergyRatePerKWh: 8.5,
		LaborRatePerHour: 150,
		WasteValuePerKg:  50,
		GridCarbonFactor: 0.82,
	}
}

func f64(v float64) *float64 { return &v }

func idealRange(low, high float64) *[2]float64 { return &[2]float64{low, high} }

func baseRequest() types.TemperatureRequest {
	return types.TemperatureRequest{
		CurrentTemperature: f64(80),
		IdealRange:         idealRange(30, 120),
		StorageDuration:    70,
		FeedType:           types.FeedFermentation,
		AmbientHumidity:    f64(11),
		EquipmentStatus:    types.EquipmentModerate,
		BatchSize:          1600,
	}
}

func TestOptimize_FullScenario(t *testing.T) {
	opt := New(testConfig())

	result, err := opt.Optimize(baseRequest())
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	if result.OptimalTemperature < 30 || result.OptimalTemperature > 120 {
		t.Errorf("optimal temperature %v outside ideal range [30, 120]", result.OptimalTemperature)
	}
	if got := result.OptimalTemperature - 80; math.Abs(result.TemperatureAdjustment-got) > 0.1 {
		t.Errorf("adjustment %v inconsistent with optimal %v and current 80",
			result.TemperatureAdjustment, result.OptimalTemperature)
	}
	if result.Effectiveness < 0 || result.Effectiveness >= 100 {
		t.Errorf("effectiveness %v outside [0, 100)", result.Effectiveness)
	}
	if result.MicrobialReduction < 0 || result.MicrobialReduction >= 100 {
		t.Errorf("microbial reduction %v outside [0, 100)", result.MicrobialReduction)
	}
	if result.EnergyConsumption <= 0 {
		t.Errorf("energy consumption should be positive, got %v", result.EnergyConsumption)
	}
	if result.CarbonFootprint <= 0 {
		t.Errorf("carbon footprint should be positive, got %v", result.CarbonFootprint)
	}
	if result.CostEstimate <= 0 {
		t.Errorf("cost estimate should be positive, got %v", result.CostEstimate)
	}
	if result.EfficiencyScore < 0 || result.EfficiencyScore > 100 {
		t.Errorf("efficiency score %v outside [0, 100]", result.EfficiencyScore)
	}
	if len(result.ParameterComparison) != 4 {
		t.Errorf("expected 4 comparison rows, got %d", len(result.ParameterComparison))
	}
}

func TestOptimize_Deterministic(t *testing.T) {
	opt := New(testConfig())

	first, err := opt.Optimize(baseRequest())
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := opt.Optimize(baseRequest())
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("identical requests produced different results")
	}
}

func TestOptimize_ZeroAdjustmentWhenAlreadyOptimal(t *testing.T) {
	opt := New(testConfig())

	// Run once to find the optimum, then rerun from the optimum itself.
	first, err := opt.Optimize(baseRequest())
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	req := baseRequest()
	req.CurrentTemperature = f64(first.OptimalTemperature)
	second, err := opt.Optimize(req)
	if err != nil {
		t.Fatalf("Optimize from optimum failed: %v", err)
	}

	if second.TemperatureAdjustment != 0 {
		t.Errorf("expected zero adjustment from the optimum, got %v", second.TemperatureAdjustment)
	}
	if second.OptimalTemperature != first.OptimalTemperature {
		t.Errorf("optimum drifted on rerun: %v != %v",
			second.OptimalTemperature, first.OptimalTemperature)
	}
}

func TestOptimize_DegenerateRangePinsOptimum(t *testing.T) {
	opt := New(testConfig())

	req := baseRequest()
	req.IdealRange = idealRange(45, 45)
	req.AmbientHumidity = f64(95)

	result, err := opt.Optimize(req)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if result.OptimalTemperature != 45 {
		t.Errorf("degenerate range should pin optimum to 45, got %v", result.OptimalTemperature)
	}
}

func TestOptimize_PoorEquipmentLimitsAdjustment(t *testing.T) {
	opt := New(testConfig())

	req := baseRequest()
	req.CurrentTemperature = f64(120)
	req.EquipmentStatus = types.EquipmentPoor

	result, err := opt.Optimize(req)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if math.Abs(result.TemperatureAdjustment) > 5 {
		t.Errorf("poor equipment allows at most ±5°C, got %v", result.TemperatureAdjustment)
	}

	req.EquipmentStatus = types.EquipmentGood
	better, err := opt.Optimize(req)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if math.Abs(better.TemperatureAdjustment) < math.Abs(result.TemperatureAdjustment) {
		t.Errorf("good equipment should allow at least as large a step: %v < %v",
			better.TemperatureAdjustment, result.TemperatureAdjustment)
	}
}

func TestOptimize_EffectivenessGrowsWithDuration(t *testing.T) {
	opt := New(testConfig())

	short := baseRequest()
	short.StorageDuration = 20
	long := baseRequest()
	long.StorageDuration = 180

	shortResult, err := opt.Optimize(short)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	longResult, err := opt.Optimize(long)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	if longResult.Effectiveness <= shortResult.Effectiveness {
		t.Errorf("longer treatment should be at least as effective: %v <= %v",
			longResult.Effectiveness, shortResult.Effectiveness)
	}
	if longResult.MicrobialReduction <= shortResult.MicrobialReduction {
		t.Errorf("longer treatment should reduce more microbes: %v <= %v",
			longResult.MicrobialReduction, shortResult.MicrobialReduction)
	}
}

func TestOptimize_SimulationTrace(t *testing.T) {
	opt := New(testConfig())

	result, err := opt.Optimize(baseRequest())
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	if len(result.Simulation) != simulationSteps+1 {
		t.Fatalf("expected %d simulation points, got %d", simulationSteps+1, len(result.Simulation))
	}

	first := result.Simulation[0]
	if first.Time != 0 || first.Effectiveness != 0 || first.MicrobialReduction != 0 {
		t.Errorf("trace should start at zero, got %+v", first)
	}

	last := result.Simulation[len(result.Simulation)-1]
	if last.Time != 70 {
		t.Errorf("trace should end at the storage duration, got t=%v", last.Time)
	}
	if last.Effectiveness != result.Effectiveness {
		t.Errorf("trace should end at final effectiveness %v, got %v",
			result.Effectiveness, last.Effectiveness)
	}
	if last.MicrobialReduction != result.MicrobialReduction {
		t.Errorf("trace should end at final microbial reduction %v, got %v",
			result.MicrobialReduction, last.MicrobialReduction)
	}

	for i := 1; i < len(result.Simulation); i++ {
		prev, cur := result.Simulation[i-1], result.Simulation[i]
		if cur.Time <= prev.Time {
			t.Fatalf("simulation times not strictly increasing at index %d", i)
		}
		if cur.Effectiveness < prev.Effectiveness {
			t.Fatalf("effectiveness decreased at index %d", i)
		}
		if cur.MicrobialReduction < prev.MicrobialReduction {
			t.Fatalf("microbial reduction decreased at index %d", i)
		}
	}
}

func TestOptimize_RecommendationRules(t *testing.T) {
	opt := New(testConfig())

	req := baseRequest()
	req.CurrentTemperature = f64(10)
	req.EquipmentStatus = types.EquipmentPoor
	req.StorageDuration = 120
	req.AmbientHumidity = f64(85)

	result, err := opt.Optimize(req)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	categories := make([]string, 0, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		if rec.Title == "" || rec.Description == "" {
			t.Errorf("recommendation missing title or description: %+v", rec)
		}
		switch rec.Impact {
		case types.ImpactLow, types.ImpactMedium, types.ImpactHigh:
		default:
			t.Errorf("unexpected impact value %q", rec.Impact)
		}
		categories = append(categories, rec.Category)
	}

	wantCategories := map[string]bool{"Maintenance": true, "Efficiency": true, "Quality": true}
	for _, c := range categories {
		delete(wantCategories, c)
	}
	for missing := range wantCategories {
		t.Errorf("expected a %s recommendation for this scenario, got %v", missing, categories)
	}

	if categories[0] != "Maintenance" {
		t.Errorf("maintenance recommendations should come first, got %v", categories)
	}
}

func TestOptimize_CalmScenarioYieldsNoRecommendations(t *testing.T) {
	opt := New(testConfig())

	req := types.TemperatureRequest{
		CurrentTemperature: f64(40),
		IdealRange:         idealRange(35, 45),
		StorageDuration:    80,
		FeedType:           types.FeedSilage,
		AmbientHumidity:    f64(50),
		EquipmentStatus:    types.EquipmentGood,
		BatchSize:          2000,
	}

	result, err := opt.Optimize(req)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if len(result.Recommendations) != 0 {
		t.Errorf("expected no recommendations for a well-tuned process, got %v",
			result.Recommendations)
	}
}

func TestOptimize_NilNumericFieldsRejected(t *testing.T) {
	opt := New(testConfig())

	req := baseRequest()
	req.CurrentTemperature = nil

	_, err := opt.Optimize(req)
	if err == nil {
		t.Fatal("expected an error when a required field is absent")
	}
	appErr, ok := err.(*types.AppError)
	if !ok {
		t.Fatalf("expected *types.AppError, got %T", err)
	}
	if appErr.Code != types.ErrCodeInternalComputation {
		t.Errorf("expected computation error code, got %s", appErr.Code)
	}
}

func TestOptimize_UnknownFeedType(t *testing.T) {
	opt := New(testConfig())

	req := baseRequest()
	req.FeedType = types.FeedType("pellets")

	_, err := opt.Optimize(req)
	if err == nil {
		t.Fatal("expected an error for an unknown feed type")
	}

	appErr, ok := err.(*types.AppError)
	if !ok {
		t.Fatalf("expected *types.AppError, got %T", err)
	}
	if appErr.Code != types.ErrCodeInternalComputation {
		t.Errorf("expected computation error code, got %s", appErr.Code)
	}
}
