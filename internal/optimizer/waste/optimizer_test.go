package waste

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

func baseRequest() types.WasteRequest {
	return types.WasteRequest{
		InitialQuantity:      2000,
		SpoilagePercentage:   f64(30),
		StorageMethod:        types.StorageRefrigerated,
		HandlingFrequency:    types.HandlingDaily,
		ContaminationHistory: types.ContaminationLow,
	}
}

func TestOptimize_KnownScenario(t *testing.T) {
	opt := New(testConfig())

	result, err := opt.Optimize(baseRequest())
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	// 2000 kg at 30% spoilage is 600 kg of current waste. Refrigerated
	// storage (0.45), daily handling (0), low contamination (-0.05) gives a
	// preventable share of 0.40: 240 kg preventable, 360 kg unavoidable.
	// Optimized waste keeps 15% of the preventable slice: 360 + 36 = 396 kg.
	// Salvageable is what remains of the initial batch: 2000 - 396 = 1604 kg.
	if result.CurrentWaste != 600 {
		t.Errorf("current waste = %v, want 600", result.CurrentWaste)
	}
	if result.WasteBreakdown.PreventableWaste != 240 {
		t.Errorf("preventable waste = %v, want 240", result.WasteBreakdown.PreventableWaste)
	}
	if result.WasteBreakdown.UnavoidableWaste != 360 {
		t.Errorf("unavoidable waste = %v, want 360", result.WasteBreakdown.UnavoidableWaste)
	}
	if result.OptimizedWaste != 396 {
		t.Errorf("optimized waste = %v, want 396", result.OptimizedWaste)
	}
	if result.SalvageableQuantity != 1604 {
		t.Errorf("salvageable quantity = %v, want 1604", result.SalvageableQuantity)
	}
	if result.CostSavings != 204*50 {
		t.Errorf("cost savings = %v, want %v", result.CostSavings, 204*50)
	}
	if want := 34.0; result.WasteReductionPercentage != want {
		t.Errorf("reduction percentage = %v, want %v", result.WasteReductionPercentage, want)
	}
}

func TestOptimize_SalvageableCountsFromInitialQuantity(t *testing.T) {
	opt := New(testConfig())

	req := types.WasteRequest{
		InitialQuantity:      5000,
		SpoilagePercentage:   f64(12),
		StorageMethod:        types.StorageRefrigerated,
		HandlingFrequency:    types.HandlingDaily,
		ContaminationHistory: types.ContaminationLow,
	}

	result, err := opt.Optimize(req)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	// 5000 kg at 12% spoilage is again 600 kg of current waste, but the
	// salvageable figure scales with the batch: 5000 - 396 = 4604 kg.
	if result.CurrentWaste != 600 {
		t.Errorf("current waste = %v, want 600", result.CurrentWaste)
	}
	if result.OptimizedWaste != 396 {
		t.Errorf("optimized waste = %v, want 396", result.OptimizedWaste)
	}
	if want := req.InitialQuantity - result.OptimizedWaste; result.SalvageableQuantity != want {
		t.Errorf("salvageable quantity = %v, want %v", result.SalvageableQuantity, want)
	}
	if result.SalvageableQuantity != 4604 {
		t.Errorf("salvageable quantity = %v, want 4604", result.SalvageableQuantity)
	}
}

func TestOptimize_OptimizedNeverExceedsCurrent(t *testing.T) {
	opt := New(testConfig())

	methods := []types.StorageMethod{
		types.StorageAmbient, types.StorageRefrigerated,
		types.StorageFrozen, types.StorageControlled,
	}
	frequencies := []types.HandlingFrequency{
		types.HandlingHourly, types.HandlingDaily,
		types.HandlingWeekly, types.HandlingMonthly,
	}
	levels := []types.ContaminationLevel{
		types.ContaminationNone, types.ContaminationLow,
		types.ContaminationMedium, types.ContaminationHigh,
	}

	for _, m := range methods {
		for _, f := range frequencies {
			for _, l := range levels {
				req := types.WasteRequest{
					InitialQuantity:      5000,
					SpoilagePercentage:   f64(45),
					StorageMethod:        m,
					HandlingFrequency:    f,
					ContaminationHistory: l,
				}
				result, err := opt.Optimize(req)
				if err != nil {
					t.Fatalf("Optimize(%s/%s/%s) failed: %v", m, f, l, err)
				}
				if result.OptimizedWaste > result.CurrentWaste {
					t.Errorf("%s/%s/%s: optimized %v exceeds current %v",
						m, f, l, result.OptimizedWaste, result.CurrentWaste)
				}
				if result.OptimizedWaste <= 0 {
					t.Errorf("%s/%s/%s: optimized waste must stay positive, got %v",
						m, f, l, result.OptimizedWaste)
				}
				if result.SalvageableQuantity < 0 {
					t.Errorf("%s/%s/%s: negative salvageable quantity %v",
						m, f, l, result.SalvageableQuantity)
				}
				if want := req.InitialQuantity - result.OptimizedWaste; math.Abs(result.SalvageableQuantity-want) > 0.02 {
					t.Errorf("%s/%s/%s: salvageable %v, want initial - optimized = %v",
						m, f, l, result.SalvageableQuantity, want)
				}
				sum := result.WasteBreakdown.PreventableWaste + result.WasteBreakdown.UnavoidableWaste
				if math.Abs(sum-result.CurrentWaste) > 0.02 {
					t.Errorf("%s/%s/%s: breakdown %v does not sum to current %v",
						m, f, l, sum, result.CurrentWaste)
				}
			}
		}
	}
}

func TestOptimize_ZeroSpoilage(t *testing.T) {
	opt := New(testConfig())

	req := baseRequest()
	req.SpoilagePercentage = f64(0)

	result, err := opt.Optimize(req)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if result.CurrentWaste != 0 || result.OptimizedWaste != 0 {
		t.Errorf("zero spoilage should yield zero waste figures, got %+v", result)
	}
	if result.SalvageableQuantity != req.InitialQuantity {
		t.Errorf("zero spoilage should leave the whole batch salvageable, got %v",
			result.SalvageableQuantity)
	}
	if result.WasteReductionPercentage != 0 {
		t.Errorf("zero spoilage should yield zero reduction, got %v", result.WasteReductionPercentage)
	}
	if result.CostSavings != 0 {
		t.Errorf("zero spoilage should yield zero savings, got %v", result.CostSavings)
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

func TestOptimize_AmbientStorageWastesMoreThanFrozen(t *testing.T) {
	opt := New(testConfig())

	ambient := baseRequest()
	ambient.StorageMethod = types.StorageAmbient
	frozen := baseRequest()
	frozen.StorageMethod = types.StorageFrozen

	ambientResult, err := opt.Optimize(ambient)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	frozenResult, err := opt.Optimize(frozen)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	if ambientResult.SalvageableQuantity <= frozenResult.SalvageableQuantity {
		t.Errorf("ambient storage should leave more to salvage: %v <= %v",
			ambientResult.SalvageableQuantity, frozenResult.SalvageableQuantity)
	}
}

func TestOptimize_SimulationConvergesToTarget(t *testing.T) {
	opt := New(testConfig())

	result, err := opt.Optimize(baseRequest())
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	sim := result.Simulation
	if len(sim.Days) != len(sim.WasteAmount) {
		t.Fatalf("days and amounts length mismatch: %d vs %d", len(sim.Days), len(sim.WasteAmount))
	}
	if sim.Days[0] != 0 || sim.Days[len(sim.Days)-1] != 30 {
		t.Errorf("expected projection over days [0, 30], got [%d, %d]",
			sim.Days[0], sim.Days[len(sim.Days)-1])
	}
	if sim.WasteAmount[0] != result.CurrentWaste {
		t.Errorf("projection should start at current waste %v, got %v",
			result.CurrentWaste, sim.WasteAmount[0])
	}
	if last := sim.WasteAmount[len(sim.WasteAmount)-1]; last != result.OptimizedWaste {
		t.Errorf("projection should end at optimized waste %v, got %v",
			result.OptimizedWaste, last)
	}
	if sim.TargetWaste != result.OptimizedWaste {
		t.Errorf("target waste %v should equal optimized waste %v",
			sim.TargetWaste, result.OptimizedWaste)
	}
	for i := 1; i < len(sim.WasteAmount); i++ {
		if sim.WasteAmount[i] > sim.WasteAmount[i-1] {
			t.Fatalf("waste projection increased at index %d", i)
		}
	}
}

func TestOptimize_RecommendationRules(t *testing.T) {
	opt := New(testConfig())

	req := types.WasteRequest{
		InitialQuantity:      3000,
		SpoilagePercentage:   f64(35),
		StorageMethod:        types.StorageAmbient,
		HandlingFrequency:    types.HandlingMonthly,
		ContaminationHistory: types.ContaminationHigh,
	}

	result, err := opt.Optimize(req)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	categories := make([]string, 0, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		categories = append(categories, rec.Category)
	}
	want := []string{"Storage", "Handling", "Sanitation", "Monitoring"}
	if !reflect.DeepEqual(categories, want) {
		t.Errorf("recommendation categories = %v, want %v", categories, want)
	}

	// A well-run operation triggers none of the rules.
	calm := types.WasteRequest{
		InitialQuantity:      3000,
		SpoilagePercentage:   f64(10),
		StorageMethod:        types.StorageControlled,
		HandlingFrequency:    types.HandlingDaily,
		ContaminationHistory: types.ContaminationNone,
	}
	calmResult, err := opt.Optimize(calm)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if len(calmResult.Recommendations) != 0 {
		t.Errorf("expected no recommendations, got %v", calmResult.Recommendations)
	}
}

func TestOptimize_UnknownStorageMethod(t *testing.T) {
	opt := New(testConfig())

	req := baseRequest()
	req.StorageMethod = types.StorageMethod("buried")

	_, err := opt.Optimize(req)
	if err == nil {
		t.Fatal("expected an error for an unknown storage method")
	}
	appErr, ok := err.(*types.AppError)
	if !ok {
		t.Fatalf("expected *types.AppError, got %T", err)
	}
	if appErr.Code != types.ErrCodeInternalComputation {
		t.Errorf("expected computation error code, got %s", appErr.Code)
	}
}
