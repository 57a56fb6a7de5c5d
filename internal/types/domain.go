package types

// This file defines the request and result value structures for the three
// optimizers. All entities are immutable, request-scoped values: nothing here
// persists beyond a single request/response cycle and nothing is mutated after
// construction.
//
// JSON field names are part of the public API contract and must not change.
//
// Fields for which zero is a legal value are pointers: `required` then rejects
// an omitted field while an explicit 0 still passes the range rules.

// TemperatureRequest carries the process parameters for a temperature
// treatment optimization.
type TemperatureRequest struct {
	CurrentTemperature *float64        `json:"current_temperature" validate:"required,gte=0,lte=200"`
	IdealRange         *[2]float64     `json:"ideal_range" validate:"required,ordered_range,dive,gte=0,lte=200"`
	StorageDuration    float64         `json:"storage_duration" validate:"required,gte=10,lte=180"`
	FeedType           FeedType        `json:"feed_type" validate:"required,oneof=fermentation silage concentrate mixed other"`
	AmbientHumidity    *float64        `json:"ambient_humidity" validate:"required,gte=0,lte=100"`
	EquipmentStatus    EquipmentStatus `json:"equipment_status" validate:"required,oneof=poor moderate good"`
	BatchSize          float64         `json:"batch_size" validate:"required,gte=100,lte=5000"`
}

// SimulationPoint is one sample of the treatment convergence curve.
type SimulationPoint struct {
	Time               float64 `json:"time"`
	Effectiveness      float64 `json:"effectiveness"`
	MicrobialReduction float64 `json:"microbial_reduction"`
}

// ParameterComparison is one row of the current-vs-optimal parameter table.
type ParameterComparison struct {
	Parameter  string          `json:"parameter"`
	Current    string          `json:"current"`
	Optimal    string          `json:"optimal"`
	Difference string          `json:"difference"`
	Status     DeviationStatus `json:"status"`
}

// Recommendation is a single rule-produced improvement suggestion.
type Recommendation struct {
	Title            string `json:"title"`
	Impact           Impact `json:"impact"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	PotentialSavings string `json:"potential_savings"`
}

// TemperatureResult is the full output of the temperature optimizer. Every
// numeric field is derivable solely from the paired request; re-invoking the
// optimizer with an identical request yields identical values.
type TemperatureResult struct {
	OptimalTemperature    float64               `json:"optimal_temperature"`
	TemperatureAdjustment float64               `json:"temperature_adjustment"`
	Effectiveness         float64               `json:"effectiveness"`
	MicrobialReduction    float64               `json:"microbial_reduction"`
	EnergyConsumption     float64               `json:"energy_consumption"`
	CarbonFootprint       float64               `json:"carbon_footprint"`
	WaterUsage            float64               `json:"water_usage"`
	CostEstimate          float64               `json:"cost_estimate"`
	EfficiencyScore       float64               `json:"efficiency_score"`
	Recommendations       []Recommendation      `json:"recommendations"`
	ParameterComparison   []ParameterComparison `json:"parameter_comparison"`
	Simulation            []SimulationPoint     `json:"simulation"`
}

// WasteRequest carries the storage and handling parameters for a waste
// reduction optimization.
type WasteRequest struct {
	InitialQuantity      float64            `json:"initial_quantity" validate:"required,gte=100,lte=10000"`
	SpoilagePercentage   *float64           `json:"spoilage_percentage" validate:"required,gte=0,lte=100"`
	StorageMethod        StorageMethod      `json:"storage_method" validate:"required,oneof=ambient refrigerated frozen controlled"`
	HandlingFrequency    HandlingFrequency  `json:"handling_frequency" validate:"required,oneof=hourly daily weekly monthly"`
	ContaminationHistory ContaminationLevel `json:"contamination_history" validate:"required,oneof=none low medium high"`
}

// WasteBreakdown splits the current waste into the portion correctable by
// better practice and the portion that occurs regardless.
type WasteBreakdown struct {
	PreventableWaste float64 `json:"preventable_waste"`
	UnavoidableWaste float64 `json:"unavoidable_waste"`
	PreventionRate   float64 `json:"prevention_rate"`
}

// WasteSimulation is a 30-day projection of waste converging from the current
// level toward the optimized target.
type WasteSimulation struct {
	Days        []int     `json:"days"`
	WasteAmount []float64 `json:"waste_amount"`
	TargetWaste float64   `json:"target_waste"`
}

// WasteResult is the full output of the waste optimizer.
type WasteResult struct {
	CurrentWaste             float64          `json:"current_waste"`
	OptimizedWaste           float64          `json:"optimized_waste"`
	SalvageableQuantity      float64          `json:"salvageable_quantity"`
	WasteReductionPercentage float64          `json:"waste_reduction_percentage"`
	CostSavings              float64          `json:"cost_savings"`
	WasteBreakdown           WasteBreakdown   `json:"waste_breakdown"`
	Recommendations          []Recommendation `json:"recommendations"`
	Simulation               WasteSimulation  `json:"simulation"`
}

// CostRequest carries the monthly cost breakdown for a cost optimization.
// All five categories are non-negative currency figures; zero is a valid
// value for any of them, but every field must be present.
type CostRequest struct {
	ProductionCost    *float64 `json:"production_cost" validate:"required,gte=0,lte=1000000"`
	EnergyConsumption *float64 `json:"energy_consumption" validate:"required,gte=0,lte=10000"`
	LaborCost         *float64 `json:"labor_cost" validate:"required,gte=0,lte=1000000"`
	WasteCost         *float64 `json:"waste_cost" validate:"required,gte=0,lte=1000000"`
	TreatmentCost     *float64 `json:"treatment_cost" validate:"required,gte=0,lte=1000000"`
}

// CostBreakdownRow compares one cost category before and after optimization.
type CostBreakdownRow struct {
	Category          string          `json:"category"`
	Current           float64         `json:"current"`
	Optimized         float64         `json:"optimized"`
	Savings           float64         `json:"savings"`
	SavingsPercentage float64         `json:"savings_percentage"`
	Status            DeviationStatus `json:"status"`
}

// CostSimulation is a 12-month projection of total cost converging toward the
// optimized target, with cumulative savings per month.
type CostSimulation struct {
	Months            []int     `json:"months"`
	CostTrend         []float64 `json:"cost_trend"`
	CumulativeSavings []float64 `json:"cumulative_savings"`
	TargetCost        float64   `json:"target_cost"`
}

// CostResult is the full output of the cost optimizer.
type CostResult struct {
	TotalCurrentCost    float64            `json:"total_current_cost"`
	TotalOptimizedCost  float64            `json:"total_optimized_cost"`
	TotalSavings        float64            `json:"total_savings"`
	ROIPercentage       float64            `json:"roi_percentage"`
	MonthlySavings      float64            `json:"monthly_savings"`
	AnnualSavings       float64            `json:"annual_savings"`
	BreakdownComparison []CostBreakdownRow `json:"breakdown_comparison"`
	Recommendations     []Recommendation   `json:"recommendations"`
	Simulation          CostSimulation     `json:"simulation"`
}
