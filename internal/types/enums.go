package types

// FeedType identifies the feed category being treated. Each feed type has a
// distinct microbial-kill temperature midpoint and water demand profile.
type FeedType string

const (
	FeedFermentation FeedType = "fermentation"
	FeedSilage       FeedType = "silage"
	FeedConcentrate  FeedType = "concentrate"
	FeedMixed        FeedType = "mixed"
	FeedOther        FeedType = "other"
)

// EquipmentStatus describes the condition of the treatment equipment.
// Poor equipment narrows the safe temperature adjustment window.
type EquipmentStatus string

const (
	EquipmentPoor     EquipmentStatus = "poor"
	EquipmentModerate EquipmentStatus = "moderate"
	EquipmentGood     EquipmentStatus = "good"
)

// StorageMethod describes how feed batches are stored between treatments.
type StorageMethod string

const (
	StorageAmbient      StorageMethod = "ambient"
	StorageRefrigerated StorageMethod = "refrigerated"
	StorageFrozen       StorageMethod = "frozen"
	StorageControlled   StorageMethod = "controlled"
)

// HandlingFrequency describes how often batches are inspected and rotated.
type HandlingFrequency string

const (
	HandlingHourly  HandlingFrequency = "hourly"
	HandlingDaily   HandlingFrequency = "daily"
	HandlingWeekly  HandlingFrequency = "weekly"
	HandlingMonthly HandlingFrequency = "monthly"
)

// ContaminationLevel classifies a batch's contamination history. A history of
// high contamination raises the unavoidable share of waste.
type ContaminationLevel string

const (
	ContaminationNone   ContaminationLevel = "none"
	ContaminationLow    ContaminationLevel = "low"
	ContaminationMedium ContaminationLevel = "medium"
	ContaminationHigh   ContaminationLevel = "high"
)

// Impact grades how much a recommendation is expected to move the outcome.
type Impact string

const (
	ImpactLow    Impact = "Low"
	ImpactMedium Impact = "Medium"
	ImpactHigh   Impact = "High"
)

// DeviationStatus tags how far a parameter sits from its optimal value.
type DeviationStatus string

const (
	StatusGood     DeviationStatus = "good"
	StatusWarning  DeviationStatus = "warning"
	StatusCritical DeviationStatus = "critical"
)
