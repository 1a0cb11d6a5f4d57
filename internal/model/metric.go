package model

import "time"

type MetricType string

const (
	MetricTypeCurrency   MetricType = "currency"
	MetricTypePercentage MetricType = "percentage"
	MetricTypeTime       MetricType = "time"
	MetricTypeCount      MetricType = "count"
	MetricTypeScore      MetricType = "score"
)

type ValueCategory string

const (
	ValueCategoryCostReduction      ValueCategory = "cost_reduction"
	ValueCategoryRevenueIncrease    ValueCategory = "revenue_increase"
	ValueCategoryEfficiencyGain     ValueCategory = "efficiency_gain"
	ValueCategoryQualityImprovement ValueCategory = "quality_improvement"
	ValueCategoryRiskMitigation     ValueCategory = "risk_mitigation"
	ValueCategoryUserSatisfaction   ValueCategory = "user_satisfaction"
)

type MeasurementFrequency string

const (
	FrequencyDaily     MeasurementFrequency = "daily"
	FrequencyWeekly    MeasurementFrequency = "weekly"
	FrequencyMonthly   MeasurementFrequency = "monthly"
	FrequencyQuarterly MeasurementFrequency = "quarterly"
	FrequencyYearly    MeasurementFrequency = "yearly"
)

type Metric struct {
	ID          string
	ProjectID   string
	Name        string
	Description *string
	Category    ValueCategory
	MetricType  MetricType
	TargetValue float64
	BaselineValue float64
	// CurrentValue mirrors the latest measurement and is refreshed by the
	// worker; dashboards derive current from measurements directly.
	CurrentValue         *float64
	MeasurementFrequency MeasurementFrequency
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
