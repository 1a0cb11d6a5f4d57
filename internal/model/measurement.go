package model

import "time"

type Measurement struct {
	ID              string
	MetricID        string
	ProjectID       string
	Value           float64
	MeasuredAt      time.Time
	Notes           *string
	ConfidenceLevel float64
	CreatedBy       *string
}

// MeasurementWithMetric carries the metric name for dashboard listings.
type MeasurementWithMetric struct {
	Measurement
	MetricName string
}
