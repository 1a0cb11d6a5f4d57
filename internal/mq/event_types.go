package mq

import "time"

// Routing keys published on the events exchange.
const (
	RoutingKeyMeasurementRecorded = "measurement.recorded"
	RoutingKeyAuditEvent          = "audit.event"
)

type MeasurementRecordedPayload struct {
	MeasurementID string    `json:"measurement_id"`
	MetricID      string    `json:"metric_id"`
	ProjectID     string    `json:"project_id"`
	Value         float64   `json:"value"`
	MeasuredAt    time.Time `json:"measured_at"`
}

type AuditEventPayload struct {
	EventID      string    `json:"event_id"`
	UserID       *string   `json:"user_id,omitempty"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	Changes      any       `json:"changes,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
