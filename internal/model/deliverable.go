package model

import "time"

type DeliverableStatus string

const (
	DeliverableStatusPlanned    DeliverableStatus = "planned"
	DeliverableStatusInProgress DeliverableStatus = "in_progress"
	DeliverableStatusCompleted  DeliverableStatus = "completed"
	DeliverableStatusCancelled  DeliverableStatus = "cancelled"
)

type Deliverable struct {
	ID                 string
	ProjectID          string
	Name               string
	Description        *string
	ExpectedCompletion time.Time
	ActualCompletion   *time.Time
	Status             DeliverableStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
