package model

import "time"

type ProjectType string

const (
	ProjectTypeInfrastructure        ProjectType = "infrastructure"
	ProjectTypeSoftwareDevelopment   ProjectType = "software_development"
	ProjectTypeDigitalTransformation ProjectType = "digital_transformation"
)

type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

type Project struct {
	ID                  string
	Name                string
	ProjectType         ProjectType
	Status              ProjectStatus
	StartDate           *time.Time
	EndDate             *time.Time
	BusinessCase        *string
	EstimatedTotalValue float64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ProjectDetail is a project with its related aggregates loaded.
type ProjectDetail struct {
	Project
	Metrics      []Metric
	Stakeholders []Stakeholder
	Deliverables []Deliverable
}
