package api

import (
	"time"

	"valuepm/internal/model"
)

const dateLayout = "2006-01-02"

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

type projectResponse struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	ProjectType         string  `json:"project_type"`
	Status              string  `json:"status"`
	StartDate           *string `json:"start_date"`
	EndDate             *string `json:"end_date"`
	BusinessCase        *string `json:"business_case"`
	EstimatedTotalValue float64 `json:"estimated_total_value"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

func toProjectResponse(p *model.Project) projectResponse {
	return projectResponse{
		ID:                  p.ID,
		Name:                p.Name,
		ProjectType:         string(p.ProjectType),
		Status:              string(p.Status),
		StartDate:           formatDate(p.StartDate),
		EndDate:             formatDate(p.EndDate),
		BusinessCase:        p.BusinessCase,
		EstimatedTotalValue: p.EstimatedTotalValue,
		CreatedAt:           p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           p.UpdatedAt.Format(time.RFC3339),
	}
}

type projectDetailResponse struct {
	projectResponse
	Metrics      []metricResponse      `json:"metrics"`
	Stakeholders []stakeholderResponse `json:"stakeholders"`
	Deliverables []deliverableResponse `json:"deliverables"`
}

func toProjectDetailResponse(d *model.ProjectDetail) projectDetailResponse {
	resp := projectDetailResponse{
		projectResponse: toProjectResponse(&d.Project),
		Metrics:         make([]metricResponse, 0, len(d.Metrics)),
		Stakeholders:    make([]stakeholderResponse, 0, len(d.Stakeholders)),
		Deliverables:    make([]deliverableResponse, 0, len(d.Deliverables)),
	}
	for i := range d.Metrics {
		resp.Metrics = append(resp.Metrics, toMetricResponse(&d.Metrics[i]))
	}
	for i := range d.Stakeholders {
		resp.Stakeholders = append(resp.Stakeholders, toStakeholderResponse(&d.Stakeholders[i]))
	}
	for i := range d.Deliverables {
		resp.Deliverables = append(resp.Deliverables, toDeliverableResponse(&d.Deliverables[i]))
	}
	return resp
}

type metricResponse struct {
	ID                   string   `json:"id"`
	ProjectID            string   `json:"project_id"`
	Name                 string   `json:"name"`
	Description          *string  `json:"description"`
	Category             string   `json:"category"`
	MetricType           string   `json:"metric_type"`
	TargetValue          float64  `json:"target_value"`
	BaselineValue        float64  `json:"baseline_value"`
	CurrentValue         *float64 `json:"current_value"`
	MeasurementFrequency string   `json:"measurement_frequency"`
	IsActive             bool     `json:"is_active"`
	CreatedAt            string   `json:"created_at"`
	UpdatedAt            string   `json:"updated_at"`
}

func toMetricResponse(m *model.Metric) metricResponse {
	return metricResponse{
		ID:                   m.ID,
		ProjectID:            m.ProjectID,
		Name:                 m.Name,
		Description:          m.Description,
		Category:             string(m.Category),
		MetricType:           string(m.MetricType),
		TargetValue:          m.TargetValue,
		BaselineValue:        m.BaselineValue,
		CurrentValue:         m.CurrentValue,
		MeasurementFrequency: string(m.MeasurementFrequency),
		IsActive:             m.IsActive,
		CreatedAt:            m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            m.UpdatedAt.Format(time.RFC3339),
	}
}

type measurementResponse struct {
	ID              string  `json:"id"`
	MetricID        string  `json:"metric_id"`
	ProjectID       string  `json:"project_id"`
	MetricName      string  `json:"metric_name,omitempty"`
	Value           float64 `json:"value"`
	MeasuredAt      string  `json:"measured_at"`
	Notes           *string `json:"notes"`
	ConfidenceLevel float64 `json:"confidence_level"`
	CreatedBy       *string `json:"created_by"`
}

func toMeasurementResponse(m *model.Measurement) measurementResponse {
	return measurementResponse{
		ID:              m.ID,
		MetricID:        m.MetricID,
		ProjectID:       m.ProjectID,
		Value:           m.Value,
		MeasuredAt:      m.MeasuredAt.Format(time.RFC3339),
		Notes:           m.Notes,
		ConfidenceLevel: m.ConfidenceLevel,
		CreatedBy:       m.CreatedBy,
	}
}

func toMeasurementWithMetricResponse(m *model.MeasurementWithMetric) measurementResponse {
	resp := toMeasurementResponse(&m.Measurement)
	resp.MetricName = m.MetricName
	return resp
}

type stakeholderResponse struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Email                 *string  `json:"email"`
	Role                  *string  `json:"role"`
	Department            *string  `json:"department"`
	PrimaryValueInterests []string `json:"primary_value_interests"`
	InfluenceLevel        int      `json:"influence_level"`
	CreatedAt             string   `json:"created_at"`
	UpdatedAt             string   `json:"updated_at"`
}

func toStakeholderResponse(s *model.Stakeholder) stakeholderResponse {
	interests := make([]string, 0, len(s.PrimaryValueInterests))
	for _, v := range s.PrimaryValueInterests {
		interests = append(interests, string(v))
	}
	return stakeholderResponse{
		ID:                    s.ID,
		Name:                  s.Name,
		Email:                 s.Email,
		Role:                  s.Role,
		Department:            s.Department,
		PrimaryValueInterests: interests,
		InfluenceLevel:        s.InfluenceLevel,
		CreatedAt:             s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             s.UpdatedAt.Format(time.RFC3339),
	}
}

type deliverableResponse struct {
	ID                 string  `json:"id"`
	ProjectID          string  `json:"project_id"`
	Name               string  `json:"name"`
	Description        *string `json:"description"`
	ExpectedCompletion string  `json:"expected_completion"`
	ActualCompletion   *string `json:"actual_completion"`
	Status             string  `json:"status"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

func toDeliverableResponse(d *model.Deliverable) deliverableResponse {
	return deliverableResponse{
		ID:                 d.ID,
		ProjectID:          d.ProjectID,
		Name:               d.Name,
		Description:        d.Description,
		ExpectedCompletion: d.ExpectedCompletion.Format(dateLayout),
		ActualCompletion:   formatDate(d.ActualCompletion),
		Status:             string(d.Status),
		CreatedAt:          d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          d.UpdatedAt.Format(time.RFC3339),
	}
}

type userResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	FullName    *string `json:"full_name"`
	IsActive    bool    `json:"is_active"`
	IsSuperuser bool    `json:"is_superuser"`
	CreatedAt   string  `json:"created_at"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		FullName:    u.FullName,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}
