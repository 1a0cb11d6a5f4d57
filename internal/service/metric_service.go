package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"valuepm/internal/model"
	"valuepm/internal/repository"
)

type MetricService struct {
	metrics  *repository.MetricRepository
	producer EventPublisher
	logger   *zap.Logger
}

func NewMetricService(metrics *repository.MetricRepository, producer EventPublisher, logger *zap.Logger) *MetricService {
	return &MetricService{
		metrics:  metrics,
		producer: producer,
		logger:   logger,
	}
}

type CreateMetricInput struct {
	ProjectID            string
	Name                 string
	Description          *string
	Category             model.ValueCategory
	MetricType           model.MetricType
	TargetValue          float64
	BaselineValue        float64
	MeasurementFrequency model.MeasurementFrequency
}

func (s *MetricService) Create(ctx context.Context, in CreateMetricInput, userID string) (*model.Metric, error) {
	now := time.Now().UTC()
	freq := in.MeasurementFrequency
	if freq == "" {
		freq = model.FrequencyMonthly
	}

	m := &model.Metric{
		ID:                   uuid.NewString(),
		ProjectID:            in.ProjectID,
		Name:                 in.Name,
		Description:          in.Description,
		Category:             in.Category,
		MetricType:           in.MetricType,
		TargetValue:          in.TargetValue,
		BaselineValue:        in.BaselineValue,
		MeasurementFrequency: freq,
		IsActive:             true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.metrics.Create(ctx, m); err != nil {
		return nil, err
	}

	publishAudit(s.producer, s.logger, &userID, "create", "metric", m.ID, nil)
	return m, nil
}

func (s *MetricService) Get(ctx context.Context, id string) (*model.Metric, error) {
	return s.metrics.FindByID(ctx, id)
}

func (s *MetricService) ListByProject(ctx context.Context, projectID string, activeOnly bool) ([]model.Metric, error) {
	return s.metrics.ListByProject(ctx, projectID, activeOnly)
}

type UpdateMetricInput struct {
	Name                 *string
	Description          *string
	Category             *model.ValueCategory
	MetricType           *model.MetricType
	TargetValue          *float64
	BaselineValue        *float64
	MeasurementFrequency *model.MeasurementFrequency
	IsActive             *bool
}

func (s *MetricService) Update(ctx context.Context, id string, in UpdateMetricInput, userID string) (*model.Metric, error) {
	m, err := s.metrics.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		m.Name = *in.Name
	}
	if in.Description != nil {
		m.Description = in.Description
	}
	if in.Category != nil {
		m.Category = *in.Category
	}
	if in.MetricType != nil {
		m.MetricType = *in.MetricType
	}
	if in.TargetValue != nil {
		m.TargetValue = *in.TargetValue
	}
	if in.BaselineValue != nil {
		m.BaselineValue = *in.BaselineValue
	}
	if in.MeasurementFrequency != nil {
		m.MeasurementFrequency = *in.MeasurementFrequency
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}

	if err := s.metrics.Update(ctx, m); err != nil {
		return nil, err
	}

	publishAudit(s.producer, s.logger, &userID, "update", "metric", m.ID, in)
	return m, nil
}

// Delete deactivates the metric; its measurement history is kept.
func (s *MetricService) Delete(ctx context.Context, id string, userID string) (bool, error) {
	deleted, err := s.metrics.SoftDelete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	publishAudit(s.producer, s.logger, &userID, "deactivate", "metric", id, nil)
	return true, nil
}
