package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"valuepm/internal/model"
	"valuepm/internal/mq"
	"valuepm/pkg/metrics"
)

// MeasurementStore is the slice of MeasurementRepository this service needs.
type MeasurementStore interface {
	Create(ctx context.Context, m *model.Measurement) error
	FindByID(ctx context.Context, id string) (*model.MeasurementWithMetric, error)
	ListByMetric(ctx context.Context, metricID string, from, to *time.Time, limit int) ([]model.Measurement, error)
	ListByProject(ctx context.Context, projectID string, from, to *time.Time, limit int) ([]model.MeasurementWithMetric, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// MetricStore is the slice of MetricRepository this service needs.
type MetricStore interface {
	FindByID(ctx context.Context, id string) (*model.Metric, error)
	UpdateCurrentValue(ctx context.Context, metricID string, value float64) error
	RefreshCurrentValue(ctx context.Context, metricID string) error
}

// DashboardInvalidator drops a project's cached dashboard.
type DashboardInvalidator interface {
	Invalidate(ctx context.Context, projectID string)
}

type MeasurementService struct {
	measurements MeasurementStore
	metrics      MetricStore
	producer     EventPublisher
	cache        DashboardInvalidator
	logger       *zap.Logger
}

func NewMeasurementService(
	measurements MeasurementStore,
	metricStore MetricStore,
	producer EventPublisher,
	cache DashboardInvalidator,
	logger *zap.Logger,
) *MeasurementService {
	return &MeasurementService{
		measurements: measurements,
		metrics:      metricStore,
		producer:     producer,
		cache:        cache,
		logger:       logger,
	}
}

type CreateMeasurementInput struct {
	MetricID        string
	Value           float64
	MeasuredAt      *time.Time
	Notes           *string
	ConfidenceLevel *float64
}

// Create records a measurement, mirrors it onto the metric's current_value
// and publishes measurement.recorded for the worker.
func (s *MeasurementService) Create(ctx context.Context, in CreateMeasurementInput, userID string) (*model.Measurement, error) {
	metric, err := s.metrics.FindByID(ctx, in.MetricID)
	if err != nil {
		return nil, err
	}

	measuredAt := time.Now().UTC()
	if in.MeasuredAt != nil {
		measuredAt = *in.MeasuredAt
	}
	confidence := 1.0
	if in.ConfidenceLevel != nil {
		confidence = *in.ConfidenceLevel
	}

	m := &model.Measurement{
		ID:              uuid.NewString(),
		MetricID:        metric.ID,
		ProjectID:       metric.ProjectID,
		Value:           in.Value,
		MeasuredAt:      measuredAt,
		Notes:           in.Notes,
		ConfidenceLevel: confidence,
		CreatedBy:       &userID,
	}

	if err := s.measurements.Create(ctx, m); err != nil {
		return nil, err
	}

	if err := s.metrics.UpdateCurrentValue(ctx, metric.ID, m.Value); err != nil {
		return nil, err
	}

	payload := mq.MeasurementRecordedPayload{
		MeasurementID: m.ID,
		MetricID:      m.MetricID,
		ProjectID:     m.ProjectID,
		Value:         m.Value,
		MeasuredAt:    m.MeasuredAt,
	}
	if err := s.producer.Publish(mq.RoutingKeyMeasurementRecorded, payload); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, m.ProjectID)
	metrics.IncrementMeasurementsRecorded(string(metric.MetricType))

	s.logger.Info("Measurement recorded",
		zap.String("measurement_id", m.ID),
		zap.String("metric_id", m.MetricID),
		zap.Float64("value", m.Value),
	)

	return m, nil
}

func (s *MeasurementService) Get(ctx context.Context, id string) (*model.MeasurementWithMetric, error) {
	return s.measurements.FindByID(ctx, id)
}

func (s *MeasurementService) ListByMetric(ctx context.Context, metricID string, from, to *time.Time, limit int) ([]model.Measurement, error) {
	return s.measurements.ListByMetric(ctx, metricID, from, to, limit)
}

func (s *MeasurementService) ListByProject(ctx context.Context, projectID string, from, to *time.Time, limit int) ([]model.MeasurementWithMetric, error) {
	return s.measurements.ListByProject(ctx, projectID, from, to, limit)
}

// Delete removes the measurement and re-derives the metric's current_value
// so the cache never points at a deleted reading.
func (s *MeasurementService) Delete(ctx context.Context, id string, userID string) (bool, error) {
	m, err := s.measurements.FindByID(ctx, id)
	if err != nil {
		return false, err
	}

	deleted, err := s.measurements.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	if err := s.metrics.RefreshCurrentValue(ctx, m.MetricID); err != nil {
		return false, err
	}

	s.cache.Invalidate(ctx, m.ProjectID)
	publishAudit(s.producer, s.logger, &userID, "delete", "measurement", id, nil)
	return true, nil
}
