package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"valuepm/internal/model"
	"valuepm/internal/mq"
)

type fakeMeasurementStore struct {
	created []model.Measurement
	byID    map[string]model.MeasurementWithMetric
	deleted []string
}

func (f *fakeMeasurementStore) Create(_ context.Context, m *model.Measurement) error {
	f.created = append(f.created, *m)
	return nil
}

func (f *fakeMeasurementStore) FindByID(_ context.Context, id string) (*model.MeasurementWithMetric, error) {
	m, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &m, nil
}

func (f *fakeMeasurementStore) ListByMetric(_ context.Context, _ string, _, _ *time.Time, _ int) ([]model.Measurement, error) {
	return nil, nil
}

func (f *fakeMeasurementStore) ListByProject(_ context.Context, _ string, _, _ *time.Time, _ int) ([]model.MeasurementWithMetric, error) {
	return nil, nil
}

func (f *fakeMeasurementStore) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	f.deleted = append(f.deleted, id)
	return true, nil
}

type fakeMetricStore struct {
	metrics       map[string]model.Metric
	currentValues map[string]float64
	refreshed     []string
}

func (f *fakeMetricStore) FindByID(_ context.Context, id string) (*model.Metric, error) {
	m, ok := f.metrics[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &m, nil
}

func (f *fakeMetricStore) UpdateCurrentValue(_ context.Context, metricID string, value float64) error {
	if f.currentValues == nil {
		f.currentValues = make(map[string]float64)
	}
	f.currentValues[metricID] = value
	return nil
}

func (f *fakeMetricStore) RefreshCurrentValue(_ context.Context, metricID string) error {
	f.refreshed = append(f.refreshed, metricID)
	return nil
}

type fakePublisher struct {
	published []struct {
		RoutingKey string
		Payload    any
	}
}

func (f *fakePublisher) Publish(routingKey string, payload any) error {
	f.published = append(f.published, struct {
		RoutingKey string
		Payload    any
	}{routingKey, payload})
	return nil
}

type fakeInvalidator struct {
	invalidated []string
}

func (f *fakeInvalidator) Invalidate(_ context.Context, projectID string) {
	f.invalidated = append(f.invalidated, projectID)
}

func TestMeasurementCreate(t *testing.T) {
	measurements := &fakeMeasurementStore{byID: map[string]model.MeasurementWithMetric{}}
	metricStore := &fakeMetricStore{metrics: map[string]model.Metric{
		"m1": {ID: "m1", ProjectID: "p1", MetricType: model.MetricTypeCurrency},
	}}
	pub := &fakePublisher{}
	inv := &fakeInvalidator{}
	svc := NewMeasurementService(measurements, metricStore, pub, inv, zap.NewNop())

	m, err := svc.Create(context.Background(), CreateMeasurementInput{
		MetricID: "m1",
		Value:    9000,
	}, "user-1")
	require.NoError(t, err)

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "p1", m.ProjectID)
	assert.Equal(t, 1.0, m.ConfidenceLevel)
	require.NotNil(t, m.CreatedBy)
	assert.Equal(t, "user-1", *m.CreatedBy)

	require.Len(t, measurements.created, 1)
	assert.Equal(t, 9000.0, metricStore.currentValues["m1"])

	require.Len(t, pub.published, 1)
	assert.Equal(t, mq.RoutingKeyMeasurementRecorded, pub.published[0].RoutingKey)
	payload := pub.published[0].Payload.(mq.MeasurementRecordedPayload)
	assert.Equal(t, m.ID, payload.MeasurementID)
	assert.Equal(t, "m1", payload.MetricID)

	assert.Equal(t, []string{"p1"}, inv.invalidated)
}

func TestMeasurementCreate_UnknownMetric(t *testing.T) {
	svc := NewMeasurementService(
		&fakeMeasurementStore{},
		&fakeMetricStore{metrics: map[string]model.Metric{}},
		&fakePublisher{},
		&fakeInvalidator{},
		zap.NewNop(),
	)

	_, err := svc.Create(context.Background(), CreateMeasurementInput{MetricID: "nope", Value: 1}, "user-1")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestMeasurementCreate_ExplicitFields(t *testing.T) {
	measurements := &fakeMeasurementStore{}
	metricStore := &fakeMetricStore{metrics: map[string]model.Metric{
		"m1": {ID: "m1", ProjectID: "p1", MetricType: model.MetricTypeScore},
	}}
	svc := NewMeasurementService(measurements, metricStore, &fakePublisher{}, &fakeInvalidator{}, zap.NewNop())

	at := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
	conf := 0.8
	notes := "backfilled from quarterly report"
	m, err := svc.Create(context.Background(), CreateMeasurementInput{
		MetricID:        "m1",
		Value:           72,
		MeasuredAt:      &at,
		Notes:           &notes,
		ConfidenceLevel: &conf,
	}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, at, m.MeasuredAt)
	assert.Equal(t, 0.8, m.ConfidenceLevel)
	require.NotNil(t, m.Notes)
	assert.Equal(t, notes, *m.Notes)
}

func TestMeasurementDelete_RefreshesCurrentValue(t *testing.T) {
	measurements := &fakeMeasurementStore{byID: map[string]model.MeasurementWithMetric{
		"ms1": {Measurement: model.Measurement{ID: "ms1", MetricID: "m1", ProjectID: "p1"}},
	}}
	metricStore := &fakeMetricStore{metrics: map[string]model.Metric{
		"m1": {ID: "m1", ProjectID: "p1"},
	}}
	inv := &fakeInvalidator{}
	svc := NewMeasurementService(measurements, metricStore, &fakePublisher{}, inv, zap.NewNop())

	deleted, err := svc.Delete(context.Background(), "ms1", "user-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	assert.Equal(t, []string{"m1"}, metricStore.refreshed)
	assert.Equal(t, []string{"p1"}, inv.invalidated)
}

func TestMeasurementDelete_NotFound(t *testing.T) {
	svc := NewMeasurementService(
		&fakeMeasurementStore{byID: map[string]model.MeasurementWithMetric{}},
		&fakeMetricStore{},
		&fakePublisher{},
		&fakeInvalidator{},
		zap.NewNop(),
	)

	deleted, err := svc.Delete(context.Background(), "missing", "user-1")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.False(t, deleted)
}
