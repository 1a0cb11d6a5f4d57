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
)

type fakeProjectReader struct {
	projects map[string]model.Project
}

func (f *fakeProjectReader) FindByID(_ context.Context, id string) (*model.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &p, nil
}

func (f *fakeProjectReader) ListAll(_ context.Context) ([]model.Project, error) {
	all := make([]model.Project, 0, len(f.projects))
	for _, p := range f.projects {
		all = append(all, p)
	}
	return all, nil
}

type fakeMetricReader struct {
	metrics []model.Metric
}

func (f *fakeMetricReader) ListByProject(_ context.Context, projectID string, activeOnly bool) ([]model.Metric, error) {
	var out []model.Metric
	for _, m := range f.metrics {
		if m.ProjectID != projectID {
			continue
		}
		if activeOnly && !m.IsActive {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMetricReader) ListAllActive(_ context.Context) ([]model.Metric, error) {
	var out []model.Metric
	for _, m := range f.metrics {
		if m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeMeasurementReader struct {
	measurements []model.MeasurementWithMetric
}

func (f *fakeMeasurementReader) LatestPerMetric(_ context.Context, projectID string) (map[string]model.Measurement, error) {
	latest := make(map[string]model.Measurement)
	for _, m := range f.measurements {
		if m.ProjectID != projectID {
			continue
		}
		if prev, ok := latest[m.MetricID]; !ok || m.MeasuredAt.After(prev.MeasuredAt) {
			latest[m.MetricID] = m.Measurement
		}
	}
	return latest, nil
}

func (f *fakeMeasurementReader) ListByProject(_ context.Context, projectID string, _, _ *time.Time, limit int) ([]model.MeasurementWithMetric, error) {
	var out []model.MeasurementWithMetric
	for _, m := range f.measurements {
		if m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeDeliverableReader struct {
	deliverables []model.Deliverable
}

func (f *fakeDeliverableReader) ListByProject(_ context.Context, projectID string) ([]model.Deliverable, error) {
	var out []model.Deliverable
	for _, d := range f.deliverables {
		if d.ProjectID == projectID {
			out = append(out, d)
		}
	}
	return out, nil
}

func newDashboardFixture() *DashboardService {
	start := time.Now().Add(-10 * 24 * time.Hour)
	projects := &fakeProjectReader{projects: map[string]model.Project{
		"p1": {
			ID:                  "p1",
			Name:                "Data Center Refresh",
			ProjectType:         model.ProjectTypeInfrastructure,
			Status:              model.ProjectStatusActive,
			StartDate:           &start,
			EstimatedTotalValue: 50000,
		},
	}}

	curCost := 9000.0
	metrics := &fakeMetricReader{metrics: []model.Metric{
		{
			ID: "m-avail", ProjectID: "p1", Name: "System Availability",
			MetricType: model.MetricTypePercentage,
			BaselineValue: 95.0, TargetValue: 99.9, IsActive: true,
		},
		{
			ID: "m-cost", ProjectID: "p1", Name: "Infrastructure Cost",
			MetricType: model.MetricTypeCurrency,
			BaselineValue: 10000, TargetValue: 8000, IsActive: true,
			CurrentValue: &curCost,
		},
		{
			ID: "m-old", ProjectID: "p1", Name: "Retired Metric",
			MetricType: model.MetricTypeCount,
			BaselineValue: 0, TargetValue: 10, IsActive: false,
		},
	}}

	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	var ms []model.MeasurementWithMetric
	for i := 0; i < 7; i++ {
		ms = append(ms, model.MeasurementWithMetric{
			Measurement: model.Measurement{
				ID:         "ms-" + string(rune('a'+i)),
				MetricID:   "m-cost",
				ProjectID:  "p1",
				Value:      9500 - float64(i)*100,
				MeasuredAt: base.AddDate(0, 0, i),
			},
			MetricName: "Infrastructure Cost",
		})
	}
	// latest availability reading
	availValue := 99.5
	ms = append(ms, model.MeasurementWithMetric{
		Measurement: model.Measurement{
			ID:         "ms-avail",
			MetricID:   "m-avail",
			ProjectID:  "p1",
			Value:      availValue,
			MeasuredAt: base.AddDate(0, 0, 10),
		},
		MetricName: "System Availability",
	})

	deliverables := &fakeDeliverableReader{deliverables: []model.Deliverable{
		{ID: "d1", ProjectID: "p1", Status: model.DeliverableStatusPlanned},
		{ID: "d2", ProjectID: "p1", Status: model.DeliverableStatusPlanned},
		{ID: "d3", ProjectID: "p1", Status: model.DeliverableStatusCompleted},
	}}

	return NewDashboardService(projects, metrics, measurementsReader(ms), deliverables, nil, zap.NewNop())
}

func measurementsReader(ms []model.MeasurementWithMetric) *fakeMeasurementReader {
	return &fakeMeasurementReader{measurements: ms}
}

func TestGetDashboard(t *testing.T) {
	svc := newDashboardFixture()

	dash, err := svc.GetDashboard(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "Data Center Refresh", dash.ProjectInfo.Name)
	assert.Equal(t, "infrastructure", dash.ProjectInfo.Type)
	assert.Equal(t, 10, dash.ProjectInfo.DurationDays)

	// inactive metric is excluded
	assert.Len(t, dash.MetricsSummary, 2)
	assert.NotContains(t, dash.MetricsSummary, "Retired Metric")

	avail := dash.MetricsSummary["System Availability"]
	require.NotNil(t, avail.Current)
	assert.Equal(t, 99.5, *avail.Current)
	assert.InDelta(t, 91.84, avail.ProgressPercent, 0.01)

	// cost overshot baseline downward: latest measurement is 8900
	cost := dash.MetricsSummary["Infrastructure Cost"]
	require.NotNil(t, cost.Current)
	assert.Equal(t, 8900.0, *cost.Current)

	// ROI: currency passes the raw value through, percentage the improvement
	assert.Equal(t, 8900.0, dash.ROISummary["Infrastructure Cost"])
	assert.InDelta(t, (99.5-95.0)/95.0, dash.ROISummary["System Availability"], 1e-9)

	assert.Len(t, dash.RecentMeasurements, 5)
	assert.Equal(t, map[string]int{"planned": 2, "completed": 1}, dash.DeliverablesStatus)
}

func TestGetDashboard_CurrentDerivedFromLatestMeasurement(t *testing.T) {
	svc := newDashboardFixture()

	dash, err := svc.GetDashboard(context.Background(), "p1")
	require.NoError(t, err)

	// The metric row carries a stale cached current_value of 9000; the
	// dashboard must reflect the latest measurement instead.
	cost := dash.MetricsSummary["Infrastructure Cost"]
	require.NotNil(t, cost.Current)
	assert.Equal(t, 8900.0, *cost.Current)
}

func TestGetDashboard_ProjectNotFound(t *testing.T) {
	svc := newDashboardFixture()

	_, err := svc.GetDashboard(context.Background(), "missing")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestGetDashboard_NoMeasurements(t *testing.T) {
	projects := &fakeProjectReader{projects: map[string]model.Project{
		"p1": {ID: "p1", Name: "Fresh", ProjectType: model.ProjectTypeSoftwareDevelopment, Status: model.ProjectStatusPlanning},
	}}
	metrics := &fakeMetricReader{metrics: []model.Metric{
		{ID: "m1", ProjectID: "p1", Name: "Adoption", MetricType: model.MetricTypePercentage, BaselineValue: 0, TargetValue: 80, IsActive: true},
	}}
	svc := NewDashboardService(projects, metrics, measurementsReader(nil), &fakeDeliverableReader{}, nil, zap.NewNop())

	dash, err := svc.GetDashboard(context.Background(), "p1")
	require.NoError(t, err)

	summary := dash.MetricsSummary["Adoption"]
	assert.Nil(t, summary.Current)
	assert.Equal(t, 0.0, summary.ProgressPercent)
	assert.Empty(t, dash.ROISummary)
	assert.Empty(t, dash.RecentMeasurements)
	assert.Empty(t, dash.DeliverablesStatus)
	assert.Equal(t, 0, dash.ProjectInfo.DurationDays)
}

func TestGetPortfolioOverview(t *testing.T) {
	cur1 := 9000.0
	cur2 := 75.0
	projects := &fakeProjectReader{projects: map[string]model.Project{
		"p1": {ID: "p1", Name: "Alpha", ProjectType: model.ProjectTypeInfrastructure, Status: model.ProjectStatusActive, EstimatedTotalValue: 50000},
		"p2": {ID: "p2", Name: "Beta", ProjectType: model.ProjectTypeInfrastructure, Status: model.ProjectStatusPlanning, EstimatedTotalValue: 20000},
	}}
	metrics := &fakeMetricReader{metrics: []model.Metric{
		{ID: "m1", ProjectID: "p1", MetricType: model.MetricTypeCurrency, BaselineValue: 10000, CurrentValue: &cur1, IsActive: true},
		{ID: "m2", ProjectID: "p1", MetricType: model.MetricTypePercentage, BaselineValue: 50, CurrentValue: &cur2, IsActive: true},
		{ID: "m3", ProjectID: "p2", MetricType: model.MetricTypeCurrency, BaselineValue: 0, CurrentValue: nil, IsActive: true},
	}}
	svc := NewDashboardService(projects, metrics, measurementsReader(nil), &fakeDeliverableReader{}, nil, zap.NewNop())

	overview, err := svc.GetPortfolioOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, overview.TotalProjects)
	assert.Equal(t, 2, overview.ByType["infrastructure"])
	assert.Equal(t, 1, overview.ByStatus["active"])
	assert.Equal(t, 1, overview.ByStatus["planning"])
	assert.Equal(t, 70000.0, overview.TotalEstimatedValue)

	byID := make(map[string]ProjectSummary)
	for _, p := range overview.Projects {
		byID[p.ID] = p
	}
	assert.InDelta(t, 9000.5, byID["p1"].CurrentROI, 1e-9)
	assert.Equal(t, 0.0, byID["p2"].CurrentROI)
}
