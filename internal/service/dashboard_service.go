package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"valuepm/internal/model"
	"valuepm/internal/value"
)

const recentMeasurementWindow = 5

// ProjectReader is the slice of ProjectRepository the dashboard needs.
type ProjectReader interface {
	FindByID(ctx context.Context, id string) (*model.Project, error)
	ListAll(ctx context.Context) ([]model.Project, error)
}

// MetricReader is the slice of MetricRepository the dashboard needs.
type MetricReader interface {
	ListByProject(ctx context.Context, projectID string, activeOnly bool) ([]model.Metric, error)
	ListAllActive(ctx context.Context) ([]model.Metric, error)
}

// MeasurementReader is the slice of MeasurementRepository the dashboard needs.
type MeasurementReader interface {
	LatestPerMetric(ctx context.Context, projectID string) (map[string]model.Measurement, error)
	ListByProject(ctx context.Context, projectID string, from, to *time.Time, limit int) ([]model.MeasurementWithMetric, error)
}

// DeliverableReader is the slice of DeliverableRepository the dashboard needs.
type DeliverableReader interface {
	ListByProject(ctx context.Context, projectID string) ([]model.Deliverable, error)
}

// DashboardStore caches rendered dashboards; satisfied by *cache.DashboardCache.
type DashboardStore interface {
	Get(ctx context.Context, projectID string, dest any) bool
	Set(ctx context.Context, projectID string, dashboard any)
}

type ProjectInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	DurationDays int    `json:"duration_days"`
}

type MetricSummary struct {
	Name            string   `json:"name"`
	Current         *float64 `json:"current"`
	Target          float64  `json:"target"`
	Baseline        float64  `json:"baseline"`
	ProgressPercent float64  `json:"progress_percent"`
}

type RecentMeasurement struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
	Date   string  `json:"date"`
	Notes  *string `json:"notes"`
}

type Dashboard struct {
	ProjectInfo        ProjectInfo              `json:"project_info"`
	MetricsSummary     map[string]MetricSummary `json:"metrics_summary"`
	RecentMeasurements []RecentMeasurement      `json:"recent_measurements"`
	ROISummary         map[string]float64       `json:"roi_summary"`
	DeliverablesStatus map[string]int           `json:"deliverables_status"`
}

type ProjectSummary struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Status         string  `json:"status"`
	EstimatedValue float64 `json:"estimated_value"`
	CurrentROI     float64 `json:"current_roi"`
}

type PortfolioOverview struct {
	TotalProjects       int              `json:"total_projects"`
	ByType              map[string]int   `json:"by_type"`
	ByStatus            map[string]int   `json:"by_status"`
	TotalEstimatedValue float64          `json:"total_estimated_value"`
	Projects            []ProjectSummary `json:"projects"`
}

// DashboardService assembles the project dashboard and portfolio overview
// from persisted data, delegating all arithmetic to the value package.
type DashboardService struct {
	projects     ProjectReader
	metrics      MetricReader
	measurements MeasurementReader
	deliverables DeliverableReader
	cache        DashboardStore
	logger       *zap.Logger
}

func NewDashboardService(
	projects ProjectReader,
	metrics MetricReader,
	measurements MeasurementReader,
	deliverables DeliverableReader,
	cache DashboardStore,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		projects:     projects,
		metrics:      metrics,
		measurements: measurements,
		deliverables: deliverables,
		cache:        cache,
		logger:       logger,
	}
}

// GetDashboard builds the dashboard for one project. Current values are
// always derived from the latest measurement per metric, never from the
// denormalized current_value column.
func (s *DashboardService) GetDashboard(ctx context.Context, projectID string) (*Dashboard, error) {
	if s.cache != nil {
		var cached Dashboard
		if s.cache.Get(ctx, projectID, &cached) {
			return &cached, nil
		}
	}

	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	activeMetrics, err := s.metrics.ListByProject(ctx, projectID, true)
	if err != nil {
		return nil, err
	}

	latest, err := s.measurements.LatestPerMetric(ctx, projectID)
	if err != nil {
		return nil, err
	}

	metricsSummary := make(map[string]MetricSummary, len(activeMetrics))
	roiSummary := make(map[string]float64)
	for _, m := range activeMetrics {
		var current *float64
		if latestMeasurement, ok := latest[m.ID]; ok {
			v := latestMeasurement.Value
			current = &v
		}

		metricsSummary[m.Name] = MetricSummary{
			Name:            m.Name,
			Current:         current,
			Target:          m.TargetValue,
			Baseline:        m.BaselineValue,
			ProgressPercent: value.ProgressPercent(m.BaselineValue, m.TargetValue, current),
		}

		if contribution, ok := value.ROIContribution(m.MetricType, m.BaselineValue, current); ok {
			roiSummary[m.Name] = contribution
		}
	}

	raw, err := s.measurements.ListByProject(ctx, projectID, nil, nil, recentMeasurementWindow)
	if err != nil {
		return nil, err
	}
	recent := make([]RecentMeasurement, 0, recentMeasurementWindow)
	for _, m := range value.RecentMeasurements(raw, recentMeasurementWindow) {
		recent = append(recent, RecentMeasurement{
			Metric: m.MetricName,
			Value:  m.Value,
			Date:   m.MeasuredAt.Format("2006-01-02"),
			Notes:  m.Notes,
		})
	}

	deliverables, err := s.deliverables.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		ProjectInfo: ProjectInfo{
			Name:         project.Name,
			Type:         string(project.ProjectType),
			Status:       string(project.Status),
			DurationDays: durationDays(project.StartDate),
		},
		MetricsSummary:     metricsSummary,
		RecentMeasurements: recent,
		ROISummary:         roiSummary,
		DeliverablesStatus: value.DeliverableStatusCounts(deliverables),
	}

	if s.cache != nil {
		s.cache.Set(ctx, projectID, dashboard)
	}
	return dashboard, nil
}

// GetPortfolioOverview aggregates all projects. Per-project ROI sums the
// contributions of active metrics using their cached current values; the
// cache is what a portfolio-wide sweep can afford to read.
func (s *DashboardService) GetPortfolioOverview(ctx context.Context) (*PortfolioOverview, error) {
	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	allMetrics, err := s.metrics.ListAllActive(ctx)
	if err != nil {
		return nil, err
	}

	readingsByProject := make(map[string][]value.MetricReading)
	for _, m := range allMetrics {
		readingsByProject[m.ProjectID] = append(readingsByProject[m.ProjectID], value.MetricReading{
			MetricType: m.MetricType,
			Baseline:   m.BaselineValue,
			Current:    m.CurrentValue,
		})
	}

	overview := &PortfolioOverview{
		TotalProjects: len(projects),
		ByType:        make(map[string]int),
		ByStatus:      make(map[string]int),
		Projects:      make([]ProjectSummary, 0, len(projects)),
	}

	for _, p := range projects {
		overview.ByType[string(p.ProjectType)]++
		overview.ByStatus[string(p.Status)]++
		overview.TotalEstimatedValue += p.EstimatedTotalValue

		overview.Projects = append(overview.Projects, ProjectSummary{
			ID:             p.ID,
			Name:           p.Name,
			Type:           string(p.ProjectType),
			Status:         string(p.Status),
			EstimatedValue: p.EstimatedTotalValue,
			CurrentROI:     value.PortfolioROI(readingsByProject[p.ID]),
		})
	}

	return overview, nil
}

func durationDays(start *time.Time) int {
	if start == nil {
		return 0
	}
	return int(time.Since(*start).Hours() / 24)
}
