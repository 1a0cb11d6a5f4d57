package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"valuepm/internal/model"
)

type MetricRepository struct {
	db *pgxpool.Pool
}

func NewMetricRepository(db *pgxpool.Pool) *MetricRepository {
	return &MetricRepository{db: db}
}

const metricColumns = `id, project_id, name, description, category, metric_type, target_value, baseline_value, current_value, measurement_frequency, is_active, created_at, updated_at`

func scanMetric(row pgx.Row) (*model.Metric, error) {
	var m model.Metric
	err := row.Scan(
		&m.ID,
		&m.ProjectID,
		&m.Name,
		&m.Description,
		&m.Category,
		&m.MetricType,
		&m.TargetValue,
		&m.BaselineValue,
		&m.CurrentValue,
		&m.MeasurementFrequency,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MetricRepository) Create(ctx context.Context, m *model.Metric) error {
	defer observe("create", "value_metrics", time.Now())
	query := `
        INSERT INTO value_metrics (id, project_id, name, description, category, metric_type, target_value, baseline_value, current_value, measurement_frequency, is_active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    `
	_, err := r.db.Exec(ctx, query,
		m.ID, m.ProjectID, m.Name, m.Description, m.Category, m.MetricType,
		m.TargetValue, m.BaselineValue, m.CurrentValue, m.MeasurementFrequency,
		m.IsActive, m.CreatedAt, m.UpdatedAt)
	return err
}

func (r *MetricRepository) FindByID(ctx context.Context, id string) (*model.Metric, error) {
	defer observe("find", "value_metrics", time.Now())
	query := `SELECT ` + metricColumns + ` FROM value_metrics WHERE id = $1`
	return scanMetric(r.db.QueryRow(ctx, query, id))
}

func (r *MetricRepository) ListByProject(ctx context.Context, projectID string, activeOnly bool) ([]model.Metric, error) {
	defer observe("list", "value_metrics", time.Now())
	query := `SELECT ` + metricColumns + ` FROM value_metrics WHERE project_id = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMetrics(rows)
}

// ListAllActive returns every active metric across projects, for the
// portfolio overview.
func (r *MetricRepository) ListAllActive(ctx context.Context) ([]model.Metric, error) {
	defer observe("list_all", "value_metrics", time.Now())
	query := `SELECT ` + metricColumns + ` FROM value_metrics WHERE is_active ORDER BY project_id, created_at`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMetrics(rows)
}

func collectMetrics(rows pgx.Rows) ([]model.Metric, error) {
	metrics := []model.Metric{}
	for rows.Next() {
		m, err := scanMetric(rows)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, *m)
	}
	return metrics, rows.Err()
}

func (r *MetricRepository) Update(ctx context.Context, m *model.Metric) error {
	defer observe("update", "value_metrics", time.Now())
	query := `
        UPDATE value_metrics
        SET name = $1, description = $2, category = $3, metric_type = $4,
            target_value = $5, baseline_value = $6, measurement_frequency = $7,
            is_active = $8, updated_at = NOW()
        WHERE id = $9
    `
	_, err := r.db.Exec(ctx, query,
		m.Name, m.Description, m.Category, m.MetricType,
		m.TargetValue, m.BaselineValue, m.MeasurementFrequency, m.IsActive, m.ID)
	return err
}

// SoftDelete deactivates the metric instead of removing its history.
func (r *MetricRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	defer observe("soft_delete", "value_metrics", time.Now())
	tag, err := r.db.Exec(ctx, `UPDATE value_metrics SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateCurrentValue overwrites the cached current_value with a just-recorded
// measurement. Assumes measurements arrive in time order; the worker's
// refresh converges the cache when they do not.
func (r *MetricRepository) UpdateCurrentValue(ctx context.Context, metricID string, value float64) error {
	defer observe("update_current", "value_metrics", time.Now())
	_, err := r.db.Exec(ctx, `UPDATE value_metrics SET current_value = $1, updated_at = NOW() WHERE id = $2`, value, metricID)
	return err
}

// RefreshCurrentValue recomputes the cached current_value from the latest
// measurement by timestamp. Safe under out-of-order measurement inserts:
// the result depends on MAX(measured_at), not on insertion order.
func (r *MetricRepository) RefreshCurrentValue(ctx context.Context, metricID string) error {
	defer observe("refresh_current", "value_metrics", time.Now())
	query := `
        UPDATE value_metrics
        SET current_value = (
            SELECT value FROM measurements
            WHERE metric_id = $1
            ORDER BY measured_at DESC, id DESC
            LIMIT 1
        ), updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.Exec(ctx, query, metricID)
	return err
}
