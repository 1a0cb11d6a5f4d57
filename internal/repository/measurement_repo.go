package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"valuepm/internal/model"
)

type MeasurementRepository struct {
	db *pgxpool.Pool
}

func NewMeasurementRepository(db *pgxpool.Pool) *MeasurementRepository {
	return &MeasurementRepository{db: db}
}

func (r *MeasurementRepository) Create(ctx context.Context, m *model.Measurement) error {
	defer observe("create", "measurements", time.Now())
	query := `
        INSERT INTO measurements (id, metric_id, project_id, value, measured_at, notes, confidence_level, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err := r.db.Exec(ctx, query,
		m.ID, m.MetricID, m.ProjectID, m.Value, m.MeasuredAt, m.Notes, m.ConfidenceLevel, m.CreatedBy)
	return err
}

func (r *MeasurementRepository) FindByID(ctx context.Context, id string) (*model.MeasurementWithMetric, error) {
	defer observe("find", "measurements", time.Now())
	query := `
        SELECT m.id, m.metric_id, m.project_id, m.value, m.measured_at, m.notes, m.confidence_level, m.created_by, v.name
        FROM measurements m
        JOIN value_metrics v ON m.metric_id = v.id
        WHERE m.id = $1
    `
	var mm model.MeasurementWithMetric
	err := r.db.QueryRow(ctx, query, id).Scan(
		&mm.ID,
		&mm.MetricID,
		&mm.ProjectID,
		&mm.Value,
		&mm.MeasuredAt,
		&mm.Notes,
		&mm.ConfidenceLevel,
		&mm.CreatedBy,
		&mm.MetricName,
	)
	if err != nil {
		return nil, err
	}
	return &mm, nil
}

// ListByMetric returns measurements for a metric, newest first, optionally
// bounded by an inclusive [from, to] window.
func (r *MeasurementRepository) ListByMetric(ctx context.Context, metricID string, from, to *time.Time, limit int) ([]model.Measurement, error) {
	defer observe("list", "measurements", time.Now())
	query := `
        SELECT id, metric_id, project_id, value, measured_at, notes, confidence_level, created_by
        FROM measurements
        WHERE metric_id = $1
          AND ($2::timestamptz IS NULL OR measured_at >= $2)
          AND ($3::timestamptz IS NULL OR measured_at <= $3)
        ORDER BY measured_at DESC
        LIMIT $4
    `
	rows, err := r.db.Query(ctx, query, metricID, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	measurements := []model.Measurement{}
	for rows.Next() {
		var m model.Measurement
		if err := rows.Scan(&m.ID, &m.MetricID, &m.ProjectID, &m.Value, &m.MeasuredAt, &m.Notes, &m.ConfidenceLevel, &m.CreatedBy); err != nil {
			return nil, err
		}
		measurements = append(measurements, m)
	}
	return measurements, rows.Err()
}

// ListByProject returns measurements across all of the project's metrics,
// newest first, with the metric name attached.
func (r *MeasurementRepository) ListByProject(ctx context.Context, projectID string, from, to *time.Time, limit int) ([]model.MeasurementWithMetric, error) {
	defer observe("list", "measurements", time.Now())
	query := `
        SELECT m.id, m.metric_id, m.project_id, m.value, m.measured_at, m.notes, m.confidence_level, m.created_by, v.name
        FROM measurements m
        JOIN value_metrics v ON m.metric_id = v.id
        WHERE m.project_id = $1
          AND ($2::timestamptz IS NULL OR m.measured_at >= $2)
          AND ($3::timestamptz IS NULL OR m.measured_at <= $3)
        ORDER BY m.measured_at DESC
        LIMIT $4
    `
	rows, err := r.db.Query(ctx, query, projectID, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectWithMetric(rows)
}

// LatestPerMetric returns the newest measurement for each of the project's
// metrics, keyed by metric ID.
func (r *MeasurementRepository) LatestPerMetric(ctx context.Context, projectID string) (map[string]model.Measurement, error) {
	defer observe("latest", "measurements", time.Now())
	query := `
        SELECT DISTINCT ON (metric_id)
            id, metric_id, project_id, value, measured_at, notes, confidence_level, created_by
        FROM measurements
        WHERE project_id = $1
        ORDER BY metric_id, measured_at DESC, id DESC
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	latest := make(map[string]model.Measurement)
	for rows.Next() {
		var m model.Measurement
		if err := rows.Scan(&m.ID, &m.MetricID, &m.ProjectID, &m.Value, &m.MeasuredAt, &m.Notes, &m.ConfidenceLevel, &m.CreatedBy); err != nil {
			return nil, err
		}
		latest[m.MetricID] = m
	}
	return latest, rows.Err()
}

func (r *MeasurementRepository) Delete(ctx context.Context, id string) (bool, error) {
	defer observe("delete", "measurements", time.Now())
	tag, err := r.db.Exec(ctx, `DELETE FROM measurements WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func collectWithMetric(rows pgx.Rows) ([]model.MeasurementWithMetric, error) {
	measurements := []model.MeasurementWithMetric{}
	for rows.Next() {
		var mm model.MeasurementWithMetric
		if err := rows.Scan(&mm.ID, &mm.MetricID, &mm.ProjectID, &mm.Value, &mm.MeasuredAt, &mm.Notes, &mm.ConfidenceLevel, &mm.CreatedBy, &mm.MetricName); err != nil {
			return nil, err
		}
		measurements = append(measurements, mm)
	}
	return measurements, rows.Err()
}
