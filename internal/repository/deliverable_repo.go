package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"valuepm/internal/model"
)

type DeliverableRepository struct {
	db *pgxpool.Pool
}

func NewDeliverableRepository(db *pgxpool.Pool) *DeliverableRepository {
	return &DeliverableRepository{db: db}
}

const deliverableColumns = `id, project_id, name, description, expected_completion, actual_completion, status, created_at, updated_at`

func scanDeliverable(row pgx.Row) (*model.Deliverable, error) {
	var d model.Deliverable
	err := row.Scan(
		&d.ID,
		&d.ProjectID,
		&d.Name,
		&d.Description,
		&d.ExpectedCompletion,
		&d.ActualCompletion,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DeliverableRepository) Create(ctx context.Context, d *model.Deliverable) error {
	defer observe("create", "deliverables", time.Now())
	query := `
        INSERT INTO deliverables (id, project_id, name, description, expected_completion, actual_completion, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	_, err := r.db.Exec(ctx, query,
		d.ID, d.ProjectID, d.Name, d.Description, d.ExpectedCompletion,
		d.ActualCompletion, d.Status, d.CreatedAt, d.UpdatedAt)
	return err
}

func (r *DeliverableRepository) FindByID(ctx context.Context, id string) (*model.Deliverable, error) {
	defer observe("find", "deliverables", time.Now())
	query := `SELECT ` + deliverableColumns + ` FROM deliverables WHERE id = $1`
	return scanDeliverable(r.db.QueryRow(ctx, query, id))
}

func (r *DeliverableRepository) ListByProject(ctx context.Context, projectID string) ([]model.Deliverable, error) {
	defer observe("list", "deliverables", time.Now())
	query := `SELECT ` + deliverableColumns + ` FROM deliverables WHERE project_id = $1 ORDER BY expected_completion`
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliverables := []model.Deliverable{}
	for rows.Next() {
		d, err := scanDeliverable(rows)
		if err != nil {
			return nil, err
		}
		deliverables = append(deliverables, *d)
	}
	return deliverables, rows.Err()
}

func (r *DeliverableRepository) Update(ctx context.Context, d *model.Deliverable) error {
	defer observe("update", "deliverables", time.Now())
	query := `
        UPDATE deliverables
        SET name = $1, description = $2, expected_completion = $3, actual_completion = $4, status = $5, updated_at = NOW()
        WHERE id = $6
    `
	_, err := r.db.Exec(ctx, query,
		d.Name, d.Description, d.ExpectedCompletion, d.ActualCompletion, d.Status, d.ID)
	return err
}

func (r *DeliverableRepository) Delete(ctx context.Context, id string) (bool, error) {
	defer observe("delete", "deliverables", time.Now())
	tag, err := r.db.Exec(ctx, `DELETE FROM deliverables WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
