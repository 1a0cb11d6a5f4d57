package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"valuepm/internal/model"
)

type ProjectRepository struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, name, project_type, status, start_date, end_date, business_case, estimated_total_value, created_at, updated_at`

func scanProject(row pgx.Row) (*model.Project, error) {
	var p model.Project
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.ProjectType,
		&p.Status,
		&p.StartDate,
		&p.EndDate,
		&p.BusinessCase,
		&p.EstimatedTotalValue,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *model.Project) error {
	defer observe("create", "projects", time.Now())
	query := `
        INSERT INTO projects (id, name, project_type, status, start_date, end_date, business_case, estimated_total_value, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `
	_, err := r.db.Exec(ctx, query,
		p.ID, p.Name, p.ProjectType, p.Status, p.StartDate, p.EndDate,
		p.BusinessCase, p.EstimatedTotalValue, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	defer observe("find", "projects", time.Now())
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return scanProject(r.db.QueryRow(ctx, query, id))
}

func (r *ProjectRepository) List(ctx context.Context, skip, limit int) ([]model.Project, error) {
	defer observe("list", "projects", time.Now())
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC OFFSET $1 LIMIT $2`
	rows, err := r.db.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) ListAll(ctx context.Context) ([]model.Project, error) {
	defer observe("list_all", "projects", time.Now())
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, p *model.Project) error {
	defer observe("update", "projects", time.Now())
	query := `
        UPDATE projects
        SET name = $1, project_type = $2, status = $3, start_date = $4, end_date = $5,
            business_case = $6, estimated_total_value = $7, updated_at = NOW()
        WHERE id = $8
    `
	_, err := r.db.Exec(ctx, query,
		p.Name, p.ProjectType, p.Status, p.StartDate, p.EndDate,
		p.BusinessCase, p.EstimatedTotalValue, p.ID)
	return err
}

// Delete removes the project; metrics, measurements, deliverables and
// stakeholder links go with it via ON DELETE CASCADE.
func (r *ProjectRepository) Delete(ctx context.Context, id string) (bool, error) {
	defer observe("delete", "projects", time.Now())
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
