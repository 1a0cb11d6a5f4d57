package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"valuepm/internal/model"
)

type StakeholderRepository struct {
	db *pgxpool.Pool
}

func NewStakeholderRepository(db *pgxpool.Pool) *StakeholderRepository {
	return &StakeholderRepository{db: db}
}

const stakeholderColumns = `id, name, email, role, department, primary_value_interests, influence_level, created_at, updated_at`

func scanStakeholder(row pgx.Row) (*model.Stakeholder, error) {
	var s model.Stakeholder
	var interests []byte
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Email,
		&s.Role,
		&s.Department,
		&interests,
		&s.InfluenceLevel,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(interests) > 0 {
		if err := json.Unmarshal(interests, &s.PrimaryValueInterests); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

func marshalInterests(interests []model.ValueCategory) ([]byte, error) {
	if interests == nil {
		interests = []model.ValueCategory{}
	}
	return json.Marshal(interests)
}

func (r *StakeholderRepository) Create(ctx context.Context, s *model.Stakeholder) error {
	defer observe("create", "stakeholders", time.Now())
	interests, err := marshalInterests(s.PrimaryValueInterests)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO stakeholders (id, name, email, role, department, primary_value_interests, influence_level, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	_, err = r.db.Exec(ctx, query,
		s.ID, s.Name, s.Email, s.Role, s.Department, interests, s.InfluenceLevel, s.CreatedAt, s.UpdatedAt)
	return err
}

func (r *StakeholderRepository) FindByID(ctx context.Context, id string) (*model.Stakeholder, error) {
	defer observe("find", "stakeholders", time.Now())
	query := `SELECT ` + stakeholderColumns + ` FROM stakeholders WHERE id = $1`
	return scanStakeholder(r.db.QueryRow(ctx, query, id))
}

func (r *StakeholderRepository) List(ctx context.Context, skip, limit int) ([]model.Stakeholder, error) {
	defer observe("list", "stakeholders", time.Now())
	query := `SELECT ` + stakeholderColumns + ` FROM stakeholders ORDER BY name OFFSET $1 LIMIT $2`
	rows, err := r.db.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectStakeholders(rows)
}

// ListByProject returns stakeholders assigned to the project.
func (r *StakeholderRepository) ListByProject(ctx context.Context, projectID string) ([]model.Stakeholder, error) {
	defer observe("list", "stakeholders", time.Now())
	query := `
        SELECT s.id, s.name, s.email, s.role, s.department, s.primary_value_interests, s.influence_level, s.created_at, s.updated_at
        FROM stakeholders s
        JOIN project_stakeholders ps ON s.id = ps.stakeholder_id
        WHERE ps.project_id = $1
        ORDER BY s.name
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectStakeholders(rows)
}

func collectStakeholders(rows pgx.Rows) ([]model.Stakeholder, error) {
	stakeholders := []model.Stakeholder{}
	for rows.Next() {
		s, err := scanStakeholder(rows)
		if err != nil {
			return nil, err
		}
		stakeholders = append(stakeholders, *s)
	}
	return stakeholders, rows.Err()
}

func (r *StakeholderRepository) Update(ctx context.Context, s *model.Stakeholder) error {
	defer observe("update", "stakeholders", time.Now())
	interests, err := marshalInterests(s.PrimaryValueInterests)
	if err != nil {
		return err
	}
	query := `
        UPDATE stakeholders
        SET name = $1, email = $2, role = $3, department = $4, primary_value_interests = $5, influence_level = $6, updated_at = NOW()
        WHERE id = $7
    `
	_, err = r.db.Exec(ctx, query,
		s.Name, s.Email, s.Role, s.Department, interests, s.InfluenceLevel, s.ID)
	return err
}

func (r *StakeholderRepository) Delete(ctx context.Context, id string) (bool, error) {
	defer observe("delete", "stakeholders", time.Now())
	tag, err := r.db.Exec(ctx, `DELETE FROM stakeholders WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// AssignToProject links a stakeholder to a project; assigning twice is a no-op.
func (r *StakeholderRepository) AssignToProject(ctx context.Context, stakeholderID, projectID string) error {
	defer observe("assign", "project_stakeholders", time.Now())
	query := `
        INSERT INTO project_stakeholders (project_id, stakeholder_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING
    `
	_, err := r.db.Exec(ctx, query, projectID, stakeholderID)
	return err
}

func (r *StakeholderRepository) RemoveFromProject(ctx context.Context, stakeholderID, projectID string) error {
	defer observe("remove", "project_stakeholders", time.Now())
	query := `DELETE FROM project_stakeholders WHERE project_id = $1 AND stakeholder_id = $2`
	_, err := r.db.Exec(ctx, query, projectID, stakeholderID)
	return err
}
