package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"valuepm/internal/model"
)

type AuditLogRepository struct {
	db *pgxpool.Pool
}

func NewAuditLogRepository(db *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Insert appends an audit entry. ON CONFLICT keeps redelivered events from
// producing duplicate rows.
func (r *AuditLogRepository) Insert(ctx context.Context, a *model.AuditLog) error {
	defer observe("create", "audit_logs", time.Now())
	query := `
        INSERT INTO audit_logs (id, user_id, action, resource_type, resource_id, changes, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (id) DO NOTHING
    `
	_, err := r.db.Exec(ctx, query,
		a.ID, a.UserID, a.Action, a.ResourceType, a.ResourceID, a.Changes, a.CreatedAt)
	return err
}

// ListByResource returns the audit trail for one resource, newest first.
func (r *AuditLogRepository) ListByResource(ctx context.Context, resourceType, resourceID string, limit int) ([]model.AuditLog, error) {
	defer observe("list", "audit_logs", time.Now())
	query := `
        SELECT id, user_id, action, resource_type, resource_id, changes, created_at
        FROM audit_logs
        WHERE resource_type = $1 AND resource_id = $2
        ORDER BY created_at DESC
        LIMIT $3
    `
	rows, err := r.db.Query(ctx, query, resourceType, resourceID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []model.AuditLog{}
	for rows.Next() {
		var a model.AuditLog
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.ResourceType, &a.ResourceID, &a.Changes, &a.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, a)
	}
	return logs, rows.Err()
}
