package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"valuepm/internal/model"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	defer observe("create", "users", time.Now())
	query := `
        INSERT INTO users (id, email, username, full_name, hashed_password, is_active, is_superuser, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err := r.db.Exec(ctx, query,
		u.ID, u.Email, u.Username, u.FullName, u.HashedPassword, u.IsActive, u.IsSuperuser, u.CreatedAt)
	return err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findBy(ctx, "email = $1", email)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findBy(ctx, "username = $1", username)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findBy(ctx, "id = $1", id)
}

func (r *UserRepository) findBy(ctx context.Context, where string, arg any) (*model.User, error) {
	defer observe("find", "users", time.Now())
	query := `
        SELECT id, email, username, full_name, hashed_password, is_active, is_superuser, created_at, last_login
        FROM users
        WHERE ` + where
	var u model.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.FullName,
		&u.HashedPassword,
		&u.IsActive,
		&u.IsSuperuser,
		&u.CreatedAt,
		&u.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateLastLogin stamps a successful login.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	defer observe("update", "users", time.Now())
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login = $1 WHERE id = $2`, at, id)
	return err
}
