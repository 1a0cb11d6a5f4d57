package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"valuepm/internal/model"
	"valuepm/internal/util"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserInactive       = errors.New("user is inactive")
)

// UserStore is the slice of UserRepository the auth service needs.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

type AuthService struct {
	users     UserStore
	jwtSecret string
}

func NewAuthService(users UserStore, jwtSecret string) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
	}
}

type RegisterInput struct {
	Email    string
	Username string
	FullName *string
	Password string
}

// Register creates a new user.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	existing, err = s.users.FindByUsername(ctx, in.Username)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := util.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		ID:             uuid.NewString(),
		Email:          in.Email,
		Username:       in.Username,
		FullName:       in.FullName,
		HashedPassword: hash,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Login checks user credentials and returns a JWT.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if !util.CheckPassword(password, u.HashedPassword) {
		return "", ErrInvalidCredentials
	}

	if !u.IsActive {
		return "", ErrUserInactive
	}

	if err := s.users.UpdateLastLogin(ctx, u.ID, time.Now().UTC()); err != nil {
		return "", err
	}

	return util.GenerateJWT(u.ID, s.jwtSecret)
}

// GetUser returns the user behind a token's subject.
func (s *AuthService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.users.FindByID(ctx, id)
}
