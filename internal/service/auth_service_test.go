package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valuepm/internal/model"
	"valuepm/internal/util"
)

type fakeUserStore struct {
	byEmail    map[string]*model.User
	byUsername map[string]*model.User
	lastLogin  map[string]time.Time
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byEmail:    make(map[string]*model.User),
		byUsername: make(map[string]*model.User),
		lastLogin:  make(map[string]time.Time),
	}
}

func (f *fakeUserStore) Create(_ context.Context, u *model.User) error {
	f.byEmail[u.Email] = u
	f.byUsername[u.Username] = u
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*model.User, error) {
	for _, u := range f.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserStore) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	f.lastLogin[id] = at
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, "test-secret")

	u, err := svc.Register(context.Background(), RegisterInput{
		Email:    "pm@example.com",
		Username: "pm",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "s3cret", u.HashedPassword)

	token, err := svc.Login(context.Background(), "pm", "s3cret")
	require.NoError(t, err)

	userID, err := util.ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Contains(t, store.lastLogin, u.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, "test-secret")

	_, err := svc.Register(context.Background(), RegisterInput{Email: "pm@example.com", Username: "pm", Password: "x"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Email: "pm@example.com", Username: "other", Password: "x"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, "test-secret")

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@example.com", Username: "pm", Password: "x"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Email: "b@example.com", Username: "pm", Password: "x"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin_WrongPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, "test-secret")

	_, err := svc.Register(context.Background(), RegisterInput{Email: "pm@example.com", Username: "pm", Password: "right"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "pm", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), "test-secret")

	_, err := svc.Login(context.Background(), "ghost", "x")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, "test-secret")

	u, err := svc.Register(context.Background(), RegisterInput{Email: "pm@example.com", Username: "pm", Password: "x"})
	require.NoError(t, err)
	u.IsActive = false

	_, err = svc.Login(context.Background(), "pm", "x")
	assert.ErrorIs(t, err, ErrUserInactive)
}
