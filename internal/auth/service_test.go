package auth

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joonpark/post-board/internal/apperr"
	"github.com/joonpark/post-board/internal/models"
)

// fakeUserStore is an in-memory UserStore for service tests.
type fakeUserStore struct {
	byID    map[string]*models.User
	byEmail map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    map[string]*models.User{},
		byEmail: map[string]*models.User{},
	}
}

func (f *fakeUserStore) CreateUser(_ context.Context, name, email, hashedPw string) (*models.User, error) {
	if _, ok := f.byEmail[email]; ok {
		return nil, apperr.ErrEmailTaken
	}
	u := &models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  hashedPw,
		CreatedAt: time.Now(),
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, apperr.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, apperr.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) ListUsers(_ context.Context) ([]models.User, error) {
	var users []models.User
	for _, u := range f.byID {
		users = append(users, *u)
	}
	return users, nil
}

func newTestService() (*Service, *TokenService) {
	tokens := NewTokenService("test-secret")
	return NewService(newFakeUserStore(), tokens), tokens
}

func TestRegister(t *testing.T) {
	t.Parallel()

	svc, tokens := newTestService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, models.RegisterRequest{
		Name: "A", Email: "a@x.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", resp.User.Email)
	assert.NotEmpty(t, resp.User.ID)

	// The token must decode back to the new user.
	claims, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	// The serialized user must not carry the password hash.
	raw, err := json.Marshal(resp.User)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), resp.User.Password)
}

func TestRegister_NormalizesEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, models.RegisterRequest{
		Name: "A", Email: "  A@X.Com ", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", resp.User.Email)

	// Same address in another case is a conflict.
	_, err = svc.Register(ctx, models.RegisterRequest{
		Name: "B", Email: "a@X.COM", Password: "secret2",
	})
	assert.ErrorIs(t, err, apperr.ErrEmailTaken)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"missing name", models.RegisterRequest{Email: "a@x.com", Password: "secret1"}},
		{"missing email", models.RegisterRequest{Name: "A", Password: "secret1"}},
		{"missing password", models.RegisterRequest{Name: "A", Email: "a@x.com"}},
		{"blank name", models.RegisterRequest{Name: "   ", Email: "a@x.com", Password: "secret1"}},
		{"short password", models.RegisterRequest{Name: "A", Email: "a@x.com", Password: "12345"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	svc, tokens := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, models.RegisterRequest{
		Name: "A", Email: "a@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, models.LoginRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, resp.User.ID)

	claims, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)

	// Login is case-insensitive on email.
	_, err = svc.Login(ctx, models.LoginRequest{Email: "A@X.com", Password: "secret1"})
	assert.NoError(t, err)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{
		Name: "A", Email: "a@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	// Unknown email and wrong password must be indistinguishable.
	_, errUnknown := svc.Login(ctx, models.LoginRequest{Email: "nobody@x.com", Password: "secret1"})
	_, errWrongPw := svc.Login(ctx, models.LoginRequest{Email: "a@x.com", Password: "wrong"})

	assert.ErrorIs(t, errUnknown, apperr.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, apperr.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestLogin_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Login(ctx, models.LoginRequest{Email: "a@x.com"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Login(ctx, models.LoginRequest{Password: "secret1"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
