package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astroconsult/internal/domain"
	jwtsvc "astroconsult/internal/pkg/jwt"
	"astroconsult/internal/repository"
)

type fakeUsers struct {
	byEmail map[string]*domain.User
	nextID  int64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: make(map[string]*domain.User), nextID: 1}
}

func (f *fakeUsers) Create(_ context.Context, u *domain.User) error {
	u.ID = f.nextID
	f.nextID++
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func newAuthService() (*Service, *fakeUsers) {
	users := newFakeUsers()
	return NewService(users, jwtsvc.New("test-secret", time.Hour)), users
}

func TestRegister_IssuesToken(t *testing.T) {
	svc, users := newAuthService()

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Asha", Email: "Asha@Example.com", Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "asha@example.com", resp.User.Email)
	assert.Equal(t, string(domain.RoleClient), resp.User.Role)

	// password is stored hashed
	stored := users.byEmail["asha@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "supersecret", stored.PasswordHash)
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Register(context.Background(), RegisterRequest{Name: "A", Email: "a@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{Name: "B", Email: "a@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService()
	_, err := svc.Register(context.Background(), RegisterRequest{Name: "A", Email: "a@example.com", Password: "supersecret"})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "a@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "a@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
