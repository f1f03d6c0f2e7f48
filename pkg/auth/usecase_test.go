package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkraev/authd/pkg/auth"
	"github.com/mkraev/authd/pkg/repository/memory"
	"github.com/mkraev/authd/pkg/security/password"
	"github.com/mkraev/authd/pkg/security/token"
	"github.com/mkraev/authd/pkg/user"
)

type env struct {
	svc    auth.UseCase
	repo   *memory.UserRepository
	tokens *token.Manager
}

func newEnv(t *testing.T) *env {
	t.Helper()
	repo := memory.NewUserRepository()
	tokens := token.NewManager("test-secret", "authd-test", 15*time.Minute, time.Hour)
	svc := auth.NewService(repo, password.NewHasher(bcrypt.MinCost), tokens, memory.NewRefreshStore())
	return &env{svc: svc, repo: repo, tokens: tokens}
}

func TestRegister(t *testing.T) {
	e := newEnv(t)

	u, err := e.svc.Register(context.Background(), "A@X.com", "secret123", "A")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "a@x.com", u.Email, "email is normalized")
	assert.True(t, u.IsActive)
	assert.False(t, u.IsSuperuser)
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "secret123", u.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.Register(context.Background(), "a@x.com", "secret123", "")
	require.NoError(t, err)

	// Same address with different casing still collides.
	_, err = e.svc.Register(context.Background(), "A@x.COM", "other-secret", "")
	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	e := newEnv(t)
	_, err := e.svc.Register(context.Background(), "a@x.com", "secret123", "A")
	require.NoError(t, err)

	pair, err := e.svc.Login(context.Background(), "a@x.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	// The two tokens are distinguishable by their type claim.
	_, err = e.tokens.Verify(pair.AccessToken, token.TypeAccess)
	assert.NoError(t, err)
	_, err = e.tokens.Verify(pair.RefreshToken, token.TypeRefresh)
	assert.NoError(t, err)
}

func TestLogin_WrongPassword(t *testing.T) {
	e := newEnv(t)
	_, err := e.svc.Register(context.Background(), "a@x.com", "secret123", "")
	require.NoError(t, err)

	_, err = e.svc.Login(context.Background(), "a@x.com", "wrong-password")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	e := newEnv(t)
	_, err := e.svc.Login(context.Background(), "nobody@x.com", "secret123")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	e := newEnv(t)
	u, err := e.svc.Register(context.Background(), "a@x.com", "secret123", "")
	require.NoError(t, err)

	inactive := false
	_, err = e.repo.Update(context.Background(), u.ID, user.Patch{IsActive: &inactive})
	require.NoError(t, err)

	_, err = e.svc.Login(context.Background(), "a@x.com", "secret123")
	assert.ErrorIs(t, err, auth.ErrInactiveUser)
}

func TestRefresh_RotatesToken(t *testing.T) {
	e := newEnv(t)
	_, err := e.svc.Register(context.Background(), "a@x.com", "secret123", "")
	require.NoError(t, err)
	pair, err := e.svc.Login(context.Background(), "a@x.com", "secret123")
	require.NoError(t, err)

	next, err := e.svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, next.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// The consumed token cannot be replayed.
	_, err = e.svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidRefresh)

	// The rotated one still works.
	_, err = e.svc.Refresh(context.Background(), next.RefreshToken)
	assert.NoError(t, err)
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	e := newEnv(t)
	_, err := e.svc.Register(context.Background(), "a@x.com", "secret123", "")
	require.NoError(t, err)
	pair, err := e.svc.Login(context.Background(), "a@x.com", "secret123")
	require.NoError(t, err)

	_, err = e.svc.Refresh(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidRefresh)
}

func TestRefresh_NoRevocationStoreAllowsReuse(t *testing.T) {
	repo := memory.NewUserRepository()
	tokens := token.NewManager("test-secret", "authd-test", 15*time.Minute, time.Hour)
	svc := auth.NewService(repo, password.NewHasher(bcrypt.MinCost), tokens, auth.NoRevocation{})

	_, err := svc.Register(context.Background(), "a@x.com", "secret123", "")
	require.NoError(t, err)
	pair, err := svc.Login(context.Background(), "a@x.com", "secret123")
	require.NoError(t, err)

	// Without a store, a refresh token stays valid until expiry.
	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.NoError(t, err)
}
