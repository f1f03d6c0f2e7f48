package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	httpapi "github.com/mkraev/authd/api/http"
	"github.com/mkraev/authd/api/http/handlers"
	"github.com/mkraev/authd/pkg/auth"
	"github.com/mkraev/authd/pkg/health"
	"github.com/mkraev/authd/pkg/repository/memory"
	"github.com/mkraev/authd/pkg/security/password"
	"github.com/mkraev/authd/pkg/security/token"
	"github.com/mkraev/authd/pkg/user"
)

type env struct {
	app    *fiber.App
	repo   *memory.UserRepository
	users  user.UseCase
	tokens *token.Manager
}

func newEnv(t *testing.T) *env {
	t.Helper()
	repo := memory.NewUserRepository()
	hasher := password.NewHasher(bcrypt.MinCost)
	tokens := token.NewManager("test-secret", "authd-test", 15*time.Minute, time.Hour)

	authUC := auth.NewService(repo, hasher, tokens, memory.NewRefreshStore())
	userUC := user.NewService(repo, hasher)

	app := fiber.New()
	httpapi.Register(app,
		handlers.NewAuthHandler(authUC),
		handlers.NewUserHandler(userUC),
		handlers.NewHealthHandler(health.NewService()),
		httpapi.Guards{
			RequireAuth:      token.RequireAuth(tokens, repo),
			RequireActive:    token.RequireActive(),
			RequireSuperuser: token.RequireSuperuser(),
		})

	return &env{app: app, repo: repo, users: userUC, tokens: tokens}
}

func (e *env) do(t *testing.T, method, path string, body any, bearer string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// seedSuperuser creates a superuser directly through the service and
// returns an access token for it.
func (e *env) seedSuperuser(t *testing.T, email string) string {
	t.Helper()
	u, err := e.users.Create(context.Background(), user.CreateInput{
		Email:       email,
		Password:    "admin-secret",
		IsActive:    true,
		IsSuperuser: true,
	})
	require.NoError(t, err)
	tok, _, err := e.tokens.IssueAccess(u.ID)
	require.NoError(t, err)
	return tok
}

// register runs the public registration flow and returns the created id.
func (e *env) register(t *testing.T, email, pass string) int64 {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    email,
		"password": pass,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	return int64(body["id"].(float64))
}

// login returns the token pair for existing credentials.
func (e *env) login(t *testing.T, email, pass string) (access, refresh string) {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": pass,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	return body["access_token"].(string), body["refresh_token"].(string)
}
