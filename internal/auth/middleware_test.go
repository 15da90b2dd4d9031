package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/repository"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

func newMiddlewareApp(t *testing.T) (*fiber.App, *TokenManager, *fakeClock, *domain.User) {
	t.Helper()

	users := repository.NewMemoryUserRepository()
	user := &domain.User{Nickname: "alice", Email: "alice@example.com", PasswordHash: "h"}
	require.NoError(t, users.Create(context.Background(), user))

	tm, clock := newTestManager(t)
	mw := NewAuthMiddleware(tm, users)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
	app.Get("/access", mw.RequireAccessToken, func(c *fiber.Ctx) error {
		p, ok := PrincipalFromContext(c)
		if !ok || p.User == nil {
			return fiber.ErrInternalServerError
		}
		return c.SendString(p.User.Nickname)
	})
	app.Post("/refresh", mw.RequireRefreshToken, func(c *fiber.Ctx) error {
		p, _ := PrincipalFromContext(c)
		return c.SendString(string(p.Token.Kind))
	})
	return app, tm, clock, user
}

func doRequest(t *testing.T, app *fiber.App, method, path, authHeader string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthMiddleware_RequireAccessToken(t *testing.T) {
	app, tm, clock, user := newMiddlewareApp(t)
	payload := domain.TokenPayload{SubjectID: user.ID, Email: user.Email}

	access, err := tm.SignAccess(payload)
	require.NoError(t, err)
	refresh, err := tm.SignRefresh(payload)
	require.NoError(t, err)
	ghost, err := tm.SignAccess(domain.TokenPayload{SubjectID: "missing", Email: "ghost@example.com"})
	require.NoError(t, err)

	status, body := doRequest(t, app, http.MethodGet, "/access", "Bearer "+access)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", body)

	status, body = doRequest(t, app, http.MethodGet, "/access", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body)

	status, body = doRequest(t, app, http.MethodGet, "/access", "Basic "+access)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_HEADER", body)

	status, body = doRequest(t, app, http.MethodGet, "/access", "Bearer "+refresh)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "WRONG_TOKEN_KIND", body)

	status, _ = doRequest(t, app, http.MethodGet, "/access", "Bearer "+ghost)
	assert.Equal(t, http.StatusUnauthorized, status)

	clock.Advance(10 * time.Minute)
	status, body = doRequest(t, app, http.MethodGet, "/access", "Bearer "+access)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "TOKEN_EXPIRED", body)
}

func TestAuthMiddleware_RequireRefreshToken(t *testing.T) {
	app, tm, _, user := newMiddlewareApp(t)
	payload := domain.TokenPayload{SubjectID: user.ID, Email: user.Email}

	access, err := tm.SignAccess(payload)
	require.NoError(t, err)
	refresh, err := tm.SignRefresh(payload)
	require.NoError(t, err)

	status, body := doRequest(t, app, http.MethodPost, "/refresh", "Bearer "+refresh)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "refresh", body)

	status, body = doRequest(t, app, http.MethodPost, "/refresh", "Bearer "+access)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "WRONG_TOKEN_KIND", body)

	status, body = doRequest(t, app, http.MethodPost, "/refresh", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "TOKEN_INVALID", body)
}
