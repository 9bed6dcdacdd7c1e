package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"teampulse/internal/config"
	"teampulse/internal/core/domain"
	"teampulse/internal/pkg/jwt"
	"teampulse/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const secret = "middleware-test-secret"

type agentsByID map[string]domain.Agent

func (m agentsByID) Me(_ context.Context, id string) (*domain.Agent, error) {
	if id == "broken" {
		return nil, errors.New("connection refused")
	}
	a, ok := m[id]
	if !ok {
		return nil, domain.ErrAgentNotFound
	}
	if !a.IsActive {
		return nil, domain.ErrAgentInactive
	}
	return &a, nil
}

var testAgents = agentsByID{
	"7":      {ID: "7", FullName: "Andrea", Role: domain.RoleMember, IsActive: true},
	"admin":  {ID: "admin", FullName: "Sara", Role: domain.RoleAdmin, IsActive: true},
	"cookie": {ID: "cookie", FullName: "Cookie", Role: domain.RoleAdmin, IsActive: true},
	"header": {ID: "header", FullName: "Header", Role: domain.RoleMember, IsActive: true},
	"gone":   {ID: "gone", FullName: "Valentina", Role: domain.RoleAdmin, IsActive: false},
}

func newAuthApp(handlers ...fiber.Handler) *fiber.App {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: secret, AccessTokenMins: 5}}

	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler(zap.NewNop())})
	chain := append([]fiber.Handler{AuthMiddleware(cfg, testAgents)}, handlers...)
	chain = append(chain, func(c *fiber.Ctx) error {
		return c.SendString(AgentID(c) + ":" + string(Role(c)))
	})
	app.Get("/private", chain...)
	return app
}

func signed(t *testing.T, id string, role domain.Role) string {
	t.Helper()
	tok, _, err := jwt.GenerateAccessToken(id, "Agent "+id, string(role), secret, 5)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	app := newAuthApp()

	tests := []struct {
		name   string
		setup  func(*http.Request)
		status int
	}{
		{"missing token", func(*http.Request) {}, fiber.StatusUnauthorized},
		{"malformed header", func(r *http.Request) { r.Header.Set("Authorization", "Token abc") }, fiber.StatusUnauthorized},
		{"garbage token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc") }, fiber.StatusUnauthorized},
		{"bearer", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+signed(t, "7", domain.RoleMember))
		}, fiber.StatusOK},
		{"cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: signed(t, "7", domain.RoleMember)})
		}, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			tt.setup(req)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestAuthMiddleware_CookieWins(t *testing.T) {
	app := newAuthApp()

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: signed(t, "cookie", domain.RoleAdmin)})
	req.Header.Set("Authorization", "Bearer "+signed(t, "header", domain.RoleMember))

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := make([]byte, 64)
	n, _ := resp.Body.Read(body)
	assert.Equal(t, "cookie:admin", string(body[:n]))
}

func TestAdminOnly(t *testing.T) {
	app := newAuthApp(AdminOnly())

	for id, status := range map[string]int{
		"admin": fiber.StatusOK,
		"7":     fiber.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+signed(t, id, domain.RoleAdmin))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, status, resp.StatusCode, id)
	}
}

func TestAuthMiddleware_StoredStateWinsOverClaims(t *testing.T) {
	app := newAuthApp()

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+signed(t, "7", domain.RoleAdmin))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "7:member", string(body), "demoted agent keeps only the stored role")

	for id, status := range map[string]int{
		"gone":    fiber.StatusUnauthorized,
		"missing": fiber.StatusUnauthorized,
		"broken":  fiber.StatusInternalServerError,
	} {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+signed(t, id, domain.RoleAdmin))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, status, resp.StatusCode, id)
	}
}

func TestMetrics_RouteLabel(t *testing.T) {
	app := fiber.New()
	app.Use(Metrics())
	app.Get("/things/:id", func(c *fiber.Ctx) error { return c.SendString("ok") })

	matched := metrics.HTTPRequests.WithLabelValues(fiber.MethodGet, "/things/:id", "200")
	unmatched := metrics.HTTPRequests.WithLabelValues(fiber.MethodGet, "unmatched", "404")
	beforeMatched := testutil.ToFloat64(matched)
	beforeUnmatched := testutil.ToFloat64(unmatched)

	for _, path := range []string{"/things/1", "/things/2", "/nowhere"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, beforeMatched+2, testutil.ToFloat64(matched))
	assert.Equal(t, beforeUnmatched+1, testutil.ToFloat64(unmatched))
}

func TestCustomErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler(zap.NewNop())})
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("database exploded") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
