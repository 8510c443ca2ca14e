package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppm-service/pkg/config"
	"ppm-service/pkg/jwtutil"
	"ppm-service/pkg/logger"
)

func TestMain(m *testing.M) {
	cfg := &config.Config{
		Server: config.ServerConfig{Env: "development"},
		Log:    config.LogConfig{Level: "error"},
		JWT:    config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1},
	}
	if err := logger.InitLogger(cfg); err != nil {
		panic(err)
	}
	jwtutil.Initialize(&cfg.JWT)
	m.Run()
}

func run(t *testing.T, mw echo.MiddlewareFunc, authHeader string, setup func(echo.Context)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}

	next := func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	}
	require.NoError(t, mw(next)(c))
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	token, err := jwtutil.GenerateToken("+97100000", "", "user")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := run(t, AuthMiddleware, tt.header, nil)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAuthMiddlewareSetsClaims(t *testing.T) {
	token, err := jwtutil.GenerateToken("+97111111", "Supervisor", "admin")
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		assert.Equal(t, "+97111111", c.Get("phone"))
		assert.Equal(t, "admin", c.Get("role"))
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, AuthMiddleware(next)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name string
		role string
		want int
	}{
		{"admin allowed", "admin", http.StatusOK},
		{"mixed-case admin allowed", "Admin", http.StatusOK},
		{"plain user forbidden", "user", http.StatusForbidden},
		{"no role forbidden", "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := run(t, RequireAdmin, "", func(c echo.Context) {
				if tt.role != "" {
					c.Set("role", tt.role)
				}
			})
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
