package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ppm-service/internal/model"
	"ppm-service/pkg/jwtutil"
	"ppm-service/pkg/logger"
	"ppm-service/prometheus"
)

// AuthMiddleware validates the JWT token from the Authorization header and
// stores the session claims in the request context.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Error("Missing Authorization header")
			prometheus.RecordError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Error("Invalid Authorization header format")
			prometheus.RecordError("invalid_auth_format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		// Validate the token
		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.RecordError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		// Store session info in context for later use
		c.Set("phone", claims.Phone)
		c.Set("role", claims.Role)
		c.Set("user_claims", claims)

		return next(c)
	}
}

// RequireAdmin guards the summary and export endpoints. The role comparison
// is case-insensitive, matching the registry's admin check.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		role, _ := c.Get("role").(string)
		if !strings.EqualFold(role, model.RoleAdmin) {
			log.Warn("Admin-only endpoint denied",
				zap.String("role", role),
				zap.String("path", c.Path()))
			prometheus.RecordError("forbidden")
			return c.JSON(http.StatusForbidden, echo.Map{"error": "admin role required"})
		}

		return next(c)
	}
}
