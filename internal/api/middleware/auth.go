package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskify/taskify-api/internal/api/metrics"
	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/ports"
)

// Context keys set by the Auth middleware and read by handlers and the
// RequirePermission middleware.
const (
	UserKey        = "user"
	PermissionsKey = "permissions"
)

// Auth validates the bearer token, resolves the account behind it, and
// injects the user plus the role's permission set into the request context.
// Deactivated accounts are rejected even when their token is unexpired.
func Auth(auth ports.AuthService, roles ports.RoleRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthFailuresTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailuresTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := auth.ResolveFromToken(c.Request().Context(), parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrAccountDisabled) {
					metrics.AuthFailuresTotal.WithLabelValues("account_disabled").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "account disabled")
				}
				metrics.AuthFailuresTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			// The role carries the grants; an account whose role vanished
			// has no usable identity.
			role, err := roles.FindByID(c.Request().Context(), user.RoleID)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(UserKey, user)
			c.Set(PermissionsKey, role.Permissions)

			return next(c)
		}
	}
}
