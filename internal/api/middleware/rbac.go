package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskify/taskify-api/internal/api/metrics"
)

// RequirePermission gates a route on a named grant from the caller's role.
// It reads the permission set injected by Auth, so it must run after it.
func RequirePermission(name string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			perms, _ := c.Get(PermissionsKey).([]string)
			for _, p := range perms {
				if p == name {
					return next(c)
				}
			}
			metrics.AuthFailuresTotal.WithLabelValues("forbidden").Inc()
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
