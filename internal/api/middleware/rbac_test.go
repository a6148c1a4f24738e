package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskify/taskify-api/internal/core/domain"
)

func newRBACContext(e *echo.Echo, perms []string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if perms != nil {
		c.Set(PermissionsKey, perms)
	}
	return c, rec
}

func TestRequirePermission_Granted(t *testing.T) {
	e := echo.New()
	c, rec := newRBACContext(e, []string{domain.PermViewTask, domain.PermManageUsers})

	called := false
	handler := RequirePermission(domain.PermManageUsers)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequirePermission_Denied(t *testing.T) {
	e := echo.New()
	c, rec := newRBACContext(e, []string{domain.PermViewTask, domain.PermCreateTask})

	handler := RequirePermission(domain.PermManageRoles)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequirePermission_NoPermissionsInContext(t *testing.T) {
	e := echo.New()
	c, rec := newRBACContext(e, nil)

	handler := RequirePermission(domain.PermViewTask)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
