package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/ports"
)

type stubRoleService struct {
	updateFn func(ctx context.Context, roleID string, add, remove []string) (*domain.Role, error)
	assignFn func(ctx context.Context, roleID string, names []string) (*domain.Role, error)
}

func (s *stubRoleService) Create(ctx context.Context, name string) (*domain.Role, error) {
	return &domain.Role{ID: "r1", Name: name}, nil
}

func (s *stubRoleService) GetByID(ctx context.Context, id string) (*domain.Role, error) {
	return &domain.Role{ID: id}, nil
}

func (s *stubRoleService) List(ctx context.Context) ([]*domain.Role, error) {
	return nil, nil
}

func (s *stubRoleService) AssignPermissions(ctx context.Context, roleID string, names []string) (*domain.Role, error) {
	return s.assignFn(ctx, roleID, names)
}

func (s *stubRoleService) UpdatePermissions(ctx context.Context, roleID string, add, remove []string) (*domain.Role, error) {
	return s.updateFn(ctx, roleID, add, remove)
}

func (s *stubRoleService) UsersByRole(ctx context.Context, roleName string, page ports.Pagination, isActive *bool) ([]*domain.User, int64, error) {
	return nil, 0, nil
}

func TestRoleHandler_UpdatePermissions_Success(t *testing.T) {
	e := newEcho()
	stub := &stubRoleService{
		updateFn: func(ctx context.Context, roleID string, add, remove []string) (*domain.Role, error) {
			if roleID != "r1" || len(add) != 1 || len(remove) != 1 {
				t.Fatalf("unexpected args: %q %v %v", roleID, add, remove)
			}
			return &domain.Role{ID: roleID, Name: "editor", Permissions: []string{domain.PermCreateTask}}, nil
		},
	}
	handler := NewRoleHandler(stub)

	c, rec := newJSONContext(e, http.MethodPatch, "/v1/roles/r1/permissions", `{"add":["create_task"],"remove":["delete_task"]}`)
	c.SetParamNames("id")
	c.SetParamValues("r1")

	if err := handler.UpdatePermissions(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRoleHandler_UpdatePermissions_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"empty update", domain.ErrEmptyPermissionUpdate, http.StatusBadRequest},
		{"role missing", domain.ErrRoleNotFound, http.StatusNotFound},
		{"unknown permission", fmt.Errorf("%w: fly", domain.ErrPermissionNotFound), http.StatusBadRequest},
		{"not assigned", fmt.Errorf("%w: delete_task", domain.ErrPermissionNotAssigned), http.StatusBadRequest},
		{"concurrent edit", domain.ErrRoleConflict, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEcho()
			stub := &stubRoleService{
				updateFn: func(ctx context.Context, roleID string, add, remove []string) (*domain.Role, error) {
					return nil, tc.err
				},
			}
			handler := NewRoleHandler(stub)

			c, rec := newJSONContext(e, http.MethodPatch, "/v1/roles/r1/permissions", `{"add":["x"]}`)
			c.SetParamNames("id")
			c.SetParamValues("r1")

			if err := handler.UpdatePermissions(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
		})
	}
}

func TestRoleHandler_AssignPermissions_Conflict(t *testing.T) {
	e := newEcho()
	stub := &stubRoleService{
		assignFn: func(ctx context.Context, roleID string, names []string) (*domain.Role, error) {
			return nil, domain.ErrRoleConflict
		},
	}
	handler := NewRoleHandler(stub)

	c, rec := newJSONContext(e, http.MethodPut, "/v1/roles/r1/permissions", `{"permissions":["view_task"]}`)
	c.SetParamNames("id")
	c.SetParamValues("r1")

	if err := handler.AssignPermissions(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
