package ports

import (
	"context"

	"github.com/taskify/taskify-api/internal/core/domain"
)

// RoleService implements the role↔permission authorization model.
type RoleService interface {
	Create(ctx context.Context, name string) (*domain.Role, error)
	GetByID(ctx context.Context, id string) (*domain.Role, error)
	List(ctx context.Context) ([]*domain.Role, error)
	// AssignPermissions replaces the role's entire permission set.
	// Idempotent: assigning the same set twice leaves the same final state.
	AssignPermissions(ctx context.Context, roleID string, names []string) (*domain.Role, error)
	// UpdatePermissions applies final = (current ∪ add) \ remove atomically.
	// A name present in both sets ends up removed.
	UpdatePermissions(ctx context.Context, roleID string, add, remove []string) (*domain.Role, error)
	// UsersByRole pages through the users holding the named role.
	UsersByRole(ctx context.Context, roleName string, page Pagination, isActive *bool) ([]*domain.User, int64, error)
}

// PermissionService implements standalone permission management.
type PermissionService interface {
	Create(ctx context.Context, name string) (*domain.Permission, error)
	List(ctx context.Context) ([]*domain.Permission, error)
}
