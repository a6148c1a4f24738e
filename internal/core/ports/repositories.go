package ports

import (
	"context"

	"github.com/taskify/taskify-api/internal/core/domain"
)

// Pagination carries page arithmetic shared by every list endpoint.
// Page starts at 1; PageSize is clamped to [1,100] by the handlers.
type Pagination struct {
	Page     int
	PageSize int
}

// Offset returns the number of documents to skip.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// UserRepository persists users. Uniqueness of username and email is
// enforced by the store's unique indexes, not by the callers.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// List returns one page of users plus the unpaginated total.
	// isActive filters by activation state when non-nil.
	List(ctx context.Context, page Pagination, isActive *bool) ([]*domain.User, int64, error)
	// ListByRole returns one page of users holding the given role.
	ListByRole(ctx context.Context, roleID string, page Pagination, isActive *bool) ([]*domain.User, int64, error)
	// SetActive flips the activation flag (soft delete / restore).
	SetActive(ctx context.Context, id string, active bool) (*domain.User, error)
}

// RoleRepository persists roles and their permission sets.
type RoleRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
	List(ctx context.Context) ([]*domain.Role, error)
	// ReplacePermissions swaps the role's entire permission set, guarded by
	// the version read alongside the current set. A stale version returns
	// domain.ErrRoleConflict so a concurrent edit is never silently lost.
	ReplacePermissions(ctx context.Context, roleID string, version int64, permissions []string) (*domain.Role, error)
}

// PermissionRepository persists atomic capabilities.
type PermissionRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Permission, error)
	FindByNames(ctx context.Context, names []string) ([]*domain.Permission, error)
	Create(ctx context.Context, permission *domain.Permission) (*domain.Permission, error)
	List(ctx context.Context) ([]*domain.Permission, error)
}

// TaskFilter narrows task listings. Zero values mean "no filter".
type TaskFilter struct {
	Status   domain.TaskStatus
	Priority domain.TaskPriority
}

// TaskRepository persists tasks. Every lookup is scoped by the owning
// user id; a task belonging to someone else behaves as not found.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id, userID string) (*domain.Task, error)
	List(ctx context.Context, userID string, filter TaskFilter, page Pagination) ([]*domain.Task, int64, error)
	ListByTag(ctx context.Context, tag, userID string) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id, userID string) error
}

// TagRepository persists tags.
type TagRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Tag, error)
	Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error)
	List(ctx context.Context) ([]*domain.Tag, error)
}
