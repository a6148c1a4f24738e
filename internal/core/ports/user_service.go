package ports

import (
	"context"

	"github.com/taskify/taskify-api/internal/core/domain"
)

// CreateUserInput carries the data for an administrator-created account.
type CreateUserInput struct {
	Name     string
	Username string
	Email    string
	Password string
	// RoleName defaults to "user" when empty.
	RoleName string
}

// UserService implements administrator-facing account management.
// Accounts are never deleted; Deactivate is the only removal path.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, page Pagination, isActive *bool) ([]*domain.User, int64, error)
	Deactivate(ctx context.Context, id string) (*domain.User, error)
	Activate(ctx context.Context, id string) (*domain.User, error)
}
