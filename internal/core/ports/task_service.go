package ports

import (
	"context"

	"github.com/taskify/taskify-api/internal/core/domain"
)

// CreateTaskInput carries the data for a new task. Status and Priority
// default to pending/medium when empty.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	TagNames    []string
}

// UpdateTaskInput applies a partial update; nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	TagNames    *[]string
}

// TaskService implements owner-scoped task CRUD. Every method takes the
// acting user's id and never exposes another user's tasks.
type TaskService interface {
	Create(ctx context.Context, userID string, input CreateTaskInput) (*domain.Task, error)
	GetByID(ctx context.Context, id, userID string) (*domain.Task, error)
	List(ctx context.Context, userID string, filter TaskFilter, page Pagination) ([]*domain.Task, int64, error)
	Update(ctx context.Context, id, userID string, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, id, userID string) error
}

// TagService implements tag management and tag-scoped task lookup.
type TagService interface {
	Create(ctx context.Context, name string) (*domain.Tag, error)
	List(ctx context.Context) ([]*domain.Tag, error)
	TasksByTag(ctx context.Context, tagName, userID string) ([]*domain.Task, error)
}
