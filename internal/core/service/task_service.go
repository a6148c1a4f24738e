package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/ports"
)

// TaskService implements owner-scoped task CRUD. Ownership is enforced on
// every operation: a task belonging to another user behaves as not found.
type TaskService struct {
	tasks ports.TaskRepository
	tags  ports.TagRepository
	log   zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, tags ports.TagRepository, log zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, tags: tags, log: log}
}

func (s *TaskService) Create(ctx context.Context, userID string, input ports.CreateTaskInput) (*domain.Task, error) {
	status := input.Status
	if status == "" {
		status = domain.StatusPending
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	tags, err := s.knownTags(ctx, input.TagNames)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task, err := s.tasks.Create(ctx, &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		Tags:        tags,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("task_id", task.ID).Str("user_id", userID).Str("priority", string(priority)).Msg("task created")
	return task, nil
}

func (s *TaskService) GetByID(ctx context.Context, id, userID string) (*domain.Task, error) {
	return s.tasks.FindByID(ctx, id, userID)
}

func (s *TaskService) List(ctx context.Context, userID string, filter ports.TaskFilter, page ports.Pagination) ([]*domain.Task, int64, error) {
	return s.tasks.List(ctx, userID, filter, page)
}

// Update applies the non-nil fields of input to the caller's task.
func (s *TaskService) Update(ctx context.Context, id, userID string, input ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.TagNames != nil {
		tags, err := s.knownTags(ctx, *input.TagNames)
		if err != nil {
			return nil, err
		}
		task.Tags = tags
	}
	task.UpdatedAt = time.Now().UTC()

	return s.tasks.Update(ctx, task)
}

func (s *TaskService) Delete(ctx context.Context, id, userID string) error {
	if err := s.tasks.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.log.Info().Str("task_id", id).Str("user_id", userID).Msg("task deleted")
	return nil
}

// knownTags keeps only names that exist as tags, mirroring how unknown tag
// names are silently dropped rather than rejected.
func (s *TaskService) knownTags(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return []string{}, nil
	}

	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		if _, err := s.tags.FindByName(ctx, name); err != nil {
			if err == domain.ErrTagNotFound {
				continue
			}
			return nil, err
		}
		out = append(out, name)
	}
	return out, nil
}
