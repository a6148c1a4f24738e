package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/ports"
)

// TagService manages tags and tag-scoped task lookup.
type TagService struct {
	tags  ports.TagRepository
	tasks ports.TaskRepository
	log   zerolog.Logger
}

func NewTagService(tags ports.TagRepository, tasks ports.TaskRepository, log zerolog.Logger) *TagService {
	return &TagService{tags: tags, tasks: tasks, log: log}
}

func (s *TagService) Create(ctx context.Context, name string) (*domain.Tag, error) {
	tag, err := s.tags.Create(ctx, &domain.Tag{
		Name:      name,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("tag", name).Msg("tag created")
	return tag, nil
}

func (s *TagService) List(ctx context.Context) ([]*domain.Tag, error) {
	return s.tags.List(ctx)
}

// TasksByTag returns the caller's tasks labelled with tagName. The tag must
// exist; the result is scoped to the caller's own tasks.
func (s *TagService) TasksByTag(ctx context.Context, tagName, userID string) ([]*domain.Task, error) {
	if _, err := s.tags.FindByName(ctx, tagName); err != nil {
		return nil, err
	}
	return s.tasks.ListByTag(ctx, tagName, userID)
}
