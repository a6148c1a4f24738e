package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/ports"
)

// PermissionService manages standalone capabilities. A permission only
// gains meaning once attached to a role.
type PermissionService struct {
	permissions ports.PermissionRepository
	log         zerolog.Logger
}

func NewPermissionService(permissions ports.PermissionRepository, log zerolog.Logger) *PermissionService {
	return &PermissionService{permissions: permissions, log: log}
}

func (s *PermissionService) Create(ctx context.Context, name string) (*domain.Permission, error) {
	permission, err := s.permissions.Create(ctx, &domain.Permission{
		Name:      name,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("permission", name).Msg("permission created")
	return permission, nil
}

func (s *PermissionService) List(ctx context.Context) ([]*domain.Permission, error) {
	return s.permissions.List(ctx)
}
