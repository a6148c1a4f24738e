package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/ports"
)

// RoleService implements the role↔permission authorization model.
type RoleService struct {
	roles       ports.RoleRepository
	permissions ports.PermissionRepository
	users       ports.UserRepository
	log         zerolog.Logger
}

func NewRoleService(
	roles ports.RoleRepository,
	permissions ports.PermissionRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *RoleService {
	return &RoleService{roles: roles, permissions: permissions, users: users, log: log}
}

func (s *RoleService) Create(ctx context.Context, name string) (*domain.Role, error) {
	now := time.Now().UTC()
	role, err := s.roles.Create(ctx, &domain.Role{
		Name:        name,
		Permissions: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("role", name).Msg("role created")
	return role, nil
}

func (s *RoleService) GetByID(ctx context.Context, id string) (*domain.Role, error) {
	return s.roles.FindByID(ctx, id)
}

func (s *RoleService) List(ctx context.Context) ([]*domain.Role, error) {
	return s.roles.List(ctx)
}

// AssignPermissions replaces the role's permission set with names. Every
// name must exist as a known permission. The operation is idempotent.
func (s *RoleService) AssignPermissions(ctx context.Context, roleID string, names []string) (*domain.Role, error) {
	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	if err := s.requireKnown(ctx, names); err != nil {
		return nil, err
	}

	updated, err := s.roles.ReplacePermissions(ctx, role.ID, role.Version, normalizeSet(names))
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("role", role.Name).Strs("permissions", updated.Permissions).Msg("role permissions assigned")
	return updated, nil
}

// UpdatePermissions computes final = (current ∪ add) \ remove and applies it
// atomically. Validation order matters: an empty request, an unknown name in
// add, an unknown name in remove, and removing an unassigned permission each
// fail distinctly, and nothing is written until all checks pass. A name in
// both sets ends up removed, since remove applies after the union.
func (s *RoleService) UpdatePermissions(ctx context.Context, roleID string, add, remove []string) (*domain.Role, error) {
	if len(add) == 0 && len(remove) == 0 {
		return nil, domain.ErrEmptyPermissionUpdate
	}

	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	if err := s.requireKnown(ctx, add); err != nil {
		return nil, err
	}
	if err := s.requireKnown(ctx, remove); err != nil {
		return nil, err
	}

	current := make(map[string]struct{}, len(role.Permissions))
	for _, p := range role.Permissions {
		current[p] = struct{}{}
	}
	for _, name := range remove {
		if _, assigned := current[name]; !assigned {
			return nil, fmt.Errorf("%w: %s", domain.ErrPermissionNotAssigned, name)
		}
	}

	final := make(map[string]struct{}, len(current)+len(add))
	for p := range current {
		final[p] = struct{}{}
	}
	for _, name := range add {
		final[name] = struct{}{}
	}
	for _, name := range remove {
		delete(final, name)
	}

	names := make([]string, 0, len(final))
	for p := range final {
		names = append(names, p)
	}
	sort.Strings(names)

	updated, err := s.roles.ReplacePermissions(ctx, role.ID, role.Version, names)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("role", role.Name).
		Strs("added", add).
		Strs("removed", remove).
		Msg("role permissions updated")
	return updated, nil
}

// UsersByRole pages through users holding the named role.
func (s *RoleService) UsersByRole(ctx context.Context, roleName string, page ports.Pagination, isActive *bool) ([]*domain.User, int64, error) {
	role, err := s.roles.FindByName(ctx, roleName)
	if err != nil {
		return nil, 0, err
	}
	return s.users.ListByRole(ctx, role.ID, page, isActive)
}

// requireKnown fails with ErrPermissionNotFound naming the first permission
// that does not exist.
func (s *RoleService) requireKnown(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	known, err := s.permissions.FindByNames(ctx, names)
	if err != nil {
		return err
	}

	found := make(map[string]struct{}, len(known))
	for _, p := range known {
		found[p.Name] = struct{}{}
	}
	for _, name := range names {
		if _, ok := found[name]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrPermissionNotFound, name)
		}
	}
	return nil
}

// normalizeSet drops duplicates and returns a sorted copy.
func normalizeSet(names []string) []string {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
