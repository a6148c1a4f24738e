// Package seed bootstraps the initial permissions, roles, and administrator
// account. Every step tolerates pre-existing data, so running it on each
// startup is safe.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/ports"
	"github.com/taskify/taskify-api/internal/core/security"
)

// AdminAccount describes the bootstrap administrator.
type AdminAccount struct {
	Name     string
	Username string
	Email    string
	Password string
}

// Seeder creates the initial authorization data.
type Seeder struct {
	users       ports.UserRepository
	roles       ports.RoleRepository
	permissions ports.PermissionRepository
	hasher      *security.Hasher
	log         zerolog.Logger
}

func New(
	users ports.UserRepository,
	roles ports.RoleRepository,
	permissions ports.PermissionRepository,
	hasher *security.Hasher,
	log zerolog.Logger,
) *Seeder {
	return &Seeder{users: users, roles: roles, permissions: permissions, hasher: hasher, log: log}
}

var seedPermissions = []string{
	domain.PermCreateTask,
	domain.PermUpdateTask,
	domain.PermDeleteTask,
	domain.PermViewTask,
	domain.PermManageUsers,
	domain.PermManageRoles,
	domain.PermManageTags,
}

var seedRoles = map[string][]string{
	domain.RoleAdmin: seedPermissions,
	domain.RoleUser:  {domain.PermViewTask, domain.PermCreateTask},
}

// Run creates permissions, roles, and the administrator account.
func (s *Seeder) Run(ctx context.Context, admin AdminAccount) error {
	for _, name := range seedPermissions {
		_, err := s.permissions.Create(ctx, &domain.Permission{Name: name, CreatedAt: time.Now().UTC()})
		if err != nil && !errors.Is(err, domain.ErrPermissionExists) {
			return err
		}
	}

	adminRoleID := ""
	for name, perms := range seedRoles {
		role, err := s.ensureRole(ctx, name, perms)
		if err != nil {
			return err
		}
		if name == domain.RoleAdmin {
			adminRoleID = role.ID
		}
	}

	return s.ensureAdmin(ctx, admin, adminRoleID)
}

func (s *Seeder) ensureRole(ctx context.Context, name string, perms []string) (*domain.Role, error) {
	role, err := s.roles.FindByName(ctx, name)
	if errors.Is(err, domain.ErrRoleNotFound) {
		now := time.Now().UTC()
		role, err = s.roles.Create(ctx, &domain.Role{Name: name, Permissions: []string{}, CreatedAt: now, UpdatedAt: now})
	}
	if err != nil {
		return nil, err
	}

	updated, err := s.roles.ReplacePermissions(ctx, role.ID, role.Version, perms)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("role", name).Strs("permissions", perms).Msg("role seeded")
	return updated, nil
}

func (s *Seeder) ensureAdmin(ctx context.Context, admin AdminAccount, roleID string) error {
	if _, err := s.users.FindByEmail(ctx, admin.Email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := s.hasher.Hash(admin.Password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = s.users.Create(ctx, &domain.User{
		Name:         admin.Name,
		Username:     admin.Username,
		Email:        admin.Email,
		PasswordHash: hash,
		RoleID:       roleID,
		RoleName:     domain.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil && !errors.Is(err, domain.ErrUserExists) {
		return err
	}
	if err == nil {
		s.log.Info().Str("email", admin.Email).Msg("administrator account seeded")
	}
	return nil
}
