package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/ports"
	"github.com/taskify/taskify-api/internal/core/security"
)

// UserService implements administrator-facing account management.
type UserService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	hasher *security.Hasher
	log    zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	hasher *security.Hasher,
	log zerolog.Logger,
) *UserService {
	return &UserService{users: users, roles: roles, hasher: hasher, log: log}
}

// Create hashes the password and stores a new active account. Emails are
// normalised to lowercase before storage; usernames keep their case.
// Duplicate email/username surface as domain.ErrUserExists from the store's
// unique indexes — there is no check-then-insert here.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	roleName := input.RoleName
	if roleName == "" {
		roleName = domain.RoleUser
	}
	role, err := s.roles.FindByName(ctx, roleName)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		RoleID:       role.ID,
		RoleName:     role.Name,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", role.Name).Msg("user created")
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, page ports.Pagination, isActive *bool) ([]*domain.User, int64, error) {
	return s.users.List(ctx, page, isActive)
}

// Deactivate soft-deletes the account. Outstanding tokens for the user stop
// resolving immediately; the record itself is kept forever.
func (s *UserService) Deactivate(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.SetActive(ctx, id, false)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", id).Msg("user deactivated")
	return user, nil
}

// Activate restores a previously deactivated account.
func (s *UserService) Activate(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.SetActive(ctx, id, true)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", id).Msg("user reactivated")
	return user, nil
}
