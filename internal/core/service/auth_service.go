package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/ports"
	"github.com/taskify/taskify-api/internal/core/security"
)

// AuthService implements login and token-to-user resolution. It owns no
// state of its own; users live in the repository and tokens are stateless.
type AuthService struct {
	users    ports.UserRepository
	hasher   *security.Hasher
	tokens   *security.TokenService
	throttle ports.LoginThrottle
	log      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	hasher *security.Hasher,
	tokens *security.TokenService,
	throttle ports.LoginThrottle,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, throttle: throttle, log: log}
}

// Authenticate resolves the user by email or username and verifies the
// password. Unknown identifier and wrong password both return
// domain.ErrInvalidCredentials so the two cases cannot be told apart.
func (s *AuthService) Authenticate(ctx context.Context, password, email, username string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	var (
		user *domain.User
		err  error
	)
	switch {
	case email != "":
		user, err = s.users.FindByEmail(ctx, email)
	case username != "":
		user, err = s.users.FindByUsername(ctx, username)
	default:
		return nil, domain.ErrMissingIdentifier
	}
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("stored password digest unreadable")
		return nil, domain.ErrInvalidCredentials
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates and issues a bearer token. Failed attempts count
// against the identifier; a locked-out identifier is rejected before the
// credentials are even checked.
func (s *AuthService) Login(ctx context.Context, password, email, username string) (string, *domain.User, error) {
	identifier := strings.ToLower(strings.TrimSpace(email))
	if identifier == "" {
		identifier = strings.TrimSpace(username)
	}

	if identifier != "" {
		locked, err := s.throttle.TooManyFailures(ctx, identifier)
		if err != nil {
			// Throttle outage must not take logins down with it.
			s.log.Warn().Err(err).Msg("login throttle check failed, continuing")
		} else if locked {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.Authenticate(ctx, password, email, username)
	if err != nil {
		if identifier != "" && (err == domain.ErrInvalidCredentials || err == domain.ErrAccountDisabled) {
			if terr := s.throttle.RecordFailure(ctx, identifier); terr != nil {
				s.log.Warn().Err(terr).Msg("failed to record login failure")
			}
		}
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("token issuance failed")
		return "", nil, err
	}

	if terr := s.throttle.Reset(ctx, identifier); terr != nil {
		s.log.Warn().Err(terr).Msg("failed to reset login throttle")
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.RoleName).Msg("user logged in")
	return token, user, nil
}

// ResolveFromToken maps a bearer token back to its user. Every token
// failure and an unresolvable subject collapse into ErrUnauthenticated;
// a deactivated account is rejected even while its token is unexpired.
func (s *AuthService) ResolveFromToken(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}

	return user, nil
}
