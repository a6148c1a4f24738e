package ports

import (
	"context"

	"github.com/taskify/taskify-api/internal/core/domain"
)

// AuthService turns credentials into tokens and tokens back into users.
type AuthService interface {
	// Authenticate resolves exactly one of email/username and checks the
	// password against the stored digest. Unknown identifier and wrong
	// password are indistinguishable to the caller.
	Authenticate(ctx context.Context, password, email, username string) (*domain.User, error)
	// Login is Authenticate plus token issuance and throttle bookkeeping.
	Login(ctx context.Context, password, email, username string) (string, *domain.User, error)
	// ResolveFromToken verifies the token, loads the subject, and rejects
	// deactivated accounts even when the token is still unexpired.
	ResolveFromToken(ctx context.Context, token string) (*domain.User, error)
}

// LoginThrottle limits failed authentication attempts per identifier.
// Implementations must be safe for concurrent use.
type LoginThrottle interface {
	// TooManyFailures reports whether the identifier is currently locked out.
	TooManyFailures(ctx context.Context, identifier string) (bool, error)
	// RecordFailure counts one failed attempt against the identifier.
	RecordFailure(ctx context.Context, identifier string) error
	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, identifier string) error
}
