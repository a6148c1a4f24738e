package domain

import "errors"

// Authentication failures. ErrInvalidCredentials deliberately covers both
// "unknown identifier" and "wrong password" so callers cannot enumerate
// accounts.
var (
	ErrMissingIdentifier  = errors.New("email or username is required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)

// ErrUnauthenticated is the single outcome for every token failure
// (malformed, expired, bad signature) and for tokens whose subject no
// longer resolves to a user.
var ErrUnauthenticated = errors.New("authentication required")

// ErrForbidden is an authorization failure, distinct from the
// authentication failures above.
var ErrForbidden = errors.New("insufficient privilege")

// Role/permission validation errors.
var (
	ErrEmptyPermissionUpdate = errors.New("permission update must add or remove at least one permission")
	ErrPermissionNotFound    = errors.New("permission not found")
	ErrPermissionNotAssigned = errors.New("permission not assigned to role")
	ErrRoleNotFound          = errors.New("role not found")
	ErrRoleExists            = errors.New("role already exists")
	ErrRoleConflict          = errors.New("role was modified concurrently")
	ErrPermissionExists      = errors.New("permission already exists")
)

// User management errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// Task/tag errors.
var (
	ErrTaskNotFound = errors.New("task not found")
	ErrTagNotFound  = errors.New("tag not found")
	ErrTagExists    = errors.New("tag already exists")
)
