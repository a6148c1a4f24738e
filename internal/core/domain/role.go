package domain

import "time"

// Sentinel names created by the seed. Authorization checks elsewhere go
// through permissions, not these names, so renaming a role does not break
// elevation.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Atomic capabilities known to the seed.
const (
	PermCreateTask  = "create_task"
	PermUpdateTask  = "update_task"
	PermDeleteTask  = "delete_task"
	PermViewTask    = "view_task"
	PermManageUsers = "manage_users"
	PermManageRoles = "manage_roles"
	PermManageTags  = "manage_tags"
)

// Role is a named bundle of permissions. Version guards permission
// replacement against concurrent edits: the repository only applies a write
// when the stored version still matches.
type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions"`
	Version     int64     `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasPermission reports whether the role includes the named permission.
func (r *Role) HasPermission(name string) bool {
	for _, p := range r.Permissions {
		if p == name {
			return true
		}
	}
	return false
}

// Permission is an atomic named capability. It has no behaviour of its own;
// it gains meaning when attached to a role.
type Permission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
