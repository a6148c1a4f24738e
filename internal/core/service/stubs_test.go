package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/ports"
)

// In-memory stand-ins for the Mongo repositories, shared by the service
// tests in this package.

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = "user-" + strconv.Itoa(r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) List(_ context.Context, page ports.Pagination, isActive *bool) ([]*domain.User, int64, error) {
	var all []*domain.User
	for _, u := range r.users {
		if isActive != nil && u.IsActive != *isActive {
			continue
		}
		all = append(all, cloneUser(u))
	}
	return paginateUsers(all, page)
}

func (r *stubUserRepo) ListByRole(_ context.Context, roleID string, page ports.Pagination, isActive *bool) ([]*domain.User, int64, error) {
	var all []*domain.User
	for _, u := range r.users {
		if u.RoleID != roleID {
			continue
		}
		if isActive != nil && u.IsActive != *isActive {
			continue
		}
		all = append(all, cloneUser(u))
	}
	return paginateUsers(all, page)
}

func paginateUsers(all []*domain.User, page ports.Pagination) ([]*domain.User, int64, error) {
	total := int64(len(all))
	start := page.Offset()
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + page.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id string, active bool) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.IsActive = active
	return cloneUser(u), nil
}

type stubRoleRepo struct {
	roles  map[string]*domain.Role
	nextID int
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: make(map[string]*domain.Role)}
}

func cloneRole(role *domain.Role) *domain.Role {
	clone := *role
	clone.Permissions = append([]string(nil), role.Permissions...)
	return &clone
}

func (r *stubRoleRepo) FindByID(_ context.Context, id string) (*domain.Role, error) {
	if role, ok := r.roles[id]; ok {
		return cloneRole(role), nil
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			return cloneRole(role), nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) (*domain.Role, error) {
	for _, existing := range r.roles {
		if existing.Name == role.Name {
			return nil, domain.ErrRoleExists
		}
	}
	copy := cloneRole(role)
	r.nextID++
	copy.ID = "role-" + strconv.Itoa(r.nextID)
	r.roles[copy.ID] = cloneRole(copy)
	return copy, nil
}

func (r *stubRoleRepo) List(_ context.Context) ([]*domain.Role, error) {
	out := make([]*domain.Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, cloneRole(role))
	}
	return out, nil
}

func (r *stubRoleRepo) ReplacePermissions(_ context.Context, roleID string, version int64, permissions []string) (*domain.Role, error) {
	role, ok := r.roles[roleID]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	if role.Version != version {
		return nil, domain.ErrRoleConflict
	}
	role.Permissions = append([]string(nil), permissions...)
	role.Version++
	return cloneRole(role), nil
}

type stubPermissionRepo struct {
	permissions map[string]*domain.Permission // keyed by name
	nextID      int
}

func newStubPermissionRepo(names ...string) *stubPermissionRepo {
	r := &stubPermissionRepo{permissions: make(map[string]*domain.Permission)}
	for _, name := range names {
		r.nextID++
		r.permissions[name] = &domain.Permission{ID: "perm-" + strconv.Itoa(r.nextID), Name: name}
	}
	return r
}

func (r *stubPermissionRepo) FindByName(_ context.Context, name string) (*domain.Permission, error) {
	if p, ok := r.permissions[name]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrPermissionNotFound
}

func (r *stubPermissionRepo) FindByNames(_ context.Context, names []string) ([]*domain.Permission, error) {
	var out []*domain.Permission
	for _, name := range names {
		if p, ok := r.permissions[name]; ok {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubPermissionRepo) Create(_ context.Context, permission *domain.Permission) (*domain.Permission, error) {
	if _, exists := r.permissions[permission.Name]; exists {
		return nil, domain.ErrPermissionExists
	}
	clone := *permission
	r.nextID++
	clone.ID = "perm-" + strconv.Itoa(r.nextID)
	stored := clone
	r.permissions[clone.Name] = &stored
	return &clone, nil
}

func (r *stubPermissionRepo) List(_ context.Context) ([]*domain.Permission, error) {
	out := make([]*domain.Permission, 0, len(r.permissions))
	for _, p := range r.permissions {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

type stubTaskRepo struct {
	tasks  map[string]*domain.Task
	nextID int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func cloneTask(t *domain.Task) *domain.Task {
	clone := *t
	clone.Tags = append([]string(nil), t.Tags...)
	return &clone
}

func (r *stubTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	copy := cloneTask(task)
	r.nextID++
	copy.ID = "task-" + strconv.Itoa(r.nextID)
	r.tasks[copy.ID] = cloneTask(copy)
	return copy, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id, userID string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *stubTaskRepo) List(_ context.Context, userID string, filter ports.TaskFilter, page ports.Pagination) ([]*domain.Task, int64, error) {
	var all []*domain.Task
	for _, t := range r.tasks {
		if t.UserID != userID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		all = append(all, cloneTask(t))
	}
	total := int64(len(all))
	start := page.Offset()
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + page.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *stubTaskRepo) ListByTag(_ context.Context, tag, userID string) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.UserID != userID {
			continue
		}
		for _, name := range t.Tags {
			if name == tag {
				out = append(out, cloneTask(t))
				break
			}
		}
	}
	return out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, task *domain.Task) (*domain.Task, error) {
	existing, ok := r.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return nil, domain.ErrTaskNotFound
	}
	r.tasks[task.ID] = cloneTask(task)
	return cloneTask(task), nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id, userID string) error {
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

type stubTagRepo struct {
	tags   map[string]*domain.Tag
	nextID int
}

func newStubTagRepo(names ...string) *stubTagRepo {
	r := &stubTagRepo{tags: make(map[string]*domain.Tag)}
	for _, name := range names {
		r.nextID++
		r.tags[name] = &domain.Tag{ID: "tag-" + strconv.Itoa(r.nextID), Name: name}
	}
	return r
}

func (r *stubTagRepo) FindByName(_ context.Context, name string) (*domain.Tag, error) {
	if t, ok := r.tags[name]; ok {
		clone := *t
		return &clone, nil
	}
	return nil, domain.ErrTagNotFound
}

func (r *stubTagRepo) Create(_ context.Context, tag *domain.Tag) (*domain.Tag, error) {
	if _, exists := r.tags[tag.Name]; exists {
		return nil, domain.ErrTagExists
	}
	clone := *tag
	r.nextID++
	clone.ID = "tag-" + strconv.Itoa(r.nextID)
	stored := clone
	r.tags[clone.Name] = &stored
	return &clone, nil
}

func (r *stubTagRepo) List(_ context.Context) ([]*domain.Tag, error) {
	out := make([]*domain.Tag, 0, len(r.tags))
	for _, t := range r.tags {
		clone := *t
		out = append(out, &clone)
	}
	return out, nil
}

// stubThrottle counts failures in memory and locks out at the limit.
type stubThrottle struct {
	failures map[string]int
	limit    int
}

func newStubThrottle(limit int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), limit: limit}
}

func (t *stubThrottle) TooManyFailures(_ context.Context, identifier string) (bool, error) {
	return t.limit > 0 && t.failures[identifier] >= t.limit, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, identifier string) error {
	t.failures[identifier]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, identifier string) error {
	delete(t.failures, identifier)
	return nil
}

// brokenThrottle fails every call; the login path must survive it.
type brokenThrottle struct{}

func (brokenThrottle) TooManyFailures(context.Context, string) (bool, error) {
	return false, fmt.Errorf("redis down")
}
func (brokenThrottle) RecordFailure(context.Context, string) error { return fmt.Errorf("redis down") }
func (brokenThrottle) Reset(context.Context, string) error         { return fmt.Errorf("redis down") }
