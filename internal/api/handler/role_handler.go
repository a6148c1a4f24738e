package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/ports"
)

// RoleHandler handles role and permission-grant management.
type RoleHandler struct {
	roleService ports.RoleService
}

func NewRoleHandler(roleService ports.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

type createRoleRequest struct {
	Name string `json:"name" validate:"required,min=2,max=64"`
}

type assignPermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"required"`
}

type updatePermissionsRequest struct {
	Add    []string `json:"add,omitempty"`
	Remove []string `json:"remove,omitempty"`
}

// Create registers a new empty role.
//
// @Summary      Create a role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRoleRequest  true  "Role name"
// @Success      201   {object}  domain.Role
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/roles [post]
func (h *RoleHandler) Create(c echo.Context) error {
	var req createRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	role, err := h.roleService.Create(c.Request().Context(), req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrRoleExists) {
			return c.JSON(http.StatusConflict, errorResponse{Error: "role already exists"})
		}
		return err
	}
	return c.JSON(http.StatusCreated, role)
}

// List returns every role with its permission set.
//
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Role
// @Router       /v1/roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.roleService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

// Get returns a single role by id.
//
// @Summary      Get a role
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Role id"
// @Success      200  {object}  domain.Role
// @Failure      404  {object}  errorResponse
// @Router       /v1/roles/{id} [get]
func (h *RoleHandler) Get(c echo.Context) error {
	role, err := h.roleService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "role not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, role)
}

// AssignPermissions replaces a role's entire permission set.
//
// @Summary      Replace a role's permissions
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Role id"
// @Param        body  body      assignPermissionsRequest  true  "Full permission set"
// @Success      200   {object}  domain.Role
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/roles/{id}/permissions [put]
func (h *RoleHandler) AssignPermissions(c echo.Context) error {
	var req assignPermissionsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	role, err := h.roleService.AssignPermissions(c.Request().Context(), c.Param("id"), req.Permissions)
	if err != nil {
		return rolePermissionError(c, err)
	}
	return c.JSON(http.StatusOK, role)
}

// UpdatePermissions applies an incremental add/remove edit to a role's
// permission set. Removal wins when a name appears in both lists.
//
// @Summary      Update a role's permissions
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Role id"
// @Param        body  body      updatePermissionsRequest  true  "Names to add and remove"
// @Success      200   {object}  domain.Role
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/roles/{id}/permissions [patch]
func (h *RoleHandler) UpdatePermissions(c echo.Context) error {
	var req updatePermissionsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	role, err := h.roleService.UpdatePermissions(c.Request().Context(), c.Param("id"), req.Add, req.Remove)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyPermissionUpdate) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "nothing to add or remove"})
		}
		return rolePermissionError(c, err)
	}
	return c.JSON(http.StatusOK, role)
}

// rolePermissionError maps the errors shared by both permission edits.
// An unknown permission name inside an edit is a caller mistake, not a
// missing resource, so it renders as 400 rather than 404.
func rolePermissionError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrRoleNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "role not found"})
	case errors.Is(err, domain.ErrPermissionNotFound):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrPermissionNotAssigned):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrRoleConflict):
		return c.JSON(http.StatusConflict, errorResponse{Error: "role was modified concurrently, retry"})
	}
	return err
}
