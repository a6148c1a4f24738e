package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/ports"
)

// PermissionHandler handles the standalone permission catalog.
type PermissionHandler struct {
	permissionService ports.PermissionService
}

func NewPermissionHandler(permissionService ports.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

type createPermissionRequest struct {
	Name string `json:"name" validate:"required,min=2,max=64"`
}

// Create registers a new permission name.
//
// @Summary      Create a permission
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPermissionRequest  true  "Permission name"
// @Success      201   {object}  domain.Permission
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/permissions [post]
func (h *PermissionHandler) Create(c echo.Context) error {
	var req createPermissionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	perm, err := h.permissionService.Create(c.Request().Context(), req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrPermissionExists) {
			return c.JSON(http.StatusConflict, errorResponse{Error: "permission already exists"})
		}
		return err
	}
	return c.JSON(http.StatusCreated, perm)
}

// List returns the full permission catalog.
//
// @Summary      List permissions
// @Tags         permissions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Permission
// @Router       /v1/permissions [get]
func (h *PermissionHandler) List(c echo.Context) error {
	perms, err := h.permissionService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, perms)
}
