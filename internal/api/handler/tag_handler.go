package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/ports"
)

// TagHandler handles the shared tag catalog and tag-scoped task lookup.
type TagHandler struct {
	tagService ports.TagService
}

func NewTagHandler(tagService ports.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

type createTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=64"`
}

// Create registers a new tag name.
//
// @Summary      Create a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTagRequest  true  "Tag name"
// @Success      201   {object}  domain.Tag
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/tags [post]
func (h *TagHandler) Create(c echo.Context) error {
	var req createTagRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	tag, err := h.tagService.Create(c.Request().Context(), req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrTagExists) {
			return c.JSON(http.StatusConflict, errorResponse{Error: "tag already exists"})
		}
		return err
	}
	return c.JSON(http.StatusCreated, tag)
}

// List returns every tag.
//
// @Summary      List tags
// @Tags         tags
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Tag
// @Router       /v1/tags [get]
func (h *TagHandler) List(c echo.Context) error {
	tags, err := h.tagService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tags)
}

// Tasks returns the caller's tasks carrying the named tag.
//
// @Summary      List tasks by tag
// @Tags         tags
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Tag name"
// @Success      200   {array}   domain.Task
// @Failure      404   {object}  errorResponse
// @Router       /v1/tags/{name}/tasks [get]
func (h *TagHandler) Tasks(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	tasks, err := h.tagService.TasksByTag(c.Request().Context(), c.Param("name"), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrTagNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "tag not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}
