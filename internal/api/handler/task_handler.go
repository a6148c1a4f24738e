package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskify/taskify-api/internal/api/metrics"
	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/ports"
)

// TaskHandler handles owner-scoped task CRUD. Every operation acts on
// behalf of the authenticated user; other users' tasks are invisible.
type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type createTaskRequest struct {
	Title       string   `json:"title"       validate:"required,min=1,max=200"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status,omitempty"   validate:"omitempty,oneof=pending in_progress completed"`
	Priority    string   `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Tags        []string `json:"tags,omitempty"`
}

type updateTaskRequest struct {
	Title       *string   `json:"title,omitempty"    validate:"omitempty,min=1,max=200"`
	Description *string   `json:"description,omitempty"`
	Status      *string   `json:"status,omitempty"   validate:"omitempty,oneof=pending in_progress completed"`
	Priority    *string   `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Tags        *[]string `json:"tags,omitempty"`
}

// Create adds a task owned by the caller.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	task, err := h.taskService.Create(c.Request().Context(), user.ID, ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		TagNames:    req.Tags,
	})
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(task.Priority)).Inc()

	return c.JSON(http.StatusCreated, task)
}

// List pages through the caller's tasks, optionally filtered by status
// and priority. An invalid filter value is rejected rather than ignored.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int     false  "Page number (1-based)"
// @Param        page_size  query     int     false  "Page size (max 100)"
// @Param        status     query     string  false  "Filter by status"
// @Param        priority   query     string  false  "Filter by priority"
// @Success      200        {object}  pagedResponse
// @Failure      400        {object}  errorResponse
// @Router       /v1/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var filter ports.TaskFilter
	if raw := c.QueryParam("status"); raw != "" {
		status := domain.TaskStatus(raw)
		if !status.Valid() {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid status filter"})
		}
		filter.Status = status
	}
	if raw := c.QueryParam("priority"); raw != "" {
		priority := domain.TaskPriority(raw)
		if !priority.Valid() {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid priority filter"})
		}
		filter.Priority = priority
	}

	page := parsePagination(c)
	tasks, total, err := h.taskService.List(c.Request().Context(), user.ID, filter, page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newPagedResponse(tasks, total, page))
}

// Get returns one of the caller's tasks by id.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  domain.Task
// @Failure      404  {object}  errorResponse
// @Router       /v1/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetByID(c.Request().Context(), c.Param("id"), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "task not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Update applies a partial edit to one of the caller's tasks.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  domain.Task
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/tasks/{id} [patch]
func (h *TaskHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	input := ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		TagNames:    req.Tags,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	task, err := h.taskService.Update(c.Request().Context(), c.Param("id"), user.ID, input)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "task not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Delete removes one of the caller's tasks.
//
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id  path  string  true  "Task id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.taskService.Delete(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "task not found"})
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
