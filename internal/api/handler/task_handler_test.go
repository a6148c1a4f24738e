package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskify/taskify-api/internal/api/middleware"
	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/ports"
)

type stubTaskService struct {
	createFn func(ctx context.Context, userID string, input ports.CreateTaskInput) (*domain.Task, error)
	listFn   func(ctx context.Context, userID string, filter ports.TaskFilter, page ports.Pagination) ([]*domain.Task, int64, error)
	getFn    func(ctx context.Context, id, userID string) (*domain.Task, error)
	updateFn func(ctx context.Context, id, userID string, input ports.UpdateTaskInput) (*domain.Task, error)
	deleteFn func(ctx context.Context, id, userID string) error
}

func (s *stubTaskService) Create(ctx context.Context, userID string, input ports.CreateTaskInput) (*domain.Task, error) {
	return s.createFn(ctx, userID, input)
}

func (s *stubTaskService) GetByID(ctx context.Context, id, userID string) (*domain.Task, error) {
	return s.getFn(ctx, id, userID)
}

func (s *stubTaskService) List(ctx context.Context, userID string, filter ports.TaskFilter, page ports.Pagination) ([]*domain.Task, int64, error) {
	return s.listFn(ctx, userID, filter, page)
}

func (s *stubTaskService) Update(ctx context.Context, id, userID string, input ports.UpdateTaskInput) (*domain.Task, error) {
	return s.updateFn(ctx, id, userID, input)
}

func (s *stubTaskService) Delete(ctx context.Context, id, userID string) error {
	return s.deleteFn(ctx, id, userID)
}

func withUser(c echo.Context, id string) {
	c.Set(middleware.UserKey, &domain.User{ID: id, Username: "alice", IsActive: true})
}

func TestTaskHandler_Create_Success(t *testing.T) {
	e := newEcho()
	stub := &stubTaskService{
		createFn: func(ctx context.Context, userID string, input ports.CreateTaskInput) (*domain.Task, error) {
			if userID != "u1" {
				t.Fatalf("expected owner u1, got %q", userID)
			}
			if input.Title != "write report" || len(input.TagNames) != 2 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Task{ID: "t1", Title: input.Title, Status: domain.StatusPending, Priority: domain.PriorityHigh, UserID: userID, Tags: input.TagNames}, nil
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newJSONContext(e, http.MethodPost, "/v1/tasks", `{"title":"write report","priority":"high","tags":["work","urgent"]}`)
	withUser(c, "u1")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestTaskHandler_Create_InvalidPriority(t *testing.T) {
	e := newEcho()
	stub := &stubTaskService{
		createFn: func(ctx context.Context, userID string, input ports.CreateTaskInput) (*domain.Task, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newJSONContext(e, http.MethodPost, "/v1/tasks", `{"title":"x","priority":"urgent"}`)
	withUser(c, "u1")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTaskHandler_List_PaginationEnvelope(t *testing.T) {
	e := newEcho()
	stub := &stubTaskService{
		listFn: func(ctx context.Context, userID string, filter ports.TaskFilter, page ports.Pagination) ([]*domain.Task, int64, error) {
			if page.Page != 2 || page.PageSize != 5 {
				t.Fatalf("unexpected pagination: %+v", page)
			}
			if filter.Status != domain.StatusPending {
				t.Fatalf("expected pending status filter, got %+v", filter)
			}
			return []*domain.Task{{ID: "t6", UserID: userID}}, 11, nil
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newJSONContext(e, http.MethodGet, "/v1/tasks?page=2&page_size=5&status=pending", "")
	withUser(c, "u1")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["total"] != float64(11) || resp["page"] != float64(2) || resp["page_size"] != float64(5) {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if resp["total_pages"] != float64(3) {
		t.Fatalf("expected 3 total pages, got %v", resp["total_pages"])
	}
}

func TestTaskHandler_List_EmptyCollectionHasOnePage(t *testing.T) {
	e := newEcho()
	stub := &stubTaskService{
		listFn: func(ctx context.Context, userID string, filter ports.TaskFilter, page ports.Pagination) ([]*domain.Task, int64, error) {
			return nil, 0, nil
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newJSONContext(e, http.MethodGet, "/v1/tasks", "")
	withUser(c, "u1")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["total_pages"] != float64(1) {
		t.Fatalf("expected 1 total page for empty collection, got %v", resp["total_pages"])
	}
}

func TestTaskHandler_List_ClampsPagination(t *testing.T) {
	e := newEcho()
	stub := &stubTaskService{
		listFn: func(ctx context.Context, userID string, filter ports.TaskFilter, page ports.Pagination) ([]*domain.Task, int64, error) {
			if page.Page != 1 {
				t.Fatalf("expected page clamped to 1, got %d", page.Page)
			}
			if page.PageSize != maxPageSize {
				t.Fatalf("expected page size clamped to %d, got %d", maxPageSize, page.PageSize)
			}
			return nil, 0, nil
		},
	}
	handler := NewTaskHandler(stub)

	c, _ := newJSONContext(e, http.MethodGet, "/v1/tasks?page=-3&page_size=9999", "")
	withUser(c, "u1")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestTaskHandler_List_InvalidStatusFilter(t *testing.T) {
	e := newEcho()
	stub := &stubTaskService{
		listFn: func(ctx context.Context, userID string, filter ports.TaskFilter, page ports.Pagination) ([]*domain.Task, int64, error) {
			t.Fatalf("service should not be called")
			return nil, 0, nil
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newJSONContext(e, http.MethodGet, "/v1/tasks?status=done", "")
	withUser(c, "u1")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTaskHandler_Get_NotFound(t *testing.T) {
	e := newEcho()
	stub := &stubTaskService{
		getFn: func(ctx context.Context, id, userID string) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newJSONContext(e, http.MethodGet, "/v1/tasks/t-other", "")
	c.SetParamNames("id")
	c.SetParamValues("t-other")
	withUser(c, "u1")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTaskHandler_Delete_Success(t *testing.T) {
	e := newEcho()
	stub := &stubTaskService{
		deleteFn: func(ctx context.Context, id, userID string) error {
			if id != "t1" || userID != "u1" {
				t.Fatalf("unexpected args: %q %q", id, userID)
			}
			return nil
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := newJSONContext(e, http.MethodDelete, "/v1/tasks/t1", "")
	c.SetParamNames("id")
	c.SetParamValues("t1")
	withUser(c, "u1")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
