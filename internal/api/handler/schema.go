package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskify/taskify-api/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Pagination ---

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// pagedResponse wraps any listing that supports pagination. TotalPages is
// never below 1, even for an empty collection.
type pagedResponse struct {
	Items      any   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
}

func newPagedResponse(items any, total int64, page ports.Pagination) pagedResponse {
	totalPages := (total + int64(page.PageSize) - 1) / int64(page.PageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	return pagedResponse{
		Items:      items,
		Total:      total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: totalPages,
	}
}

// parsePagination reads page/page_size query parameters, clamping out-of-range
// values instead of rejecting them.
func parsePagination(c echo.Context) ports.Pagination {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(c.QueryParam("page_size"))
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return ports.Pagination{Page: page, PageSize: size}
}

// parseActiveFilter reads the optional is_active query parameter.
// Returns nil when absent or unparsable, meaning no filter.
func parseActiveFilter(c echo.Context) *bool {
	raw := c.QueryParam("is_active")
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
