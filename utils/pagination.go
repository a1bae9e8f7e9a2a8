// utils/pagination.go
package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultPage     = 1
	defaultPageSize = 5
)

// Pagination extracts page/size query parameters with defaults and returns
// the page number, page size and document skip count.
func Pagination(c echo.Context) (pageNumber, pageSize, skip int) {
	pageNumber = defaultPage
	pageSize = defaultPageSize

	if raw := c.QueryParam("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			pageNumber = n
		}
	}
	if raw := c.QueryParam("size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			pageSize = n
		}
	}

	skip = (pageNumber - 1) * pageSize
	return pageNumber, pageSize, skip
}

// TotalPages computes the page count for a result set.
func TotalPages(totalCount int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(totalCount) / pageSize
	if int(totalCount)%pageSize != 0 {
		pages++
	}
	return pages
}

// ParseBoolParam parses an optional boolean query parameter; nil when absent
// or unparseable.
func ParseBoolParam(c echo.Context, name string) *bool {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
