package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func testContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestPaginationDefaults(t *testing.T) {
	page, size, skip := Pagination(testContext("/api/cars"))

	assert.Equal(t, 1, page)
	assert.Equal(t, 5, size)
	assert.Equal(t, 0, skip)
}

func TestPaginationFromQuery(t *testing.T) {
	page, size, skip := Pagination(testContext("/api/cars?page=3&size=10"))

	assert.Equal(t, 3, page)
	assert.Equal(t, 10, size)
	assert.Equal(t, 20, skip)
}

func TestPaginationIgnoresInvalidValues(t *testing.T) {
	page, size, skip := Pagination(testContext("/api/cars?page=-2&size=abc"))

	assert.Equal(t, 1, page)
	assert.Equal(t, 5, size)
	assert.Equal(t, 0, skip)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 5))
	assert.Equal(t, 1, TotalPages(5, 5))
	assert.Equal(t, 2, TotalPages(6, 5))
	assert.Equal(t, 0, TotalPages(10, 0))
}

func TestParseBoolParam(t *testing.T) {
	assert.Nil(t, ParseBoolParam(testContext("/api/cars"), "isAvailable"))
	assert.Nil(t, ParseBoolParam(testContext("/api/cars?isAvailable=maybe"), "isAvailable"))

	v := ParseBoolParam(testContext("/api/cars?isAvailable=true"), "isAvailable")
	if assert.NotNil(t, v) {
		assert.True(t, *v)
	}

	v = ParseBoolParam(testContext("/api/cars?isAvailable=false"), "isAvailable")
	if assert.NotNil(t, v) {
		assert.False(t, *v)
	}
}
