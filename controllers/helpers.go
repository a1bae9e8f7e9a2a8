package controllers

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cardealer/cardealer_backend/middleware"
	"github.com/cardealer/cardealer_backend/models"
	"github.com/cardealer/cardealer_backend/services"
)

// respondServiceError maps a typed service error onto the response envelope.
// Unexpected errors are logged and surfaced as a generic 500.
func respondServiceError(c echo.Context, err error) error {
	if svcErr, ok := services.AsServiceError(err); ok {
		return c.JSON(svcErr.Status, models.Response{
			Status:  svcErr.Status,
			Message: svcErr.Message,
		})
	}

	log.Printf("unexpected error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	return c.JSON(http.StatusInternalServerError, models.Response{
		Status:  http.StatusInternalServerError,
		Message: "Something went wrong",
	})
}

// currentUserID returns the authenticated principal's ObjectID.
func currentUserID(c echo.Context) (primitive.ObjectID, error) {
	userID, err := middleware.ExtractUserID(c)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return primitive.ObjectIDFromHex(userID)
}

// objectIDParam parses an ObjectID route parameter.
func objectIDParam(c echo.Context, name string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.Param(name))
}
