package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/cardealer/cardealer_backend/controllers"
)

// RegisterCarRoutes sets up the public car listing
func RegisterCarRoutes(e *echo.Echo, carController *controllers.CarController) {
	cars := e.Group("/api/cars")

	cars.GET("", carController.GetAllCars)
}
