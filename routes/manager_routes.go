package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/cardealer/cardealer_backend/controllers"
	"github.com/cardealer/cardealer_backend/middleware"
	"github.com/cardealer/cardealer_backend/models"
)

// RegisterManagerRoutes sets up manager signup, profile and assigned-car routes
func RegisterManagerRoutes(e *echo.Echo, managerController *controllers.ManagerController, categoryController *controllers.CategoryController) {
	managers := e.Group("/api/managers")

	// Public routes (no auth required)
	managers.POST("/signup", managerController.Signup)

	// Manager protected routes
	protected := e.Group("/api/managers")
	protected.Use(middleware.JWTMiddleware())
	protected.Use(middleware.RequireRole(models.RoleManager, models.RoleAdmin))

	protected.PATCH("/profile/:email", managerController.UpdateProfile)
	protected.GET("/cars", managerController.GetAllCars)
	protected.GET("/car/:carId", managerController.GetCar)
	protected.PATCH("/update-car/:carId", managerController.UpdateCar)
	protected.GET("/categories", categoryController.GetAllCategories)
}
