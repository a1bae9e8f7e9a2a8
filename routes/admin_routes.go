package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/cardealer/cardealer_backend/controllers"
	"github.com/cardealer/cardealer_backend/middleware"
	"github.com/cardealer/cardealer_backend/models"
)

// RegisterAdminRoutes sets up user administration, inventory management
// and the category taxonomy
func RegisterAdminRoutes(e *echo.Echo, adminController *controllers.AdminController, categoryController *controllers.CategoryController) {
	admin := e.Group("/api/admin")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.RequireRole(models.RoleAdmin))

	// User administration
	admin.GET("/users", adminController.GetUsers)
	admin.GET("/user/:userId", adminController.GetUser)
	admin.PATCH("/approve-manager/:managerId", adminController.ApproveManager)

	// Inventory management
	admin.POST("/car/new", adminController.AddCar)
	admin.GET("/car/:carId", adminController.GetCar)
	admin.PATCH("/remove-car", adminController.RemoveCar)
	admin.PATCH("/assign-car/:carId", adminController.AssignCar)

	// Category taxonomy
	admin.POST("/category/new", categoryController.CreateCategory)
	admin.GET("/categories", categoryController.GetAllCategories)
	admin.GET("/category/:categoryId", categoryController.GetCategory)
	admin.DELETE("/category/:categoryId", categoryController.DeleteCategory)
}
