package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/cardealer/cardealer_backend/controllers"
	"github.com/cardealer/cardealer_backend/middleware"
	"github.com/cardealer/cardealer_backend/models"
)

// RegisterCustomerRoutes sets up signup and the purchase flow
func RegisterCustomerRoutes(e *echo.Echo, customerController *controllers.CustomerController) {
	customers := e.Group("/api/customers")

	// Public routes (no auth required)
	customers.POST("/signup", customerController.Signup)

	// Customer protected routes
	protected := e.Group("/api/customers")
	protected.Use(middleware.JWTMiddleware())
	protected.Use(middleware.RequireRole(models.RoleCustomer, models.RoleAdmin))

	protected.POST("/initiate-payment/:carId", customerController.InitiatePurchase)
	protected.POST("/verify-payment", customerController.CompletePurchase)
	protected.GET("/car/:carId", customerController.GetPurchasedCar)
}
