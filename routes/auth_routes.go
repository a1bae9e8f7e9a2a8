package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/cardealer/cardealer_backend/controllers"
	"github.com/cardealer/cardealer_backend/middleware"
)

// RegisterAuthRoutes sets up login, logout and password reset routes
func RegisterAuthRoutes(e *echo.Echo, authController *controllers.AuthController) {
	auth := e.Group("/api/auth")

	// Public routes (no auth required)
	auth.POST("/login", authController.Login)
	auth.POST("/forget-password", authController.ForgotPassword)
	auth.POST("/reset-password", authController.ResetPassword)

	// Logout needs the presented token so it can be blacklisted
	protected := e.Group("/api/auth")
	protected.Use(middleware.JWTMiddleware())
	protected.POST("/logout", authController.Logout)
}
