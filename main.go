package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/cardealer/cardealer_backend/config"
	"github.com/cardealer/cardealer_backend/controllers"
	"github.com/cardealer/cardealer_backend/middleware"
	"github.com/cardealer/cardealer_backend/repositories"
	"github.com/cardealer/cardealer_backend/routes"
	"github.com/cardealer/cardealer_backend/services"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// Connect to Redis
	config.ConnectRedis()
	defer config.CloseRedis()

	// Connect to database
	client := config.ConnectDB()
	db := client.Database(config.GetDatabaseName())

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.RateLimit())

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "Car Dealer Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	carRepo := repositories.NewCarRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)

	// Initialize services
	paystackService := services.NewPaystackService()
	inventoryService := services.NewInventoryService(carRepo, userRepo)
	purchaseService := services.NewPurchaseService(carRepo, userRepo, transactionRepo, paystackService)

	// Initialize controllers
	authController := controllers.NewAuthController(userRepo)
	customerController := controllers.NewCustomerController(userRepo, purchaseService)
	managerController := controllers.NewManagerController(userRepo, carRepo, inventoryService)
	adminController := controllers.NewAdminController(userRepo, carRepo, categoryRepo, inventoryService)
	categoryController := controllers.NewCategoryController(categoryRepo)
	carController := controllers.NewCarController(carRepo)

	// Register routes
	routes.RegisterAuthRoutes(e, authController)
	routes.RegisterCustomerRoutes(e, customerController)
	routes.RegisterManagerRoutes(e, managerController, categoryController)
	routes.RegisterAdminRoutes(e, adminController, categoryController)
	routes.RegisterCarRoutes(e, carController)

	// Start token blacklist cleanup
	go middleware.CleanupBlacklist()

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
