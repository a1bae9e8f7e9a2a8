package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cardealer/cardealer_backend/models"
	"github.com/cardealer/cardealer_backend/services"
	"github.com/cardealer/cardealer_backend/utils"
)

// CustomerController handles customer signup and the purchase flow
type CustomerController struct {
	users     UserStore
	purchases *services.PurchaseService
}

// NewCustomerController creates a new customer controller
func NewCustomerController(users UserStore, purchases *services.PurchaseService) *CustomerController {
	return &CustomerController{users: users, purchases: purchases}
}

// Signup registers a new customer account
func (cc *CustomerController) Signup(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.CustomerSignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Name, email and a password of at least 8 characters are required",
		})
	}

	if req.Password != req.ConfirmPassword {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Passwords do not match!",
		})
	}

	existing, err := cc.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to look up user",
		})
	}
	if existing != nil {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "User already exist!",
		})
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to hash password",
		})
	}

	user := &models.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    hashed,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Role:        models.RoleCustomer,
	}
	if err := cc.users.Create(ctx, user); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create user",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Customer account created successfully",
		Data: echo.Map{
			"name":  user.Name,
			"email": user.Email,
			"date":  user.CreatedAt,
		},
	})
}

// InitiatePurchase starts a payment for a car and returns the gateway link
func (cc *CustomerController) InitiatePurchase(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	customerID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Please provide valid credentials",
		})
	}

	carID, err := objectIDParam(c, "carId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid car ID format",
		})
	}

	paymentLink, err := cc.purchases.InitiatePurchase(ctx, customerID, carID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payment initiated successfully",
		Data: echo.Map{
			"payment_link": paymentLink,
		},
	})
}

// CompletePurchase verifies a payment reference and records the purchase
func (cc *CustomerController) CompletePurchase(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	customerID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Please provide valid credentials",
		})
	}

	var req models.CompletePurchaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}

	vin, err := cc.purchases.CompletePurchase(ctx, customerID, req.Reference)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Purchase completed successfully",
		Data: echo.Map{
			"vin": vin,
		},
	})
}

// GetPurchasedCar returns one entry from the customer's purchase log
func (cc *CustomerController) GetPurchasedCar(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	customerID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Please provide valid credentials",
		})
	}

	carID, err := objectIDParam(c, "carId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid car ID format",
		})
	}

	purchase, err := cc.purchases.GetPurchasedCar(ctx, customerID, carID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Car fetched successfully",
		Data: echo.Map{
			"price": purchase.Price,
			"vin":   purchase.VIN,
			"date":  purchase.Date,
		},
	})
}
