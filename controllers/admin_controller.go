package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/cardealer/cardealer_backend/models"
	"github.com/cardealer/cardealer_backend/services"
	"github.com/cardealer/cardealer_backend/utils"
)

// AdminController handles user administration and inventory management
type AdminController struct {
	users      UserStore
	cars       CarStore
	categories CategoryStore
	inventory  *services.InventoryService
}

// NewAdminController creates a new admin controller
func NewAdminController(users UserStore, cars CarStore, categories CategoryStore, inventory *services.InventoryService) *AdminController {
	return &AdminController{users: users, cars: cars, categories: categories, inventory: inventory}
}

// GetUsers returns a paginated listing of all accounts
func (ac *AdminController) GetUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pageNumber, pageSize, skip := utils.Pagination(c)

	users, err := ac.users.Find(ctx, bson.M{}, skip, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch users",
		})
	}
	if len(users) == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "No users found!",
		})
	}

	totalCount, err := ac.users.Count(ctx, bson.M{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to count users",
		})
	}

	listing := make([]echo.Map, 0, len(users))
	for _, user := range users {
		listing = append(listing, echo.Map{
			"name":        user.Name,
			"phoneNumber": user.PhoneNumber,
			"role":        user.Role,
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Users fetched successfully",
		Data: echo.Map{
			"totalUsers": totalCount,
			"users":      listing,
		},
		Pagination: &models.Pagination{
			TotalPages:  utils.TotalPages(totalCount, pageSize),
			CurrentPage: pageNumber,
			PageSize:    pageSize,
		},
	})
}

// GetUser returns a single account by ID
func (ac *AdminController) GetUser(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := objectIDParam(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid user ID format",
		})
	}

	user, err := ac.users.FindByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to look up user",
		})
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found!",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "User fetched successfully",
		Data: echo.Map{
			"name":        user.Name,
			"email":       user.Email,
			"phoneNumber": user.PhoneNumber,
			"role":        user.Role,
		},
	})
}

// AddCar adds a new unit with a generated VIN. When a car with the same
// brand and model already exists the unit is merged into it, otherwise a
// new car document is created.
func (ac *AdminController) AddCar(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.AddCarRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Brand, model, a positive price and category are required",
		})
	}

	category, err := ac.categories.FindBySlug(ctx, req.Category)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to look up category",
		})
	}
	if category == nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Category not found!",
		})
	}

	vin, err := utils.GenerateVIN()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate VIN",
		})
	}
	unit := models.CarUnit{VIN: vin, IsAvailable: true}

	existing, err := ac.cars.FindByBrandModel(ctx, req.Brand, req.Model)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to look up car",
		})
	}

	if existing != nil {
		err = ac.cars.UpdateByID(ctx, existing.ID, bson.M{
			"$push": bson.M{"units": unit},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to add car unit",
			})
		}

		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Car unit added successfully",
			Data: echo.Map{
				"brand": existing.Brand,
				"model": existing.Model,
				"price": existing.Price,
				"units": len(existing.Units) + 1,
			},
		})
	}

	car := &models.Car{
		Brand:    req.Brand,
		Model:    req.Model,
		Price:    req.Price,
		Units:    []models.CarUnit{unit},
		Category: category.ID,
	}
	if err := ac.cars.Create(ctx, car); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to add car",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "New car added successfully",
		Data: echo.Map{
			"brand": car.Brand,
			"model": car.Model,
			"price": car.Price,
			"units": len(car.Units),
		},
	})
}

// GetCar returns a single car document by ID
func (ac *AdminController) GetCar(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	carID, err := objectIDParam(c, "carId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid car ID format",
		})
	}

	car, err := ac.cars.FindByID(ctx, carID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to look up car",
		})
	}
	if car == nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Car not found!",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Car fetched successfully",
		Data:    car,
	})
}

// RemoveCar removes one unit by VIN
func (ac *AdminController) RemoveCar(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.RemoveCarUnitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}

	if err := ac.inventory.RemoveUnit(ctx, req.VIN); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Car unit removed successfully",
	})
}

// ApproveManager activates a pending manager account
func (ac *AdminController) ApproveManager(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	managerID, err := objectIDParam(c, "managerId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid manager ID format",
		})
	}

	name, err := ac.inventory.ApproveManager(ctx, managerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: fmt.Sprintf("%s approved as manager successfully", name),
	})
}

// AssignCar assigns an unassigned car to an active manager
func (ac *AdminController) AssignCar(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	carID, err := objectIDParam(c, "carId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid car ID format",
		})
	}

	var req models.AssignCarRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}

	result, err := ac.inventory.AssignCar(ctx, carID, req.Email)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Car assigned to manager successfully",
		Data:    result,
	})
}
