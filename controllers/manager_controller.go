package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/cardealer/cardealer_backend/models"
	"github.com/cardealer/cardealer_backend/services"
	"github.com/cardealer/cardealer_backend/utils"
)

// ManagerController handles manager signup, profile updates and the
// manager's view of assigned cars
type ManagerController struct {
	users     UserStore
	cars      CarStore
	inventory *services.InventoryService
}

// NewManagerController creates a new manager controller
func NewManagerController(users UserStore, cars CarStore, inventory *services.InventoryService) *ManagerController {
	return &ManagerController{users: users, cars: cars, inventory: inventory}
}

// Signup registers a new manager account. Accounts start inactive and
// must be approved by an admin before cars can be assigned.
func (mc *ManagerController) Signup(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.ManagerSignupRequest
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

	existing, err := mc.users.FindByEmail(ctx, req.Email)
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
		Name:            req.Name,
		Email:           req.Email,
		Password:        hashed,
		PhoneNumber:     req.PhoneNumber,
		Address:         req.Address,
		Role:            models.RoleManager,
		Qualifications:  req.Qualifications,
		YearsExperience: req.YearsExperience,
		IsActive:        false,
	}
	if err := mc.users.Create(ctx, user); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create user",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Manager account created successfully, pending approval",
		Data: echo.Map{
			"name":  user.Name,
			"email": user.Email,
			"date":  user.CreatedAt,
		},
	})
}

// UpdateProfile applies a partial update to a manager's profile.
// Qualifications are appended, not replaced.
func (mc *ManagerController) UpdateProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(c.Param("email")))

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}

	set := bson.M{}
	if req.PhoneNumber != "" {
		set["phoneNumber"] = req.PhoneNumber
	}
	if req.Address != "" {
		set["address"] = req.Address
	}

	update := bson.M{}
	if len(set) > 0 {
		set["updatedAt"] = time.Now()
		update["$set"] = set
	}
	if len(req.Qualifications) > 0 {
		update["$addToSet"] = bson.M{
			"qualifications": bson.M{"$each": req.Qualifications},
		}
	}
	if len(update) == 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "No update data provided!",
		})
	}

	manager, err := mc.users.FindByEmail(ctx, email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to look up manager",
		})
	}
	if manager == nil || manager.Role != models.RoleManager {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Manager not found!",
		})
	}

	if err := mc.users.UpdateByEmail(ctx, email, update); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update profile",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Profile updated successfully",
	})
}

// GetCar returns one of the manager's assigned cars
func (mc *ManagerController) GetCar(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	managerID, err := currentUserID(c)
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

	car, err := mc.cars.FindByID(ctx, carID)
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

	assigned, err := mc.cars.FindAssignedTo(ctx, carID, managerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to look up car",
		})
	}
	if assigned == nil {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "You are not authorized to view this car.",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Car fetched successfully",
		Data: echo.Map{
			"brand": assigned.Brand,
			"model": assigned.Model,
			"price": assigned.Price,
			"units": assigned.Units,
		},
	})
}

// GetAllCars returns a paginated listing of the manager's assigned cars,
// optionally filtered by unit availability
func (mc *ManagerController) GetAllCars(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	managerID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Please provide valid credentials",
		})
	}

	pageNumber, pageSize, skip := utils.Pagination(c)

	filter := bson.M{"assignedManager": managerID}
	if isAvailable := utils.ParseBoolParam(c, "isAvailable"); isAvailable != nil {
		filter["units"] = bson.M{"$elemMatch": bson.M{"isAvailable": *isAvailable}}
	}

	cars, err := mc.cars.Find(ctx, filter, skip, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch cars",
		})
	}
	if len(cars) == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "No cars found!",
		})
	}

	totalCount, err := mc.cars.Count(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to count cars",
		})
	}

	listing := make([]echo.Map, 0, len(cars))
	for _, car := range cars {
		listing = append(listing, echo.Map{
			"id":             car.ID,
			"brand":          car.Brand,
			"model":          car.Model,
			"price":          car.Price,
			"units":          car.Units,
			"totalUnits":     len(car.Units),
			"availableUnits": car.AvailableUnits(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Cars fetched successfully",
		Data: echo.Map{
			"totalCars": totalCount,
			"cars":      listing,
		},
		Pagination: &models.Pagination{
			TotalPages:  utils.TotalPages(totalCount, pageSize),
			CurrentPage: pageNumber,
			PageSize:    pageSize,
		},
	})
}

// UpdateCar marks one unit of an assigned car as sold
func (mc *ManagerController) UpdateCar(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	managerID, err := currentUserID(c)
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

	var req models.UpdateCarUnitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Car VIN is required!",
		})
	}

	result, err := mc.inventory.MarkUnitSold(ctx, carID, req.VIN, managerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Car unit updated successfully",
		Data:    result,
	})
}
