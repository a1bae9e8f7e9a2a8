package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/cardealer/cardealer_backend/models"
	"github.com/cardealer/cardealer_backend/utils"
)

// CarController handles the public car listing
type CarController struct {
	cars CarStore
}

// NewCarController creates a new car controller
func NewCarController(cars CarStore) *CarController {
	return &CarController{cars: cars}
}

// GetAllCars returns a paginated public listing, filterable by brand,
// model, price range and unit availability
func (cc *CarController) GetAllCars(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pageNumber, pageSize, skip := utils.Pagination(c)

	filter := bson.M{}
	if brand := c.QueryParam("brand"); brand != "" {
		filter["brand"] = brand
	}
	if model := c.QueryParam("model"); model != "" {
		filter["model"] = model
	}

	price := bson.M{}
	if minPrice := c.QueryParam("minPrice"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			price["$gte"] = v
		}
	}
	if maxPrice := c.QueryParam("maxPrice"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			price["$lte"] = v
		}
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if isAvailable := utils.ParseBoolParam(c, "isAvailable"); isAvailable != nil {
		filter["units"] = bson.M{"$elemMatch": bson.M{"isAvailable": *isAvailable}}
	}

	cars, err := cc.cars.Find(ctx, filter, skip, pageSize)
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

	totalCount, err := cc.cars.Count(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to count cars",
		})
	}

	listing := make([]echo.Map, 0, len(cars))
	for _, car := range cars {
		available := car.AvailableUnits()
		listing = append(listing, echo.Map{
			"id":               car.ID,
			"brand":            car.Brand,
			"model":            car.Model,
			"price":            car.Price,
			"category":         car.Category,
			"totalUnits":       len(car.Units),
			"availableUnits":   available,
			"unavailableUnits": len(car.Units) - available,
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
