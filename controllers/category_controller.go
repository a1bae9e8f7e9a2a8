package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cardealer/cardealer_backend/models"
	"github.com/cardealer/cardealer_backend/utils"
)

// CategoryController handles the category taxonomy
type CategoryController struct {
	categories CategoryStore
}

// NewCategoryController creates a new category controller
func NewCategoryController(categories CategoryStore) *CategoryController {
	return &CategoryController{categories: categories}
}

// CreateCategory adds a new category with a generated slug
func (cc *CategoryController) CreateCategory(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Category name is required",
		})
	}

	existing, err := cc.categories.FindByName(ctx, req.Name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to look up category",
		})
	}
	if existing != nil {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Category already exist!",
		})
	}

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
		Order:       req.Order,
		Slug:        utils.GenerateSlug(req.Name),
	}
	if err := cc.categories.Create(ctx, category); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create category",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "New category added successfully",
		Data: echo.Map{
			"name": category.Name,
			"slug": category.Slug,
		},
	})
}

// GetAllCategories returns a paginated category listing
func (cc *CategoryController) GetAllCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pageNumber, pageSize, skip := utils.Pagination(c)

	categories, err := cc.categories.Find(ctx, skip, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch categories",
		})
	}
	if len(categories) == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "No categories found!",
		})
	}

	totalCount, err := cc.categories.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to count categories",
		})
	}

	listing := make([]echo.Map, 0, len(categories))
	for _, category := range categories {
		listing = append(listing, echo.Map{
			"name":        category.Name,
			"description": category.Description,
			"order":       category.Order,
			"slug":        category.Slug,
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Categories fetched successfully",
		Data: echo.Map{
			"totalCount": totalCount,
			"categories": listing,
		},
		Pagination: &models.Pagination{
			TotalPages:  utils.TotalPages(totalCount, pageSize),
			CurrentPage: pageNumber,
			PageSize:    pageSize,
		},
	})
}

// GetCategory returns a single category by ID
func (cc *CategoryController) GetCategory(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	categoryID, err := objectIDParam(c, "categoryId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid category ID format",
		})
	}

	category, err := cc.categories.FindByID(ctx, categoryID)
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

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Category fetched successfully",
		Data:    category,
	})
}

// DeleteCategory removes a category by ID
func (cc *CategoryController) DeleteCategory(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	categoryID, err := objectIDParam(c, "categoryId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid category ID format",
		})
	}

	category, err := cc.categories.FindByID(ctx, categoryID)
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

	if err := cc.categories.DeleteByID(ctx, categoryID); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete category",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Category deleted successfully",
	})
}
