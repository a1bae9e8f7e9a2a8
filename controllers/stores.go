package controllers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cardealer/cardealer_backend/models"
)

// Persistence consumed at the HTTP boundary. The mongo-backed
// implementations live in the repositories package; handler tests
// substitute in-memory fakes.

// UserStore is the users persistence consumed by the controllers.
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateByEmail(ctx context.Context, email string, update bson.M) error
	Find(ctx context.Context, filter bson.M, skip, limit int) ([]models.User, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
}

// CarStore is the cars persistence consumed by the controllers.
type CarStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error)
	FindByBrandModel(ctx context.Context, brand, model string) (*models.Car, error)
	FindAssignedTo(ctx context.Context, id, managerID primitive.ObjectID) (*models.Car, error)
	Create(ctx context.Context, car *models.Car) error
	UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error
	Find(ctx context.Context, filter bson.M, skip, limit int) ([]models.Car, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
}

// CategoryStore is the categories persistence consumed by the controllers.
type CategoryStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	Find(ctx context.Context, skip, limit int) ([]models.Category, error)
	Count(ctx context.Context) (int64, error)
}
