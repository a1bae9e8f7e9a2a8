package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cardealer/cardealer_backend/models"
)

// Store contracts consumed by the services. All finders return (nil, nil)
// when no document matches; updates are single-document patches using the
// standard set/array operators. The mongo-backed implementations live in
// the repositories package; tests substitute in-memory fakes.

// UserStore is the persistence contract for the users collection.
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// FindCustomerPurchase matches a customer that holds a carsPurchased
	// entry for the given car.
	FindCustomerPurchase(ctx context.Context, userID, carID primitive.ObjectID) (*models.User, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error
	UpdateByEmail(ctx context.Context, email string, update bson.M) error
}

// CarStore is the persistence contract for the cars collection.
type CarStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error)
	// FindByVIN matches the car whose units contain the given VIN.
	FindByVIN(ctx context.Context, vin string) (*models.Car, error)
	// FindAssignable matches the car only if it has an available unit and no
	// assigned manager (and is not already held by managerID).
	FindAssignable(ctx context.Context, id, managerID primitive.ObjectID) (*models.Car, error)
	// FindAssignedTo matches the car only if managerID is its assigned manager.
	FindAssignedTo(ctx context.Context, id, managerID primitive.ObjectID) (*models.Car, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error
}

// TransactionStore is the persistence contract for the transactions collection.
type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	FindByReference(ctx context.Context, reference string) (*models.Transaction, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

// PaymentGateway is the external payment collaborator.
type PaymentGateway interface {
	InitializeTransaction(ctx context.Context, email string, amountMinor int64, metadata models.TransactionMetadata) (*models.PaystackInitData, error)
	VerifyTransaction(ctx context.Context, reference string) (*models.PaystackVerifyData, error)
}
