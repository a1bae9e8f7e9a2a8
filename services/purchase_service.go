package services

import (
	"context"
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cardealer/cardealer_backend/models"
)

// PurchaseService drives a purchase attempt through the external payment
// gateway and the pending -> success transaction lifecycle.
type PurchaseService struct {
	cars         CarStore
	users        UserStore
	transactions TransactionStore
	gateway      PaymentGateway
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(cars CarStore, users UserStore, transactions TransactionStore, gateway PaymentGateway) *PurchaseService {
	return &PurchaseService{
		cars:         cars,
		users:        users,
		transactions: transactions,
		gateway:      gateway,
	}
}

// InitiatePurchase starts a payment for one unit of the car. The pending
// transaction is recorded only after the gateway accepts the initialize
// call; a gateway failure leaves no local state behind.
func (s *PurchaseService) InitiatePurchase(ctx context.Context, customerID, carID primitive.ObjectID) (string, error) {
	customer, err := s.users.FindByID(ctx, customerID)
	if err != nil {
		return "", err
	}
	if customer == nil {
		return "", NewNotFoundError("User not found")
	}

	car, err := s.cars.FindByID(ctx, carID)
	if err != nil {
		return "", err
	}
	if car == nil {
		return "", NewNotFoundError("Car not found")
	}

	if len(car.Units) < 1 {
		return "", NewConflictError("Car is out of stock")
	}

	metadata := models.TransactionMetadata{User: customer.ID, Car: car.ID}

	// amount goes to the gateway in minor units; round so fractional
	// prices are not truncated down a unit
	init, err := s.gateway.InitializeTransaction(ctx, customer.Email, int64(math.Round(car.Price*100)), metadata)
	if err != nil {
		return "", NewConflictError(err.Error())
	}

	now := time.Now()
	tx := &models.Transaction{
		Email:     customer.Email,
		Amount:    car.Price,
		Reference: init.Reference,
		Status:    models.StatusPending,
		Metadata:  metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return "", err
	}

	return init.AuthorizationURL, nil
}

// CompletePurchase verifies a payment by its gateway reference and, on
// success, consumes one available unit: the unit is flagged unavailable,
// the purchase is appended to the customer's log, and the transaction flips
// to success. Re-invoking with an already-consumed reference conflicts
// before anything is written. Returns the assigned VIN.
func (s *PurchaseService) CompletePurchase(ctx context.Context, customerID primitive.ObjectID, reference string) (string, error) {
	if strings.TrimSpace(reference) == "" {
		return "", NewValidationError("Reference is required!")
	}

	customer, err := s.users.FindByID(ctx, customerID)
	if err != nil {
		return "", err
	}
	if customer == nil {
		return "", NewNotFoundError("User not found")
	}

	verification, err := s.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		return "", NewConflictError(err.Error())
	}
	if verification.Status != "success" {
		return "", NewConflictError("Payment not successful")
	}

	tx, err := s.transactions.FindByReference(ctx, reference)
	if err != nil {
		return "", err
	}
	if tx == nil || tx.Metadata.Car.IsZero() {
		return "", NewNotFoundError("Transaction not found or already completed")
	}
	if tx.Status == models.StatusSuccess {
		return "", NewDuplicateError("Payment has been verified already")
	}

	car, err := s.cars.FindByID(ctx, tx.Metadata.Car)
	if err != nil {
		return "", err
	}
	if car == nil {
		return "", NewNotFoundError("Car not found!")
	}

	idx := -1
	for i, u := range car.Units {
		if u.IsAvailable {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", NewConflictError("No available unit found for this car")
	}

	vin := car.Units[idx].VIN
	car.Units[idx].IsAvailable = false
	now := time.Now()

	// Three independent single-document writes, ordered so a crash strands
	// a unit rather than double-selling it. Any failure is surfaced; no
	// partial success is reported as success.
	err = s.cars.UpdateByID(ctx, car.ID, bson.M{"$set": bson.M{
		"units":     car.Units,
		"updatedAt": now,
	}})
	if err != nil {
		return "", err
	}

	entry := models.PurchasedCar{
		Car:   car.ID,
		VIN:   vin,
		Price: car.Price,
		Date:  now,
	}
	err = s.users.UpdateByID(ctx, customer.ID, bson.M{
		"$push": bson.M{"carsPurchased": entry},
		"$set":  bson.M{"updatedAt": now},
	})
	if err != nil {
		return "", err
	}

	if err := s.transactions.UpdateStatus(ctx, tx.ID, models.StatusSuccess); err != nil {
		return "", err
	}

	return vin, nil
}

// GetPurchasedCar returns the customer's purchase entry for the car.
func (s *PurchaseService) GetPurchasedCar(ctx context.Context, customerID, carID primitive.ObjectID) (*models.PurchasedCar, error) {
	customer, err := s.users.FindCustomerPurchase(ctx, customerID, carID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, NewNotFoundError("Purchased car not found")
	}

	for i := range customer.CarsPurchased {
		if customer.CarsPurchased[i].Car == carID {
			return &customer.CarsPurchased[i], nil
		}
	}

	return nil, NewNotFoundError("Purchased car not found")
}
