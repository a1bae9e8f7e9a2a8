package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cardealer/cardealer_backend/models"
)

// In-memory store fakes. Finders return copies so assertions only see
// state that went through an update, mirroring the mongo-backed stores.

type fakeUserStore struct {
	byID map[primitive.ObjectID]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{byID: make(map[primitive.ObjectID]*models.User)}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		s.byID[u.ID] = u
	}
	return s
}

func copyUser(u *models.User) *models.User {
	cp := *u
	cp.CarsAssigned = append([]primitive.ObjectID(nil), u.CarsAssigned...)
	cp.CarsPurchased = append([]models.PurchasedCar(nil), u.CarsPurchased...)
	return &cp
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.byID {
		if strings.EqualFold(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) FindCustomerPurchase(_ context.Context, userID, carID primitive.ObjectID) (*models.User, error) {
	u, ok := s.byID[userID]
	if !ok {
		return nil, nil
	}
	for _, p := range u.CarsPurchased {
		if p.Car == carID {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) UpdateByID(_ context.Context, id primitive.ObjectID, update bson.M) error {
	if u, ok := s.byID[id]; ok {
		applyUserUpdate(u, update)
	}
	return nil
}

func (s *fakeUserStore) UpdateByEmail(_ context.Context, email string, update bson.M) error {
	for _, u := range s.byID {
		if strings.EqualFold(u.Email, email) {
			applyUserUpdate(u, update)
			return nil
		}
	}
	return nil
}

func applyUserUpdate(u *models.User, update bson.M) {
	if set, ok := update["$set"].(bson.M); ok {
		for field, value := range set {
			switch field {
			case "isActive":
				u.IsActive = value.(bool)
			case "hireDate":
				hireDate := value.(time.Time)
				u.HireDate = &hireDate
			case "updatedAt":
				u.UpdatedAt = value.(time.Time)
			}
		}
	}
	if push, ok := update["$push"].(bson.M); ok {
		if entry, ok := push["carsPurchased"].(models.PurchasedCar); ok {
			u.CarsPurchased = append(u.CarsPurchased, entry)
		}
	}
	if pull, ok := update["$pull"].(bson.M); ok {
		if carID, ok := pull["carsAssigned"].(primitive.ObjectID); ok {
			kept := u.CarsAssigned[:0]
			for _, id := range u.CarsAssigned {
				if id != carID {
					kept = append(kept, id)
				}
			}
			u.CarsAssigned = kept
		}
	}
	if addToSet, ok := update["$addToSet"].(bson.M); ok {
		if carID, ok := addToSet["carsAssigned"].(primitive.ObjectID); ok {
			present := false
			for _, id := range u.CarsAssigned {
				if id == carID {
					present = true
					break
				}
			}
			if !present {
				u.CarsAssigned = append(u.CarsAssigned, carID)
			}
		}
	}
}

type fakeCarStore struct {
	byID map[primitive.ObjectID]*models.Car
}

func newFakeCarStore(cars ...*models.Car) *fakeCarStore {
	s := &fakeCarStore{byID: make(map[primitive.ObjectID]*models.Car)}
	for _, c := range cars {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		s.byID[c.ID] = c
	}
	return s
}

func copyCar(c *models.Car) *models.Car {
	cp := *c
	cp.Units = append([]models.CarUnit(nil), c.Units...)
	if c.AssignedManager != nil {
		manager := *c.AssignedManager
		cp.AssignedManager = &manager
	}
	return &cp
}

func (s *fakeCarStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Car, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return copyCar(c), nil
}

func (s *fakeCarStore) FindByVIN(_ context.Context, vin string) (*models.Car, error) {
	for _, c := range s.byID {
		for _, u := range c.Units {
			if u.VIN == vin {
				return copyCar(c), nil
			}
		}
	}
	return nil, nil
}

func (s *fakeCarStore) FindAssignable(_ context.Context, id, _ primitive.ObjectID) (*models.Car, error) {
	c, ok := s.byID[id]
	if !ok || c.AssignedManager != nil || c.AvailableUnits() == 0 {
		return nil, nil
	}
	return copyCar(c), nil
}

func (s *fakeCarStore) FindAssignedTo(_ context.Context, id, managerID primitive.ObjectID) (*models.Car, error) {
	c, ok := s.byID[id]
	if !ok || c.AssignedManager == nil || *c.AssignedManager != managerID {
		return nil, nil
	}
	return copyCar(c), nil
}

func (s *fakeCarStore) UpdateByID(_ context.Context, id primitive.ObjectID, update bson.M) error {
	c, ok := s.byID[id]
	if !ok {
		return nil
	}
	if set, ok := update["$set"].(bson.M); ok {
		for field, value := range set {
			switch field {
			case "units":
				c.Units = append([]models.CarUnit(nil), value.([]models.CarUnit)...)
			case "assignedManager":
				if value == nil {
					c.AssignedManager = nil
				} else {
					manager := value.(primitive.ObjectID)
					c.AssignedManager = &manager
				}
			case "updatedAt":
				c.UpdatedAt = value.(time.Time)
			}
		}
	}
	return nil
}

type fakeTransactionStore struct {
	byRef map[string]*models.Transaction
}

func newFakeTransactionStore(txs ...*models.Transaction) *fakeTransactionStore {
	s := &fakeTransactionStore{byRef: make(map[string]*models.Transaction)}
	for _, tx := range txs {
		if tx.ID.IsZero() {
			tx.ID = primitive.NewObjectID()
		}
		s.byRef[tx.Reference] = tx
	}
	return s
}

func (s *fakeTransactionStore) Create(_ context.Context, tx *models.Transaction) error {
	if tx.ID.IsZero() {
		tx.ID = primitive.NewObjectID()
	}
	stored := *tx
	s.byRef[tx.Reference] = &stored
	return nil
}

func (s *fakeTransactionStore) FindByReference(_ context.Context, reference string) (*models.Transaction, error) {
	tx, ok := s.byRef[reference]
	if !ok {
		return nil, nil
	}
	cp := *tx
	return &cp, nil
}

func (s *fakeTransactionStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) error {
	for _, tx := range s.byRef {
		if tx.ID == id {
			tx.Status = status
			tx.UpdatedAt = time.Now()
		}
	}
	return nil
}

type fakeGateway struct {
	initData  *models.PaystackInitData
	initErr   error
	initCalls int

	lastEmail  string
	lastAmount int64

	verifyData *models.PaystackVerifyData
	verifyErr  error
}

func (g *fakeGateway) InitializeTransaction(_ context.Context, email string, amountMinor int64, _ models.TransactionMetadata) (*models.PaystackInitData, error) {
	g.initCalls++
	g.lastEmail = email
	g.lastAmount = amountMinor
	if g.initErr != nil {
		return nil, g.initErr
	}
	return g.initData, nil
}

func (g *fakeGateway) VerifyTransaction(_ context.Context, _ string) (*models.PaystackVerifyData, error) {
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	return g.verifyData, nil
}
