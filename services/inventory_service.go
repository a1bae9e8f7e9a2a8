package services

import (
	"fmt"
	"strings"
	"time"

	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cardealer/cardealer_backend/models"
)

// InventoryService enforces the invariants linking a car's units and
// assignedManager to a manager's carsAssigned list.
type InventoryService struct {
	cars  CarStore
	users UserStore
}

// NewInventoryService creates a new inventory service
func NewInventoryService(cars CarStore, users UserStore) *InventoryService {
	return &InventoryService{cars: cars, users: users}
}

// AssignCarResult is returned by AssignCar.
type AssignCarResult struct {
	Name         string               `json:"name"`
	CarsAssigned []primitive.ObjectID `json:"carsAssigned"`
	Date         time.Time            `json:"date"`
}

// SoldUnitResult is returned by MarkUnitSold.
type SoldUnitResult struct {
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	VIN         string `json:"vin"`
	IsAvailable bool   `json:"isAvailable"`
}

// RemoveUnit removes the unit with the given VIN from inventory. A unit can
// only be removed from managed inventory; when the last unit goes, the
// manager link is dropped on both sides.
func (s *InventoryService) RemoveUnit(ctx context.Context, vin string) error {
	if strings.TrimSpace(vin) == "" {
		return NewValidationError("Car VIN is required!")
	}

	car, err := s.cars.FindByVIN(ctx, vin)
	if err != nil {
		return err
	}
	if car == nil {
		return NewNotFoundError("Car with specified VIN not found!")
	}

	if car.AssignedManager == nil {
		return NewConflictError("No manager assigned to this car.")
	}

	units := make([]models.CarUnit, 0, len(car.Units))
	for _, u := range car.Units {
		if u.VIN != vin {
			units = append(units, u)
		}
	}

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"units":     units,
		"updatedAt": now,
	}}

	if len(units) == 0 {
		// Last unit removed: pull the car from the manager's list and clear
		// the reverse reference in the same logical operation.
		err = s.users.UpdateByID(ctx, *car.AssignedManager, bson.M{
			"$pull": bson.M{"carsAssigned": car.ID},
			"$set":  bson.M{"updatedAt": now},
		})
		if err != nil {
			return err
		}

		update = bson.M{"$set": bson.M{
			"units":           units,
			"assignedManager": nil,
			"updatedAt":       now,
		}}
	}

	return s.cars.UpdateByID(ctx, car.ID, update)
}

// AssignCar assigns an unmanaged car with available units to an active
// manager. The two writes are independent single-document updates.
func (s *InventoryService) AssignCar(ctx context.Context, carID primitive.ObjectID, email string) (*AssignCarResult, error) {
	if strings.TrimSpace(email) == "" {
		return nil, NewValidationError("Email is required!")
	}

	manager, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if manager == nil || manager.Role != models.RoleManager || !manager.IsActive {
		return nil, NewAuthorizationError("Only active managers can be assigned cars!")
	}

	car, err := s.cars.FindAssignable(ctx, carID, manager.ID)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, NewConflictError("Car already assigned or not available!")
	}

	now := time.Now()

	err = s.users.UpdateByEmail(ctx, email, bson.M{
		"$addToSet": bson.M{"carsAssigned": car.ID},
		"$set":      bson.M{"updatedAt": now},
	})
	if err != nil {
		return nil, err
	}

	err = s.cars.UpdateByID(ctx, car.ID, bson.M{"$set": bson.M{
		"assignedManager": manager.ID,
		"updatedAt":       now,
	}})
	if err != nil {
		return nil, err
	}

	// re-read so the returned list reflects the stored $addToSet result
	updated, err := s.users.FindByID(ctx, manager.ID)
	if err != nil {
		return nil, err
	}
	carsAssigned := manager.CarsAssigned
	if updated != nil {
		carsAssigned = updated.CarsAssigned
	}

	return &AssignCarResult{
		Name:         manager.Name,
		CarsAssigned: carsAssigned,
		Date:         now,
	}, nil
}

// MarkUnitSold flags a unit as sold. Only the car's assigned manager may do
// this; the unit stays in inventory and the assignment is untouched.
func (s *InventoryService) MarkUnitSold(ctx context.Context, carID primitive.ObjectID, vin string, managerID primitive.ObjectID) (*SoldUnitResult, error) {
	car, err := s.cars.FindAssignedTo(ctx, carID, managerID)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, NewAuthorizationError("You are not authorized to update this car.")
	}

	idx := -1
	for i, u := range car.Units {
		if u.VIN == vin {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, NewNotFoundError("Car unit (VIN) not found.")
	}

	car.Units[idx].IsAvailable = false

	err = s.cars.UpdateByID(ctx, car.ID, bson.M{"$set": bson.M{
		"units":     car.Units,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return nil, err
	}

	return &SoldUnitResult{
		Brand:       car.Brand,
		Model:       car.Model,
		VIN:         vin,
		IsAvailable: false,
	}, nil
}

// ApproveManager activates a manager account. Admins cannot be approved,
// the target needs at least one qualification, and re-approval conflicts
// with the stored hire date.
func (s *InventoryService) ApproveManager(ctx context.Context, managerID primitive.ObjectID) (string, error) {
	user, err := s.users.FindByID(ctx, managerID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", NewNotFoundError("User not found!")
	}

	if user.Role == models.RoleAdmin {
		return "", NewValidationError("Only eligible users can be approved as manager")
	}

	if len(user.Qualifications) == 0 {
		return "", NewAuthorizationError("Users with qualifications can only be approved!")
	}

	if user.IsActive {
		hiredOn := ""
		if user.HireDate != nil {
			hiredOn = user.HireDate.Format("1/2/2006")
		}
		return "", NewDuplicateError(fmt.Sprintf("User already approved as manager on %s", hiredOn))
	}

	now := time.Now()
	err = s.users.UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"isActive":  true,
		"hireDate":  now,
		"updatedAt": now,
	}})
	if err != nil {
		return "", err
	}

	return user.Name, nil
}
