// models/car.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CarUnit is one physical vehicle tracked by VIN inside a Car document.
type CarUnit struct {
	VIN         string `json:"vin" bson:"vin"`
	IsAvailable bool   `json:"isAvailable" bson:"isAvailable"`
}

// Car model. A car groups the units of one brand+model at one price point.
// AssignedManager is non-nil only while units is non-empty.
type Car struct {
	ID              primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Brand           string              `json:"brand" bson:"brand"`
	Model           string              `json:"model" bson:"model"`
	Price           float64             `json:"price" bson:"price"`
	Units           []CarUnit           `json:"units" bson:"units"`
	AssignedManager *primitive.ObjectID `json:"assignedManager,omitempty" bson:"assignedManager,omitempty"`
	Category        primitive.ObjectID  `json:"category,omitempty" bson:"category,omitempty"`
	CreatedAt       time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// AvailableUnits counts units still for sale.
func (c *Car) AvailableUnits() int {
	n := 0
	for _, u := range c.Units {
		if u.IsAvailable {
			n++
		}
	}
	return n
}

// AddCarRequest model for admin car creation
type AddCarRequest struct {
	Brand    string  `json:"brand" validate:"required"`
	Model    string  `json:"model" validate:"required"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Category string  `json:"category" validate:"required"`
}

// RemoveCarUnitRequest model
type RemoveCarUnitRequest struct {
	VIN string `json:"vin"`
}

// AssignCarRequest model
type AssignCarRequest struct {
	Email string `json:"email"`
}

// UpdateCarUnitRequest model for marking a unit sold
type UpdateCarUnitRequest struct {
	VIN string `json:"vin" validate:"required"`
}

// CompletePurchaseRequest model
type CompletePurchaseRequest struct {
	Reference string `json:"reference"`
}

// CarListFilters are the public listing query filters.
type CarListFilters struct {
	Brand       string
	Model       string
	MinPrice    float64
	MaxPrice    float64
	IsAvailable *bool
}
