// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles stored in the role discriminator field
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleCustomer = "customer"
)

// User model. All roles live in the users collection; the role field
// selects which of the role-specific payload fields are meaningful.
type User struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	Password    string             `json:"password,omitempty" bson:"password"`
	PhoneNumber string             `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	Address     string             `json:"address,omitempty" bson:"address,omitempty"`
	Role        string             `json:"role" bson:"role"`

	// Manager payload
	HireDate        *time.Time           `json:"hireDate,omitempty" bson:"hireDate,omitempty"`
	YearsExperience int                  `json:"yearsExperience,omitempty" bson:"yearsExperience,omitempty"`
	Qualifications  []string             `json:"qualifications,omitempty" bson:"qualifications,omitempty"`
	CarsAssigned    []primitive.ObjectID `json:"carsAssigned,omitempty" bson:"carsAssigned,omitempty"`
	IsActive        bool                 `json:"isActive" bson:"isActive"`

	// Customer payload: append-only purchase log
	CarsPurchased []PurchasedCar `json:"carsPurchased,omitempty" bson:"carsPurchased,omitempty"`

	ResetToken        string     `json:"-" bson:"resetToken,omitempty"`
	ResetTokenExpires *time.Time `json:"-" bson:"resetTokenExpires,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// PurchasedCar is one completed purchase. Entries are immutable once written.
type PurchasedCar struct {
	Car   primitive.ObjectID `json:"car" bson:"car"`
	VIN   string             `json:"vin" bson:"vin"`
	Price float64            `json:"price" bson:"price"`
	Date  time.Time          `json:"date" bson:"date"`
}

// LoginRequest model
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CustomerSignupRequest model
type CustomerSignupRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	PhoneNumber     string `json:"phoneNumber,omitempty"`
	Address         string `json:"address,omitempty"`
}

// ManagerSignupRequest model
type ManagerSignupRequest struct {
	Name            string   `json:"name" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=8"`
	ConfirmPassword string   `json:"confirmPassword" validate:"required"`
	PhoneNumber     string   `json:"phoneNumber,omitempty"`
	Address         string   `json:"address,omitempty"`
	Qualifications  []string `json:"qualifications,omitempty"`
	YearsExperience int      `json:"yearsExperience,omitempty"`
}

// UpdateProfileRequest model for manager profile updates
type UpdateProfileRequest struct {
	PhoneNumber    string   `json:"phoneNumber,omitempty"`
	Address        string   `json:"address,omitempty"`
	Qualifications []string `json:"qualifications,omitempty"`
}

// ForgotPasswordRequest model
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest model
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	ResetToken  string `json:"resetToken" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// Response model
type Response struct {
	Status     int         `json:"status"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination metadata returned on paginated listings
type Pagination struct {
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
}
