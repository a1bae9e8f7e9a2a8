// models/transaction.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction statuses. A transaction is created pending by payment
// initiation and flips to success exactly once, never back.
const (
	StatusPending = "pending"
	StatusSuccess = "success"
)

// TransactionMetadata ties a gateway transaction back to the customer and car.
type TransactionMetadata struct {
	User primitive.ObjectID `json:"user" bson:"user"`
	Car  primitive.ObjectID `json:"car" bson:"car"`
}

// Transaction model. Reference is the gateway-issued idempotency key.
type Transaction struct {
	ID        primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Email     string              `json:"email" bson:"email"`
	Amount    float64             `json:"amount" bson:"amount"`
	Reference string              `json:"reference" bson:"reference"`
	Status    string              `json:"status" bson:"status"`
	Metadata  TransactionMetadata `json:"metadata" bson:"metadata"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt" bson:"updatedAt"`
}
