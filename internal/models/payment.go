package models

import "github.com/google/uuid"

// Payment records one gateway attempt against an order.
type Payment struct {
	BaseModel
	OrderID       uuid.UUID     `gorm:"type:uuid;index" json:"order_id"`
	PaymentID     string        `gorm:"uniqueIndex" json:"payment_id"`
	PaymentMethod string        `json:"payment_method"`
	Amount        float64       `json:"amount"`
	Currency      string        `gorm:"default:INR" json:"currency"`
	Status        PaymentStatus `gorm:"default:pending" json:"status"`
	FailureReason string        `json:"failure_reason,omitempty"`
}
