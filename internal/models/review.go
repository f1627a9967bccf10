package models

import "github.com/google/uuid"

// Review is a customer rating for a product, 1 to 5 stars. Only approved
// reviews are served publicly or counted toward product ratings.
type Review struct {
	BaseModel
	UserID    uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	User      *User      `json:"user,omitempty"`
	ProductID uuid.UUID  `gorm:"type:uuid;index" json:"product_id"`
	OrderID   *uuid.UUID `gorm:"type:uuid" json:"order_id"`

	Rating  int    `json:"rating"`
	Title   string `json:"title"`
	Comment string `json:"comment"`

	IsVerifiedPurchase bool `gorm:"default:false" json:"is_verified_purchase"`
	IsApproved         bool `gorm:"default:true" json:"is_approved"`
}
