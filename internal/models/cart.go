package models

import "github.com/google/uuid"

// CartItem is one pending purchase line for an authenticated user.
// One row per (user, product, variant); re-adding increments quantity.
type CartItem struct {
	BaseModel
	UserID    uuid.UUID       `gorm:"type:uuid;index:idx_cart_owner_product,unique" json:"user_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;index:idx_cart_owner_product,unique" json:"product_id"`
	Product   *Product        `json:"product,omitempty"`
	VariantID *uuid.UUID      `gorm:"type:uuid;index:idx_cart_owner_product,unique" json:"variant_id"`
	Variant   *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
	Quantity  int             `gorm:"default:1" json:"quantity"`
}

// SessionCartItem is a guest cart line keyed by an opaque session identifier.
type SessionCartItem struct {
	BaseModel
	SessionID string    `gorm:"index:idx_session_cart_product,unique" json:"session_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index:idx_session_cart_product,unique" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
	Quantity  int       `gorm:"default:1" json:"quantity"`
}
