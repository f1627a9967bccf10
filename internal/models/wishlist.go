package models

import "github.com/google/uuid"

// Wishlist is a saved product, unique per (user, product).
type Wishlist struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;index:idx_wishlist_user_product,unique" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index:idx_wishlist_user_product,unique" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
}
