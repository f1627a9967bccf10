package models

import "github.com/google/uuid"

// Vendor is the seller profile attached to a user with the vendor role.
type Vendor struct {
	BaseModel
	UserID              uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	User                *User     `json:"user,omitempty"`
	BusinessName        string    `json:"business_name"`
	BusinessDescription string    `json:"business_description"`
	BusinessEmail       string    `json:"business_email"`
	BusinessPhone       string    `json:"business_phone"`
	GSTNumber           string    `json:"gst_number"`
	PANNumber           string    `json:"pan_number"`
	BusinessAddress     string    `json:"business_address"`
	LogoURL             string    `json:"logo_url"`
	IsVerified          bool      `gorm:"default:false" json:"is_verified"`
	IsActive            bool      `gorm:"default:true" json:"is_active"`
	CommissionRate      float64   `gorm:"default:10" json:"commission_rate"`

	Products []Product `json:"products,omitempty"`
}
