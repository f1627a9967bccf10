package models

import "github.com/google/uuid"

// Role determines what a user account is allowed to do.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

// User represents an account of any role.
type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex" json:"email"`
	Username     string `gorm:"uniqueIndex" json:"username"`
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
	Role         Role   `gorm:"default:customer" json:"role"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`
	IsVerified   bool   `gorm:"default:false" json:"is_verified"`

	Addresses     []Address  `json:"addresses,omitempty"`
	Orders        []Order    `json:"orders,omitempty"`
	VendorProfile *Vendor    `json:"vendor_profile,omitempty"`
	WishlistItems []Wishlist `json:"wishlist_items,omitempty"`
}

// Address is a saved delivery address. At most one address per user is the default.
type Address struct {
	BaseModel
	UserID       uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Title        string    `json:"title"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	AddressLine1 string    `json:"address_line_1"`
	AddressLine2 string    `json:"address_line_2"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PostalCode   string    `json:"postal_code"`
	Country      string    `gorm:"default:India" json:"country"`
	IsDefault    bool      `gorm:"default:false" json:"is_default"`
}
