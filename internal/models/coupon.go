package models

import (
	"strings"
	"time"
)

// NormalizeCouponCode uppercases and trims a user-supplied coupon code so
// lookups are case-insensitive.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// DiscountType selects how a coupon's value is applied.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type Coupon struct {
	BaseModel
	Code        string `gorm:"uniqueIndex" json:"code"`
	Description string `json:"description"`

	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue float64      `json:"discount_value"`
	MinimumAmount float64      `gorm:"default:0" json:"minimum_amount"`
	// MaximumDiscount caps percentage coupons; zero means uncapped.
	MaximumDiscount float64 `json:"maximum_discount"`

	// UsageLimit is the global redemption cap; zero means unlimited.
	// UserUsageLimit exists in the schema but is not enforced.
	UsageLimit     int `json:"usage_limit"`
	UsageCount     int `gorm:"default:0" json:"usage_count"`
	UserUsageLimit int `gorm:"default:1" json:"user_usage_limit"`

	IsActive   bool      `gorm:"default:true" json:"is_active"`
	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`
}

// Discount returns the amount to subtract from the given order total.
func (c *Coupon) Discount(orderTotal float64) float64 {
	var discount float64
	switch c.DiscountType {
	case DiscountPercentage:
		discount = orderTotal * c.DiscountValue / 100
		if c.MaximumDiscount > 0 && discount > c.MaximumDiscount {
			discount = c.MaximumDiscount
		}
	case DiscountFixed:
		discount = c.DiscountValue
	}
	if discount > orderTotal {
		discount = orderTotal
	}
	return discount
}
