package services

import (
	"errors"
	"fmt"

	"github.com/example/vendora/internal/models"
)

// Validation failures surfaced before any write happens. Handlers map these to
// 4xx responses; anything else coming out of a service is a storage failure.
var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidCoupon    = errors.New("invalid or expired coupon")
	ErrCouponUsageLimit = errors.New("coupon usage limit exceeded")
	ErrNotAuthorized    = errors.New("not authorized")
)

// ProductUnavailableError reports a cart line whose product is no longer
// purchasable (inactive, out of stock, discontinued).
type ProductUnavailableError struct {
	Name string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %s is not available", e.Name)
}

// InsufficientStockError reports a cart line requesting more units than the
// product has in tracked inventory.
type InsufficientStockError struct {
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s. Available: %d, Requested: %d",
		e.Name, e.Available, e.Requested)
}

// MinimumNotMetError reports a coupon applied to an order below its minimum.
type MinimumNotMetError struct {
	Minimum float64
}

func (e *MinimumNotMetError) Error() string {
	return fmt.Sprintf("minimum order amount is %.2f", e.Minimum)
}

// InvalidTransitionError reports a disallowed order status change.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("order cannot move from %s to %s", e.From, e.To)
}

// IsValidationError reports whether the error is a pre-commit business rule
// failure rather than a storage problem.
func IsValidationError(err error) bool {
	var unavailable *ProductUnavailableError
	var stock *InsufficientStockError
	var minimum *MinimumNotMetError
	var transition *InvalidTransitionError
	switch {
	case errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrInvalidCoupon),
		errors.Is(err, ErrCouponUsageLimit),
		errors.Is(err, ErrNotAuthorized):
		return true
	case errors.As(err, &unavailable),
		errors.As(err, &stock),
		errors.As(err, &minimum),
		errors.As(err, &transition):
		return true
	}
	return false
}
