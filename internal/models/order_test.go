package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		ok   bool
	}{
		{OrderPending, OrderConfirmed, true},
		{OrderPending, OrderCancelled, true},
		{OrderPending, OrderShipped, false},
		{OrderPending, OrderDelivered, false},
		{OrderConfirmed, OrderProcessing, true},
		{OrderConfirmed, OrderCancelled, true},
		{OrderConfirmed, OrderDelivered, false},
		{OrderProcessing, OrderShipped, true},
		{OrderProcessing, OrderCancelled, false},
		{OrderShipped, OrderDelivered, true},
		{OrderShipped, OrderPending, false},
		{OrderDelivered, OrderRefunded, true},
		{OrderDelivered, OrderPending, false},
		{OrderCancelled, OrderRefunded, true},
		{OrderCancelled, OrderConfirmed, false},
		{OrderRefunded, OrderPending, false},
		{OrderRefunded, OrderCancelled, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransition(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestOrderStatus_Cancellable(t *testing.T) {
	assert.True(t, OrderPending.Cancellable())
	assert.True(t, OrderConfirmed.Cancellable())
	assert.False(t, OrderProcessing.Cancellable())
	assert.False(t, OrderShipped.Cancellable())
	assert.False(t, OrderDelivered.Cancellable())
	assert.False(t, OrderCancelled.Cancellable())
	assert.False(t, OrderRefunded.Cancellable())
}

func TestCoupon_Discount(t *testing.T) {
	percentage := Coupon{DiscountType: DiscountPercentage, DiscountValue: 10}
	assert.Equal(t, 28.6, percentage.Discount(286))

	capped := Coupon{DiscountType: DiscountPercentage, DiscountValue: 50, MaximumDiscount: 100}
	assert.Equal(t, 100.0, capped.Discount(1000))

	fixed := Coupon{DiscountType: DiscountFixed, DiscountValue: 50}
	assert.Equal(t, 50.0, fixed.Discount(286))

	// A fixed discount larger than the order clamps to the order total.
	assert.Equal(t, 30.0, (&Coupon{DiscountType: DiscountFixed, DiscountValue: 50}).Discount(30))
}
