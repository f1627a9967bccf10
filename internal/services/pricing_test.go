package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPricing_Compute(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		want     Totals
	}{
		{
			name:     "flat shipping below threshold",
			subtotal: 200,
			want:     Totals{Subtotal: 200, TaxAmount: 36, ShippingAmount: 50, TotalAmount: 286},
		},
		{
			name:     "free shipping at threshold",
			subtotal: 500,
			want:     Totals{Subtotal: 500, TaxAmount: 90, ShippingAmount: 0, TotalAmount: 590},
		},
		{
			name:     "free shipping above threshold",
			subtotal: 600,
			want:     Totals{Subtotal: 600, TaxAmount: 108, ShippingAmount: 0, TotalAmount: 708},
		},
		{
			name:     "empty cart pays no shipping",
			subtotal: 0,
			want:     Totals{},
		},
		{
			name:     "fractional amounts round to cents",
			subtotal: 99.99,
			want:     Totals{Subtotal: 99.99, TaxAmount: 18, ShippingAmount: 50, TotalAmount: 167.99},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, testPricing.Compute(tt.subtotal))
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 28.6, Round2(28.6000000001))
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, 18.0, Round2(99.99*0.18))
	assert.Equal(t, 0.0, Round2(0))
}
