package services

import "math"

// Pricing holds the checkout computation knobs. Tax is a flat rate over the
// subtotal; shipping is a flat fee waived at or above the free-shipping
// threshold and for empty carts.
type Pricing struct {
	TaxRate               float64
	ShippingFlatFee       float64
	FreeShippingThreshold float64
}

// Totals is the computed money breakdown for a cart or order, each value
// rounded to two decimals.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	TaxAmount      float64 `json:"tax_amount"`
	ShippingAmount float64 `json:"shipping_amount"`
	TotalAmount    float64 `json:"total_amount"`
}

// Compute derives tax, shipping and grand total from a subtotal.
func (p Pricing) Compute(subtotal float64) Totals {
	tax := Round2(subtotal * p.TaxRate)
	shipping := p.ShippingFlatFee
	if subtotal == 0 || subtotal >= p.FreeShippingThreshold {
		shipping = 0
	}
	return Totals{
		Subtotal:       Round2(subtotal),
		TaxAmount:      tax,
		ShippingAmount: Round2(shipping),
		TotalAmount:    Round2(subtotal + tax + shipping),
	}
}

// Round2 rounds a monetary value to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
