package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/vendora/internal/services"
)

// CouponHandler exposes the public coupon preview endpoint. Redemption itself
// only happens inside checkout.
type CouponHandler struct {
	coupons *services.CouponService
}

// NewCouponHandler constructs CouponHandler.
func NewCouponHandler(coupons *services.CouponService) *CouponHandler {
	return &CouponHandler{coupons: coupons}
}

// ValidateCoupon checks a code against a prospective order total and returns
// the discount it would grant. Nothing is redeemed.
func (h *CouponHandler) ValidateCoupon(c *fiber.Ctx) error {
	var req struct {
		Code       string  `json:"code"`
		OrderTotal float64 `json:"order_total"`
	}
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "code is required")
	}

	coupon, discount, err := h.coupons.Apply(req.Code, req.OrderTotal)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"code":          coupon.Code,
		"discount_type": coupon.DiscountType,
		"discount":      discount,
		"order_total":   services.Round2(req.OrderTotal - discount),
	}})
}
