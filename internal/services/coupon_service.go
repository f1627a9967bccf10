package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/example/vendora/internal/models"
)

// CouponService validates and applies discount coupons.
type CouponService struct {
	db *gorm.DB
}

func NewCouponService(db *gorm.DB) *CouponService {
	return &CouponService{db: db}
}

// Validate checks a coupon code against an order total and returns the coupon
// when it may be applied. Per-user usage limits are not enforced, only the
// global cap.
func (s *CouponService) Validate(code string, orderTotal float64) (*models.Coupon, error) {
	return validateCoupon(s.db, code, orderTotal, time.Now())
}

// Apply validates the coupon and returns the discount it grants on the total.
func (s *CouponService) Apply(code string, orderTotal float64) (*models.Coupon, float64, error) {
	coupon, err := s.Validate(code, orderTotal)
	if err != nil {
		return nil, 0, err
	}
	return coupon, Round2(coupon.Discount(orderTotal)), nil
}

func validateCoupon(db *gorm.DB, code string, orderTotal float64, now time.Time) (*models.Coupon, error) {
	var coupon models.Coupon
	err := db.Where("code = ? AND is_active = ? AND valid_from <= ? AND valid_until >= ?",
		models.NormalizeCouponCode(code), true, now, now).First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCoupon
		}
		return nil, err
	}

	if orderTotal < coupon.MinimumAmount {
		return nil, &MinimumNotMetError{Minimum: coupon.MinimumAmount}
	}

	if coupon.UsageLimit > 0 && coupon.UsageCount >= coupon.UsageLimit {
		return nil, ErrCouponUsageLimit
	}

	return &coupon, nil
}

// redeemCoupon bumps the global usage counter, refusing the redemption when a
// concurrent checkout exhausted the limit after validation.
func redeemCoupon(tx *gorm.DB, coupon *models.Coupon) error {
	res := tx.Model(&models.Coupon{}).
		Where("id = ? AND (usage_limit = 0 OR usage_count < usage_limit)", coupon.ID).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCouponUsageLimit
	}
	return nil
}
