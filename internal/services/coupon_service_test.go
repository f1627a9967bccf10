package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vendora/internal/models"
)

func TestCouponService_Validate(t *testing.T) {
	db := newTestDB(t)
	svc := NewCouponService(db)
	seedCoupon(t, db, "SAVE10", nil)

	coupon, err := svc.Validate("SAVE10", 200)
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", coupon.Code)
}

func TestCouponService_ValidateNormalizesCode(t *testing.T) {
	db := newTestDB(t)
	svc := NewCouponService(db)
	seedCoupon(t, db, "SAVE10", nil)

	_, err := svc.Validate("  save10 ", 200)
	assert.NoError(t, err)
}

func TestCouponService_UnknownCode(t *testing.T) {
	db := newTestDB(t)
	svc := NewCouponService(db)

	_, err := svc.Validate("NOPE", 200)
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestCouponService_InactiveCoupon(t *testing.T) {
	db := newTestDB(t)
	svc := NewCouponService(db)
	seedCoupon(t, db, "PAUSED", func(c *models.Coupon) {
		c.IsActive = false
	})

	_, err := svc.Validate("PAUSED", 200)
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestCouponService_ExpiredCoupon(t *testing.T) {
	db := newTestDB(t)
	svc := NewCouponService(db)
	seedCoupon(t, db, "OLD", func(c *models.Coupon) {
		c.ValidFrom = time.Now().Add(-48 * time.Hour)
		c.ValidUntil = time.Now().Add(-24 * time.Hour)
	})

	_, err := svc.Validate("OLD", 200)
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestCouponService_NotYetValid(t *testing.T) {
	db := newTestDB(t)
	svc := NewCouponService(db)
	seedCoupon(t, db, "SOON", func(c *models.Coupon) {
		c.ValidFrom = time.Now().Add(24 * time.Hour)
		c.ValidUntil = time.Now().Add(48 * time.Hour)
	})

	_, err := svc.Validate("SOON", 200)
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestCouponService_MinimumNotMet(t *testing.T) {
	db := newTestDB(t)
	svc := NewCouponService(db)
	seedCoupon(t, db, "BIG", func(c *models.Coupon) {
		c.MinimumAmount = 500
	})

	_, err := svc.Validate("BIG", 200)
	var minimum *MinimumNotMetError
	require.ErrorAs(t, err, &minimum)
	assert.Equal(t, 500.0, minimum.Minimum)
}

func TestCouponService_UsageLimitReached(t *testing.T) {
	db := newTestDB(t)
	svc := NewCouponService(db)
	seedCoupon(t, db, "ONCE", func(c *models.Coupon) {
		c.UsageLimit = 1
		c.UsageCount = 1
	})

	_, err := svc.Validate("ONCE", 200)
	assert.ErrorIs(t, err, ErrCouponUsageLimit)
}

func TestCouponService_ApplyPercentage(t *testing.T) {
	db := newTestDB(t)
	svc := NewCouponService(db)
	seedCoupon(t, db, "SAVE10", nil)

	_, discount, err := svc.Apply("SAVE10", 286)
	require.NoError(t, err)
	assert.Equal(t, 28.6, discount)
}

func TestCouponService_ApplyPercentageCap(t *testing.T) {
	db := newTestDB(t)
	svc := NewCouponService(db)
	seedCoupon(t, db, "CAPPED", func(c *models.Coupon) {
		c.DiscountValue = 50
		c.MaximumDiscount = 100
	})

	_, discount, err := svc.Apply("CAPPED", 1000)
	require.NoError(t, err)
	assert.Equal(t, 100.0, discount)
}

func TestCouponService_ApplyFixedClampsToTotal(t *testing.T) {
	db := newTestDB(t)
	svc := NewCouponService(db)
	seedCoupon(t, db, "FLAT500", func(c *models.Coupon) {
		c.DiscountType = models.DiscountFixed
		c.DiscountValue = 500
	})

	_, discount, err := svc.Apply("FLAT500", 300)
	require.NoError(t, err)
	assert.Equal(t, 300.0, discount)
}

func TestRedeemCoupon_ConcurrentExhaustion(t *testing.T) {
	db := newTestDB(t)
	coupon := seedCoupon(t, db, "LAST", func(c *models.Coupon) {
		c.UsageLimit = 1
	})

	require.NoError(t, redeemCoupon(db, &coupon))
	assert.ErrorIs(t, redeemCoupon(db, &coupon), ErrCouponUsageLimit)

	var fresh models.Coupon
	require.NoError(t, db.First(&fresh, "id = ?", coupon.ID).Error)
	assert.Equal(t, 1, fresh.UsageCount)
}
