package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vendora/internal/models"
)

func TestCheckoutUserCart_Success(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, testPricing)

	user := seedUser(t, db)
	product := seedProduct(t, db, "Steel Bottle", 100, 5)
	addCartItem(t, db, user.ID, product.ID, 2)

	order, err := svc.CheckoutUserCart(user.ID, CheckoutInput{
		ShippingAddress: shippingAddress(),
		PaymentMethod:   "razorpay",
	})
	require.NoError(t, err)

	assert.Equal(t, 200.0, order.Subtotal)
	assert.Equal(t, 36.0, order.TaxAmount)
	assert.Equal(t, 50.0, order.ShippingAmount)
	assert.Equal(t, 286.0, order.TotalAmount)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	require.Len(t, order.Items, 1)
	assert.Equal(t, product.Name, order.Items[0].ProductName)
	assert.Equal(t, product.SKU, order.Items[0].ProductSKU)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 200.0, order.Items[0].TotalPrice)

	var fresh models.Product
	require.NoError(t, db.First(&fresh, "id = ?", product.ID).Error)
	assert.Equal(t, 3, fresh.StockQuantity)

	var remaining int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestCheckoutUserCart_FreeShippingAboveThreshold(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, testPricing)

	user := seedUser(t, db)
	product := seedProduct(t, db, "Desk Lamp", 300, 10)
	addCartItem(t, db, user.ID, product.ID, 2)

	order, err := svc.CheckoutUserCart(user.ID, CheckoutInput{
		ShippingAddress: shippingAddress(),
	})
	require.NoError(t, err)

	assert.Equal(t, 600.0, order.Subtotal)
	assert.Equal(t, 108.0, order.TaxAmount)
	assert.Equal(t, 0.0, order.ShippingAmount)
	assert.Equal(t, 708.0, order.TotalAmount)
}

func TestCheckoutUserCart_EmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, testPricing)
	user := seedUser(t, db)

	_, err := svc.CheckoutUserCart(user.ID, CheckoutInput{ShippingAddress: shippingAddress()})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutUserCart_SecondAttemptFindsEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, testPricing)

	user := seedUser(t, db)
	product := seedProduct(t, db, "Notebook", 50, 10)
	addCartItem(t, db, user.ID, product.ID, 1)

	_, err := svc.CheckoutUserCart(user.ID, CheckoutInput{ShippingAddress: shippingAddress()})
	require.NoError(t, err)

	_, err = svc.CheckoutUserCart(user.ID, CheckoutInput{ShippingAddress: shippingAddress()})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutUserCart_InsufficientStockRollsBack(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, testPricing)

	user := seedUser(t, db)
	product := seedProduct(t, db, "Limited Print", 100, 1)
	addCartItem(t, db, user.ID, product.ID, 3)

	_, err := svc.CheckoutUserCart(user.ID, CheckoutInput{ShippingAddress: shippingAddress()})

	var stock *InsufficientStockError
	require.ErrorAs(t, err, &stock)
	assert.Equal(t, "Limited Print", stock.Name)
	assert.Equal(t, 1, stock.Available)
	assert.Equal(t, 3, stock.Requested)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)

	var fresh models.Product
	require.NoError(t, db.First(&fresh, "id = ?", product.ID).Error)
	assert.Equal(t, 1, fresh.StockQuantity)

	var cart int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cart).Error)
	assert.Equal(t, int64(1), cart)
}

func TestCheckoutUserCart_UnavailableProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, testPricing)

	user := seedUser(t, db)
	product := seedProduct(t, db, "Retired Model", 100, 5)
	require.NoError(t, db.Model(&product).Update("status", models.ProductInactive).Error)
	addCartItem(t, db, user.ID, product.ID, 1)

	_, err := svc.CheckoutUserCart(user.ID, CheckoutInput{ShippingAddress: shippingAddress()})

	var unavailable *ProductUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "Retired Model", unavailable.Name)
}

func TestCheckoutUserCart_UntrackedInventorySkipsStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, testPricing)

	user := seedUser(t, db)
	product := seedProduct(t, db, "E-Book", 100, 0)
	require.NoError(t, db.Model(&product).Update("track_inventory", false).Error)
	addCartItem(t, db, user.ID, product.ID, 2)

	order, err := svc.CheckoutUserCart(user.ID, CheckoutInput{ShippingAddress: shippingAddress()})
	require.NoError(t, err)
	assert.Equal(t, 200.0, order.Subtotal)

	var fresh models.Product
	require.NoError(t, db.First(&fresh, "id = ?", product.ID).Error)
	assert.Equal(t, 0, fresh.StockQuantity)
}

func TestCheckoutUserCart_VariantAdjustsUnitPrice(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, testPricing)

	user := seedUser(t, db)
	product := seedProduct(t, db, "Hoodie", 100, 10)

	variant := models.ProductVariant{
		ProductID:       product.ID,
		Name:            "Size",
		Value:           "XL",
		PriceAdjustment: 20,
	}
	require.NoError(t, db.Create(&variant).Error)
	require.NoError(t, db.Create(&models.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		VariantID: &variant.ID,
		Quantity:  1,
	}).Error)

	order, err := svc.CheckoutUserCart(user.ID, CheckoutInput{ShippingAddress: shippingAddress()})
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, 120.0, order.Items[0].UnitPrice)
	assert.Equal(t, "Size: XL", order.Items[0].VariantName)
	assert.Equal(t, 120.0, order.Subtotal)
}

func TestCheckoutUserCart_CouponApplied(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, testPricing)

	user := seedUser(t, db)
	product := seedProduct(t, db, "Blender", 100, 5)
	addCartItem(t, db, user.ID, product.ID, 2)
	coupon := seedCoupon(t, db, "SAVE10", nil)

	order, err := svc.CheckoutUserCart(user.ID, CheckoutInput{
		ShippingAddress: shippingAddress(),
		CouponCode:      "SAVE10",
	})
	require.NoError(t, err)

	// 10% off the 286.00 pre-discount total.
	assert.Equal(t, 28.6, order.DiscountAmount)
	assert.Equal(t, 257.4, order.TotalAmount)
	assert.Equal(t, "SAVE10", order.CouponCode)

	var fresh models.Coupon
	require.NoError(t, db.First(&fresh, "id = ?", coupon.ID).Error)
	assert.Equal(t, 1, fresh.UsageCount)
}

func TestCheckoutUserCart_CouponMinimumNotMetRollsBack(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, testPricing)

	user := seedUser(t, db)
	product := seedProduct(t, db, "Keyring", 100, 5)
	addCartItem(t, db, user.ID, product.ID, 2)
	seedCoupon(t, db, "BIGSPEND", func(c *models.Coupon) {
		c.MinimumAmount = 1000
	})

	_, err := svc.CheckoutUserCart(user.ID, CheckoutInput{
		ShippingAddress: shippingAddress(),
		CouponCode:      "BIGSPEND",
	})

	var minimum *MinimumNotMetError
	require.ErrorAs(t, err, &minimum)
	assert.Equal(t, 1000.0, minimum.Minimum)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)

	var fresh models.Product
	require.NoError(t, db.First(&fresh, "id = ?", product.ID).Error)
	assert.Equal(t, 5, fresh.StockQuantity)
}

func TestCheckoutSessionCart_GuestOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, testPricing)

	product := seedProduct(t, db, "Poster", 100, 5)
	sessionID := "guest-session-abc123"
	require.NoError(t, db.Create(&models.SessionCartItem{
		SessionID: sessionID,
		ProductID: product.ID,
		Quantity:  2,
	}).Error)

	order, err := svc.CheckoutSessionCart(sessionID, GuestInfo{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha@example.com",
		Phone:     "+911234567890",
	}, CheckoutInput{ShippingAddress: shippingAddress()})
	require.NoError(t, err)

	assert.Nil(t, order.UserID)
	assert.Equal(t, sessionID, order.SessionID)
	assert.Equal(t, "Asha Rao", order.CustomerName)
	assert.Equal(t, "asha@example.com", order.CustomerEmail)
	assert.Equal(t, 286.0, order.TotalAmount)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.True(t, strings.HasSuffix(order.OrderNumber, sessionID[:8]))

	var remaining int64
	require.NoError(t, db.Model(&models.SessionCartItem{}).
		Where("session_id = ?", sessionID).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestGuestInfo_DisplayName(t *testing.T) {
	assert.Equal(t, "Asha Rao", GuestInfo{FirstName: "Asha", LastName: "Rao"}.DisplayName())
	assert.Equal(t, "Asha", GuestInfo{FirstName: "Asha"}.DisplayName())
	assert.Equal(t, "Rao", GuestInfo{LastName: "Rao"}.DisplayName())
}

func TestCheckoutUserCart_BillingDefaultsToShipping(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, testPricing)

	user := seedUser(t, db)
	product := seedProduct(t, db, "Mug", 100, 5)
	addCartItem(t, db, user.ID, product.ID, 1)

	shipping := shippingAddress()
	order, err := svc.CheckoutUserCart(user.ID, CheckoutInput{ShippingAddress: shipping})
	require.NoError(t, err)

	assert.Equal(t, shipping, order.BillingAddress)
}
