package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/example/vendora/internal/models"
)

func TestCartService_AddUserItemIncrementsExistingLine(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db, testPricing)

	user := seedUser(t, db)
	product := seedProduct(t, db, "Candle", 100, 10)

	first, err := svc.AddUserItem(user.ID, product.ID, nil, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)

	second, err := svc.AddUserItem(user.ID, product.ID, nil, 3)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	var lines int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&lines).Error)
	assert.Equal(t, int64(1), lines)
}

func TestCartService_AddUserItemRejectsUnavailable(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db, testPricing)

	user := seedUser(t, db)
	product := seedProduct(t, db, "Archived", 100, 10)
	require.NoError(t, db.Model(&product).Update("status", models.ProductDiscontinued).Error)

	_, err := svc.AddUserItem(user.ID, product.ID, nil, 1)
	var unavailable *ProductUnavailableError
	assert.ErrorAs(t, err, &unavailable)
}

func TestCartService_AddUserItemAdvisoryStockCheck(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db, testPricing)

	user := seedUser(t, db)
	product := seedProduct(t, db, "Scarce", 100, 2)

	_, err := svc.AddUserItem(user.ID, product.ID, nil, 5)
	var stock *InsufficientStockError
	require.ErrorAs(t, err, &stock)
	assert.Equal(t, 2, stock.Available)
}

func TestCartService_SetQuantityZeroDeletesLine(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db, testPricing)

	user := seedUser(t, db)
	product := seedProduct(t, db, "Soap", 100, 10)

	item, err := svc.AddUserItem(user.ID, product.ID, nil, 2)
	require.NoError(t, err)

	updated, err := svc.SetUserItemQuantity(item.ID, user.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, updated)

	var lines int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&lines).Error)
	assert.Zero(t, lines)
}

func TestCartService_RemoveUserItemNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db, testPricing)
	user := seedUser(t, db)
	other := seedUser(t, db)
	product := seedProduct(t, db, "Towel", 100, 10)

	item, err := svc.AddUserItem(user.ID, product.ID, nil, 1)
	require.NoError(t, err)

	// Another user cannot remove someone else's line.
	assert.ErrorIs(t, svc.RemoveUserItem(item.ID, other.ID), gorm.ErrRecordNotFound)
	assert.NoError(t, svc.RemoveUserItem(item.ID, user.ID))
}

func TestCartService_SummarizeUserCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db, testPricing)

	user := seedUser(t, db)
	first := seedProduct(t, db, "Plate", 100, 10)
	second := seedProduct(t, db, "Bowl", 50, 10)

	_, err := svc.AddUserItem(user.ID, first.ID, nil, 1)
	require.NoError(t, err)
	_, err = svc.AddUserItem(user.ID, second.ID, nil, 2)
	require.NoError(t, err)

	summary, err := svc.SummarizeUserCart(user.ID)
	require.NoError(t, err)

	assert.Len(t, summary.Items, 2)
	assert.Equal(t, 3, summary.TotalItems)
	assert.Equal(t, 200.0, summary.Subtotal)
	assert.Equal(t, 36.0, summary.TaxAmount)
	assert.Equal(t, 50.0, summary.ShippingAmount)
	assert.Equal(t, 286.0, summary.TotalAmount)
	assert.Equal(t, 0.18, summary.TaxRate)
	assert.Equal(t, 500.0, summary.ShippingThreshold)
}

func TestCartService_SummarizeEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db, testPricing)
	user := seedUser(t, db)

	summary, err := svc.SummarizeUserCart(user.ID)
	require.NoError(t, err)

	assert.Empty(t, summary.Items)
	assert.Zero(t, summary.TotalItems)
	assert.Zero(t, summary.TotalAmount)
	assert.Zero(t, summary.ShippingAmount)
}

func TestCartService_SessionCartLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db, testPricing)

	product := seedProduct(t, db, "Basket", 100, 10)
	sessionID := "sess-123"

	item, err := svc.AddSessionItem(sessionID, product.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	item, err = svc.AddSessionItem(sessionID, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)

	require.NoError(t, svc.SetSessionItemQuantity(sessionID, product.ID, 1))

	summary, err := svc.SummarizeSessionCart(sessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalItems)
	assert.Equal(t, 100.0, summary.Subtotal)

	require.NoError(t, svc.ClearSessionCart(sessionID))
	summary, err = svc.SummarizeSessionCart(sessionID)
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
}
