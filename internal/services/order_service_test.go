package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/example/vendora/internal/models"
)

// placeTestOrder runs a real checkout so the order under test has line items
// and decremented stock behind it.
func placeTestOrder(t *testing.T, db *gorm.DB, stock, quantity int) (models.User, models.Product, *models.Order) {
	t.Helper()

	checkout := NewCheckoutService(db, testPricing)
	user := seedUser(t, db)
	product := seedProduct(t, db, "Test Product", 100, stock)
	addCartItem(t, db, user.ID, product.ID, quantity)

	order, err := checkout.CheckoutUserCart(user.ID, CheckoutInput{
		ShippingAddress: shippingAddress(),
	})
	require.NoError(t, err)
	return user, product, order
}

func TestOrderService_GetByID(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	_, _, order := placeTestOrder(t, db, 5, 2)

	found, err := svc.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, found.OrderNumber)
	assert.Len(t, found.Items, 1)

	_, err = svc.GetByID(uuid.New())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_GetByNumber(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	_, _, order := placeTestOrder(t, db, 5, 2)

	found, err := svc.GetByNumber(order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = svc.GetByNumber("ORD-00000000-NOPE")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_ListUserOrders(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	user, _, _ := placeTestOrder(t, db, 5, 1)

	orders, total, err := svc.ListUserOrders(user.ID, OrderFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, orders, 1)

	orders, total, err = svc.ListUserOrders(user.ID, OrderFilter{
		Status: models.OrderDelivered,
		Limit:  10,
	})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, orders)
}

func TestOrderService_UpdateStatusFollowsLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	_, _, order := placeTestOrder(t, db, 5, 1)

	updated, err := svc.UpdateStatus(order.ID, models.OrderConfirmed, false)
	require.NoError(t, err)
	assert.Equal(t, models.OrderConfirmed, updated.Status)

	_, err = svc.UpdateStatus(order.ID, models.OrderProcessing, false)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(order.ID, models.OrderShipped, false)
	require.NoError(t, err)

	var fresh models.Order
	require.NoError(t, db.First(&fresh, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderShipped, fresh.Status)
	assert.NotNil(t, fresh.ShippedAt)
}

func TestOrderService_UpdateStatusRejectsSkips(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	_, _, order := placeTestOrder(t, db, 5, 1)

	_, err := svc.UpdateStatus(order.ID, models.OrderDelivered, false)

	var transition *InvalidTransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, models.OrderPending, transition.From)
	assert.Equal(t, models.OrderDelivered, transition.To)
}

func TestOrderService_ForceOverrideStampsTimestamps(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	_, _, order := placeTestOrder(t, db, 5, 1)

	_, err := svc.UpdateStatus(order.ID, models.OrderDelivered, true)
	require.NoError(t, err)

	var fresh models.Order
	require.NoError(t, db.First(&fresh, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderDelivered, fresh.Status)
	assert.NotNil(t, fresh.DeliveredAt)
}

func TestOrderService_CancelRestoresStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	user, product, order := placeTestOrder(t, db, 5, 2)

	cancelled, err := svc.Cancel(order.ID, user.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)

	var fresh models.Product
	require.NoError(t, db.First(&fresh, "id = ?", product.ID).Error)
	assert.Equal(t, 5, fresh.StockQuantity)
}

func TestOrderService_CancelRejectsNonOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	_, _, order := placeTestOrder(t, db, 5, 1)
	stranger := seedUser(t, db)

	_, err := svc.Cancel(order.ID, stranger.ID, false)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestOrderService_AdminCanCancelAnyOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	_, _, order := placeTestOrder(t, db, 5, 1)
	admin := seedUser(t, db)

	cancelled, err := svc.Cancel(order.ID, admin.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)
}

func TestOrderService_CancelAfterShipmentRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	user, _, order := placeTestOrder(t, db, 5, 1)

	_, err := svc.UpdateStatus(order.ID, models.OrderShipped, true)
	require.NoError(t, err)

	_, err = svc.Cancel(order.ID, user.ID, false)
	var transition *InvalidTransitionError
	assert.ErrorAs(t, err, &transition)
}
