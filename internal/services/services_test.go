package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/vendora/internal/database"
	"github.com/example/vendora/internal/models"
)

var testPricing = Pricing{
	TaxRate:               0.18,
	ShippingFlatFee:       50,
	FreeShippingThreshold: 500,
}

// newTestDB opens a fresh in-memory database with the full schema. Each test
// gets its own named memory database so parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()

	user := models.User{
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
		Username:     uuid.NewString()[:8],
		PasswordHash: "x",
		Role:         models.RoleCustomer,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()

	vendor := models.Vendor{
		UserID:       seedUser(t, db).ID,
		BusinessName: name + " Store",
		IsVerified:   true,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&vendor).Error)

	category := models.Category{
		Name:     name + " Category",
		Slug:     fmt.Sprintf("cat-%s", uuid.NewString()[:8]),
		IsActive: true,
	}
	require.NoError(t, db.Create(&category).Error)

	product := models.Product{
		VendorID:       vendor.ID,
		CategoryID:     category.ID,
		SKU:            fmt.Sprintf("SKU-%s", uuid.NewString()[:8]),
		Name:           name,
		Slug:           fmt.Sprintf("slug-%s", uuid.NewString()[:8]),
		Price:          price,
		StockQuantity:  stock,
		TrackInventory: true,
		Status:         models.ProductActive,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func addCartItem(t *testing.T, db *gorm.DB, userID, productID uuid.UUID, quantity int) {
	t.Helper()
	require.NoError(t, db.Create(&models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}).Error)
}

func seedCoupon(t *testing.T, db *gorm.DB, code string, mutate func(*models.Coupon)) models.Coupon {
	t.Helper()

	coupon := models.Coupon{
		Code:          code,
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 10,
		IsActive:      true,
		ValidFrom:     time.Now().Add(-time.Hour),
		ValidUntil:    time.Now().Add(time.Hour),
	}
	if mutate != nil {
		mutate(&coupon)
	}
	require.NoError(t, db.Create(&coupon).Error)
	return coupon
}

func shippingAddress() models.AddressSnapshot {
	return models.AddressSnapshot{
		FullName:     "Asha Rao",
		Phone:        "+911234567890",
		AddressLine1: "12 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		PostalCode:   "560001",
		Country:      "India",
	}
}
