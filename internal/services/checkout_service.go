package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/vendora/internal/metrics"
	"github.com/example/vendora/internal/models"
)

// CheckoutService converts a cart into an order. The whole conversion runs in
// one database transaction: validation of every line first, then order and
// line-item creation, guarded stock decrements, coupon redemption and cart
// teardown. Any failure rolls the attempt back completely, so a caller can
// retry without double-decremented stock or orphaned orders.
type CheckoutService struct {
	db      *gorm.DB
	pricing Pricing
}

func NewCheckoutService(db *gorm.DB, pricing Pricing) *CheckoutService {
	return &CheckoutService{db: db, pricing: pricing}
}

// CheckoutInput carries everything the workflow needs besides the cart itself.
type CheckoutInput struct {
	ShippingAddress models.AddressSnapshot
	BillingAddress  *models.AddressSnapshot
	PaymentMethod   string
	CouponCode      string
	Notes           string
}

// GuestInfo identifies a guest shopper at checkout.
type GuestInfo struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// DisplayName joins the name parts; a missing last name falls back to the
// first name alone.
func (g GuestInfo) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(g.FirstName) + " " + strings.TrimSpace(g.LastName))
	if name == "" {
		return g.FirstName
	}
	return name
}

// checkoutLine is one validated cart line ready for persistence.
type checkoutLine struct {
	product     models.Product
	variantID   *uuid.UUID
	variantName string
	quantity    int
	unitPrice   float64
}

// CheckoutUserCart converts the authenticated user's cart into an order.
func (s *CheckoutService) CheckoutUserCart(userID uuid.UUID, in CheckoutInput) (*models.Order, error) {
	start := time.Now()
	var order *models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Preload("Variant").Where("user_id = ?", userID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		lines := make([]checkoutLine, 0, len(items))
		for _, item := range items {
			line, err := s.validateLine(tx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if item.Variant != nil {
				line.variantID = item.VariantID
				line.variantName = fmt.Sprintf("%s: %s", item.Variant.Name, item.Variant.Value)
				line.unitPrice = Round2(line.product.Price + item.Variant.PriceAdjustment)
			}
			lines = append(lines, line)
		}

		created, err := s.placeOrder(tx, lines, in, userOrderNumber())
		if err != nil {
			return err
		}
		created.UserID = &userID

		if err := tx.Create(created).Error; err != nil {
			return fmt.Errorf("persist order: %w", err)
		}

		if err := s.commitStock(tx, lines); err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		order = created
		return nil
	})
	observeCheckout(start, err)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CheckoutSessionCart converts a guest session cart into an order.
func (s *CheckoutService) CheckoutSessionCart(sessionID string, guest GuestInfo, in CheckoutInput) (*models.Order, error) {
	start := time.Now()
	var order *models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var items []models.SessionCartItem
		if err := tx.Where("session_id = ?", sessionID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		lines := make([]checkoutLine, 0, len(items))
		for _, item := range items {
			line, err := s.validateLine(tx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			lines = append(lines, line)
		}

		created, err := s.placeOrder(tx, lines, in, sessionOrderNumber(sessionID))
		if err != nil {
			return err
		}
		created.SessionID = sessionID
		created.CustomerName = guest.DisplayName()
		created.CustomerEmail = guest.Email
		created.CustomerPhone = guest.Phone

		if err := tx.Create(created).Error; err != nil {
			return fmt.Errorf("persist order: %w", err)
		}

		if err := s.commitStock(tx, lines); err != nil {
			return err
		}

		if err := tx.Where("session_id = ?", sessionID).Delete(&models.SessionCartItem{}).Error; err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		order = created
		return nil
	})
	observeCheckout(start, err)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// validateLine fetches the current product row and checks availability and
// stock. No writes happen here; every line must pass before anything is
// persisted.
func (s *CheckoutService) validateLine(tx *gorm.DB, productID uuid.UUID, quantity int) (checkoutLine, error) {
	var product models.Product
	if err := tx.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return checkoutLine{}, ErrProductNotFound
		}
		return checkoutLine{}, err
	}

	if !product.Purchasable() {
		return checkoutLine{}, &ProductUnavailableError{Name: product.Name}
	}

	if product.TrackInventory && product.StockQuantity < quantity {
		return checkoutLine{}, &InsufficientStockError{
			Name:      product.Name,
			Available: product.StockQuantity,
			Requested: quantity,
		}
	}

	return checkoutLine{product: product, quantity: quantity, unitPrice: product.Price}, nil
}

// placeOrder builds the order record with totals, coupon discount and
// line-item snapshots. The caller persists it.
func (s *CheckoutService) placeOrder(tx *gorm.DB, lines []checkoutLine, in CheckoutInput, orderNumber string) (*models.Order, error) {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.unitPrice * float64(line.quantity)
	}

	totals := s.pricing.Compute(subtotal)

	var discount float64
	var couponCode string
	if in.CouponCode != "" {
		coupon, err := validateCoupon(tx, in.CouponCode, totals.TotalAmount, time.Now())
		if err != nil {
			return nil, err
		}
		if err := redeemCoupon(tx, coupon); err != nil {
			return nil, err
		}
		discount = Round2(coupon.Discount(totals.TotalAmount))
		couponCode = coupon.Code
	}

	billing := in.ShippingAddress
	if in.BillingAddress != nil {
		billing = *in.BillingAddress
	}

	order := &models.Order{
		OrderNumber:     orderNumber,
		PaymentMethod:   in.PaymentMethod,
		Subtotal:        totals.Subtotal,
		TaxAmount:       totals.TaxAmount,
		ShippingAmount:  totals.ShippingAmount,
		DiscountAmount:  discount,
		TotalAmount:     Round2(totals.TotalAmount - discount),
		CouponCode:      couponCode,
		Status:          models.OrderPending,
		PaymentStatus:   models.PaymentPending,
		ShippingAddress: in.ShippingAddress,
		BillingAddress:  billing,
		CustomerNotes:   in.Notes,
	}

	for _, line := range lines {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   line.product.ID,
			VariantID:   line.variantID,
			ProductName: line.product.Name,
			ProductSKU:  line.product.SKU,
			VariantName: line.variantName,
			Quantity:    line.quantity,
			UnitPrice:   line.unitPrice,
			TotalPrice:  Round2(line.unitPrice * float64(line.quantity)),
		})
	}

	return order, nil
}

// commitStock decrements tracked inventory with a guarded update. The
// stock_quantity >= quantity predicate makes the decrement conditional at the
// storage layer, so two concurrent checkouts cannot both take the last units:
// whichever commits second affects zero rows and the transaction rolls back.
func (s *CheckoutService) commitStock(tx *gorm.DB, lines []checkoutLine) error {
	for _, line := range lines {
		if !line.product.TrackInventory {
			continue
		}
		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock_quantity >= ?", line.product.ID, line.quantity).
			UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", line.quantity))
		if res.Error != nil {
			return fmt.Errorf("decrement stock: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			var current models.Product
			available := 0
			if err := tx.First(&current, "id = ?", line.product.ID).Error; err == nil {
				available = current.StockQuantity
			}
			return &InsufficientStockError{
				Name:      line.product.Name,
				Available: available,
				Requested: line.quantity,
			}
		}
	}
	return nil
}

func userOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}

func sessionOrderNumber(sessionID string) string {
	ref := sessionID
	if len(ref) > 8 {
		ref = ref[:8]
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().Unix(), ref)
}

func observeCheckout(start time.Time, err error) {
	metrics.ObserveCheckout(time.Since(start).Seconds(), err == nil, failureReason(err))
}

func failureReason(err error) string {
	if err == nil {
		return ""
	}
	var unavailable *ProductUnavailableError
	var stock *InsufficientStockError
	var minimum *MinimumNotMetError
	switch {
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, ErrProductNotFound):
		return "product_not_found"
	case errors.As(err, &unavailable):
		return "product_unavailable"
	case errors.As(err, &stock):
		return "insufficient_stock"
	case errors.Is(err, ErrInvalidCoupon), errors.Is(err, ErrCouponUsageLimit), errors.As(err, &minimum):
		return "coupon"
	default:
		return "storage"
	}
}
