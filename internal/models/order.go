package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
	OrderRefunded   OrderStatus = "refunded"
)

// PaymentStatus tracks gateway reconciliation on an order.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// orderTransitions is the allowed lifecycle graph. CANCELLED and REFUNDED are
// side branches; everything else moves forward only.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderConfirmed, OrderCancelled},
	OrderConfirmed:  {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped},
	OrderShipped:    {OrderDelivered},
	OrderDelivered:  {OrderRefunded},
	OrderCancelled:  {OrderRefunded},
	OrderRefunded:   {},
}

// CanTransition reports whether moving from one status to another is allowed
// by the lifecycle graph. Administrative overrides bypass this check.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Cancellable reports whether the owner may still cancel the order.
func (s OrderStatus) Cancellable() bool {
	return s == OrderPending || s == OrderConfirmed
}

// AddressSnapshot is the shipping/billing address as captured at checkout.
// It is stored inline with the order so later address edits never rewrite
// order history.
type AddressSnapshot struct {
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

type Order struct {
	BaseModel
	OrderNumber string     `gorm:"uniqueIndex" json:"order_number"`
	UserID      *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User        *User      `json:"user,omitempty"`
	SessionID   string     `gorm:"index" json:"session_id,omitempty"`

	// Guest checkout contact details.
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`

	PaymentMethod string `json:"payment_method"`

	// Gateway references filled in by payment verification.
	GatewayOrderID   string `json:"gateway_order_id,omitempty"`
	GatewayPaymentID string `json:"gateway_payment_id,omitempty"`

	Subtotal       float64 `json:"subtotal"`
	TaxAmount      float64 `json:"tax_amount"`
	ShippingAmount float64 `json:"shipping_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	TotalAmount    float64 `json:"total_amount"`
	CouponCode     string  `json:"coupon_code,omitempty"`

	Status        OrderStatus   `gorm:"default:pending" json:"status"`
	PaymentStatus PaymentStatus `gorm:"default:pending" json:"payment_status"`

	ShippingAddress AddressSnapshot `gorm:"serializer:json" json:"shipping_address"`
	BillingAddress  AddressSnapshot `gorm:"serializer:json" json:"billing_address"`

	CustomerNotes string `json:"customer_notes"`
	AdminNotes    string `json:"admin_notes"`

	ShippedAt   *time.Time `json:"shipped_at"`
	DeliveredAt *time.Time `json:"delivered_at"`

	Items    []OrderItem `json:"items,omitempty"`
	Payments []Payment   `json:"payments,omitempty"`
}

// OrderItem owns a snapshot of the product at purchase time. ProductID is kept
// for traceability only; name, SKU and prices never change after creation.
type OrderItem struct {
	BaseModel
	OrderID    uuid.UUID  `gorm:"type:uuid;index" json:"order_id"`
	ProductID  uuid.UUID  `gorm:"type:uuid;index" json:"product_id"`
	Product    *Product   `json:"product,omitempty"`
	VariantID  *uuid.UUID `gorm:"type:uuid" json:"variant_id"`

	ProductName string `json:"product_name"`
	ProductSKU  string `json:"product_sku"`
	VariantName string `json:"variant_name,omitempty"`

	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}
