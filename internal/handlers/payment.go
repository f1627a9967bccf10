package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/vendora/internal/middleware"
	"github.com/example/vendora/internal/models"
	"github.com/example/vendora/internal/services"
)

// PaymentHandler bridges orders to the payment gateway.
type PaymentHandler struct {
	payments *services.PaymentService
	orders   *services.OrderService
	currency string
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(payments *services.PaymentService, orders *services.OrderService, currency string) *PaymentHandler {
	return &PaymentHandler{payments: payments, orders: orders, currency: currency}
}

// CreateGatewayOrder registers an order with the gateway and returns the
// gateway order id the client needs to open the payment widget.
func (h *PaymentHandler) CreateGatewayOrder(c *fiber.Ctx) error {
	var req struct {
		OrderID uuid.UUID `json:"order_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.OrderID == uuid.Nil {
		return fiber.NewError(fiber.StatusBadRequest, "order_id is required")
	}

	order, err := h.orders.GetByID(req.OrderID)
	if err != nil {
		return mapServiceError(err)
	}

	if user, ok := middleware.CurrentUser(c); ok && user.Role != models.RoleAdmin {
		if order.UserID == nil || *order.UserID != user.ID {
			return fiber.NewError(fiber.StatusForbidden, "order does not belong to this user")
		}
	}

	if order.PaymentStatus == models.PaymentCompleted {
		return fiber.NewError(fiber.StatusConflict, "order is already paid")
	}

	gw, err := h.payments.CreateGatewayOrder(order.TotalAmount, h.currency, order.OrderNumber)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "payment gateway unavailable")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"gateway_order_id": gw.ID,
			"amount":           gw.Amount,
			"currency":         gw.Currency,
			"order_number":     order.OrderNumber,
		},
	})
}

// VerifyPayment checks the gateway signature and, when valid, marks the order
// paid and confirmed.
func (h *PaymentHandler) VerifyPayment(c *fiber.Ctx) error {
	var req struct {
		OrderID          uuid.UUID `json:"order_id"`
		GatewayOrderID   string    `json:"gateway_order_id"`
		GatewayPaymentID string    `json:"gateway_payment_id"`
		Signature        string    `json:"signature"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.OrderID == uuid.Nil || req.GatewayOrderID == "" || req.GatewayPaymentID == "" || req.Signature == "" {
		return fiber.NewError(fiber.StatusBadRequest, "order_id, gateway_order_id, gateway_payment_id and signature are required")
	}

	payment, err := h.payments.ConfirmPayment(req.OrderID, req.GatewayOrderID, req.GatewayPaymentID, req.Signature)
	if err != nil {
		if err == services.ErrInvalidSignature {
			return fiber.NewError(fiber.StatusBadRequest, "payment signature verification failed")
		}
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": payment})
}

// RefundPayment marks a completed payment refunded. Admin only.
func (h *PaymentHandler) RefundPayment(c *fiber.Ctx) error {
	var req struct {
		GatewayPaymentID string `json:"gateway_payment_id"`
		Reason           string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil || req.GatewayPaymentID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "gateway_payment_id is required")
	}

	payment, err := h.payments.Refund(req.GatewayPaymentID, req.Reason)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": payment})
}
