package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/vendora/internal/middleware"
	"github.com/example/vendora/internal/models"
	"github.com/example/vendora/internal/services"
	"github.com/example/vendora/internal/utils"
)

// OrderHandler manages checkout and order endpoints.
type OrderHandler struct {
	checkout *services.CheckoutService
	orders   *services.OrderService
	notify   *services.NotifyService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(checkout *services.CheckoutService, orders *services.OrderService, notify *services.NotifyService) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders, notify: notify}
}

type checkoutRequest struct {
	ShippingAddress models.AddressSnapshot  `json:"shipping_address"`
	BillingAddress  *models.AddressSnapshot `json:"billing_address"`
	PaymentMethod   string                  `json:"payment_method"`
	CouponCode      string                  `json:"coupon_code"`
	Notes           string                  `json:"notes"`
}

type guestCheckoutRequest struct {
	checkoutRequest
	CustomerInfo struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
	} `json:"customer_info"`
}

// Checkout converts the authenticated user's cart into an order.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.ShippingAddress.AddressLine1 == "" {
		return fiber.NewError(fiber.StatusBadRequest, "shipping address is required")
	}

	order, err := h.checkout.CheckoutUserCart(user.ID, services.CheckoutInput{
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		PaymentMethod:   req.PaymentMethod,
		CouponCode:      req.CouponCode,
		Notes:           req.Notes,
	})
	if err != nil {
		return mapServiceError(err)
	}

	go h.notify.NotifyNewOrder(order)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total_amount": order.TotalAmount,
		"status":       order.Status,
		"message":      "order created successfully",
	})
}

// SessionCheckout converts a guest session cart into an order.
func (h *OrderHandler) SessionCheckout(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")

	var req guestCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.ShippingAddress.AddressLine1 == "" {
		return fiber.NewError(fiber.StatusBadRequest, "shipping address is required")
	}
	if req.CustomerInfo.FirstName == "" || req.CustomerInfo.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "customer name and email are required")
	}

	guest := services.GuestInfo{
		FirstName: req.CustomerInfo.FirstName,
		LastName:  req.CustomerInfo.LastName,
		Email:     req.CustomerInfo.Email,
		Phone:     req.CustomerInfo.Phone,
	}

	order, err := h.checkout.CheckoutSessionCart(sessionID, guest, services.CheckoutInput{
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		PaymentMethod:   req.PaymentMethod,
		CouponCode:      req.CouponCode,
		Notes:           req.Notes,
	})
	if err != nil {
		return mapServiceError(err)
	}

	go h.notify.NotifyNewOrder(order)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":       true,
		"order_id":      order.ID,
		"order_number":  order.OrderNumber,
		"session_id":    order.SessionID,
		"customer_name": order.CustomerName,
		"total_amount":  order.TotalAmount,
		"status":        order.Status,
		"message":       "order created successfully",
	})
}

// ListOrders returns orders for the authenticated user.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)
	filter := services.OrderFilter{
		Status: models.OrderStatus(c.Query("status")),
		Limit:  pg.Limit,
		Offset: pg.Offset,
	}

	orders, total, err := h.orders.ListUserOrders(user.ID, filter)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// ListSessionOrders returns guest orders placed under a session id.
func (h *OrderHandler) ListSessionOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	orders, total, err := h.orders.ListSessionOrders(c.Params("sessionId"), services.OrderFilter{
		Limit:  pg.Limit,
		Offset: pg.Offset,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetOrder returns a single order; users see only their own, admins see all.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	order, err := h.orders.GetByID(id)
	if err != nil {
		return mapServiceError(err)
	}

	if user.Role != models.RoleAdmin && (order.UserID == nil || *order.UserID != user.ID) {
		return fiber.NewError(fiber.StatusForbidden, "not authorized to view this order")
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

// GetOrderByNumber returns a single order looked up by its number.
func (h *OrderHandler) GetOrderByNumber(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	order, err := h.orders.GetByNumber(c.Params("number"))
	if err != nil {
		return mapServiceError(err)
	}

	if user.Role != models.RoleAdmin && (order.UserID == nil || *order.UserID != user.ID) {
		return fiber.NewError(fiber.StatusForbidden, "not authorized to view this order")
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

// CancelOrder cancels a PENDING or CONFIRMED order and restores stock.
func (h *OrderHandler) CancelOrder(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	order, err := h.orders.Cancel(id, user.ID, user.Role == models.RoleAdmin)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": order, "message": "order cancelled successfully"})
}
