package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/vendora/internal/middleware"
	"github.com/example/vendora/internal/services"
)

// CartHandler exposes the authenticated and guest cart endpoints.
type CartHandler struct {
	carts *services.CartService
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(carts *services.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type addCartItemRequest struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

type cartQuantityRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// GetCart returns the user's cart summary.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	summary, err := h.carts.SummarizeUserCart(user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": summary})
}

// AddItem adds a product to the user's cart.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req addCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}
	if req.Quantity <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "quantity must be greater than 0")
	}

	var variantID *uuid.UUID
	if req.VariantID != "" {
		id, err := uuid.Parse(req.VariantID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid variant id")
		}
		variantID = &id
	}

	item, err := h.carts.AddUserItem(user.ID, productID, variantID, req.Quantity)
	if err != nil {
		return mapServiceError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

// UpdateItem sets a cart line's quantity.
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req cartQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Quantity <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "quantity must be greater than 0")
	}

	item, err := h.carts.SetUserItemQuantity(itemID, user.ID, req.Quantity)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "cart item not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": item})
}

// RemoveItem deletes a cart line.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.carts.RemoveUserItem(itemID, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "cart item not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "item removed from cart"})
}

// ClearCart deletes all lines from the user's cart.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.carts.ClearUserCart(user.ID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "cart cleared"})
}

// AddSessionItem adds a product to a guest session cart.
func (h *CartHandler) AddSessionItem(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")

	var req addCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}
	if req.Quantity <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "quantity must be greater than 0")
	}

	item, err := h.carts.AddSessionItem(sessionID, productID, req.Quantity)
	if err != nil {
		return mapServiceError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

// GetSessionCart returns the guest cart summary.
func (h *CartHandler) GetSessionCart(c *fiber.Ctx) error {
	summary, err := h.carts.SummarizeSessionCart(c.Params("sessionId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": summary})
}

// UpdateSessionItem sets a guest cart line's quantity; zero or less removes it.
func (h *CartHandler) UpdateSessionItem(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")

	var req cartQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	if err := h.carts.SetSessionItemQuantity(sessionID, productID, req.Quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "cart item not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "cart item updated"})
}

// RemoveSessionItem deletes a product from a guest cart.
func (h *CartHandler) RemoveSessionItem(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	if err := h.carts.RemoveSessionItem(c.Params("sessionId"), productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "cart item not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "item removed from cart"})
}

// ClearSessionCart deletes all lines from a guest cart.
func (h *CartHandler) ClearSessionCart(c *fiber.Ctx) error {
	if err := h.carts.ClearSessionCart(c.Params("sessionId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "cart cleared"})
}

// mapServiceError converts service validation errors into HTTP errors with
// user-facing detail. Storage failures pass through to the 500 handler.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrOrderNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotAuthorized):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case services.IsValidationError(err):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return err
	}
}
