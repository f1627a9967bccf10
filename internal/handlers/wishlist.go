package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/vendora/internal/middleware"
	"github.com/example/vendora/internal/models"
)

// WishlistHandler manages per-user wishlists.
type WishlistHandler struct {
	db *gorm.DB
}

// NewWishlistHandler constructs WishlistHandler.
func NewWishlistHandler(db *gorm.DB) *WishlistHandler {
	return &WishlistHandler{db: db}
}

// ListWishlist returns the user's wishlist with products preloaded.
func (h *WishlistHandler) ListWishlist(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var items []models.Wishlist
	if err := h.db.Preload("Product").Preload("Product.Images").
		Where("user_id = ?", user.ID).Order("created_at desc").
		Find(&items).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": items})
}

// AddToWishlist adds a product. Adding an already-present product is a no-op
// success.
func (h *WishlistHandler) AddToWishlist(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	if err := h.ensureProduct(productID); err != nil {
		return err
	}

	var existing models.Wishlist
	err = h.db.Where("user_id = ? AND product_id = ?", user.ID, productID).
		First(&existing).Error
	if err == nil {
		return c.JSON(fiber.Map{"success": true, "data": existing})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	item := models.Wishlist{UserID: user.ID, ProductID: productID}
	if err := h.db.Create(&item).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

// RemoveFromWishlist deletes a wishlist entry.
func (h *WishlistHandler) RemoveFromWishlist(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	res := h.db.Where("user_id = ? AND product_id = ?", user.ID, productID).
		Delete(&models.Wishlist{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "product not in wishlist")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleWishlist adds the product if absent, removes it if present.
func (h *WishlistHandler) ToggleWishlist(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	var existing models.Wishlist
	err = h.db.Where("user_id = ? AND product_id = ?", user.ID, productID).
		First(&existing).Error
	if err == nil {
		if err := h.db.Delete(&existing).Error; err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"in_wishlist": false}})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := h.ensureProduct(productID); err != nil {
		return err
	}

	item := models.Wishlist{UserID: user.ID, ProductID: productID}
	if err := h.db.Create(&item).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"in_wishlist": true}})
}

// CheckWishlist reports whether a product is in the user's wishlist.
func (h *WishlistHandler) CheckWishlist(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	var count int64
	if err := h.db.Model(&models.Wishlist{}).
		Where("user_id = ? AND product_id = ?", user.ID, productID).
		Count(&count).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"in_wishlist": count > 0}})
}

func (h *WishlistHandler) ensureProduct(productID uuid.UUID) error {
	var count int64
	if err := h.db.Model(&models.Product{}).Where("id = ?", productID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}
	return nil
}
