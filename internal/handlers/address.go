package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/vendora/internal/middleware"
	"github.com/example/vendora/internal/models"
)

// AddressHandler manages the user's saved addresses.
type AddressHandler struct {
	db *gorm.DB
}

// NewAddressHandler constructs AddressHandler.
func NewAddressHandler(db *gorm.DB) *AddressHandler {
	return &AddressHandler{db: db}
}

// ListAddresses returns all addresses for the authenticated user.
func (h *AddressHandler) ListAddresses(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var addresses []models.Address
	if err := h.db.Where("user_id = ?", user.ID).Order("is_default desc, created_at desc").
		Find(&addresses).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": addresses})
}

// CreateAddress saves a new address. Marking it default clears the previous
// default.
func (h *AddressHandler) CreateAddress(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var payload models.Address
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if payload.AddressLine1 == "" || payload.City == "" || payload.PostalCode == "" {
		return fiber.NewError(fiber.StatusBadRequest, "address line, city and postal code are required")
	}

	payload.ID = uuid.Nil
	payload.UserID = user.ID

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if payload.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ? AND is_default = ?", user.ID, true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&payload).Error
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// GetAddress returns one of the user's addresses.
func (h *AddressHandler) GetAddress(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	address, err := h.ownedAddress(c, user.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": address})
}

// UpdateAddress updates one of the user's addresses.
func (h *AddressHandler) UpdateAddress(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	address, err := h.ownedAddress(c, user.ID)
	if err != nil {
		return err
	}

	var payload models.Address
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	payload.ID = address.ID
	payload.UserID = user.ID

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if payload.IsDefault && !address.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ? AND is_default = ?", user.ID, true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Model(address).Updates(payload).Error
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": address})
}

// DeleteAddress removes one of the user's addresses.
func (h *AddressHandler) DeleteAddress(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	address, err := h.ownedAddress(c, user.ID)
	if err != nil {
		return err
	}

	if err := h.db.Delete(address).Error; err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SetDefaultAddress flips the default flag to the given address.
func (h *AddressHandler) SetDefaultAddress(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	address, err := h.ownedAddress(c, user.ID)
	if err != nil {
		return err
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Address{}).
			Where("user_id = ? AND is_default = ?", user.ID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(address).Update("is_default", true).Error
	})
	if err != nil {
		return err
	}

	address.IsDefault = true
	return c.JSON(fiber.Map{"success": true, "data": address})
}

func (h *AddressHandler) ownedAddress(c *fiber.Ctx, userID uuid.UUID) (*models.Address, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var address models.Address
	if err := h.db.First(&address, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "address not found")
		}
		return nil, err
	}
	return &address, nil
}
