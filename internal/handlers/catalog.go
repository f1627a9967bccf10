package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/vendora/internal/models"
	"github.com/example/vendora/internal/utils"
)

// CatalogHandler serves the category tree. Reads are public, writes are
// mounted behind the admin role.
type CatalogHandler struct {
	db *gorm.DB
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

// ListCategories returns active top-level categories with their subcategories.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	query := h.db.Where("parent_id IS NULL").
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("sort_order asc")
		}).
		Order("sort_order asc")
	if c.Query("include_inactive") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var categories []models.Category
	if err := query.Find(&categories).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": categories})
}

// GetCategory returns a single category with subcategories.
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var category models.Category
	if err := h.db.Preload("Subcategories").First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "category not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": category})
}

// GetCategoryBySlug resolves a category by slug.
func (h *CatalogHandler) GetCategoryBySlug(c *fiber.Ctx) error {
	var category models.Category
	if err := h.db.Preload("Subcategories").
		First(&category, "slug = ?", c.Params("slug")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "category not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": category})
}

// CreateCategory creates a category. Admin only.
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var payload models.Category
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if payload.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}
	if payload.Slug == "" {
		payload.Slug = utils.Slugify(payload.Name)
	}
	payload.ID = uuid.Nil

	if payload.ParentID != nil {
		var count int64
		if err := h.db.Model(&models.Category{}).
			Where("id = ?", *payload.ParentID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "parent category not found")
		}
	}

	if err := h.db.Create(&payload).Error; err != nil {
		return fiber.NewError(fiber.StatusConflict, "category name or slug already in use")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// UpdateCategory updates a category. Admin only.
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var category models.Category
	if err := h.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "category not found")
		}
		return err
	}

	var payload struct {
		Name        *string    `json:"name"`
		Slug        *string    `json:"slug"`
		Description *string    `json:"description"`
		ImageURL    *string    `json:"image_url"`
		ParentID    *uuid.UUID `json:"parent_id"`
		IsActive    *bool      `json:"is_active"`
		SortOrder   *int       `json:"sort_order"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]any{}
	if payload.Name != nil {
		updates["name"] = *payload.Name
	}
	if payload.Slug != nil {
		updates["slug"] = *payload.Slug
	}
	if payload.Description != nil {
		updates["description"] = *payload.Description
	}
	if payload.ImageURL != nil {
		updates["image_url"] = *payload.ImageURL
	}
	if payload.ParentID != nil {
		if *payload.ParentID == category.ID {
			return fiber.NewError(fiber.StatusBadRequest, "category cannot be its own parent")
		}
		updates["parent_id"] = *payload.ParentID
	}
	if payload.IsActive != nil {
		updates["is_active"] = *payload.IsActive
	}
	if payload.SortOrder != nil {
		updates["sort_order"] = *payload.SortOrder
	}

	if len(updates) > 0 {
		if err := h.db.Model(&category).Updates(updates).Error; err != nil {
			return err
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": category})
}

// DeleteCategory removes a category. Refused while products or subcategories
// still reference it.
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var products int64
	if err := h.db.Model(&models.Product{}).
		Where("category_id = ?", id).Count(&products).Error; err != nil {
		return err
	}
	if products > 0 {
		return fiber.NewError(fiber.StatusConflict, "category still has products")
	}

	var children int64
	if err := h.db.Model(&models.Category{}).
		Where("parent_id = ?", id).Count(&children).Error; err != nil {
		return err
	}
	if children > 0 {
		return fiber.NewError(fiber.StatusConflict, "category still has subcategories")
	}

	res := h.db.Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "category not found")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
