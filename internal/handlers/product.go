package handlers

import (
	"errors"
	"math"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/vendora/internal/middleware"
	"github.com/example/vendora/internal/models"
	"github.com/example/vendora/internal/utils"
)

// ProductHandler manages catalog product endpoints.
type ProductHandler struct {
	db *gorm.DB
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// ListProducts returns products with optional category/vendor/status/featured
// filters.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Product{})

	if categoryID := c.Query("category_id"); categoryID != "" {
		if id, err := uuid.Parse(categoryID); err == nil {
			query = query.Where("category_id = ?", id)
		}
	}
	if vendorID := c.Query("vendor_id"); vendorID != "" {
		if id, err := uuid.Parse(vendorID); err == nil {
			query = query.Where("vendor_id = ?", id)
		}
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	} else {
		query = query.Where("status = ?", models.ProductActive)
	}
	if featured := c.Query("featured"); featured != "" {
		query = query.Where("is_featured = ?", featured == "true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var products []models.Product
	if err := query.Preload("Images").Preload("Variants").
		Order("created_at desc").Limit(pg.Limit).Offset(pg.Offset).
		Find(&products).Error; err != nil {
		return err
	}

	for i := range products {
		h.attachRating(&products[i])
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// SearchProducts matches products by name or description, case-insensitively.
func (h *ProductHandler) SearchProducts(c *fiber.Ctx) error {
	term := c.Query("q")
	if term == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing search query")
	}

	pg := utils.ParsePagination(c)
	pattern := "%" + term + "%"

	var products []models.Product
	if err := h.db.Preload("Images").
		Where("name ILIKE ? OR short_description ILIKE ? OR description ILIKE ?", pattern, pattern, pattern).
		Limit(pg.Limit).Offset(pg.Offset).Find(&products).Error; err != nil {
		return err
	}

	for i := range products {
		h.attachRating(&products[i])
	}

	return c.JSON(fiber.Map{"success": true, "data": products})
}

// FeaturedProducts returns active featured products.
func (h *ProductHandler) FeaturedProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	var products []models.Product
	if err := h.db.Preload("Images").
		Where("is_featured = ? AND status = ?", true, models.ProductActive).
		Limit(pg.Limit).Offset(pg.Offset).Find(&products).Error; err != nil {
		return err
	}

	for i := range products {
		h.attachRating(&products[i])
	}

	return c.JSON(fiber.Map{"success": true, "data": products})
}

// GetProduct returns a single product by ID.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.Preload("Images").Preload("Variants").Preload("Category").Preload("Vendor").
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	h.attachRating(&product)
	return c.JSON(fiber.Map{"success": true, "data": product})
}

// GetProductBySlug returns a single product by slug.
func (h *ProductHandler) GetProductBySlug(c *fiber.Ctx) error {
	var product models.Product
	if err := h.db.Preload("Images").Preload("Variants").Preload("Category").
		First(&product, "slug = ?", c.Params("slug")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	h.attachRating(&product)
	return c.JSON(fiber.Map{"success": true, "data": product})
}

// CreateProduct persists a new product owned by the acting vendor. Admins may
// create on behalf of any vendor by supplying vendor_id.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var payload models.Product
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if payload.Name == "" || payload.SKU == "" || payload.Price <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "name, sku and a positive price are required")
	}

	if user.Role != models.RoleAdmin || payload.VendorID == uuid.Nil {
		vendor, err := h.vendorForUser(user.ID)
		if err != nil {
			return err
		}
		payload.VendorID = vendor.ID
	}

	if payload.Slug == "" {
		payload.Slug = utils.Slugify(payload.Name)
	}
	if payload.Status == "" {
		payload.Status = models.ProductActive
	}

	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// UpdateProduct updates a product owned by the acting vendor; admins may
// update any product.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	product, err := h.ownedProduct(user, id)
	if err != nil {
		return err
	}

	var payload models.Product
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	payload.ID = product.ID
	payload.VendorID = product.VendorID
	if err := h.db.Model(product).Updates(payload).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

// DeleteProduct removes a product owned by the acting vendor; admins may
// delete any product.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	product, err := h.ownedProduct(user, id)
	if err != nil {
		return err
	}

	if err := h.db.Delete(product).Error; err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListReviews returns approved reviews for a product, newest first.
func (h *ProductHandler) ListReviews(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	pg := utils.ParsePagination(c)
	var reviews []models.Review
	if err := h.db.Where("product_id = ? AND is_approved = ?", id, true).
		Order("created_at desc").Limit(pg.Limit).Offset(pg.Offset).
		Find(&reviews).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": reviews})
}

type createReviewRequest struct {
	Rating  int    `json:"rating"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

// CreateReview adds a review for a product. The verified-purchase flag is set
// when the user has a delivered order containing the product.
func (h *ProductHandler) CreateReview(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req createReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Rating < 1 || req.Rating > 5 {
		return fiber.NewError(fiber.StatusBadRequest, "rating must be between 1 and 5")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	var purchases int64
	if err := h.db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.product_id = ? AND orders.user_id = ?", productID, user.ID).
		Count(&purchases).Error; err != nil {
		return err
	}

	review := models.Review{
		UserID:             user.ID,
		ProductID:          productID,
		Rating:             req.Rating,
		Title:              req.Title,
		Comment:            req.Comment,
		IsVerifiedPurchase: purchases > 0,
		IsApproved:         true,
	}

	if err := h.db.Create(&review).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": review})
}

func (h *ProductHandler) attachRating(product *models.Product) {
	type ratingRow struct {
		Average float64
		Count   int64
	}
	var row ratingRow
	if err := h.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(id) AS count").
		Where("product_id = ? AND is_approved = ?", product.ID, true).
		Scan(&row).Error; err != nil {
		return
	}
	product.AverageRating = math.Round(row.Average*10) / 10
	product.ReviewCount = row.Count
}

func (h *ProductHandler) vendorForUser(userID uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := h.db.First(&vendor, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusForbidden, "vendor profile required")
		}
		return nil, err
	}
	return &vendor, nil
}

func (h *ProductHandler) ownedProduct(user *models.User, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := h.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return nil, err
	}

	if user.Role == models.RoleAdmin {
		return &product, nil
	}

	vendor, err := h.vendorForUser(user.ID)
	if err != nil {
		return nil, err
	}
	if product.VendorID != vendor.ID {
		return nil, fiber.NewError(fiber.StatusForbidden, "not your product")
	}
	return &product, nil
}
