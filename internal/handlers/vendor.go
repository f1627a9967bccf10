package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/vendora/internal/middleware"
	"github.com/example/vendora/internal/models"
	"github.com/example/vendora/internal/services"
	"github.com/example/vendora/internal/utils"
)

// VendorHandler covers vendor registration, the vendor's own profile and
// the vendor-facing views over products and orders.
type VendorHandler struct {
	db     *gorm.DB
	orders *services.OrderService
}

// NewVendorHandler constructs VendorHandler.
func NewVendorHandler(db *gorm.DB, orders *services.OrderService) *VendorHandler {
	return &VendorHandler{db: db, orders: orders}
}

type vendorRegisterRequest struct {
	BusinessName        string `json:"business_name"`
	BusinessDescription string `json:"business_description"`
	BusinessAddress     string `json:"business_address"`
	BusinessPhone       string `json:"business_phone"`
	BusinessEmail       string `json:"business_email"`
	GSTNumber           string `json:"gst_number"`
	PANNumber           string `json:"pan_number"`
}

// RegisterVendor creates a vendor profile for the authenticated user and
// promotes the account to the vendor role. New vendors start unverified.
func (h *VendorHandler) RegisterVendor(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req vendorRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.BusinessName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "business_name is required")
	}

	var existing models.Vendor
	err := h.db.Where("user_id = ?", user.ID).First(&existing).Error
	if err == nil {
		return fiber.NewError(fiber.StatusConflict, "vendor profile already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	vendor := models.Vendor{
		UserID:              user.ID,
		BusinessName:        req.BusinessName,
		BusinessDescription: req.BusinessDescription,
		BusinessAddress:     req.BusinessAddress,
		BusinessPhone:       req.BusinessPhone,
		BusinessEmail:       req.BusinessEmail,
		GSTNumber:           req.GSTNumber,
		PANNumber:           req.PANNumber,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&vendor).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", user.ID).
			Update("role", models.RoleVendor).Error
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": vendor})
}

// MyVendorProfile returns the authenticated vendor's profile.
func (h *VendorHandler) MyVendorProfile(c *fiber.Ctx) error {
	vendor, err := h.currentVendor(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": vendor})
}

// UpdateMyVendorProfile updates business fields on the vendor's own profile.
// Verification and commission are admin-only and ignored here.
func (h *VendorHandler) UpdateMyVendorProfile(c *fiber.Ctx) error {
	vendor, err := h.currentVendor(c)
	if err != nil {
		return err
	}

	var req vendorRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]any{}
	if req.BusinessName != "" {
		updates["business_name"] = req.BusinessName
	}
	if req.BusinessDescription != "" {
		updates["business_description"] = req.BusinessDescription
	}
	if req.BusinessAddress != "" {
		updates["business_address"] = req.BusinessAddress
	}
	if req.BusinessPhone != "" {
		updates["business_phone"] = req.BusinessPhone
	}
	if req.BusinessEmail != "" {
		updates["business_email"] = req.BusinessEmail
	}
	if req.GSTNumber != "" {
		updates["gst_number"] = req.GSTNumber
	}
	if req.PANNumber != "" {
		updates["pan_number"] = req.PANNumber
	}

	if len(updates) > 0 {
		if err := h.db.Model(vendor).Updates(updates).Error; err != nil {
			return err
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": vendor})
}

// ListVendors returns verified, active vendors for public browsing.
func (h *VendorHandler) ListVendors(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	query := h.db.Model(&models.Vendor{}).
		Where("is_verified = ? AND is_active = ?", true, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var vendors []models.Vendor
	if err := query.Order("created_at desc").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&vendors).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    vendors,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetVendor returns a single public vendor profile.
func (h *VendorHandler) GetVendor(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var vendor models.Vendor
	if err := h.db.First(&vendor, "id = ? AND is_active = ?", id, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "vendor not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": vendor})
}

// MyProducts lists the authenticated vendor's products, any status.
func (h *VendorHandler) MyProducts(c *fiber.Ctx) error {
	vendor, err := h.currentVendor(c)
	if err != nil {
		return err
	}

	pg := utils.ParsePagination(c)

	query := h.db.Model(&models.Product{}).Where("vendor_id = ?", vendor.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var products []models.Product
	if err := query.Preload("Images").Order("created_at desc").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&products).Error; err != nil {
		return err
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

// MyOrders lists orders that contain at least one of the vendor's products.
func (h *VendorHandler) MyOrders(c *fiber.Ctx) error {
	vendor, err := h.currentVendor(c)
	if err != nil {
		return err
	}

	pg := utils.ParsePagination(c)

	sub := h.db.Model(&models.OrderItem{}).
		Select("DISTINCT order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("products.vendor_id = ?", vendor.ID)

	query := h.db.Model(&models.Order{}).Where("id IN (?)", sub)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if from := c.Query("date_from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date_from must be YYYY-MM-DD")
		}
		query = query.Where("created_at >= ?", t)
	}
	if to := c.Query("date_to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date_to must be YYYY-MM-DD")
		}
		query = query.Where("created_at <= ?", t.Add(24*time.Hour-time.Nanosecond))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").Order("created_at desc").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&orders).Error; err != nil {
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

// UpdateOrderStatus lets a vendor move one of their orders along the normal
// lifecycle. The order must contain at least one of the vendor's products and
// the transition table is enforced.
func (h *VendorHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	vendor, err := h.currentVendor(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var count int64
	if err := h.db.Model(&models.OrderItem{}).
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ? AND products.vendor_id = ?", orderID, vendor.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fiber.NewError(fiber.StatusForbidden, "order does not belong to this vendor")
	}

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	order, err := h.orders.UpdateStatus(orderID, req.Status, false)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

func (h *VendorHandler) currentVendor(c *fiber.Ctx) (*models.Vendor, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var vendor models.Vendor
	if err := h.db.Where("user_id = ?", user.ID).First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusForbidden, "vendor profile required")
		}
		return nil, err
	}
	return &vendor, nil
}
