package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/vendora/internal/models"
	"github.com/example/vendora/internal/services"
	"github.com/example/vendora/internal/utils"
)

// AdminHandler groups the back-office endpoints: dashboard, user and vendor
// management, moderation, coupons, reports and store settings. Every route is
// mounted behind the admin role.
type AdminHandler struct {
	db     *gorm.DB
	orders *services.OrderService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB, orders *services.OrderService) *AdminHandler {
	return &AdminHandler{db: db, orders: orders}
}

// Dashboard returns the headline counters for the admin home screen.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	var (
		users, vendors, products, orders, pendingOrders int64
		revenue                                         float64
	)

	if err := h.db.Model(&models.User{}).Count(&users).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.Vendor{}).Count(&vendors).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.Product{}).Count(&products).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.Order{}).Count(&orders).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.Order{}).
		Where("status = ?", models.OrderPending).Count(&pendingOrders).Error; err != nil {
		return err
	}

	var row struct{ Total float64 }
	if err := h.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Where("payment_status = ?", models.PaymentCompleted).
		Scan(&row).Error; err != nil {
		return err
	}
	revenue = row.Total

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"total_users":    users,
		"total_vendors":  vendors,
		"total_products": products,
		"total_orders":   orders,
		"pending_orders": pendingOrders,
		"total_revenue":  services.Round2(revenue),
	}})
}

// ListOrders returns every order with optional status and date filters.
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	filter := services.OrderFilter{
		Status: models.OrderStatus(c.Query("status")),
		Limit:  pg.Limit,
		Offset: pg.Offset,
	}
	if from := c.Query("date_from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date_from must be YYYY-MM-DD")
		}
		filter.DateFrom = &t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date_to must be YYYY-MM-DD")
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &end
	}

	orders, total, err := h.orders.ListAllOrders(filter)
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

// UpdateOrderStatus force-overrides an order's status, skipping the
// transition table. Timestamps are still stamped.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	order, err := h.orders.UpdateStatus(orderID, req.Status, true)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

// ListUsers returns all accounts with optional role filtering.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	query := h.db.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var users []models.User
	if err := query.Order("created_at desc").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&users).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    users,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// SetUserActive toggles an account's active flag.
func (h *AdminHandler) SetUserActive(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil || req.IsActive == nil {
		return fiber.NewError(fiber.StatusBadRequest, "is_active is required")
	}

	res := h.db.Model(&models.User{}).Where("id = ?", id).
		Update("is_active", *req.IsActive)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"id": id, "is_active": *req.IsActive}})
}

// DeleteUser removes an account. Accounts with orders are deactivated instead
// so order history keeps its owner.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var orderCount int64
	if err := h.db.Model(&models.Order{}).Where("user_id = ?", id).
		Count(&orderCount).Error; err != nil {
		return err
	}

	if orderCount > 0 {
		res := h.db.Model(&models.User{}).Where("id = ?", id).
			Update("is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"id": id, "deactivated": true}})
	}

	res := h.db.Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListAllVendors returns every vendor regardless of verification state.
func (h *AdminHandler) ListAllVendors(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	query := h.db.Model(&models.Vendor{})
	if verified := c.Query("verified"); verified != "" {
		query = query.Where("is_verified = ?", verified == "true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var vendors []models.Vendor
	if err := query.Preload("User").Order("created_at desc").
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

type adminCreateVendorRequest struct {
	UserID              string `json:"user_id"`
	BusinessName        string `json:"business_name"`
	BusinessDescription string `json:"business_description"`
	BusinessAddress     string `json:"business_address"`
	BusinessPhone       string `json:"business_phone"`
	BusinessEmail       string `json:"business_email"`
	GSTNumber           string `json:"gst_number"`
	PANNumber           string `json:"pan_number"`
}

// CreateVendor opens a vendor profile for an existing user on their behalf.
// Admin-created vendors start verified.
func (h *AdminHandler) CreateVendor(c *fiber.Ctx) error {
	var req adminCreateVendorRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.BusinessName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "business_name is required")
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user_id")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	var existing models.Vendor
	err = h.db.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return fiber.NewError(fiber.StatusConflict, "vendor profile already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	vendor := models.Vendor{
		UserID:              userID,
		BusinessName:        req.BusinessName,
		BusinessDescription: req.BusinessDescription,
		BusinessAddress:     req.BusinessAddress,
		BusinessPhone:       req.BusinessPhone,
		BusinessEmail:       req.BusinessEmail,
		GSTNumber:           req.GSTNumber,
		PANNumber:           req.PANNumber,
		IsVerified:          true,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&vendor).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			Update("role", models.RoleVendor).Error
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": vendor})
}

// VerifyVendor flips a vendor's verification flag.
func (h *AdminHandler) VerifyVendor(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req struct {
		IsVerified *bool `json:"is_verified"`
	}
	if err := c.BodyParser(&req); err != nil || req.IsVerified == nil {
		return fiber.NewError(fiber.StatusBadRequest, "is_verified is required")
	}

	res := h.db.Model(&models.Vendor{}).Where("id = ?", id).
		Update("is_verified", *req.IsVerified)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "vendor not found")
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"id": id, "is_verified": *req.IsVerified}})
}

// UpdateVendor lets an admin edit any vendor field, including commission.
func (h *AdminHandler) UpdateVendor(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var vendor models.Vendor
	if err := h.db.First(&vendor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "vendor not found")
		}
		return err
	}

	var payload struct {
		BusinessName        *string  `json:"business_name"`
		BusinessDescription *string  `json:"business_description"`
		BusinessAddress     *string  `json:"business_address"`
		BusinessPhone       *string  `json:"business_phone"`
		BusinessEmail       *string  `json:"business_email"`
		CommissionRate      *float64 `json:"commission_rate"`
		IsActive            *bool    `json:"is_active"`
		IsVerified          *bool    `json:"is_verified"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]any{}
	if payload.BusinessName != nil {
		updates["business_name"] = *payload.BusinessName
	}
	if payload.BusinessDescription != nil {
		updates["business_description"] = *payload.BusinessDescription
	}
	if payload.BusinessAddress != nil {
		updates["business_address"] = *payload.BusinessAddress
	}
	if payload.BusinessPhone != nil {
		updates["business_phone"] = *payload.BusinessPhone
	}
	if payload.BusinessEmail != nil {
		updates["business_email"] = *payload.BusinessEmail
	}
	if payload.CommissionRate != nil {
		if *payload.CommissionRate < 0 || *payload.CommissionRate > 100 {
			return fiber.NewError(fiber.StatusBadRequest, "commission_rate must be between 0 and 100")
		}
		updates["commission_rate"] = *payload.CommissionRate
	}
	if payload.IsActive != nil {
		updates["is_active"] = *payload.IsActive
	}
	if payload.IsVerified != nil {
		updates["is_verified"] = *payload.IsVerified
	}

	if len(updates) > 0 {
		if err := h.db.Model(&vendor).Updates(updates).Error; err != nil {
			return err
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": vendor})
}

// DeleteVendor removes a vendor profile. Vendors with products are
// deactivated instead.
func (h *AdminHandler) DeleteVendor(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var products int64
	if err := h.db.Model(&models.Product{}).Where("vendor_id = ?", id).
		Count(&products).Error; err != nil {
		return err
	}

	if products > 0 {
		res := h.db.Model(&models.Vendor{}).Where("id = ?", id).
			Update("is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "vendor not found")
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"id": id, "deactivated": true}})
	}

	res := h.db.Delete(&models.Vendor{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "vendor not found")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SetProductStatus overrides a product's status, e.g. suspending a listing.
func (h *AdminHandler) SetProductStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req struct {
		Status models.ProductStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	switch req.Status {
	case models.ProductActive, models.ProductInactive, models.ProductOutOfStock, models.ProductDiscontinued:
	default:
		return fiber.NewError(fiber.StatusBadRequest, "invalid status")
	}

	res := h.db.Model(&models.Product{}).Where("id = ?", id).
		Update("status", req.Status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"id": id, "status": req.Status}})
}

// ListCoupons returns every coupon.
func (h *AdminHandler) ListCoupons(c *fiber.Ctx) error {
	var coupons []models.Coupon
	if err := h.db.Order("created_at desc").Find(&coupons).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": coupons})
}

// CreateCoupon creates a coupon. Codes are stored uppercase.
func (h *AdminHandler) CreateCoupon(c *fiber.Ctx) error {
	var payload models.Coupon
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if payload.Code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "code is required")
	}
	if payload.DiscountType != models.DiscountPercentage && payload.DiscountType != models.DiscountFixed {
		return fiber.NewError(fiber.StatusBadRequest, "discount_type must be percentage or fixed")
	}
	if payload.DiscountValue <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "discount_value must be positive")
	}
	if payload.DiscountType == models.DiscountPercentage && payload.DiscountValue > 100 {
		return fiber.NewError(fiber.StatusBadRequest, "percentage discount cannot exceed 100")
	}

	payload.ID = uuid.Nil
	payload.Code = models.NormalizeCouponCode(payload.Code)
	payload.UsageCount = 0

	if err := h.db.Create(&payload).Error; err != nil {
		return fiber.NewError(fiber.StatusConflict, "coupon code already exists")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// UpdateCoupon edits coupon fields. Usage count is never writable.
func (h *AdminHandler) UpdateCoupon(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var coupon models.Coupon
	if err := h.db.First(&coupon, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "coupon not found")
		}
		return err
	}

	var payload struct {
		Description     *string    `json:"description"`
		DiscountValue   *float64   `json:"discount_value"`
		MinimumAmount   *float64   `json:"minimum_amount"`
		MaximumDiscount *float64   `json:"maximum_discount"`
		UsageLimit      *int       `json:"usage_limit"`
		UserUsageLimit  *int       `json:"user_usage_limit"`
		IsActive        *bool      `json:"is_active"`
		ValidFrom       *time.Time `json:"valid_from"`
		ValidUntil      *time.Time `json:"valid_until"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]any{}
	if payload.Description != nil {
		updates["description"] = *payload.Description
	}
	if payload.DiscountValue != nil {
		if *payload.DiscountValue <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "discount_value must be positive")
		}
		updates["discount_value"] = *payload.DiscountValue
	}
	if payload.MinimumAmount != nil {
		updates["minimum_amount"] = *payload.MinimumAmount
	}
	if payload.MaximumDiscount != nil {
		updates["maximum_discount"] = *payload.MaximumDiscount
	}
	if payload.UsageLimit != nil {
		updates["usage_limit"] = *payload.UsageLimit
	}
	if payload.UserUsageLimit != nil {
		updates["user_usage_limit"] = *payload.UserUsageLimit
	}
	if payload.IsActive != nil {
		updates["is_active"] = *payload.IsActive
	}
	if payload.ValidFrom != nil {
		updates["valid_from"] = *payload.ValidFrom
	}
	if payload.ValidUntil != nil {
		updates["valid_until"] = *payload.ValidUntil
	}

	if len(updates) > 0 {
		if err := h.db.Model(&coupon).Updates(updates).Error; err != nil {
			return err
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": coupon})
}

// DeleteCoupon removes a coupon.
func (h *AdminHandler) DeleteCoupon(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	res := h.db.Delete(&models.Coupon{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "coupon not found")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SalesReport aggregates paid order totals per day over a date range,
// defaulting to the last 30 days.
func (h *AdminHandler) SalesReport(c *fiber.Ctx) error {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if v := c.Query("date_from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date_from must be YYYY-MM-DD")
		}
		from = t
	}
	if v := c.Query("date_to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date_to must be YYYY-MM-DD")
		}
		to = t.Add(24*time.Hour - time.Nanosecond)
	}

	type dailyRow struct {
		Day     string  `json:"day"`
		Orders  int64   `json:"orders"`
		Revenue float64 `json:"revenue"`
	}
	var rows []dailyRow
	if err := h.db.Model(&models.Order{}).
		Select("DATE(created_at) AS day, COUNT(*) AS orders, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("payment_status = ? AND created_at BETWEEN ? AND ?", models.PaymentCompleted, from, to).
		Group("DATE(created_at)").
		Order("day asc").
		Scan(&rows).Error; err != nil {
		return err
	}

	var totalOrders int64
	var totalRevenue float64
	for _, r := range rows {
		totalOrders += r.Orders
		totalRevenue += r.Revenue
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"from":          from.Format("2006-01-02"),
		"to":            to.Format("2006-01-02"),
		"daily":         rows,
		"total_orders":  totalOrders,
		"total_revenue": services.Round2(totalRevenue),
	}})
}

// InventoryReport lists tracked products at or below their low-stock
// threshold.
func (h *AdminHandler) InventoryReport(c *fiber.Ctx) error {
	var low []models.Product
	if err := h.db.
		Where("track_inventory = ? AND stock_quantity <= low_stock_threshold", true).
		Order("stock_quantity asc").
		Find(&low).Error; err != nil {
		return err
	}

	var outOfStock int64
	if err := h.db.Model(&models.Product{}).
		Where("track_inventory = ? AND stock_quantity = 0", true).
		Count(&outOfStock).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"low_stock":          low,
		"low_stock_count":    len(low),
		"out_of_stock_count": outOfStock,
	}})
}

// GetSettings returns the store settings row, creating it on first read.
func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.loadSettings()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": settings})
}

// settingsPatch enumerates the writable settings fields. Unknown fields in
// the request body are rejected.
type settingsPatch struct {
	StoreName       *string `json:"store_name"`
	SupportEmail    *string `json:"support_email"`
	SupportPhone    *string `json:"support_phone"`
	Announcement    *string `json:"announcement"`
	MaintenanceMode *bool   `json:"maintenance_mode"`
}

// UpdateSettings applies a partial settings update. The payload is decoded
// strictly so typos and unrecognized keys fail loudly instead of being
// silently dropped.
func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()

	var patch settingsPatch
	if err := dec.Decode(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid settings payload: "+err.Error())
	}

	settings, err := h.loadSettings()
	if err != nil {
		return err
	}

	updates := map[string]any{}
	if patch.StoreName != nil {
		if *patch.StoreName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "store_name cannot be empty")
		}
		updates["store_name"] = *patch.StoreName
	}
	if patch.SupportEmail != nil {
		updates["support_email"] = *patch.SupportEmail
	}
	if patch.SupportPhone != nil {
		updates["support_phone"] = *patch.SupportPhone
	}
	if patch.Announcement != nil {
		updates["announcement"] = *patch.Announcement
	}
	if patch.MaintenanceMode != nil {
		updates["maintenance_mode"] = *patch.MaintenanceMode
	}

	if len(updates) > 0 {
		if err := h.db.Model(settings).Updates(updates).Error; err != nil {
			return err
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": settings})
}

func (h *AdminHandler) loadSettings() (*models.StoreSettings, error) {
	var settings models.StoreSettings
	err := h.db.Order("created_at asc").First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.StoreSettings{StoreName: "Vendora"}
		if err := h.db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
