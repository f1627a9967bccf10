package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/vendora/internal/models"
)

// CartService tracks pending purchase intent for registered users and guest
// sessions. Summaries are recomputed from current product prices on every
// read, never cached.
type CartService struct {
	db      *gorm.DB
	pricing Pricing
}

func NewCartService(db *gorm.DB, pricing Pricing) *CartService {
	return &CartService{db: db, pricing: pricing}
}

// CartLine is one line of a cart summary projection.
type CartLine struct {
	ID          uuid.UUID  `json:"id"`
	ProductID   uuid.UUID  `json:"product_id"`
	VariantID   *uuid.UUID `json:"variant_id,omitempty"`
	ProductName string     `json:"product_name"`
	ProductSlug string     `json:"product_slug"`
	ImageURL    string     `json:"product_image,omitempty"`
	UnitPrice   float64    `json:"unit_price"`
	Quantity    int        `json:"quantity"`
	Subtotal    float64    `json:"subtotal"`
}

// CartSummary is the read-only projection of a cart with derived totals.
type CartSummary struct {
	Items      []CartLine `json:"items"`
	TotalItems int        `json:"total_items"`
	Totals
	TaxRate           float64 `json:"tax_rate"`
	ShippingThreshold float64 `json:"shipping_threshold"`
}

// checkAddable verifies the product can enter a cart at the requested
// quantity. The stock check here is advisory only; checkout revalidates.
func (s *CartService) checkAddable(productID uuid.UUID, quantity int) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !product.Purchasable() {
		return nil, &ProductUnavailableError{Name: product.Name}
	}
	if product.TrackInventory && product.StockQuantity < quantity {
		return nil, &InsufficientStockError{
			Name:      product.Name,
			Available: product.StockQuantity,
			Requested: quantity,
		}
	}
	return &product, nil
}

// AddUserItem adds a product to the user's cart, incrementing the quantity of
// an existing line for the same product and variant.
func (s *CartService) AddUserItem(userID, productID uuid.UUID, variantID *uuid.UUID, quantity int) (*models.CartItem, error) {
	if _, err := s.checkAddable(productID, quantity); err != nil {
		return nil, err
	}

	var item models.CartItem
	query := s.db.Where("user_id = ? AND product_id = ?", userID, productID)
	if variantID != nil {
		query = query.Where("variant_id = ?", *variantID)
	} else {
		query = query.Where("variant_id IS NULL")
	}

	err := query.First(&item).Error
	switch {
	case err == nil:
		item.Quantity += quantity
		if err := s.db.Save(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{
			UserID:    userID,
			ProductID: productID,
			VariantID: variantID,
			Quantity:  quantity,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	default:
		return nil, err
	}
}

// SetUserItemQuantity replaces a line's quantity; zero or less deletes it.
func (s *CartService) SetUserItemQuantity(itemID, userID uuid.UUID, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	if err := s.db.First(&item, "id = ? AND user_id = ?", itemID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}

	if quantity <= 0 {
		if err := s.db.Delete(&item).Error; err != nil {
			return nil, err
		}
		return nil, nil
	}

	item.Quantity = quantity
	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveUserItem deletes a line from the user's cart.
func (s *CartService) RemoveUserItem(itemID, userID uuid.UUID) error {
	res := s.db.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearUserCart deletes every line for the user.
func (s *CartService) ClearUserCart(userID uuid.UUID) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

// UserCartItems returns the raw cart lines with product preloaded.
func (s *CartService) UserCartItems(userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.db.Preload("Product").Preload("Product.Images").Preload("Variant").
		Where("user_id = ?", userID).Order("created_at asc").Find(&items).Error
	return items, err
}

// SummarizeUserCart produces the derived totals projection for a user cart.
func (s *CartService) SummarizeUserCart(userID uuid.UUID) (*CartSummary, error) {
	items, err := s.UserCartItems(userID)
	if err != nil {
		return nil, err
	}

	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		line := CartLine{
			ID:        item.ID,
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
			line.ProductSlug = item.Product.Slug
			line.ImageURL = primaryImageURL(item.Product)
			line.UnitPrice = item.Product.Price
		}
		if item.Variant != nil {
			line.UnitPrice = Round2(line.UnitPrice + item.Variant.PriceAdjustment)
		}
		line.Subtotal = Round2(line.UnitPrice * float64(item.Quantity))
		lines = append(lines, line)
	}

	return s.summarize(lines), nil
}

// AddSessionItem adds a product to a guest session cart, incrementing an
// existing line for the same product.
func (s *CartService) AddSessionItem(sessionID string, productID uuid.UUID, quantity int) (*models.SessionCartItem, error) {
	if _, err := s.checkAddable(productID, quantity); err != nil {
		return nil, err
	}

	var item models.SessionCartItem
	err := s.db.Where("session_id = ? AND product_id = ?", sessionID, productID).First(&item).Error
	switch {
	case err == nil:
		item.Quantity += quantity
		if err := s.db.Save(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.SessionCartItem{SessionID: sessionID, ProductID: productID, Quantity: quantity}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	default:
		return nil, err
	}
}

// SetSessionItemQuantity replaces a session line's quantity; zero or less
// deletes the line.
func (s *CartService) SetSessionItemQuantity(sessionID string, productID uuid.UUID, quantity int) error {
	var item models.SessionCartItem
	if err := s.db.Where("session_id = ? AND product_id = ?", sessionID, productID).First(&item).Error; err != nil {
		return err
	}

	if quantity <= 0 {
		return s.db.Delete(&item).Error
	}

	item.Quantity = quantity
	return s.db.Save(&item).Error
}

// RemoveSessionItem deletes a product line from a session cart.
func (s *CartService) RemoveSessionItem(sessionID string, productID uuid.UUID) error {
	res := s.db.Where("session_id = ? AND product_id = ?", sessionID, productID).
		Delete(&models.SessionCartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearSessionCart deletes every line for the session.
func (s *CartService) ClearSessionCart(sessionID string) error {
	return s.db.Where("session_id = ?", sessionID).Delete(&models.SessionCartItem{}).Error
}

// SummarizeSessionCart produces the derived totals projection for a guest cart.
func (s *CartService) SummarizeSessionCart(sessionID string) (*CartSummary, error) {
	var items []models.SessionCartItem
	if err := s.db.Preload("Product").Preload("Product.Images").
		Where("session_id = ?", sessionID).Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}

	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		line := CartLine{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
			line.ProductSlug = item.Product.Slug
			line.ImageURL = primaryImageURL(item.Product)
			line.UnitPrice = item.Product.Price
		}
		line.Subtotal = Round2(line.UnitPrice * float64(item.Quantity))
		lines = append(lines, line)
	}

	return s.summarize(lines), nil
}

func (s *CartService) summarize(lines []CartLine) *CartSummary {
	var subtotal float64
	var count int
	for _, line := range lines {
		subtotal += line.Subtotal
		count += line.Quantity
	}

	return &CartSummary{
		Items:             lines,
		TotalItems:        count,
		Totals:            s.pricing.Compute(subtotal),
		TaxRate:           s.pricing.TaxRate,
		ShippingThreshold: s.pricing.FreeShippingThreshold,
	}
}

func primaryImageURL(product *models.Product) string {
	if product == nil || len(product.Images) == 0 {
		return ""
	}
	for _, image := range product.Images {
		if image.IsPrimary {
			return image.ImageURL
		}
	}
	return product.Images[0].ImageURL
}
