package models

import "github.com/google/uuid"

// ProductStatus controls catalog visibility and purchasability.
type ProductStatus string

const (
	ProductActive       ProductStatus = "active"
	ProductInactive     ProductStatus = "inactive"
	ProductOutOfStock   ProductStatus = "out_of_stock"
	ProductDiscontinued ProductStatus = "discontinued"
)

type Product struct {
	BaseModel
	VendorID   uuid.UUID `gorm:"type:uuid;index" json:"vendor_id"`
	Vendor     *Vendor   `json:"vendor,omitempty"`
	CategoryID uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Category   *Category `json:"category,omitempty"`

	SKU              string `gorm:"uniqueIndex" json:"sku"`
	Name             string `json:"name"`
	Slug             string `gorm:"uniqueIndex" json:"slug"`
	ShortDescription string `json:"short_description"`
	Description      string `json:"description"`

	Price        float64 `json:"price"`
	ComparePrice float64 `json:"compare_price"`
	CostPrice    float64 `json:"cost_price"`

	StockQuantity     int  `gorm:"default:0" json:"stock_quantity"`
	LowStockThreshold int  `gorm:"default:10" json:"low_stock_threshold"`
	TrackInventory    bool `gorm:"default:true" json:"track_inventory"`

	WeightGrams float64 `json:"weight_grams"`

	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`

	Status           ProductStatus `gorm:"default:active" json:"status"`
	IsFeatured       bool          `gorm:"default:false" json:"is_featured"`
	IsDigital        bool          `gorm:"default:false" json:"is_digital"`
	RequiresShipping bool          `gorm:"default:true" json:"requires_shipping"`

	Images   []ProductImage   `json:"images,omitempty"`
	Variants []ProductVariant `json:"variants,omitempty"`
	Reviews  []Review         `json:"reviews,omitempty"`

	// Populated from approved reviews on read, never stored.
	AverageRating float64 `gorm:"-" json:"average_rating"`
	ReviewCount   int64   `gorm:"-" json:"review_count"`
}

type ProductImage struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	ImageURL  string    `json:"image_url"`
	AltText   string    `json:"alt_text"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
}

// ProductVariant is an option axis value (Size: Large, Color: Red) with its own
// stock and a price adjustment over the base product price.
type ProductVariant struct {
	BaseModel
	ProductID       uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Name            string    `json:"name"`
	Value           string    `json:"value"`
	PriceAdjustment float64   `gorm:"default:0" json:"price_adjustment"`
	StockQuantity   int       `gorm:"default:0" json:"stock_quantity"`
	SKUSuffix       string    `json:"sku_suffix"`
}

// Purchasable reports whether the product may enter a cart or order.
func (p *Product) Purchasable() bool {
	return p.Status == ProductActive
}
