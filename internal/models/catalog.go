package models

import "github.com/google/uuid"

// Category is a catalog node. Categories nest through ParentID.
type Category struct {
	BaseModel
	Name        string     `gorm:"uniqueIndex" json:"name"`
	Slug        string     `gorm:"uniqueIndex" json:"slug"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"`
	ParentID    *uuid.UUID `gorm:"type:uuid" json:"parent_id"`
	Parent      *Category  `json:"parent,omitempty"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	SortOrder   int        `gorm:"default:0" json:"sort_order"`

	Subcategories []Category `gorm:"foreignKey:ParentID" json:"subcategories,omitempty"`
	Products      []Product  `json:"products,omitempty"`
}
