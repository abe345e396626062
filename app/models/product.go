package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID                    string           `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name                  string           `gorm:"size:255;not null" json:"name"`
	Slug                  string           `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description           string           `gorm:"type:text" json:"description"`
	CategoryID            string           `gorm:"size:36;index" json:"category_id"`
	Category              *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Price                 decimal.Decimal  `gorm:"type:decimal(16,2);not null" json:"price"`
	OriginalPrice         *decimal.Decimal `gorm:"type:decimal(16,2)" json:"original_price,omitempty"`
	Stock                 int              `gorm:"not null" json:"stock"`
	Sizes                 []string         `gorm:"serializer:json" json:"sizes"`
	Colors                []string         `gorm:"serializer:json" json:"colors"`
	EstimatedDeliveryDays int              `gorm:"default:3" json:"estimated_delivery_days"`
	FreeShipping          bool             `json:"free_shipping"`
	IsLimitedEdition      bool             `json:"is_limited_edition"`
	ImageURL              string           `gorm:"size:512" json:"image_url"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
	DeletedAt             gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

func (p *Product) HasSize(size string) bool {
	return hasOption(p.Sizes, size)
}

func (p *Product) HasColor(color string) bool {
	return hasOption(p.Colors, color)
}

// hasOption treats a product without options as accepting only the empty value.
func hasOption(options []string, v string) bool {
	if len(options) == 0 {
		return v == ""
	}
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

// ToCartItem projects the catalog record onto a cart line.
func (p *Product) ToCartItem(variant Variant, qty int) CartItem {
	item := CartItem{
		ID:                    p.ID,
		Name:                  p.Name,
		Price:                 p.Price,
		OriginalPrice:         p.OriginalPrice,
		Quantity:              qty,
		MaxStock:              p.Stock,
		Variant:               variant,
		EstimatedDeliveryDays: p.EstimatedDeliveryDays,
		FreeShipping:          p.FreeShipping,
		IsLimitedEdition:      p.IsLimitedEdition,
		ImageURL:              p.ImageURL,
	}
	if p.Category != nil {
		item.Category = p.Category.Name
	}
	return item
}
