package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Variant struct {
	Size  string `json:"size"`
	Color string `json:"color"`
}

// ItemKey identifies a line item. Two entries for the same product with a
// different size or color are separate lines.
type ItemKey struct {
	ID    string `json:"id" validate:"required"`
	Size  string `json:"size"`
	Color string `json:"color"`
}

func (k ItemKey) String() string {
	return strings.Join([]string{k.ID, k.Size, k.Color}, "/")
}

type CartItem struct {
	ID                    string           `json:"id" validate:"required"`
	Name                  string           `json:"name" validate:"required"`
	Category              string           `json:"category"`
	Price                 decimal.Decimal  `json:"price"`
	OriginalPrice         *decimal.Decimal `json:"original_price,omitempty"`
	Quantity              int              `json:"quantity" validate:"min=1"`
	MaxStock              int              `json:"max_stock" validate:"min=1,gtefield=Quantity"`
	Variant               Variant          `json:"variant"`
	EstimatedDeliveryDays int              `json:"estimated_delivery_days" validate:"min=0"`
	FreeShipping          bool             `json:"free_shipping"`
	IsLimitedEdition      bool             `json:"is_limited_edition"`
	ImageURL              string           `json:"image_url,omitempty"`
}

func (ci CartItem) Key() ItemKey {
	return ItemKey{ID: ci.ID, Size: ci.Variant.Size, Color: ci.Variant.Color}
}

func (ci CartItem) LineTotal() decimal.Decimal {
	return ci.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

// Savings is the per-line difference against the original price, zero when
// the item is not discounted.
func (ci CartItem) Savings() decimal.Decimal {
	if ci.OriginalPrice == nil || !ci.OriginalPrice.GreaterThan(ci.Price) {
		return decimal.Zero
	}
	return ci.OriginalPrice.Sub(ci.Price).Mul(decimal.NewFromInt(int64(ci.Quantity)))
}
