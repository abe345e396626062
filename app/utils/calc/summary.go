package calc

import (
	"github.com/Rakhulsr/go-cart/app/models"
	"github.com/shopspring/decimal"
)

type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

func (c *Calculator) Config() Config {
	return c.cfg
}

func Subtotal(items []models.CartItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return Round(subtotal)
}

// Summarize computes the order summary for items with an optional promo.
// An empty cart yields a zero summary even when a promo is active.
func (c *Calculator) Summarize(items []models.CartItem, promo *models.PromoCode) models.OrderSummary {
	if len(items) == 0 {
		return models.ZeroSummary()
	}

	subtotal := Subtotal(items)
	tax := c.cfg.CalculateTax(subtotal)
	shipping := c.cfg.CalculateShipping(subtotal)
	discount := PromoDiscount(promo, subtotal, shipping)

	return models.OrderSummary{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Discount: discount,
		Total:    CalculateGrandTotal(subtotal, tax, shipping, discount),
	}
}
