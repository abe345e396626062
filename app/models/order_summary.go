package models

import "github.com/shopspring/decimal"

type OrderSummary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

func ZeroSummary() OrderSummary {
	return OrderSummary{
		Subtotal: decimal.Zero,
		Tax:      decimal.Zero,
		Shipping: decimal.Zero,
		Discount: decimal.Zero,
		Total:    decimal.Zero,
	}
}

func (s OrderSummary) IsZero() bool {
	return s.Subtotal.IsZero() && s.Tax.IsZero() && s.Shipping.IsZero() && s.Discount.IsZero() && s.Total.IsZero()
}
