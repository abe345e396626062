package calc

import (
	"github.com/Rakhulsr/go-cart/app/models"
	"github.com/shopspring/decimal"
)

func CalculateDiscount(baseTotal, discountPercent decimal.Decimal) decimal.Decimal {
	return Round(baseTotal.Mul(discountPercent).Div(decimal.NewFromInt(100)))
}

// PromoDiscount resolves the amount a promo takes off. A free-shipping code
// is worth exactly the shipping fee that was charged.
func PromoDiscount(promo *models.PromoCode, subtotal, shipping decimal.Decimal) decimal.Decimal {
	if promo == nil {
		return decimal.Zero
	}
	switch promo.Kind {
	case models.PromoPercentage:
		return CalculateDiscount(subtotal, promo.Value)
	case models.PromoFixed:
		return Round(promo.Value)
	case models.PromoFreeShipping:
		return shipping
	default:
		return decimal.Zero
	}
}
