package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

type PromoKind string

const (
	PromoPercentage   PromoKind = "percentage"
	PromoFixed        PromoKind = "fixed"
	PromoFreeShipping PromoKind = "free_shipping"
)

func (k PromoKind) Valid() bool {
	switch k {
	case PromoPercentage, PromoFixed, PromoFreeShipping:
		return true
	}
	return false
}

type PromoCode struct {
	Code  string          `json:"code"`
	Kind  PromoKind       `json:"kind"`
	Value decimal.Decimal `json:"value"`
	// Condition is an optional expression over the cart (Subtotal, ItemCount,
	// Quantity) that must hold for the code to apply.
	Condition string `json:"condition,omitempty"`
}

type PromoResult struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Discount decimal.Decimal `json:"discount"`
}

func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
