package calc

import "github.com/shopspring/decimal"

// Config holds the pricing policy. Rates are fractions, not percents.
type Config struct {
	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
}

func DefaultConfig() Config {
	return Config{
		TaxRate:               decimal.RequireFromString("0.08"),
		FreeShippingThreshold: decimal.NewFromInt(75),
		FlatShippingFee:       decimal.RequireFromString("9.99"),
	}
}

func (c Config) CalculateTax(subtotal decimal.Decimal) decimal.Decimal {
	return Round(subtotal.Mul(c.TaxRate))
}

func (c Config) CalculateShipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(c.FreeShippingThreshold) {
		return decimal.Zero
	}
	return Round(c.FlatShippingFee)
}

// CalculateGrandTotal never goes below zero; a discount larger than the
// order only zeroes it.
func CalculateGrandTotal(subtotal, tax, shipping, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Add(tax).Add(shipping).Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return Round(total)
}

// Round uses half away from zero at two places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
