package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var usd = accounting.Accounting{Symbol: "$", Precision: 2, Thousand: ",", Decimal: "."}

// Money renders an amount for display, e.g. "$1,234.50".
func Money(amount decimal.Decimal) string {
	return usd.FormatMoneyDecimal(amount)
}

// Percent renders a fractional rate such as 0.08 as "8%".
func Percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}
