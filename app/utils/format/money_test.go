package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0.00", Money(decimal.Zero))
	assert.Equal(t, "$9.99", Money(decimal.RequireFromString("9.99")))
	assert.Equal(t, "$1,234.50", Money(decimal.RequireFromString("1234.5")))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "8%", Percent(decimal.RequireFromString("0.08")))
}
