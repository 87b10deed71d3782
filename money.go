package idxwatch

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// displayCurrency is the currency all IDX prices are quoted in.
const displayCurrency = "IDR"

// IDR formats a rupiah amount for display, with the currency's grapheme and
// thousand separators. Presentation only: arithmetic stays in decimal.
func IDR(v decimal.Decimal) string {
	cur := money.GetCurrency(displayCurrency)
	minor := v.Shift(int32(cur.Fraction))
	return money.New(minor.IntPart(), displayCurrency).Display()
}
