package types

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrencySymbol is the symbol used by FormatCurrency
const DefaultCurrencySymbol = "$"

// centsExponent is the exponent of the minor currency unit
const centsExponent = -2

// MaxDollars is the largest dollar amount whose cents fit in an int64
var MaxDollars = decimal.New(math.MaxInt64, centsExponent)

var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders an amount held in cents as a localized display
// string, e.g. 123456 -> "$1,234.56"
func FormatCurrency(cents int64) string {
	return FormatDollars(CentsToDollars(cents))
}

// FormatDollars renders a decimal dollar amount, e.g. 1234.5 -> "$1,234.50".
// The whole part must fit in an int64.
func FormatDollars(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	rounded := amount.Round(2)
	fixed := rounded.StringFixed(2)
	cents := fixed[strings.LastIndex(fixed, ".")+1:]
	whole := currencyPrinter.Sprintf("%d", rounded.IntPart())
	return sign + DefaultCurrencySymbol + whole + "." + cents
}

// CentsToDollars converts minor units to a decimal dollar amount
func CentsToDollars(cents int64) decimal.Decimal {
	return decimal.New(cents, centsExponent)
}

// DollarsToCents converts a decimal dollar amount to minor units,
// rounding half away from zero: round(amount * 100)
func DollarsToCents(amount decimal.Decimal) int64 {
	return amount.Shift(-centsExponent).Round(0).IntPart()
}
