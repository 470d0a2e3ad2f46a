// Package ledger implements the accounting core of the application: exact
// minor-unit money handling, proportional expense splitting and greedy debt
// settlement. Everything in this package is pure and deterministic: no I/O,
// no shared state, safe for concurrent use.
package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/prosperahq/prospera_wallet_app/internal/apperrors"
)

// currencyDecimals maps ISO codes to their minor-unit scale. Currencies not
// listed here use the default of 2.
var currencyDecimals = map[string]int32{
	"JPY": 0,
	"KRW": 0,
	"VND": 0,
}

const defaultDecimals int32 = 2

// CurrencyDecimals returns the number of minor-unit decimal places for a currency code.
func CurrencyDecimals(currency string) int32 {
	if d, ok := currencyDecimals[currency]; ok {
		return d
	}
	return defaultDecimals
}

// NormalizeCurrency trims and upper-cases a currency code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ParseAmountToMinor converts a user-entered decimal string into an integer
// count of minor units for the given currency, rounding half-up at the
// currency's scale. A comma decimal separator is accepted.
func ParseAmountToMinor(raw string, currency string) (int64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a valid amount", apperrors.ErrInvalidAmount, raw)
	}
	scale := CurrencyDecimals(currency)
	return value.Shift(scale).Round(0).IntPart(), nil
}

// FormatMinor renders an integer minor-unit amount as a display string with
// the currency's natural number of decimal places, e.g. "12.50 USD", "1200 JPY".
func FormatMinor(amountMinor int64, currency string) string {
	scale := CurrencyDecimals(currency)
	value := decimal.New(amountMinor, -scale)
	return fmt.Sprintf("%s %s", value.StringFixed(scale), currency)
}

// Quantize2 rounds a decimal half-up to 2 places, the working precision of the
// group-ledger settlement path.
func Quantize2(value decimal.Decimal) decimal.Decimal {
	return value.Round(2)
}
