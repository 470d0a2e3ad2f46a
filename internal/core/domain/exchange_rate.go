package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a stored conversion rate between two currencies. Rates are
// recorded for display and export; nothing in the ledger core consumes them.
type ExchangeRate struct {
	RateID        int64           `json:"rateID"`
	FromCurrency  string          `json:"fromCurrency"`
	ToCurrency    string          `json:"toCurrency"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate time.Time       `json:"effectiveDate"`
	AuditFields
}
