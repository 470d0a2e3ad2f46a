package dto

import (
	"time"

	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
)

// UpsertRateRequest stores an exchange rate for a currency pair.
type UpsertRateRequest struct {
	FromCurrency  string    `json:"fromCurrency" binding:"required,len=3"`
	ToCurrency    string    `json:"toCurrency" binding:"required,len=3"`
	Rate          string    `json:"rate" binding:"required"`
	EffectiveDate time.Time `json:"effectiveDate" binding:"required"`
}

// RateResponse is the API representation of a stored exchange rate.
type RateResponse struct {
	RateID        int64     `json:"rateID"`
	FromCurrency  string    `json:"fromCurrency"`
	ToCurrency    string    `json:"toCurrency"`
	Rate          string    `json:"rate"`
	EffectiveDate time.Time `json:"effectiveDate"`
}

// ToRateResponse maps a domain exchange rate to its API representation.
func ToRateResponse(r *domain.ExchangeRate) RateResponse {
	return RateResponse{
		RateID:        r.RateID,
		FromCurrency:  r.FromCurrency,
		ToCurrency:    r.ToCurrency,
		Rate:          r.Rate.String(),
		EffectiveDate: r.EffectiveDate,
	}
}
