package services

import (
	"context"

	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	"github.com/prosperahq/prospera_wallet_app/internal/dto"
)

// ExchangeRateSvcFacade defines operations for stored exchange rates.
// Rates are recorded and listed only; no ledger computation consumes them.
type ExchangeRateSvcFacade interface {
	// SaveRate stores a rate for a currency pair.
	SaveRate(ctx context.Context, requestingUserID int64, req dto.UpsertRateRequest) (*domain.ExchangeRate, error)

	// GetRate retrieves the latest effective rate for a currency pair.
	GetRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error)

	// ListRates retrieves all stored rates, newest first.
	ListRates(ctx context.Context) ([]domain.ExchangeRate, error)
}
