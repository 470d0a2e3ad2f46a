package repositories

import (
	"context"

	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
)

// ExchangeRateRepositoryFacade defines persistence operations for stored
// exchange rates. Rates are write-and-display only; nothing converts with them.
type ExchangeRateRepositoryFacade interface {
	// SaveExchangeRate persists a rate and returns it with its assigned id.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error)

	// FindExchangeRate retrieves the latest effective rate for a currency pair.
	FindExchangeRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves all stored rates, newest first.
	ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)
}
