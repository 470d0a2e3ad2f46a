package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prosperahq/prospera_wallet_app/internal/apperrors"
	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	"github.com/prosperahq/prospera_wallet_app/internal/core/ledger"
	portsrepo "github.com/prosperahq/prospera_wallet_app/internal/core/ports/repositories"
	portssvc "github.com/prosperahq/prospera_wallet_app/internal/core/ports/services"
	"github.com/prosperahq/prospera_wallet_app/internal/dto"
)

// exchangeRateService implements the ExchangeRateSvcFacade interface
type exchangeRateService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateRepositoryFacade
}

// NewExchangeRateService creates a new exchange rate service with the provided dependencies
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{rateRepo: rateRepo}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// SaveRate stores a rate for a currency pair.
func (s *exchangeRateService) SaveRate(ctx context.Context, requestingUserID int64, req dto.UpsertRateRequest) (*domain.ExchangeRate, error) {
	from := ledger.NormalizeCurrency(req.FromCurrency)
	to := ledger.NormalizeCurrency(req.ToCurrency)
	if from == to {
		return nil, fmt.Errorf("%w: currency pair must differ", apperrors.ErrValidation)
	}

	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid rate", apperrors.ErrValidation, req.Rate)
	}
	if !rate.IsPositive() {
		return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	saved, err := s.rateRepo.SaveExchangeRate(ctx, domain.ExchangeRate{
		FromCurrency:  from,
		ToCurrency:    to,
		Rate:          rate,
		EffectiveDate: req.EffectiveDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save exchange rate",
			slog.String("pair", from+"/"+to))
		return nil, err
	}

	s.LogInfo(ctx, "Exchange rate stored",
		slog.Int64("rate_id", saved.RateID),
		slog.String("pair", from+"/"+to),
		slog.Int64("actor_user_id", requestingUserID))
	return saved, nil
}

// GetRate retrieves the latest effective rate for a currency pair.
func (s *exchangeRateService) GetRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error) {
	return s.rateRepo.FindExchangeRate(ctx,
		ledger.NormalizeCurrency(fromCurrency),
		ledger.NormalizeCurrency(toCurrency))
}

// ListRates retrieves all stored rates, newest first.
func (s *exchangeRateService) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	return s.rateRepo.ListExchangeRates(ctx)
}
