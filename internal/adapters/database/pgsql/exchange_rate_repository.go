package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prosperahq/prospera_wallet_app/internal/apperrors"
	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	portsrepo "github.com/prosperahq/prospera_wallet_app/internal/core/ports/repositories"
)

type PgxExchangeRateRepository struct {
	pool *pgxpool.Pool
}

// NewPgxExchangeRateRepository creates a new repository for exchange rate data.
func NewPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{pool: pool}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	query := `
		INSERT INTO exchange_rates (from_currency, to_currency, rate, effective_date, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING rate_id;
	`
	err := r.pool.QueryRow(ctx, query,
		rate.FromCurrency,
		rate.ToCurrency,
		rate.Rate,
		rate.EffectiveDate,
		rate.CreatedAt,
		rate.LastUpdatedAt,
	).Scan(&rate.RateID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to save exchange rate: %w", err)
	}
	return &rate, nil
}

func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error) {
	query := `
		SELECT rate_id, from_currency, to_currency, rate, effective_date, created_at, last_updated_at
		FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2
		ORDER BY effective_date DESC
		LIMIT 1;
	`
	var rate domain.ExchangeRate
	err := r.pool.QueryRow(ctx, query, fromCurrency, toCurrency).Scan(
		&rate.RateID,
		&rate.FromCurrency,
		&rate.ToCurrency,
		&rate.Rate,
		&rate.EffectiveDate,
		&rate.CreatedAt,
		&rate.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find exchange rate %s/%s: %w", fromCurrency, toCurrency, err)
	}
	return &rate, nil
}

func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	query := `
		SELECT rate_id, from_currency, to_currency, rate, effective_date, created_at, last_updated_at
		FROM exchange_rates
		ORDER BY effective_date DESC, rate_id DESC;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	rates := []domain.ExchangeRate{}
	for rows.Next() {
		var rate domain.ExchangeRate
		if err := rows.Scan(&rate.RateID, &rate.FromCurrency, &rate.ToCurrency, &rate.Rate, &rate.EffectiveDate, &rate.CreatedAt, &rate.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate row: %w", err)
		}
		rates = append(rates, rate)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating exchange rate rows: %w", rows.Err())
	}
	return rates, nil
}
