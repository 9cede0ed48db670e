package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/selimgur/kiraci/internal/apperrors"
	"github.com/selimgur/kiraci/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SQLiteExchangeRateRepository implements the exchange rate repository ports
// on a SQLite database.
type SQLiteExchangeRateRepository struct {
	db *sql.DB
}

// NewExchangeRateRepository creates a new SQLiteExchangeRateRepository.
func NewExchangeRateRepository(db *sql.DB) *SQLiteExchangeRateRepository {
	return &SQLiteExchangeRateRepository{db: db}
}

// UpsertRate persists a rate, overwriting any prior value for the same
// (month, year). The original rate_id and created_at are kept on conflict.
func (r *SQLiteExchangeRateRepository) UpsertRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (rate_id, month, year, rate, source, created_at, last_updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (month, year) DO UPDATE SET
			rate = excluded.rate,
			source = excluded.source,
			last_updated_at = excluded.last_updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		rate.RateID,
		rate.Period.Month,
		rate.Period.Year,
		rate.Rate.String(),
		rate.Source,
		rate.CreatedAt,
		rate.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error upserting exchange rate for %s: %w", rate.Period, err)
	}
	return nil
}

// FindRateByPeriod retrieves the rate for a calendar month.
func (r *SQLiteExchangeRateRepository) FindRateByPeriod(ctx context.Context, period domain.MonthYear) (*domain.ExchangeRate, error) {
	query := `
		SELECT rate_id, month, year, rate, source, created_at, last_updated_at
		FROM exchange_rates
		WHERE month = ? AND year = ?
	`
	rate, err := scanExchangeRate(r.db.QueryRowContext(ctx, query, period.Month, period.Year))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding exchange rate for %s: %w", period, err)
	}
	return rate, nil
}

// ListRates retrieves all stored rates in chronological order.
func (r *SQLiteExchangeRateRepository) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	query := `
		SELECT rate_id, month, year, rate, source, created_at, last_updated_at
		FROM exchange_rates
		ORDER BY year, month
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying exchange rates: %w", err)
	}
	defer rows.Close()

	var rates []domain.ExchangeRate
	for rows.Next() {
		rate, err := scanExchangeRate(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning exchange rate: %w", err)
		}
		rates = append(rates, *rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange rates: %w", err)
	}
	return rates, nil
}

func scanExchangeRate(row rowScanner) (*domain.ExchangeRate, error) {
	var (
		rate    domain.ExchangeRate
		rateStr string
	)
	err := row.Scan(
		&rate.RateID,
		&rate.Period.Month,
		&rate.Period.Year,
		&rateStr,
		&rate.Source,
		&rate.CreatedAt,
		&rate.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if rate.Rate, err = decimal.NewFromString(rateStr); err != nil {
		return nil, fmt.Errorf("bad rate %q: %w", rateStr, err)
	}
	return &rate, nil
}
