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

// SQLiteInflationRepository implements the inflation repository ports on a
// SQLite database.
type SQLiteInflationRepository struct {
	db *sql.DB
}

// NewInflationRepository creates a new SQLiteInflationRepository.
func NewInflationRepository(db *sql.DB) *SQLiteInflationRepository {
	return &SQLiteInflationRepository{db: db}
}

// UpsertInflation persists a figure, overwriting any prior value for the
// same (month, year).
func (r *SQLiteInflationRepository) UpsertInflation(ctx context.Context, data domain.InflationData) error {
	query := `
		INSERT INTO inflation_data (inflation_id, month, year, rate_percent, source, created_at, last_updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (month, year) DO UPDATE SET
			rate_percent = excluded.rate_percent,
			source = excluded.source,
			last_updated_at = excluded.last_updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		data.InflationID,
		data.Period.Month,
		data.Period.Year,
		data.RatePercent.String(),
		data.Source,
		data.CreatedAt,
		data.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error upserting inflation data for %s: %w", data.Period, err)
	}
	return nil
}

// FindInflationByPeriod retrieves the figure for a calendar month.
func (r *SQLiteInflationRepository) FindInflationByPeriod(ctx context.Context, period domain.MonthYear) (*domain.InflationData, error) {
	query := `
		SELECT inflation_id, month, year, rate_percent, source, created_at, last_updated_at
		FROM inflation_data
		WHERE month = ? AND year = ?
	`
	data, err := scanInflation(r.db.QueryRowContext(ctx, query, period.Month, period.Year))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding inflation data for %s: %w", period, err)
	}
	return data, nil
}

// ListInflation retrieves all stored figures in chronological order.
func (r *SQLiteInflationRepository) ListInflation(ctx context.Context) ([]domain.InflationData, error) {
	query := `
		SELECT inflation_id, month, year, rate_percent, source, created_at, last_updated_at
		FROM inflation_data
		ORDER BY year, month
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying inflation data: %w", err)
	}
	defer rows.Close()

	var figures []domain.InflationData
	for rows.Next() {
		data, err := scanInflation(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning inflation data: %w", err)
		}
		figures = append(figures, *data)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inflation data: %w", err)
	}
	return figures, nil
}

func scanInflation(row rowScanner) (*domain.InflationData, error) {
	var (
		data    domain.InflationData
		rateStr string
	)
	err := row.Scan(
		&data.InflationID,
		&data.Period.Month,
		&data.Period.Year,
		&rateStr,
		&data.Source,
		&data.CreatedAt,
		&data.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if data.RatePercent, err = decimal.NewFromString(rateStr); err != nil {
		return nil, fmt.Errorf("bad rate_percent %q: %w", rateStr, err)
	}
	return &data, nil
}
