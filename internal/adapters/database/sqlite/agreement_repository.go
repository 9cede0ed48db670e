package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/selimgur/kiraci/internal/apperrors"
	"github.com/selimgur/kiraci/internal/core/domain"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// SQLiteAgreementRepository implements the agreement repository ports on a
// SQLite database. Conditional rules are stored as a JSON column: the rule
// list is tiny, ordered, and only ever read whole-agreement.
type SQLiteAgreementRepository struct {
	db *sql.DB
}

// NewAgreementRepository creates a new SQLiteAgreementRepository.
func NewAgreementRepository(db *sql.DB) *SQLiteAgreementRepository {
	return &SQLiteAgreementRepository{db: db}
}

// SaveAgreement inserts a new agreement.
func (r *SQLiteAgreementRepository) SaveAgreement(ctx context.Context, agreement domain.RentalAgreement) error {
	rulesJSON, endDate, err := encodeAgreement(agreement)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO agreements (agreement_id, start_date, end_date, base_amount, rules, notes, created_at, last_updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		agreement.AgreementID,
		agreement.StartDate.Format(dateLayout),
		endDate,
		agreement.BaseAmount.String(),
		rulesJSON,
		agreement.Notes,
		agreement.CreatedAt,
		agreement.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting agreement: %w", err)
	}
	return nil
}

// UpdateAgreement overwrites an existing agreement.
func (r *SQLiteAgreementRepository) UpdateAgreement(ctx context.Context, agreement domain.RentalAgreement) error {
	rulesJSON, endDate, err := encodeAgreement(agreement)
	if err != nil {
		return err
	}
	query := `
		UPDATE agreements
		SET start_date = ?, end_date = ?, base_amount = ?, rules = ?, notes = ?, last_updated_at = ?
		WHERE agreement_id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		agreement.StartDate.Format(dateLayout),
		endDate,
		agreement.BaseAmount.String(),
		rulesJSON,
		agreement.Notes,
		agreement.LastUpdatedAt,
		agreement.AgreementID,
	)
	if err != nil {
		return fmt.Errorf("error updating agreement %s: %w", agreement.AgreementID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking update of agreement %s: %w", agreement.AgreementID, err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAgreement removes an agreement; the payment_records foreign key is
// ON DELETE CASCADE, so the derived series goes with it.
func (r *SQLiteAgreementRepository) DeleteAgreement(ctx context.Context, agreementID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM agreements WHERE agreement_id = ?`, agreementID)
	if err != nil {
		return fmt.Errorf("error deleting agreement %s: %w", agreementID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking delete of agreement %s: %w", agreementID, err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAgreementByID retrieves a single agreement.
func (r *SQLiteAgreementRepository) FindAgreementByID(ctx context.Context, agreementID string) (*domain.RentalAgreement, error) {
	query := `
		SELECT agreement_id, start_date, end_date, base_amount, rules, notes, created_at, last_updated_at
		FROM agreements
		WHERE agreement_id = ?
	`
	row := r.db.QueryRowContext(ctx, query, agreementID)
	agreement, err := scanAgreement(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding agreement %s: %w", agreementID, err)
	}
	return agreement, nil
}

// ListAgreements retrieves all agreements ordered by start date.
func (r *SQLiteAgreementRepository) ListAgreements(ctx context.Context) ([]domain.RentalAgreement, error) {
	query := `
		SELECT agreement_id, start_date, end_date, base_amount, rules, notes, created_at, last_updated_at
		FROM agreements
		ORDER BY start_date
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying agreements: %w", err)
	}
	defer rows.Close()

	var agreements []domain.RentalAgreement
	for rows.Next() {
		agreement, err := scanAgreement(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning agreement: %w", err)
		}
		agreements = append(agreements, *agreement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating agreements: %w", err)
	}
	return agreements, nil
}

func encodeAgreement(agreement domain.RentalAgreement) (string, any, error) {
	rulesJSON, err := json.Marshal(agreement.Rules)
	if err != nil {
		return "", nil, fmt.Errorf("error encoding rules for agreement %s: %w", agreement.AgreementID, err)
	}
	var endDate any
	if agreement.EndDate != nil {
		endDate = agreement.EndDate.Format(dateLayout)
	}
	return string(rulesJSON), endDate, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAgreement(row rowScanner) (*domain.RentalAgreement, error) {
	var (
		agreement  domain.RentalAgreement
		startDate  string
		endDate    sql.NullString
		baseAmount string
		rulesJSON  string
	)
	err := row.Scan(
		&agreement.AgreementID,
		&startDate,
		&endDate,
		&baseAmount,
		&rulesJSON,
		&agreement.Notes,
		&agreement.CreatedAt,
		&agreement.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if agreement.StartDate, err = time.Parse(dateLayout, startDate); err != nil {
		return nil, fmt.Errorf("bad start_date %q: %w", startDate, err)
	}
	if endDate.Valid {
		parsed, err := time.Parse(dateLayout, endDate.String)
		if err != nil {
			return nil, fmt.Errorf("bad end_date %q: %w", endDate.String, err)
		}
		agreement.EndDate = &parsed
	}
	if agreement.BaseAmount, err = decimal.NewFromString(baseAmount); err != nil {
		return nil, fmt.Errorf("bad base_amount %q: %w", baseAmount, err)
	}
	if rulesJSON != "" && rulesJSON != "null" {
		if err := json.Unmarshal([]byte(rulesJSON), &agreement.Rules); err != nil {
			return nil, fmt.Errorf("bad rules column: %w", err)
		}
	}
	return &agreement, nil
}
