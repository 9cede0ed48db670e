package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/selimgur/kiraci/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SQLitePaymentRepository implements the payment record repository ports on
// a SQLite database.
type SQLitePaymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new SQLitePaymentRepository.
func NewPaymentRepository(db *sql.DB) *SQLitePaymentRepository {
	return &SQLitePaymentRepository{db: db}
}

// UpsertPayments persists a batch of payment records inside one transaction.
// The conflict target is (agreement_id, month, year); the original
// payment_id and created_at survive regeneration, so rerunning the generator
// with identical inputs leaves the rows byte-identical.
func (r *SQLitePaymentRepository) UpsertPayments(ctx context.Context, records []domain.PaymentRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting payment upsert transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO payment_records (payment_id, agreement_id, month, year, local_amount, reference_amount, rate, created_at, last_updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (agreement_id, month, year) DO UPDATE SET
			local_amount = excluded.local_amount,
			reference_amount = excluded.reference_amount,
			rate = excluded.rate,
			last_updated_at = excluded.last_updated_at
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("error preparing payment upsert: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		_, err := stmt.ExecContext(ctx,
			record.PaymentID,
			record.AgreementID,
			record.Period.Month,
			record.Period.Year,
			record.LocalAmount.String(),
			record.ReferenceAmount.String(),
			record.Rate.String(),
			record.CreatedAt,
			record.LastUpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("error upserting payment for %s %s: %w", record.AgreementID, record.Period, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing payment upsert: %w", err)
	}
	return nil
}

// DeletePaymentsByAgreement removes all payment records for an agreement.
func (r *SQLitePaymentRepository) DeletePaymentsByAgreement(ctx context.Context, agreementID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM payment_records WHERE agreement_id = ?`, agreementID)
	if err != nil {
		return fmt.Errorf("error deleting payments for agreement %s: %w", agreementID, err)
	}
	return nil
}

// ListPaymentsByAgreement retrieves all payment records for an agreement in
// chronological order.
func (r *SQLitePaymentRepository) ListPaymentsByAgreement(ctx context.Context, agreementID string) ([]domain.PaymentRecord, error) {
	query := `
		SELECT payment_id, agreement_id, month, year, local_amount, reference_amount, rate, created_at, last_updated_at
		FROM payment_records
		WHERE agreement_id = ?
		ORDER BY year, month
	`
	rows, err := r.db.QueryContext(ctx, query, agreementID)
	if err != nil {
		return nil, fmt.Errorf("error querying payments for agreement %s: %w", agreementID, err)
	}
	defer rows.Close()

	var records []domain.PaymentRecord
	for rows.Next() {
		var (
			record       domain.PaymentRecord
			localStr     string
			referenceStr string
			rateStr      string
		)
		err := rows.Scan(
			&record.PaymentID,
			&record.AgreementID,
			&record.Period.Month,
			&record.Period.Year,
			&localStr,
			&referenceStr,
			&rateStr,
			&record.CreatedAt,
			&record.LastUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning payment record: %w", err)
		}
		if record.LocalAmount, err = decimal.NewFromString(localStr); err != nil {
			return nil, fmt.Errorf("bad local_amount %q: %w", localStr, err)
		}
		if record.ReferenceAmount, err = decimal.NewFromString(referenceStr); err != nil {
			return nil, fmt.Errorf("bad reference_amount %q: %w", referenceStr, err)
		}
		if record.Rate, err = decimal.NewFromString(rateStr); err != nil {
			return nil, fmt.Errorf("bad rate %q: %w", rateStr, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment records: %w", err)
	}
	return records, nil
}
