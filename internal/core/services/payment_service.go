package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/selimgur/kiraci/internal/apperrors"
	"github.com/selimgur/kiraci/internal/core/domain"
	portsrepo "github.com/selimgur/kiraci/internal/core/ports/repositories"
	"github.com/selimgur/kiraci/internal/utils/rentcalc"
	"github.com/google/uuid"
)

// PaymentService generates and serves the derived monthly payment series.
type PaymentService struct {
	agreementRepo portsrepo.AgreementReader
	rateRepo      portsrepo.ExchangeRateReader
	paymentRepo   portsrepo.PaymentRepositoryFacade
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	agreementRepo portsrepo.AgreementReader,
	rateRepo portsrepo.ExchangeRateReader,
	paymentRepo portsrepo.PaymentRepositoryFacade,
) *PaymentService {
	return &PaymentService{
		agreementRepo: agreementRepo,
		rateRepo:      rateRepo,
		paymentRepo:   paymentRepo,
	}
}

// RecalculateSeries rebuilds the payment series for one agreement.
//
// The iteration bound is fixed up front: whole calendar months from the
// agreement start through min(agreement end, asOf). Months past asOf are
// never looked up, even when the agreement ends in the future; running out
// of data is not how the loop terminates. Each month is evaluated with that
// month's first-of-month date, so a conditional rule window that opens later
// in the series cannot bleed into earlier months (and generation crossing
// the current date cannot produce a spike in whichever month straddles it).
//
// Months without a stored rate are skipped and reported as gaps. Storage is
// an upsert on (agreement, month, year), so regeneration with identical
// inputs leaves identical rows.
func (s *PaymentService) RecalculateSeries(ctx context.Context, agreementID string, asOf time.Time) ([]domain.PaymentRecord, []domain.MonthYear, error) {
	agreement, err := s.agreementRepo.FindAgreementByID(ctx, agreementID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load agreement for series generation: %w", err)
	}

	records, gaps, err := s.generateSeries(ctx, *agreement, asOf)
	if err != nil {
		return nil, nil, err
	}

	if len(records) > 0 {
		if err := s.paymentRepo.UpsertPayments(ctx, records); err != nil {
			return nil, nil, fmt.Errorf("failed to persist payment series: %w", err)
		}
	}
	return records, gaps, nil
}

func (s *PaymentService) generateSeries(ctx context.Context, agreement domain.RentalAgreement, asOf time.Time) ([]domain.PaymentRecord, []domain.MonthYear, error) {
	first := domain.MonthYearOf(agreement.StartDate)
	last := agreement.ActiveThrough(asOf)
	if first.After(last) {
		return nil, nil, nil
	}

	now := time.Now().UTC()
	var records []domain.PaymentRecord
	var gaps []domain.MonthYear
	for period := first; !period.After(last); period = period.Next() {
		rate, err := s.rateRepo.FindRateByPeriod(ctx, period)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				gaps = append(gaps, period)
				continue
			}
			return nil, nil, fmt.Errorf("failed to look up rate for %s: %w", period, err)
		}

		localAmount, err := rentcalc.Evaluate(agreement, rate.Rate, period.FirstOfMonth())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to evaluate rent for %s: %w", period, err)
		}

		records = append(records, domain.PaymentRecord{
			PaymentID:       uuid.NewString(),
			AgreementID:     agreement.AgreementID,
			Period:          period,
			LocalAmount:     localAmount,
			ReferenceAmount: rentcalc.ReferenceAmount(localAmount, rate.Rate),
			Rate:            rate.Rate,
			AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		})
	}
	return records, gaps, nil
}

// ListPayments retrieves the stored series for an agreement in
// chronological order.
func (s *PaymentService) ListPayments(ctx context.Context, agreementID string) ([]domain.PaymentRecord, error) {
	if _, err := s.agreementRepo.FindAgreementByID(ctx, agreementID); err != nil {
		return nil, fmt.Errorf("failed to load agreement for payment listing: %w", err)
	}
	payments, err := s.paymentRepo.ListPaymentsByAgreement(ctx, agreementID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments in service: %w", err)
	}
	if payments == nil {
		return []domain.PaymentRecord{}, nil
	}
	return payments, nil
}
