package services

import (
	"context"
	"fmt"
	"time"

	"github.com/selimgur/kiraci/internal/apperrors"
	"github.com/selimgur/kiraci/internal/core/domain"
	portsrepo "github.com/selimgur/kiraci/internal/core/ports/repositories"
	"github.com/selimgur/kiraci/internal/dto"
	"github.com/selimgur/kiraci/internal/utils/rentcalc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AgreementService provides business logic for rental agreements.
type AgreementService struct {
	agreementRepo portsrepo.AgreementRepositoryFacade
}

// NewAgreementService creates a new AgreementService.
func NewAgreementService(agreementRepo portsrepo.AgreementRepositoryFacade) *AgreementService {
	return &AgreementService{agreementRepo: agreementRepo}
}

// CreateAgreement validates and persists a new rental agreement.
func (s *AgreementService) CreateAgreement(ctx context.Context, req dto.CreateAgreementRequest) (*domain.RentalAgreement, error) {
	rules, err := buildRules(req.Rules)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	agreement := domain.RentalAgreement{
		AgreementID: uuid.NewString(),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		BaseAmount:  req.BaseAmount,
		Rules:       rules,
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.validateAgreement(ctx, agreement); err != nil {
		return nil, err
	}

	if err := s.agreementRepo.SaveAgreement(ctx, agreement); err != nil {
		return nil, fmt.Errorf("failed to create agreement in service: %w", err)
	}
	return &agreement, nil
}

// GetAgreementByID retrieves a single agreement.
func (s *AgreementService) GetAgreementByID(ctx context.Context, agreementID string) (*domain.RentalAgreement, error) {
	agreement, err := s.agreementRepo.FindAgreementByID(ctx, agreementID)
	if err != nil {
		return nil, fmt.Errorf("failed to get agreement in service: %w", err)
	}
	return agreement, nil
}

// ListAgreements retrieves all agreements ordered by start date.
func (s *AgreementService) ListAgreements(ctx context.Context) ([]domain.RentalAgreement, error) {
	agreements, err := s.agreementRepo.ListAgreements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list agreements in service: %w", err)
	}
	if agreements == nil {
		return []domain.RentalAgreement{}, nil
	}
	return agreements, nil
}

// UpdateAgreement validates and overwrites an existing agreement. Payment
// records store snapshot amounts, so an update never mutates history behind
// them; the caller regenerates the series afterwards.
func (s *AgreementService) UpdateAgreement(ctx context.Context, agreementID string, req dto.UpdateAgreementRequest) (*domain.RentalAgreement, error) {
	existing, err := s.agreementRepo.FindAgreementByID(ctx, agreementID)
	if err != nil {
		return nil, fmt.Errorf("failed to load agreement for update: %w", err)
	}

	rules, err := buildRules(req.Rules)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.StartDate = req.StartDate
	updated.EndDate = req.EndDate
	updated.BaseAmount = req.BaseAmount
	updated.Rules = rules
	updated.Notes = req.Notes
	updated.LastUpdatedAt = time.Now().UTC()

	if err := s.validateAgreement(ctx, updated); err != nil {
		return nil, err
	}

	if err := s.agreementRepo.UpdateAgreement(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update agreement in service: %w", err)
	}
	return &updated, nil
}

// DeleteAgreement removes an agreement; its derived payment records go with
// it (they are disposable and regenerable by construction).
func (s *AgreementService) DeleteAgreement(ctx context.Context, agreementID string) error {
	if err := s.agreementRepo.DeleteAgreement(ctx, agreementID); err != nil {
		return fmt.Errorf("failed to delete agreement in service: %w", err)
	}
	return nil
}

// validateAgreement enforces the entity invariants plus the no-overlap rule:
// two agreements may not cover the same period, which is how duplicate
// payment records for one month are prevented at the source.
func (s *AgreementService) validateAgreement(ctx context.Context, agreement domain.RentalAgreement) error {
	if agreement.BaseAmount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: base amount must be positive", apperrors.ErrValidation)
	}
	if agreement.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", apperrors.ErrValidation)
	}
	if agreement.EndDate != nil && agreement.EndDate.Before(agreement.StartDate) {
		return fmt.Errorf("%w: end date %s is before start date %s", apperrors.ErrValidation,
			agreement.EndDate.Format("2006-01-02"), agreement.StartDate.Format("2006-01-02"))
	}

	existing, err := s.agreementRepo.ListAgreements(ctx)
	if err != nil {
		return fmt.Errorf("failed to check agreement overlap: %w", err)
	}
	for i := range existing {
		if existing[i].AgreementID == agreement.AgreementID {
			continue
		}
		if agreement.Overlaps(existing[i]) {
			return fmt.Errorf("%w: agreement period conflicts with agreement %s", apperrors.ErrOverlap, existing[i].AgreementID)
		}
	}
	return nil
}

// buildRules converts rule DTOs into domain rules, validating each shape's
// fields and rejecting overlapping date-range windows within the agreement.
func buildRules(reqs []dto.ConditionalRuleRequest) ([]domain.ConditionalRule, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	rules := make([]domain.ConditionalRule, 0, len(reqs))
	var windows []domain.ConditionalRule
	for i, req := range reqs {
		switch domain.RuleKind(req.Kind) {
		case domain.RuleKindComparison:
			if _, _, err := rentcalc.ParseCondition(req.Condition); err != nil {
				return nil, fmt.Errorf("%w: rule %d: %s", apperrors.ErrValidation, i, err.Error())
			}
			if req.Amount.LessThanOrEqual(decimal.Zero) {
				return nil, fmt.Errorf("%w: rule %d: amount must be positive", apperrors.ErrValidation, i)
			}
			rules = append(rules, domain.ConditionalRule{
				Kind:      domain.RuleKindComparison,
				Condition: req.Condition,
				Amount:    req.Amount,
			})
		case domain.RuleKindDateRange:
			if req.StartDate == nil || req.EndDate == nil {
				return nil, fmt.Errorf("%w: rule %d: date range rules need start and end dates", apperrors.ErrValidation, i)
			}
			if req.EndDate.Before(*req.StartDate) {
				return nil, fmt.Errorf("%w: rule %d: rule end date precedes its start date", apperrors.ErrValidation, i)
			}
			if req.Threshold.LessThanOrEqual(decimal.Zero) {
				return nil, fmt.Errorf("%w: rule %d: threshold must be positive", apperrors.ErrValidation, i)
			}
			if req.RentLow.LessThanOrEqual(decimal.Zero) || req.RentHigh.LessThanOrEqual(decimal.Zero) {
				return nil, fmt.Errorf("%w: rule %d: rent amounts must be positive", apperrors.ErrValidation, i)
			}
			rule := domain.ConditionalRule{
				Kind:      domain.RuleKindDateRange,
				StartDate: *req.StartDate,
				EndDate:   *req.EndDate,
				Threshold: req.Threshold,
				RentLow:   req.RentLow,
				RentHigh:  req.RentHigh,
			}
			for _, w := range windows {
				if !rule.StartDate.After(w.EndDate) && !rule.EndDate.Before(w.StartDate) {
					return nil, fmt.Errorf("%w: rule %d: date range overlaps another rule window", apperrors.ErrOverlap, i)
				}
			}
			windows = append(windows, rule)
			rules = append(rules, rule)
		default:
			return nil, fmt.Errorf("%w: rule %d: unknown rule kind %q", apperrors.ErrValidation, i, req.Kind)
		}
	}
	return rules, nil
}
