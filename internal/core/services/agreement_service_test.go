package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/selimgur/kiraci/internal/apperrors"
	"github.com/selimgur/kiraci/internal/core/domain"
	portssvc "github.com/selimgur/kiraci/internal/core/ports/services"
	"github.com/selimgur/kiraci/internal/core/services"
	"github.com/selimgur/kiraci/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AgreementRepository ---
type MockAgreementRepository struct {
	mock.Mock
}

func (m *MockAgreementRepository) FindAgreementByID(ctx context.Context, agreementID string) (*domain.RentalAgreement, error) {
	args := m.Called(ctx, agreementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalAgreement), args.Error(1)
}

func (m *MockAgreementRepository) ListAgreements(ctx context.Context) ([]domain.RentalAgreement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentalAgreement), args.Error(1)
}

func (m *MockAgreementRepository) SaveAgreement(ctx context.Context, agreement domain.RentalAgreement) error {
	args := m.Called(ctx, agreement)
	return args.Error(0)
}

func (m *MockAgreementRepository) UpdateAgreement(ctx context.Context, agreement domain.RentalAgreement) error {
	args := m.Called(ctx, agreement)
	return args.Error(0)
}

func (m *MockAgreementRepository) DeleteAgreement(ctx context.Context, agreementID string) error {
	args := m.Called(ctx, agreementID)
	return args.Error(0)
}

// --- Test Suite ---
type AgreementServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAgreementRepository
	service  portssvc.AgreementSvcFacade
}

func (suite *AgreementServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAgreementRepository)
	suite.service = services.NewAgreementService(suite.mockRepo)
}

func mustDecimal(suite *AgreementServiceTestSuite, s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	suite.Require().NoError(err)
	return d
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// --- Test Cases ---

func (suite *AgreementServiceTestSuite) TestCreateAgreement_Success() {
	ctx := context.Background()
	end := day(2025, time.November, 1)
	ruleStart := day(2024, time.December, 1)
	ruleEnd := day(2025, time.November, 1)
	req := dto.CreateAgreementRequest{
		StartDate:  day(2024, time.November, 1),
		EndDate:    &end,
		BaseAmount: mustDecimal(suite, "31000"),
		Rules: []dto.ConditionalRuleRequest{
			{
				Kind:      "date_range",
				StartDate: &ruleStart,
				EndDate:   &ruleEnd,
				Threshold: mustDecimal(suite, "40"),
				RentLow:   mustDecimal(suite, "35000"),
				RentHigh:  mustDecimal(suite, "40000"),
			},
		},
		Notes: "city center flat",
	}

	suite.mockRepo.On("ListAgreements", ctx).Return([]domain.RentalAgreement{}, nil).Once()
	suite.mockRepo.On("SaveAgreement", ctx, mock.MatchedBy(func(a domain.RentalAgreement) bool {
		return a.AgreementID != "" &&
			a.StartDate.Equal(req.StartDate) &&
			a.BaseAmount.Equal(req.BaseAmount) &&
			len(a.Rules) == 1 &&
			a.Rules[0].Kind == domain.RuleKindDateRange
	})).Return(nil).Once()

	agreement, err := suite.service.CreateAgreement(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(agreement)
	suite.Equal(req.Notes, agreement.Notes)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AgreementServiceTestSuite) TestCreateAgreement_NonPositiveBaseAmount() {
	ctx := context.Background()
	req := dto.CreateAgreementRequest{
		StartDate:  day(2024, time.November, 1),
		BaseAmount: mustDecimal(suite, "-1"),
	}

	agreement, err := suite.service.CreateAgreement(ctx, req)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(agreement)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAgreement", mock.Anything, mock.Anything)
}

func (suite *AgreementServiceTestSuite) TestCreateAgreement_EndBeforeStart() {
	ctx := context.Background()
	end := day(2024, time.January, 1)
	req := dto.CreateAgreementRequest{
		StartDate:  day(2024, time.November, 1),
		EndDate:    &end,
		BaseAmount: mustDecimal(suite, "31000"),
	}

	_, err := suite.service.CreateAgreement(ctx, req)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAgreement", mock.Anything, mock.Anything)
}

func (suite *AgreementServiceTestSuite) TestCreateAgreement_OverlappingPeriods() {
	ctx := context.Background()
	existingEnd := day(2025, time.June, 1)
	existing := domain.RentalAgreement{
		AgreementID: "agr-existing",
		StartDate:   day(2024, time.January, 1),
		EndDate:     &existingEnd,
		BaseAmount:  mustDecimal(suite, "20000"),
	}
	req := dto.CreateAgreementRequest{
		StartDate:  day(2025, time.March, 1),
		BaseAmount: mustDecimal(suite, "31000"),
	}

	suite.mockRepo.On("ListAgreements", ctx).Return([]domain.RentalAgreement{existing}, nil).Once()

	_, err := suite.service.CreateAgreement(ctx, req)

	suite.Require().ErrorIs(err, apperrors.ErrOverlap)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAgreement", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AgreementServiceTestSuite) TestCreateAgreement_AdjacentPeriodsDoNotOverlap() {
	ctx := context.Background()
	existingEnd := day(2024, time.October, 31)
	existing := domain.RentalAgreement{
		AgreementID: "agr-existing",
		StartDate:   day(2023, time.November, 1),
		EndDate:     &existingEnd,
		BaseAmount:  mustDecimal(suite, "20000"),
	}
	req := dto.CreateAgreementRequest{
		StartDate:  day(2024, time.November, 1),
		BaseAmount: mustDecimal(suite, "31000"),
	}

	suite.mockRepo.On("ListAgreements", ctx).Return([]domain.RentalAgreement{existing}, nil).Once()
	suite.mockRepo.On("SaveAgreement", ctx, mock.AnythingOfType("domain.RentalAgreement")).Return(nil).Once()

	_, err := suite.service.CreateAgreement(ctx, req)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AgreementServiceTestSuite) TestCreateAgreement_OverlappingRuleWindows() {
	ctx := context.Background()
	aStart := day(2024, time.December, 1)
	aEnd := day(2025, time.June, 1)
	bStart := day(2025, time.May, 1)
	bEnd := day(2025, time.November, 1)
	req := dto.CreateAgreementRequest{
		StartDate:  day(2024, time.November, 1),
		BaseAmount: mustDecimal(suite, "31000"),
		Rules: []dto.ConditionalRuleRequest{
			{Kind: "date_range", StartDate: &aStart, EndDate: &aEnd, Threshold: mustDecimal(suite, "40"), RentLow: mustDecimal(suite, "35000"), RentHigh: mustDecimal(suite, "40000")},
			{Kind: "date_range", StartDate: &bStart, EndDate: &bEnd, Threshold: mustDecimal(suite, "45"), RentLow: mustDecimal(suite, "36000"), RentHigh: mustDecimal(suite, "41000")},
		},
	}

	_, err := suite.service.CreateAgreement(ctx, req)

	suite.Require().ErrorIs(err, apperrors.ErrOverlap)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAgreement", mock.Anything, mock.Anything)
}

func (suite *AgreementServiceTestSuite) TestCreateAgreement_MalformedConditionRejectedAtSave() {
	ctx := context.Background()
	req := dto.CreateAgreementRequest{
		StartDate:  day(2024, time.November, 1),
		BaseAmount: mustDecimal(suite, "31000"),
		Rules: []dto.ConditionalRuleRequest{
			{Kind: "comparison", Condition: "roughly 40", Amount: mustDecimal(suite, "35000")},
		},
	}

	_, err := suite.service.CreateAgreement(ctx, req)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAgreement", mock.Anything, mock.Anything)
}

func (suite *AgreementServiceTestSuite) TestUpdateAgreement_NotFound() {
	ctx := context.Background()
	req := dto.UpdateAgreementRequest{
		StartDate:  day(2024, time.November, 1),
		BaseAmount: mustDecimal(suite, "31000"),
	}

	suite.mockRepo.On("FindAgreementByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateAgreement(ctx, "missing", req)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAgreement", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AgreementServiceTestSuite) TestUpdateAgreement_Success() {
	ctx := context.Background()
	existing := domain.RentalAgreement{
		AgreementID: "agr-1",
		StartDate:   day(2024, time.November, 1),
		BaseAmount:  mustDecimal(suite, "31000"),
	}
	req := dto.UpdateAgreementRequest{
		StartDate:  day(2024, time.November, 1),
		BaseAmount: mustDecimal(suite, "32000"),
		Notes:      "rent revised",
	}

	suite.mockRepo.On("FindAgreementByID", ctx, "agr-1").Return(&existing, nil).Once()
	suite.mockRepo.On("ListAgreements", ctx).Return([]domain.RentalAgreement{existing}, nil).Once()
	suite.mockRepo.On("UpdateAgreement", ctx, mock.MatchedBy(func(a domain.RentalAgreement) bool {
		return a.AgreementID == "agr-1" && a.BaseAmount.Equal(req.BaseAmount) && a.Notes == req.Notes
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAgreement(ctx, "agr-1", req)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.True(updated.BaseAmount.Equal(req.BaseAmount))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AgreementServiceTestSuite) TestListAgreements_NilBecomesEmptySlice() {
	ctx := context.Background()
	suite.mockRepo.On("ListAgreements", ctx).Return([]domain.RentalAgreement(nil), nil).Once()

	agreements, err := suite.service.ListAgreements(ctx)

	suite.Require().NoError(err)
	suite.NotNil(agreements)
	suite.Empty(agreements)
}

func TestAgreementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AgreementServiceTestSuite))
}
