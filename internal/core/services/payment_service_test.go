package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/selimgur/kiraci/internal/apperrors"
	"github.com/selimgur/kiraci/internal/core/domain"
	portssvc "github.com/selimgur/kiraci/internal/core/ports/services"
	"github.com/selimgur/kiraci/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExchangeRateReader ---
type MockExchangeRateReader struct {
	mock.Mock
}

func (m *MockExchangeRateReader) FindRateByPeriod(ctx context.Context, period domain.MonthYear) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateReader) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) ListPaymentsByAgreement(ctx context.Context, agreementID string) ([]domain.PaymentRecord, error) {
	args := m.Called(ctx, agreementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRepository) UpsertPayments(ctx context.Context, records []domain.PaymentRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockPaymentRepository) DeletePaymentsByAgreement(ctx context.Context, agreementID string) error {
	args := m.Called(ctx, agreementID)
	return args.Error(0)
}

// --- Test Suite ---
type PaymentServiceTestSuite struct {
	suite.Suite
	mockAgreements *MockAgreementRepository
	mockRates      *MockExchangeRateReader
	mockPayments   *MockPaymentRepository
	service        portssvc.PaymentSvcFacade
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockAgreements = new(MockAgreementRepository)
	suite.mockRates = new(MockExchangeRateReader)
	suite.mockPayments = new(MockPaymentRepository)
	suite.service = services.NewPaymentService(suite.mockAgreements, suite.mockRates, suite.mockPayments)
}

func (suite *PaymentServiceTestSuite) dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	suite.Require().NoError(err)
	return d
}

// thresholdAgreement is a November start with a conditional rule whose window
// only opens in December.
func (suite *PaymentServiceTestSuite) thresholdAgreement() *domain.RentalAgreement {
	end := day(2025, time.November, 1)
	return &domain.RentalAgreement{
		AgreementID: "agr-1",
		StartDate:   day(2024, time.November, 1),
		EndDate:     &end,
		BaseAmount:  suite.dec("31000"),
		Rules: []domain.ConditionalRule{
			{
				Kind:      domain.RuleKindDateRange,
				StartDate: day(2024, time.December, 1),
				EndDate:   day(2025, time.November, 1),
				Threshold: suite.dec("40"),
				RentLow:   suite.dec("35000"),
				RentHigh:  suite.dec("40000"),
			},
		},
	}
}

func (suite *PaymentServiceTestSuite) stubRate(period domain.MonthYear, rate string) {
	suite.mockRates.On("FindRateByPeriod", mock.Anything, period).Return(&domain.ExchangeRate{
		RateID: "rate-" + period.String(),
		Period: period,
		Rate:   suite.dec(rate),
	}, nil)
}

// --- Test Cases ---

func (suite *PaymentServiceTestSuite) TestRecalculateSeries_EachMonthUsesItsOwnDate() {
	ctx := context.Background()
	agreement := suite.thresholdAgreement()
	asOf := day(2025, time.January, 15)

	suite.mockAgreements.On("FindAgreementByID", ctx, "agr-1").Return(agreement, nil).Once()
	suite.stubRate(domain.MonthYear{Month: 11, Year: 2024}, "35.0")
	suite.stubRate(domain.MonthYear{Month: 12, Year: 2024}, "42.0")
	suite.stubRate(domain.MonthYear{Month: 1, Year: 2025}, "38.0")
	suite.mockPayments.On("UpsertPayments", ctx, mock.AnythingOfType("[]domain.PaymentRecord")).Return(nil).Once()

	records, gaps, err := suite.service.RecalculateSeries(ctx, "agr-1", asOf)

	suite.Require().NoError(err)
	suite.Empty(gaps)
	suite.Require().Len(records, 3)

	// November predates the rule window, so the base amount applies even
	// though the window is open on the asOf date.
	suite.Equal(domain.MonthYear{Month: 11, Year: 2024}, records[0].Period)
	suite.True(suite.dec("31000").Equal(records[0].LocalAmount), "November got %s", records[0].LocalAmount)

	// December's rate is at or above the threshold.
	suite.True(suite.dec("40000").Equal(records[1].LocalAmount), "December got %s", records[1].LocalAmount)

	// January's rate is below it.
	suite.True(suite.dec("35000").Equal(records[2].LocalAmount), "January got %s", records[2].LocalAmount)

	suite.mockPayments.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecalculateSeries_NeverLooksPastAsOf() {
	ctx := context.Background()
	// Open-ended agreement: only asOf bounds the series.
	agreement := &domain.RentalAgreement{
		AgreementID: "agr-open",
		StartDate:   day(2024, time.November, 1),
		BaseAmount:  suite.dec("31000"),
	}
	asOf := day(2025, time.January, 15)

	suite.mockAgreements.On("FindAgreementByID", ctx, "agr-open").Return(agreement, nil).Once()
	for _, period := range []domain.MonthYear{
		{Month: 11, Year: 2024},
		{Month: 12, Year: 2024},
		{Month: 1, Year: 2025},
	} {
		suite.stubRate(period, "34.5")
	}
	suite.mockPayments.On("UpsertPayments", ctx, mock.AnythingOfType("[]domain.PaymentRecord")).Return(nil).Once()

	records, gaps, err := suite.service.RecalculateSeries(ctx, "agr-open", asOf)

	suite.Require().NoError(err)
	suite.Empty(gaps)
	suite.Len(records, 3)
	// Only the three stubbed months may be looked up; a call for February
	// 2025 or later would fail the mock.
	suite.mockRates.AssertNumberOfCalls(suite.T(), "FindRateByPeriod", 3)
}

func (suite *PaymentServiceTestSuite) TestRecalculateSeries_MissingMonthsReportedAsGaps() {
	ctx := context.Background()
	agreement := suite.thresholdAgreement()
	asOf := day(2025, time.January, 15)

	suite.mockAgreements.On("FindAgreementByID", ctx, "agr-1").Return(agreement, nil).Once()
	suite.stubRate(domain.MonthYear{Month: 11, Year: 2024}, "35.0")
	suite.mockRates.On("FindRateByPeriod", mock.Anything, domain.MonthYear{Month: 12, Year: 2024}).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.stubRate(domain.MonthYear{Month: 1, Year: 2025}, "38.0")
	suite.mockPayments.On("UpsertPayments", ctx, mock.AnythingOfType("[]domain.PaymentRecord")).Return(nil).Once()

	records, gaps, err := suite.service.RecalculateSeries(ctx, "agr-1", asOf)

	suite.Require().NoError(err)
	suite.Equal([]domain.MonthYear{{Month: 12, Year: 2024}}, gaps)
	suite.Require().Len(records, 2)
	suite.Equal(domain.MonthYear{Month: 11, Year: 2024}, records[0].Period)
	suite.Equal(domain.MonthYear{Month: 1, Year: 2025}, records[1].Period)
}

func (suite *PaymentServiceTestSuite) TestRecalculateSeries_StartAfterAsOfProducesNothing() {
	ctx := context.Background()
	agreement := &domain.RentalAgreement{
		AgreementID: "agr-future",
		StartDate:   day(2026, time.March, 1),
		BaseAmount:  suite.dec("31000"),
	}

	suite.mockAgreements.On("FindAgreementByID", ctx, "agr-future").Return(agreement, nil).Once()

	records, gaps, err := suite.service.RecalculateSeries(ctx, "agr-future", day(2025, time.January, 15))

	suite.Require().NoError(err)
	suite.Empty(records)
	suite.Empty(gaps)
	suite.mockRates.AssertNotCalled(suite.T(), "FindRateByPeriod", mock.Anything, mock.Anything)
	suite.mockPayments.AssertNotCalled(suite.T(), "UpsertPayments", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecalculateSeries_MalformedRuleAborts() {
	ctx := context.Background()
	agreement := &domain.RentalAgreement{
		AgreementID: "agr-bad",
		StartDate:   day(2024, time.November, 1),
		BaseAmount:  suite.dec("31000"),
		Rules: []domain.ConditionalRule{
			{Kind: domain.RuleKindComparison, Condition: "roughly 40", Amount: suite.dec("35000")},
		},
	}

	suite.mockAgreements.On("FindAgreementByID", ctx, "agr-bad").Return(agreement, nil).Once()
	suite.stubRate(domain.MonthYear{Month: 11, Year: 2024}, "35.0")

	_, _, err := suite.service.RecalculateSeries(ctx, "agr-bad", day(2024, time.November, 20))

	suite.Require().Error(err)
	var ruleErr *apperrors.RuleFormatError
	suite.Require().ErrorAs(err, &ruleErr)
	suite.Equal("roughly 40", ruleErr.Condition)
	suite.mockPayments.AssertNotCalled(suite.T(), "UpsertPayments", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecalculateSeries_Deterministic() {
	ctx := context.Background()
	agreement := suite.thresholdAgreement()
	asOf := day(2024, time.December, 20)

	suite.mockAgreements.On("FindAgreementByID", ctx, "agr-1").Return(agreement, nil).Twice()
	suite.stubRate(domain.MonthYear{Month: 11, Year: 2024}, "35.0")
	suite.stubRate(domain.MonthYear{Month: 12, Year: 2024}, "42.0")
	suite.mockPayments.On("UpsertPayments", ctx, mock.AnythingOfType("[]domain.PaymentRecord")).Return(nil).Twice()

	first, _, err := suite.service.RecalculateSeries(ctx, "agr-1", asOf)
	suite.Require().NoError(err)
	second, _, err := suite.service.RecalculateSeries(ctx, "agr-1", asOf)
	suite.Require().NoError(err)

	suite.Require().Len(second, len(first))
	for i := range first {
		suite.Equal(first[i].Period, second[i].Period)
		suite.True(first[i].LocalAmount.Equal(second[i].LocalAmount))
		suite.True(first[i].ReferenceAmount.Equal(second[i].ReferenceAmount))
	}
}

func (suite *PaymentServiceTestSuite) TestRecalculateSeries_AgreementNotFound() {
	ctx := context.Background()
	suite.mockAgreements.On("FindAgreementByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.RecalculateSeries(ctx, "missing", day(2025, time.January, 15))

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PaymentServiceTestSuite) TestListPayments_AgreementNotFound() {
	ctx := context.Background()
	suite.mockAgreements.On("FindAgreementByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListPayments(ctx, "missing")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPayments.AssertNotCalled(suite.T(), "ListPaymentsByAgreement", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestListPayments_NilBecomesEmptySlice() {
	ctx := context.Background()
	agreement := suite.thresholdAgreement()
	suite.mockAgreements.On("FindAgreementByID", ctx, "agr-1").Return(agreement, nil).Once()
	suite.mockPayments.On("ListPaymentsByAgreement", ctx, "agr-1").Return([]domain.PaymentRecord(nil), nil).Once()

	payments, err := suite.service.ListPayments(ctx, "agr-1")

	suite.Require().NoError(err)
	suite.NotNil(payments)
	suite.Empty(payments)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
