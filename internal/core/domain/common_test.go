package domain_test

import (
	"testing"
	"time"

	"github.com/selimgur/kiraci/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthYear_NextCrossesYearBoundary(t *testing.T) {
	dec := domain.MonthYear{Month: 12, Year: 2024}
	assert.Equal(t, domain.MonthYear{Month: 1, Year: 2025}, dec.Next())
	assert.Equal(t, domain.MonthYear{Month: 2, Year: 2025}, dec.Next().Next())
}

func TestMonthYear_After(t *testing.T) {
	assert.True(t, domain.MonthYear{Month: 1, Year: 2025}.After(domain.MonthYear{Month: 12, Year: 2024}))
	assert.False(t, domain.MonthYear{Month: 12, Year: 2024}.After(domain.MonthYear{Month: 12, Year: 2024}))
	assert.False(t, domain.MonthYear{Month: 11, Year: 2024}.After(domain.MonthYear{Month: 12, Year: 2024}))
}

func TestMonthYear_Validate(t *testing.T) {
	assert.NoError(t, domain.MonthYear{Month: 1, Year: 2024}.Validate())
	assert.Error(t, domain.MonthYear{Month: 0, Year: 2024}.Validate())
	assert.Error(t, domain.MonthYear{Month: 13, Year: 2024}.Validate())
	assert.Error(t, domain.MonthYear{Month: 6, Year: 1800}.Validate())
}

func TestMonthYearOf_IgnoresDayAndTime(t *testing.T) {
	got := domain.MonthYearOf(time.Date(2024, time.November, 23, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, domain.MonthYear{Month: 11, Year: 2024}, got)
	assert.Equal(t, day(2024, time.November, 1), got.FirstOfMonth())
}

func TestRentalAgreement_ActiveThrough(t *testing.T) {
	end := day(2025, time.November, 1)
	bounded := domain.RentalAgreement{StartDate: day(2024, time.November, 1), EndDate: &end}
	open := domain.RentalAgreement{StartDate: day(2024, time.November, 1)}

	// asOf before the end caps the series.
	assert.Equal(t, domain.MonthYear{Month: 1, Year: 2025}, bounded.ActiveThrough(day(2025, time.January, 15)))
	// asOf past the end does not extend it.
	assert.Equal(t, domain.MonthYear{Month: 11, Year: 2025}, bounded.ActiveThrough(day(2026, time.June, 1)))
	// An open-ended agreement is bounded by asOf alone.
	assert.Equal(t, domain.MonthYear{Month: 6, Year: 2026}, open.ActiveThrough(day(2026, time.June, 1)))
}

func TestRentalAgreement_Overlaps(t *testing.T) {
	aEnd := day(2024, time.October, 31)
	a := domain.RentalAgreement{StartDate: day(2023, time.November, 1), EndDate: &aEnd}
	b := domain.RentalAgreement{StartDate: day(2024, time.November, 1)}
	c := domain.RentalAgreement{StartDate: day(2024, time.June, 1)}

	assert.False(t, a.Overlaps(b))
	assert.False(t, b.Overlaps(a))
	assert.True(t, a.Overlaps(c))
	// Two open-ended agreements always collide.
	assert.True(t, b.Overlaps(c))
}

func TestConditionalRule_InWindow(t *testing.T) {
	rule := domain.ConditionalRule{
		Kind:      domain.RuleKindDateRange,
		StartDate: day(2024, time.December, 1),
		EndDate:   day(2025, time.November, 1),
	}

	assert.False(t, rule.InWindow(day(2024, time.November, 30)))
	assert.True(t, rule.InWindow(day(2024, time.December, 1)))
	assert.True(t, rule.InWindow(day(2025, time.November, 1)))
	assert.False(t, rule.InWindow(day(2025, time.November, 2)))

	// Comparison rules are not windowed.
	legacy := domain.ConditionalRule{Kind: domain.RuleKindComparison, Condition: "< 40"}
	assert.True(t, legacy.InWindow(day(1999, time.January, 1)))
}
