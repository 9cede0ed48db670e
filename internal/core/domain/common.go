package domain

import (
	"fmt"
	"time"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// MonthYear identifies a single calendar month. It is the natural key for
// exchange rates, inflation data and payment records.
type MonthYear struct {
	Month int `json:"month"` // 1..12
	Year  int `json:"year"`
}

// MonthYearOf extracts the calendar month of a date.
func MonthYearOf(t time.Time) MonthYear {
	return MonthYear{Month: int(t.Month()), Year: t.Year()}
}

// FirstOfMonth returns midnight UTC on the first day of the month.
func (m MonthYear) FirstOfMonth() time.Time {
	return time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC)
}

// Next returns the following calendar month.
func (m MonthYear) Next() MonthYear {
	return MonthYearOf(m.FirstOfMonth().AddDate(0, 1, 0))
}

// After reports whether m is strictly after other.
func (m MonthYear) After(other MonthYear) bool {
	if m.Year != other.Year {
		return m.Year > other.Year
	}
	return m.Month > other.Month
}

// Validate checks the month is in 1..12 and the year is plausible.
func (m MonthYear) Validate() error {
	if m.Month < 1 || m.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12, got %d", m.Month)
	}
	if m.Year < 1900 || m.Year > 2200 {
		return fmt.Errorf("year out of range: %d", m.Year)
	}
	return nil
}

func (m MonthYear) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}
