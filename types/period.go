package types

import (
	"fmt"
	"time"
)

// Period is a calendar-month billing cycle key in "YYYY-MM" form.
// It is the unit dues are generated against: each member owes at most
// one due per period.
type Period string

// PeriodOf returns the Period containing the given instant.
func PeriodOf(t time.Time) Period {
	return Period(fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month())))
}

// ParsePeriod validates and returns a Period from its "YYYY-MM" form.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return "", fmt.Errorf("period: parse %q: %w", s, err)
	}
	return PeriodOf(t), nil
}

// String returns the "YYYY-MM" form.
func (p Period) String() string { return string(p) }

// IsZero reports whether the period is unset.
func (p Period) IsZero() bool { return p == "" }

// Start returns midnight UTC on the first day of the period's month.
func (p Period) Start() time.Time {
	t, err := time.Parse("2006-01", string(p))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Next returns the following calendar month.
func (p Period) Next() Period {
	return PeriodOf(p.Start().AddDate(0, 1, 0))
}

// Prev returns the preceding calendar month.
func (p Period) Prev() Period {
	return PeriodOf(p.Start().AddDate(0, -1, 0))
}

// Before reports whether p sorts before other. The "YYYY-MM" encoding
// makes lexical order equal to chronological order.
func (p Period) Before(other Period) bool { return p < other }
