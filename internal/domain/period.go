package domain

import "time"

// Period is a named aggregation window. Windows are half-open: [WindowStart(now), now).
type Period string

// Period values.
const (
	PeriodDaily   Period = "daily"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
	PeriodAll     Period = "all"
)

// Valid returns true if the period is a recognized value.
func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodMonthly, PeriodYearly, PeriodAll:
		return true
	default:
		return false
	}
}

// ParseRankingPeriod resolves a ranking period. Anything other than daily, monthly or
// yearly falls back to daily; this is a documented default, not an error.
func ParseRankingPeriod(s string) Period {
	switch p := Period(s); p {
	case PeriodDaily, PeriodMonthly, PeriodYearly:
		return p
	default:
		return PeriodDaily
	}
}

// WindowStart returns the inclusive start of the window containing now, in UTC.
// PeriodAll returns the zero time.
func (p Period) WindowStart(now time.Time) time.Time {
	now = now.UTC()
	year, month, day := now.Date()

	switch p {
	case PeriodAll:
		return time.Time{}
	case PeriodMonthly:
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	case PeriodYearly:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}
}
