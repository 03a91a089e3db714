package billing

import (
	"strings"
	"time"
)

// Cycle is the recurrence interval governing expiration rollover when a
// payment is recorded.
type Cycle string

const (
	CycleMonthly  Cycle = "monthly"
	CycleHalfYear Cycle = "6months"
	CycleYearly   Cycle = "yearly"
)

// ParseCycle normalizes a raw cycle string. Unknown or empty values fall
// back to monthly.
func ParseCycle(raw string) Cycle {
	switch Cycle(strings.ToLower(strings.TrimSpace(raw))) {
	case CycleHalfYear:
		return CycleHalfYear
	case CycleYearly:
		return CycleYearly
	default:
		return CycleMonthly
	}
}

// Months returns the rollover interval in months: 1, 6 or 12.
func (c Cycle) Months() int {
	switch c {
	case CycleHalfYear:
		return 6
	case CycleYearly:
		return 12
	default:
		return 1
	}
}

// NextExpiration returns the expiration date reached by advancing from the
// given date by one billing cycle. The day-of-month is clamped to the last
// valid day of the target month, so Jan 31 + monthly lands on Feb 28 (or
// Feb 29 in a leap year), never on an invalid or rolled-over date.
func NextExpiration(from time.Time, c Cycle) time.Time {
	return addMonthsClamped(Midnight(from), c.Months())
}

func addMonthsClamped(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	day := t.Day()
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// Label returns the Thai display label for the cycle.
func (c Cycle) Label() string {
	switch c {
	case CycleHalfYear:
		return "ราย 6 เดือน"
	case CycleYearly:
		return "รายปี"
	default:
		return "รายเดือน"
	}
}
