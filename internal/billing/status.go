package billing

import "time"

// Status classifies a member's subscription health from its expiration date.
type Status string

const (
	StatusActive   Status = "active"
	StatusExpiring Status = "expiring"
	StatusExpired  Status = "expired"
	// StatusUnknown is returned for a zero expiration date. Persisted members
	// always carry a valid date (the services default missing dates to today),
	// so unknown never reaches aggregation.
	StatusUnknown Status = "unknown"
)

// ExpiringWindowDays is the number of days before expiration during which a
// member counts as expiring. Day 0 and day 7 are both inside the window.
const ExpiringWindowDays = 7

// ComputeStatus derives the status of a subscription expiring on expiration,
// evaluated against today. Both arguments are treated as calendar dates;
// clock and zone are stripped before comparison.
func ComputeStatus(expiration, today time.Time) Status {
	if expiration.IsZero() {
		return StatusUnknown
	}

	days := DaysUntil(expiration, today)
	switch {
	case days < 0:
		return StatusExpired
	case days <= ExpiringWindowDays:
		return StatusExpiring
	default:
		return StatusActive
	}
}

// DaysUntil returns the whole calendar days from today until expiration.
// Negative when expiration is in the past.
func DaysUntil(expiration, today time.Time) int {
	return int(Midnight(expiration).Sub(Midnight(today)) / (24 * time.Hour))
}

// Midnight normalizes t to midnight UTC of its calendar date.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Label returns the Thai display label used by the dashboard.
func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "ใช้งานอยู่"
	case StatusExpiring:
		return "ใกล้หมดอายุ"
	case StatusExpired:
		return "หมดอายุ"
	default:
		return "ไม่ทราบสถานะ"
	}
}
