package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var today = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func TestComputeStatus_Boundaries(t *testing.T) {
	tests := []struct {
		name       string
		expiration time.Time
		want       Status
	}{
		{"expires today", today, StatusExpiring},
		{"expires in 7 days", today.AddDate(0, 0, 7), StatusExpiring},
		{"expires in 8 days", today.AddDate(0, 0, 8), StatusActive},
		{"expired yesterday", today.AddDate(0, 0, -1), StatusExpired},
		{"expired long ago", today.AddDate(0, -2, 0), StatusExpired},
		{"expires next month", today.AddDate(0, 1, 0), StatusActive},
		{"expires in 1 day", today.AddDate(0, 0, 1), StatusExpiring},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStatus(tt.expiration, today))
		})
	}
}

func TestComputeStatus_IgnoresTimeOfDay(t *testing.T) {
	// 23:59 on the reference day is still "today", not a day in the future.
	lateToday := time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, StatusExpiring, ComputeStatus(lateToday, today))

	// An early-morning reference must not push yesterday into the window.
	earlyRef := time.Date(2024, 3, 15, 0, 0, 1, 0, time.UTC)
	yesterday := time.Date(2024, 3, 14, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, StatusExpired, ComputeStatus(yesterday, earlyRef))
}

func TestComputeStatus_ZoneDrift(t *testing.T) {
	bangkok := time.FixedZone("ICT", 7*3600)
	// Same calendar date in a different zone classifies identically.
	expInBangkok := time.Date(2024, 3, 22, 9, 0, 0, 0, bangkok)
	assert.Equal(t, StatusExpiring, ComputeStatus(expInBangkok, today))
}

func TestComputeStatus_ZeroDate(t *testing.T) {
	assert.Equal(t, StatusUnknown, ComputeStatus(time.Time{}, today))
}

func TestDaysUntil(t *testing.T) {
	assert.Equal(t, 0, DaysUntil(today, today))
	assert.Equal(t, 7, DaysUntil(today.AddDate(0, 0, 7), today))
	assert.Equal(t, -1, DaysUntil(today.AddDate(0, 0, -1), today))
	assert.Equal(t, 31, DaysUntil(time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC), today))
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "ใกล้หมดอายุ", StatusExpiring.Label())
	assert.Equal(t, "หมดอายุ", StatusExpired.Label())
	assert.Equal(t, "ใช้งานอยู่", StatusActive.Label())
}
