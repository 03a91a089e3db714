package models

import "github.com/google/uuid"

// Stats is the dashboard snapshot derived from current houses, products,
// members and the payment ledger. It is never persisted; every read is a
// fresh aggregation. TotalPaid is the all-time sum of recorded payments.
type Stats struct {
	TotalHouses     int     `json:"totalHouses"`
	TotalMembers    int     `json:"totalMembers"`
	TotalProducts   int     `json:"totalProducts"`
	TotalMonthlyFee float64 `json:"totalMonthlyFee"`
	TotalPaid       float64 `json:"totalPaid"`
	AvgMonthlyPaid  float64 `json:"avgMonthlyPaid"`
	ActiveMembers   int     `json:"activeMembers"`
	ExpiringMembers int     `json:"expiringMembers"`
	ExpiredMembers  int     `json:"expiredMembers"`
}

// HouseStats is the per-house member breakdown shown on house cards.
type HouseStats struct {
	HouseID  uuid.UUID `json:"house_id"`
	Total    int       `json:"total"`
	Active   int       `json:"active"`
	Expiring int       `json:"expiring"`
	Expired  int       `json:"expired"`
	TotalFee float64   `json:"totalFee"`
}
