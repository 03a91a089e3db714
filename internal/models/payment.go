package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentRecord is an append-only ledger entry of a received payment.
// PaidAt is assigned by the database at insert time.
type PaymentRecord struct {
	ID       uuid.UUID `json:"id" db:"id"`
	MemberID uuid.UUID `json:"member_id" db:"member_id"`
	Amount   float64   `json:"amount" db:"amount"`
	PaidAt   time.Time `json:"paid_at" db:"paid_at"`

	// Denormalized names populated by the payments listing query
	MemberName *string `json:"member_name,omitempty" db:"-"`
	HouseName  *string `json:"house_name,omitempty" db:"-"`
}
