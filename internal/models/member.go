package models

import (
	"time"

	"github.com/google/uuid"
)

// Member is an individual subscriber billed within a House. PaymentDate
// and ExpirationDate are calendar dates; time-of-day is never compared.
type Member struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	HouseID        uuid.UUID  `json:"house_id" db:"house_id"`
	ProductID      *uuid.UUID `json:"product_id,omitempty" db:"product_id"`
	Name           string     `json:"name" db:"name"`
	Email          string     `json:"email" db:"email"`
	Phone          string     `json:"phone" db:"phone"`
	MonthlyFee     float64    `json:"monthly_fee" db:"monthly_fee"`
	BillingCycle   string     `json:"billing_cycle" db:"billing_cycle"`
	PaymentDate    time.Time  `json:"payment_date" db:"payment_date"`
	ExpirationDate time.Time  `json:"expiration_date" db:"expiration_date"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`

	// Derived / denormalized fields, never persisted
	HouseName      *string          `json:"house_name,omitempty" db:"-"`
	ProductName    *string          `json:"product_name,omitempty" db:"-"`
	Status         string           `json:"status,omitempty" db:"-"`
	PaymentHistory []*PaymentRecord `json:"paymentHistory,omitempty" db:"-"`
}
