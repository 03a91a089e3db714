package models

import (
	"time"

	"github.com/google/uuid"
)

// House is a billing group sharing one subscription context.
type House struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	ProductID   *uuid.UUID `json:"product_id" db:"product_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`

	// Denormalized product fields populated by list queries
	ProductName  *string `json:"product_name,omitempty" db:"-"`
	ProductIcon  *string `json:"product_icon,omitempty" db:"-"`
	ProductColor *string `json:"product_color,omitempty" db:"-"`
}
