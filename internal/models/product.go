package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is an optional service category a house subscribes to
// (Netflix, Spotify, ...). Deleting a product nulls the reference on
// its houses and members rather than cascading.
type Product struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Icon      string    `json:"icon" db:"icon"`
	Color     string    `json:"color" db:"color"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
