package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products. Slug is derived from Name the same way product
// slugs are. ProductCount is populated by list queries and counts active
// products only.
type Category struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Slug         string    `json:"slug" db:"slug"`
	Description  string    `json:"description" db:"description"`
	Image        string    `json:"image" db:"image"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
