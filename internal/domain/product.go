package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ImageList is an ordered list of image URLs stored as a JSONB column.
type ImageList []string

// Value implements driver.Valuer.
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *ImageList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = ImageList{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into ImageList", src)
	}
}

// Product represents a catalog item. Slug is derived from Name and is only
// regenerated when the name changes.
type Product struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Slug           string    `json:"slug" db:"slug"`
	Description    string    `json:"description" db:"description"`
	Price          float64   `json:"price" db:"price"`
	CompareAtPrice *float64  `json:"compare_at_price,omitempty" db:"compare_at_price"`
	Images         ImageList `json:"images" db:"images"`
	Inventory      int       `json:"inventory" db:"inventory"`
	SKU            string    `json:"sku" db:"sku"`
	Weight         *float64  `json:"weight,omitempty" db:"weight"`
	Dimensions     string    `json:"dimensions" db:"dimensions"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	IsFeatured     bool      `json:"is_featured" db:"is_featured"`
	CategoryID     uuid.UUID `json:"category_id" db:"category_id"`
	Category       *Category `json:"category,omitempty"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
