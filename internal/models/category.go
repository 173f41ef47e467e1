package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups articles for navigation and for the category-based
// recommendation fallback.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}
