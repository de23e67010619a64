package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a global recipe label with an independent lifecycle.
// Name and Slug are each unique; Color is a hex color ("#RGB" or "#RRGGBB").
type Tag struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	Color     string
	CreatedAt time.Time
}
