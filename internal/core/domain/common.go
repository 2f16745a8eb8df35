package domain

import "time"

// Timestamps holds the standard bookkeeping times for persisted entities.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
