package models

import "time"

// Timestamps are maintained by the repositories, not by callers.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
