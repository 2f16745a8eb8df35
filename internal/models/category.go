package models

import "time"

// Category is a row of the categories table.
type Category struct {
	CategoryID int64     `json:"categoryID"` // Primary Key (serial)
	Name       string    `json:"name"`       // Unique
	Color      string    `json:"color"`      // #RRGGBB
	IsDefault  bool      `json:"isDefault"`  // Seeded by migration, cannot be deleted
	CreatedAt  time.Time `json:"createdAt"`
}
