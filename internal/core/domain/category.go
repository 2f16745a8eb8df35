package domain

import "time"

// Category is a user-facing label assigned to transactions.
type Category struct {
	CategoryID int64     `json:"categoryID"`
	Name       string    `json:"name"`
	Color      string    `json:"color"` // #RRGGBB
	IsDefault  bool      `json:"isDefault"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CategoryRef is the id/name pair handed to a categorization oracle.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Ref returns the oracle-facing view of c.
func (c Category) Ref() CategoryRef {
	return CategoryRef{ID: c.CategoryID, Name: c.Name}
}

// Names of the seeded categories the reporting layer treats specially.
const (
	CategoryInvesting     = "Investing"
	CategoryTithe         = "Tithe"
	CategoryUncategorized = "Uncategorized"
)

// AllocationCategories are tracked separately from expenses: money set aside, not spent.
var AllocationCategories = []string{CategoryInvesting, CategoryTithe}

// IsAllocation reports whether a category name is an allocation category.
func IsAllocation(name string) bool {
	for _, n := range AllocationCategories {
		if n == name {
			return true
		}
	}
	return false
}
