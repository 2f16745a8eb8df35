package categorizer

import (
	"context"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Item is one transaction offered to an oracle. Index is its position in the batch.
type Item struct {
	Index       int              `json:"index"`
	Merchant    string           `json:"merchant"`
	Description string           `json:"description"`
	Direction   domain.Direction `json:"direction"`
	Amount      decimal.Decimal  `json:"amount"`
}

// Oracle assigns at most one category per item. Implementations may fail, time out,
// skip items or return ids outside the offered set; Adapter handles all of that.
type Oracle interface {
	Categorize(ctx context.Context, items []Item, categories []domain.CategoryRef) (map[int]int64, error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(ctx context.Context, items []Item, categories []domain.CategoryRef) (map[int]int64, error)

// Categorize calls f.
func (f OracleFunc) Categorize(ctx context.Context, items []Item, categories []domain.CategoryRef) (map[int]int64, error) {
	return f(ctx, items, categories)
}

// NoopOracle never assigns anything. Used when no model is configured.
type NoopOracle struct{}

// Categorize returns an empty mapping.
func (NoopOracle) Categorize(context.Context, []Item, []domain.CategoryRef) (map[int]int64, error) {
	return map[int]int64{}, nil
}

var (
	_ Oracle = OracleFunc(nil)
	_ Oracle = NoopOracle{}
)
