package categorizer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/SscSPs/fintrack/internal/middleware"
)

// DefaultTimeout bounds one oracle call.
const DefaultTimeout = 60 * time.Second

// Adapter turns an unreliable Oracle into a total function: it never returns an error,
// and its result only contains indices from the batch and ids from the offered categories.
type Adapter struct {
	oracle  Oracle
	timeout time.Duration
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithTimeout sets the per-call oracle timeout. Zero disables it.
func WithTimeout(d time.Duration) AdapterOption {
	return func(a *Adapter) {
		a.timeout = d
	}
}

// NewAdapter wraps oracle. A nil oracle behaves like NoopOracle.
func NewAdapter(oracle Oracle, opts ...AdapterOption) *Adapter {
	if oracle == nil {
		oracle = NoopOracle{}
	}
	a := &Adapter{oracle: oracle, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Categorize returns a possibly empty, possibly partial index -> category id mapping.
// Oracle failures are logged and yield an empty mapping.
func (a *Adapter) Categorize(ctx context.Context, items []Item, categories []domain.CategoryRef) map[int]int64 {
	result := map[int]int64{}
	if len(items) == 0 || len(categories) == 0 {
		return result
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	raw, err := a.call(ctx, items, categories)
	if err != nil {
		logger.Error("Categorization oracle failed", slog.String("error", err.Error()), slog.Int("batch_size", len(items)))
		return result
	}

	indices := make(map[int]struct{}, len(items))
	for _, it := range items {
		indices[it.Index] = struct{}{}
	}
	valid := make(map[int64]struct{}, len(categories))
	for _, c := range categories {
		valid[c.ID] = struct{}{}
	}

	dropped := 0
	for idx, id := range raw {
		if _, ok := indices[idx]; !ok {
			dropped++
			continue
		}
		if _, ok := valid[id]; !ok {
			dropped++
			continue
		}
		result[idx] = id
	}
	if dropped > 0 {
		logger.Warn("Discarded invalid categorization results", slog.Int("dropped", dropped))
	}
	logger.Info("Categorization completed", slog.Int("batch_size", len(items)), slog.Int("assigned", len(result)))
	return result
}

func (a *Adapter) call(ctx context.Context, items []Item, categories []domain.CategoryRef) (raw map[int]int64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("oracle panicked: %v", r)
		}
	}()
	return a.oracle.Categorize(ctx, items, categories)
}
