package trace

import (
	"context"
	"log/slog"
	"time"

	"github.com/marcosnunesmbs/portfolio/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of trace pairs compared at once.
const DefaultConcurrency = 4

// Pair names two trace files to compare.
type Pair struct {
	Name   string `yaml:"name"`
	Before string `yaml:"before" validate:"required"`
	After  string `yaml:"after" validate:"required"`
}

// BatchResult is the outcome of comparing one Pair.
// Exactly one of Summary and Err is set.
type BatchResult struct {
	Pair    Pair
	Summary *model.TraceSummary
	Err     error
}

// BatchComparer compares several trace pairs concurrently.
// A failing pair does not stop the others; its error is kept in the result.
type BatchComparer struct {
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a BatchComparer.
type BatchOption func(*BatchComparer)

// WithBatchLogger sets the logger used for progress messages.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchComparer) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of pairs compared at once.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchComparer) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchComparer creates a BatchComparer.
func NewBatchComparer(opts ...BatchOption) *BatchComparer {
	bc := &BatchComparer{concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(bc)
	}
	if bc.logger == nil {
		bc.logger = slog.Default()
	}
	return bc
}

// CompareAll compares every pair and returns results in input order.
// The returned error is non-nil only when ctx is cancelled.
func (bc *BatchComparer) CompareAll(ctx context.Context, pairs []Pair) ([]BatchResult, error) {
	bc.logger.Info("starting batch comparison",
		"pairs", len(pairs),
		"concurrency", bc.concurrency,
	)
	start := time.Now()

	results := make([]BatchResult, len(pairs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bc.concurrency)

	for i, pair := range pairs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i].Pair = pair

			before, after, err := LoadPair(ctx, pair.Before, pair.After)
			if err != nil {
				bc.logger.Warn("comparison failed", "pair", pair.Name, "error", err)
				results[i].Err = err
				return nil
			}

			results[i].Summary = Compare(before, after)
			bc.logger.Debug("comparison completed", "pair", pair.Name)
			return nil
		})
	}

	err := g.Wait()

	bc.logger.Info("batch comparison complete",
		"pairs", len(pairs),
		"elapsed", time.Since(start),
	)

	return results, err
}
