package lookup

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// BatchResult pairs a code with its resolved name.
type BatchResult struct {
	// Code is the barcode that was resolved.
	Code string

	// Name is the resolved or fallback name. Never empty.
	Name string
}

// BatchResolver resolves several codes concurrently. Used by the resolve
// command when the user pastes a handful of barcodes; a scan session
// still resolves strictly sequentially.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because errgroup handles the concurrency cap and context plumbing with
// no bookkeeping of our own.
type BatchResolver struct {
	// resolver performs individual lookups.
	resolver *Resolver

	// concurrency is the maximum number of in-flight resolutions.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchResolver.
type BatchOption func(*BatchResolver)

// WithConcurrency caps the number of concurrent resolutions.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchResolver) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithBatchLogger sets a custom logger for batch resolution.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchResolver) {
		b.logger = logger
	}
}

// NewBatchResolver creates a BatchResolver over the given resolver.
func NewBatchResolver(resolver *Resolver, opts ...BatchOption) *BatchResolver {
	b := &BatchResolver{
		resolver:    resolver,
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// ResolveAll resolves every code and returns results in input order
// regardless of completion order. Individual lookups cannot fail (the
// resolver guarantees a label), so the only error is cancellation.
func (b *BatchResolver) ResolveAll(ctx context.Context, codes []string) ([]BatchResult, error) {
	b.logger.Info("resolving batch",
		"codes", len(codes),
		"concurrency", b.concurrency,
	)

	// Pre-allocated and index-addressed to preserve input order.
	results := make([]BatchResult, len(codes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, code := range codes {
		i, code := i, code
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			results[i] = BatchResult{
				Code: code,
				Name: b.resolver.Resolve(ctx, code),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
