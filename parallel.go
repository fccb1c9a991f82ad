package facmat

import (
	"context"
	"runtime"

	"github.com/hupe1980/facmat/dense"
	"golang.org/x/sync/errgroup"
)

// BlockFunc receives one materialized block together with its index range
// along the iterated axis. It may be called from multiple goroutines
// concurrently; callers that accumulate results must synchronize.
type BlockFunc[T dense.Number] func(i int, sp Span, block *dense.Matrix[T]) error

type blockOptions struct {
	parallelism int
	logger      *Logger
}

// BlockOption configures RowBlocks and ColBlocks.
type BlockOption func(*blockOptions)

// WithParallelism caps the number of blocks materialized concurrently.
// Values below 1 fall back to GOMAXPROCS.
func WithParallelism(n int) BlockOption {
	return func(o *blockOptions) {
		o.parallelism = n
	}
}

// WithLogger configures the logger used for block processing. If nil, a
// no-op logger is used.
func WithLogger(l *Logger) BlockOption {
	return func(o *blockOptions) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// RowBlocks partitions the logical rows into nBlocks near-equal blocks and
// invokes fn for each materialized block, running up to the configured
// parallelism concurrently. Reading a FactoredMatrix from several
// goroutines is safe; each worker multiplies an independent row slice
// against the shared column-side factor.
//
// Unlike the lazy iterators, RowBlocks validates nBlocks eagerly. The first
// error from fn or from the context cancels the remaining work.
func RowBlocks[T dense.Number](ctx context.Context, m *FactoredMatrix[T], nBlocks int, fn BlockFunc[T], opts ...BlockOption) error {
	return runBlocks(ctx, m, nBlocks, true, fn, opts)
}

// ColBlocks is the column-axis counterpart of RowBlocks.
func ColBlocks[T dense.Number](ctx context.Context, m *FactoredMatrix[T], nBlocks int, fn BlockFunc[T], opts ...BlockOption) error {
	return runBlocks(ctx, m, nBlocks, false, fn, opts)
}

func runBlocks[T dense.Number](ctx context.Context, m *FactoredMatrix[T], nBlocks int, rowwise bool, fn BlockFunc[T], opts []BlockOption) error {
	o := blockOptions{
		parallelism: runtime.GOMAXPROCS(0),
		logger:      NoopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.parallelism < 1 {
		o.parallelism = runtime.GOMAXPROCS(0)
	}

	r, c := m.Dims()
	dim := c
	if rowwise {
		dim = r
	}
	spans, err := Partition(dim, nBlocks)
	if err != nil {
		o.logger.LogBlocks(ctx, nBlocks, err)
		return err
	}

	// The fixed factor side is shared read-only across workers.
	var fixed *dense.Matrix[T]
	if rowwise {
		fixed = m.colFactor()
	} else {
		fixed = m.rowFactor()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.parallelism)
	for i, sp := range spans {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var block *dense.Matrix[T]
			if rowwise {
				block = m.materializeRowSpan(sp, fixed)
			} else {
				block = m.materializeColSpan(sp, fixed)
			}
			return fn(i, sp, block)
		})
	}
	err = g.Wait()
	o.logger.LogBlocks(ctx, nBlocks, err)
	return err
}
