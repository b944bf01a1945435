package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/agecalc/internal/age"
	apperrors "github.com/agbru/agecalc/internal/errors"
	"github.com/agbru/agecalc/internal/logging"
)

// Future is the pending outcome of a batch started by ComputeFuture.
type Future struct {
	done    chan struct{}
	results []age.ComputedPerson
	err     error
}

// ComputeFuture starts looking up every person and returns immediately.
func ComputeFuture(ctx context.Context, people []age.Person, opts Options) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.results, f.err = computeAll(ctx, people, opts)
	}()
	return f
}

// Done is closed once the batch has settled.
func (f *Future) Done() <-chan struct{} { return f.done }

// Await blocks until the batch settles or ctx is done. It may be called any
// number of times and always returns the same outcome once settled.
// Abandoning an Await through ctx does not stop the batch itself.
func (f *Future) Await(ctx context.Context) ([]age.ComputedPerson, error) {
	select {
	case <-f.done:
		return f.results, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// computeAll fans out one goroutine per person and joins them, failing on
// the first error.
func computeAll(ctx context.Context, people []age.Person, opts Options) ([]age.ComputedPerson, error) {
	results := make([]age.ComputedPerson, len(people))
	if len(people) == 0 {
		return results, nil
	}

	env := opts.env(len(people))
	g, gctx := errgroup.WithContext(ctx)
	if env.limit > 0 {
		g.SetLimit(env.limit)
	}
	for i, p := range people {
		g.Go(func() error {
			res, err := env.lookup(gctx, i, p)
			if err != nil {
				return err
			}
			results[i] = res
			env.tracker.done()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if !apperrors.IsContextError(err) {
			env.logger.Error("batch failed", err, logging.Int("people", len(people)))
		}
		return nil, err
	}
	return results, nil
}
