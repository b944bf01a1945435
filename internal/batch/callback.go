package batch

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/agecalc/internal/age"
	apperrors "github.com/agbru/agecalc/internal/errors"
	"github.com/agbru/agecalc/internal/logging"
	"github.com/agbru/agecalc/internal/parallel"
)

// Callback receives the outcome of a batch: the ordered results, or the
// error that aborted it. Exactly one of the two is meaningful.
type Callback func(results []age.ComputedPerson, err error)

// ComputeWithCallback starts looking up every person and returns without
// waiting. done is invoked exactly once, from another goroutine, when every
// lookup has succeeded or as soon as the first one fails. An empty roster
// invokes done synchronously with an empty slice.
func ComputeWithCallback(ctx context.Context, people []age.Person, opts Options, done Callback) {
	if len(people) == 0 {
		done([]age.ComputedPerson{}, nil)
		return
	}

	env := opts.env(len(people))
	ctx, cancel := context.WithCancel(ctx)
	results := make([]age.ComputedPerson, len(people))

	var errs parallel.ErrorCollector
	fire := onceCallback(func(res []age.ComputedPerson, err error) {
		cancel()
		env.tracker.settle()
		done(res, err)
	})

	go func() {
		var g errgroup.Group
		if env.limit > 0 {
			g.SetLimit(env.limit)
		}
		for i, p := range people {
			g.Go(func() error {
				res, err := env.lookup(ctx, i, p)
				if err != nil {
					if errs.SetError(err) && !apperrors.IsContextError(err) {
						env.logger.Error("lookup failed", err, logging.String("person", p.Name), logging.Int("index", i))
					}
					fire(nil, errs.Err())
					return nil
				}
				results[i] = res
				if env.tracker.done() == len(people) {
					fire(results, nil)
				}
				return nil
			})
		}
		_ = g.Wait()
	}()
}

// onceCallback wraps cb so only its first invocation has any effect.
func onceCallback(cb Callback) Callback {
	var once sync.Once
	return func(res []age.ComputedPerson, err error) {
		once.Do(func() { cb(res, err) })
	}
}
