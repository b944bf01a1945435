package batch

import (
	"context"

	"github.com/agbru/agecalc/internal/age"
	apperrors "github.com/agbru/agecalc/internal/errors"
	"github.com/agbru/agecalc/internal/logging"
)

// ComputeSequential looks people up one after another, each lookup waiting
// for the previous one. It stops at the first failure. MaxConcurrency has no
// effect.
func ComputeSequential(ctx context.Context, people []age.Person, opts Options) ([]age.ComputedPerson, error) {
	results := make([]age.ComputedPerson, 0, len(people))
	if len(people) == 0 {
		return results, nil
	}

	env := opts.env(len(people))
	for i, p := range people {
		res, err := env.lookup(ctx, i, p)
		if err != nil {
			if apperrors.IsContextError(err) {
				return nil, err
			}
			env.logger.Error("lookup failed", err, logging.String("person", p.Name), logging.Int("index", i))
			return nil, err
		}
		results = append(results, res)
		env.tracker.done()
	}
	return results, nil
}
