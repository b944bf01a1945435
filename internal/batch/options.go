package batch

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/agbru/agecalc/internal/age"
	"github.com/agbru/agecalc/internal/logging"
	"github.com/agbru/agecalc/internal/progress"
)

// DefaultDelay is the simulated latency of a single lookup.
const DefaultDelay = 500 * time.Millisecond

// Options tunes a batch run. The zero value runs with no delay, the system
// clock, unbounded concurrency and no rate limit.
type Options struct {
	// Delay is the simulated latency applied to each lookup.
	Delay time.Duration
	// DelayFor, when set, overrides Delay per person.
	DelayFor func(index int, p age.Person) time.Duration
	// Clock supplies the reference date. Nil means the system clock.
	Clock age.Clock
	// MaxConcurrency bounds the number of lookups in flight. Zero or less is unbounded.
	MaxConcurrency int
	// RateLimit caps lookup starts per second across the batch. Zero or less disables it.
	RateLimit float64
	// OnProgress is invoked once per completed lookup with a monotonically
	// increasing count. It is never invoked after a Callback has fired.
	OnProgress progress.Callback
	// Logger receives debug and failure entries. Nil discards them.
	Logger logging.Logger
}

// runEnv is the per-batch state derived from Options.
type runEnv struct {
	delayFor func(int, age.Person) time.Duration
	clock    age.Clock
	limiter  *rate.Limiter
	logger   logging.Logger
	limit    int
	tracker  *tracker
}

func (o Options) env(total int) *runEnv {
	e := &runEnv{
		delayFor: o.DelayFor,
		clock:    age.ClockOrSystem(o.Clock),
		logger:   o.Logger,
		limit:    o.MaxConcurrency,
		tracker:  &tracker{total: total, cb: o.OnProgress},
	}
	if e.delayFor == nil {
		d := o.Delay
		e.delayFor = func(int, age.Person) time.Duration { return d }
	}
	if o.RateLimit > 0 {
		e.limiter = rate.NewLimiter(rate.Limit(o.RateLimit), 1)
	}
	if e.logger == nil {
		e.logger = logging.Nop{}
	}
	return e
}

// lookup simulates fetching one person's record, then computes the age.
func (e *runEnv) lookup(ctx context.Context, index int, p age.Person) (age.ComputedPerson, error) {
	if err := ctx.Err(); err != nil {
		return age.ComputedPerson{}, err
	}
	if e.limiter != nil {
		// Reserve rather than Wait: Wait rejects up front when the token is
		// due after the deadline, hiding the context error.
		r := e.limiter.Reserve()
		if err := sleep(ctx, r.Delay()); err != nil {
			r.Cancel()
			return age.ComputedPerson{}, err
		}
	}
	if err := sleep(ctx, e.delayFor(index, p)); err != nil {
		return age.ComputedPerson{}, err
	}
	res, err := age.Compute(p, e.clock.Now())
	if err != nil {
		return age.ComputedPerson{}, err
	}
	e.logger.Debug("age computed",
		logging.String("person", p.Name), logging.Int("index", index), logging.Int("age", res.Age))
	return res, nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// tracker is the completion counter shared by a batch's lookups.
type tracker struct {
	mu        sync.Mutex
	completed int
	total     int
	settled   bool
	cb        progress.Callback
}

// done records one completion and returns the new count, or -1 once the
// batch has settled. The progress callback runs under the lock so counts are
// reported in order.
func (t *tracker) done() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.settled {
		return -1
	}
	t.completed++
	if t.cb != nil {
		t.cb(t.completed, t.total)
	}
	return t.completed
}

// settle stops further progress reports.
func (t *tracker) settle() {
	t.mu.Lock()
	t.settled = true
	t.mu.Unlock()
}
