package batch

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/agbru/agecalc/internal/age"
)

// Strategy names accepted on the command line.
const (
	StrategyCallback = "callback"
	StrategyFuture   = "future"
	StrategyAwait    = "await"
)

// Runner is the blocking form shared by every strategy, used when strategies
// are compared against each other.
type Runner interface {
	// Name returns the strategy identifier.
	Name() string
	// Run computes the roster and blocks until the batch settles.
	Run(ctx context.Context, people []age.Person, opts Options) ([]age.ComputedPerson, error)
}

type callbackRunner struct{}

func (callbackRunner) Name() string { return StrategyCallback }

func (callbackRunner) Run(ctx context.Context, people []age.Person, opts Options) ([]age.ComputedPerson, error) {
	type outcome struct {
		results []age.ComputedPerson
		err     error
	}
	ch := make(chan outcome, 1)
	ComputeWithCallback(ctx, people, opts, func(results []age.ComputedPerson, err error) {
		ch <- outcome{results, err}
	})
	o := <-ch
	return o.results, o.err
}

type futureRunner struct{}

func (futureRunner) Name() string { return StrategyFuture }

func (futureRunner) Run(ctx context.Context, people []age.Person, opts Options) ([]age.ComputedPerson, error) {
	// The batch shares ctx, so it settles promptly once ctx is done; waiting
	// for it keeps progress reports from outliving Run.
	f := ComputeFuture(ctx, people, opts)
	<-f.Done()
	return f.results, f.err
}

type sequentialRunner struct{}

func (sequentialRunner) Name() string { return StrategyAwait }

func (sequentialRunner) Run(ctx context.Context, people []age.Person, opts Options) ([]age.ComputedPerson, error) {
	return ComputeSequential(ctx, people, opts)
}

// Registry maps strategy names to runners. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	runners map[string]Runner
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{runners: make(map[string]Runner)}
}

// NewDefaultRegistry returns a registry holding the three built-in strategies.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(callbackRunner{})
	r.Register(futureRunner{})
	r.Register(sequentialRunner{})
	return r
}

// Register adds or replaces a runner under its own name.
func (r *Registry) Register(runner Runner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runners[runner.Name()] = runner
}

// Get returns the runner registered under name.
func (r *Registry) Get(name string) (Runner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	runner, ok := r.runners[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
	return runner, nil
}

// MustGet is like Get but panics on unknown names.
func (r *Registry) MustGet(name string) Runner {
	runner, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return runner
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.runners))
	for name := range r.runners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
