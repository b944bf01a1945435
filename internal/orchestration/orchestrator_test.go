package orchestration

import (
	"context"
	"errors"
	"io"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/agbru/agecalc/internal/age"
	"github.com/agbru/agecalc/internal/batch"
	apperrors "github.com/agbru/agecalc/internal/errors"
	"github.com/agbru/agecalc/internal/progress"
)

// MockResultPresenter is a mock implementation of ResultPresenter for testing.
type MockResultPresenter struct{}

func (MockResultPresenter) PresentComparisonTable(results []StrategyResult, out io.Writer) {}
func (MockResultPresenter) PresentResult(result StrategyResult, opts PresentationOptions, out io.Writer) {
}
func (MockResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.ExitCodeFor(err)
}

// MockRunner is a mock implementation of batch.Runner used for testing the
// orchestration logic without real delays.
type MockRunner struct {
	NameValue string
	RunFunc   func(ctx context.Context, people []age.Person, opts batch.Options) ([]age.ComputedPerson, error)
}

// Name returns the mocked name of the runner.
func (m *MockRunner) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

// Run invokes the mocked RunFunc.
func (m *MockRunner) Run(ctx context.Context, people []age.Person, opts batch.Options) ([]age.ComputedPerson, error) {
	if m.RunFunc != nil {
		return m.RunFunc(ctx, people, opts)
	}
	return []age.ComputedPerson{}, nil
}

type recordedRun struct {
	strategy string
	people   int
	failed   bool
}

type mockRecorder struct {
	mu   sync.Mutex
	runs []recordedRun
}

func (r *mockRecorder) ObserveRun(strategy string, people int, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, recordedRun{strategy: strategy, people: people, failed: err != nil})
}

var roster = []age.Person{{Name: "Ana", BirthDate: "1990-01-15"}, {Name: "Sofia", BirthDate: "1982-06-20"}}

// TestExecuteStrategies verifies that the orchestrator runs every strategy and
// stores results at their selection index.
func TestExecuteStrategies(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		runners     []batch.Runner
		expectedLen int
		expectError []bool
	}{
		{
			name: "Single success",
			runners: []batch.Runner{
				&MockRunner{NameValue: "a", RunFunc: func(_ context.Context, people []age.Person, _ batch.Options) ([]age.ComputedPerson, error) {
					return []age.ComputedPerson{{Name: people[0].Name, Age: 1}}, nil
				}},
			},
			expectedLen: 1,
			expectError: []bool{false},
		},
		{
			name: "Failure wrapped with strategy name",
			runners: []batch.Runner{
				&MockRunner{NameValue: "slow", RunFunc: func(context.Context, []age.Person, batch.Options) ([]age.ComputedPerson, error) {
					time.Sleep(5 * time.Millisecond)
					return []age.ComputedPerson{}, nil
				}},
				&MockRunner{NameValue: "broken", RunFunc: func(context.Context, []age.Person, batch.Options) ([]age.ComputedPerson, error) {
					return nil, errors.New("mock error")
				}},
			},
			expectedLen: 2,
			expectError: []bool{false, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := &mockRecorder{}
			results := ExecuteStrategies(context.Background(), tt.runners, roster, batch.Options{}, NullProgressReporter{}, rec, io.Discard)
			if len(results) != tt.expectedLen {
				t.Fatalf("expected %d results, got %d", tt.expectedLen, len(results))
			}
			for i, wantErr := range tt.expectError {
				if results[i].Name != tt.runners[i].Name() {
					t.Errorf("result %d: name %q, want %q", i, results[i].Name, tt.runners[i].Name())
				}
				if (results[i].Err != nil) != wantErr {
					t.Errorf("result %d: err = %v, wantErr %v", i, results[i].Err, wantErr)
				}
				var batchErr apperrors.BatchError
				if wantErr && (!errors.As(results[i].Err, &batchErr) || batchErr.Strategy != results[i].Name) {
					t.Errorf("result %d: error should be a BatchError for %q, got %v", i, results[i].Name, results[i].Err)
				}
			}
			if len(rec.runs) != tt.expectedLen {
				t.Errorf("recorder saw %d runs, want %d", len(rec.runs), tt.expectedLen)
			}
		})
	}
}

// TestExecuteStrategies_ProgressRouting checks that progress reported by each
// strategy reaches the reporter tagged with its selection index.
func TestExecuteStrategies_ProgressRouting(t *testing.T) {
	t.Parallel()
	reporting := func(name string) batch.Runner {
		return &MockRunner{NameValue: name, RunFunc: func(_ context.Context, people []age.Person, opts batch.Options) ([]age.ComputedPerson, error) {
			for i := range people {
				opts.OnProgress(i+1, len(people))
			}
			return []age.ComputedPerson{}, nil
		}}
	}

	var (
		mu      sync.Mutex
		updates = map[int][]int{}
	)
	reporter := ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan progress.Update, numRunners int, _ io.Writer) {
		defer wg.Done()
		if numRunners != 2 {
			t.Errorf("numRunners = %d, want 2", numRunners)
		}
		for u := range ch {
			mu.Lock()
			updates[u.RunnerIndex] = append(updates[u.RunnerIndex], u.Completed)
			mu.Unlock()
		}
	})

	ExecuteStrategies(context.Background(), []batch.Runner{reporting("x"), reporting("y")}, roster, batch.Options{}, reporter, nil, io.Discard)

	want := map[int][]int{0: {1, 2}, 1: {1, 2}}
	if !reflect.DeepEqual(updates, want) {
		t.Errorf("updates = %v, want %v", updates, want)
	}
}

// TestExecuteStrategies_RealRunners runs the built-in strategies end to end.
func TestExecuteStrategies_RealRunners(t *testing.T) {
	t.Parallel()
	registry := batch.NewDefaultRegistry()
	runners := GetRunnersToRun(StrategyAll, registry)
	opts := batch.Options{
		Delay: time.Millisecond,
		Clock: age.FixedClock(time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)),
	}

	results := ExecuteStrategies(context.Background(), runners, roster, opts, NullProgressReporter{}, nil, io.Discard)
	want := []age.ComputedPerson{{Name: "Ana", Age: 36}, {Name: "Sofia", Age: 44}}
	for _, res := range results {
		if res.Err != nil {
			t.Fatalf("%s failed: %v", res.Name, res.Err)
		}
		if !reflect.DeepEqual(res.People, want) {
			t.Errorf("%s: got %+v, want %+v", res.Name, res.People, want)
		}
	}

	status := AnalyzeComparisonResults(results, PresentationOptions{}, MockResultPresenter{}, MockResultPresenter{}, io.Discard)
	if status != apperrors.ExitSuccess {
		t.Errorf("expected success, got %d", status)
	}
}

// TestAnalyzeComparisonResults verifies the logic for comparing results from
// multiple strategies.
func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	ages := func(a ...int) []age.ComputedPerson {
		out := make([]age.ComputedPerson, len(a))
		for i, v := range a {
			out[i] = age.ComputedPerson{Name: roster[i].Name, Age: v}
		}
		return out
	}
	invalid := apperrors.BatchError{Strategy: "await", Cause: apperrors.InvalidBirthDateError{Person: "Ana"}}

	tests := []struct {
		name           string
		results        []StrategyResult
		expectedStatus int
	}{
		{
			name: "All success",
			results: []StrategyResult{
				{Name: "callback", People: ages(36, 44), Duration: time.Millisecond},
				{Name: "future", People: ages(36, 44), Duration: time.Millisecond},
			},
			expectedStatus: apperrors.ExitSuccess,
		},
		{
			name: "Mismatch",
			results: []StrategyResult{
				{Name: "callback", People: ages(36, 44), Duration: time.Millisecond},
				{Name: "future", People: ages(36, 43), Duration: time.Millisecond},
			},
			expectedStatus: apperrors.ExitErrorMismatch,
		},
		{
			name: "Order mismatch",
			results: []StrategyResult{
				{Name: "callback", People: ages(36, 44), Duration: time.Millisecond},
				{Name: "future", People: []age.ComputedPerson{{Name: "Sofia", Age: 44}, {Name: "Ana", Age: 36}}, Duration: time.Millisecond},
			},
			expectedStatus: apperrors.ExitErrorMismatch,
		},
		{
			name: "All failure with invalid birth date",
			results: []StrategyResult{
				{Name: "await", Err: invalid},
				{Name: "future", Err: invalid},
			},
			expectedStatus: apperrors.ExitErrorInvalidInput,
		},
		{
			name: "All failure with timeout",
			results: []StrategyResult{
				{Name: "await", Err: apperrors.BatchError{Strategy: "await", Cause: context.DeadlineExceeded}},
			},
			expectedStatus: apperrors.ExitErrorTimeout,
		},
		{
			name: "Mixed success/failure",
			results: []StrategyResult{
				{Name: "future", People: ages(36, 44), Duration: time.Millisecond},
				{Name: "await", Err: apperrors.BatchError{Strategy: "await", Cause: context.DeadlineExceeded}},
			},
			expectedStatus: apperrors.ExitSuccess,
		},
		{
			name: "Empty rosters agree",
			results: []StrategyResult{
				{Name: "callback", People: []age.ComputedPerson{}},
				{Name: "await", People: []age.ComputedPerson{}},
			},
			expectedStatus: apperrors.ExitSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			status := AnalyzeComparisonResults(tt.results, PresentationOptions{}, MockResultPresenter{}, MockResultPresenter{}, io.Discard)
			if status != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, status)
			}
		})
	}
}

func TestFindBestResult(t *testing.T) {
	t.Parallel()
	results := []StrategyResult{
		{Name: "await", Duration: 30 * time.Millisecond},
		{Name: "callback", Duration: 5 * time.Millisecond, Err: errors.New("x")},
		{Name: "future", Duration: 10 * time.Millisecond},
	}
	if best := FindBestResult(results); best == nil || best.Name != "future" {
		t.Errorf("expected future, got %+v", best)
	}
	if best := FindBestResult(results[1:2]); best != nil {
		t.Errorf("expected nil when everything failed, got %+v", best)
	}
}

func TestGetRunnersToRun(t *testing.T) {
	t.Parallel()
	registry := batch.NewDefaultRegistry()
	tests := []struct {
		strategy string
		want     []string
	}{
		{StrategyAll, []string{"await", "callback", "future"}},
		{"future", []string{"future"}},
		{"promise", nil},
	}
	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			t.Parallel()
			var got []string
			for _, r := range GetRunnersToRun(tt.strategy, registry) {
				got = append(got, r.Name())
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GetRunnersToRun(%q) = %v, want %v", tt.strategy, got, tt.want)
			}
		})
	}
}

func TestProgressAggregator(t *testing.T) {
	t.Parallel()
	if NewProgressAggregator(0) != nil {
		t.Error("expected nil aggregator for zero runners")
	}
	agg := NewProgressAggregator(2)
	if !agg.IsMultiRunner() || agg.NumRunners() != 2 {
		t.Errorf("unexpected shape: %d runners", agg.NumRunners())
	}
	if got := agg.Update(progress.Update{RunnerIndex: 0, Completed: 2, Total: 4}); got != 0.25 {
		t.Errorf("average = %v, want 0.25", got)
	}
	if got := agg.Update(progress.Update{RunnerIndex: 1, Completed: 4, Total: 4}); got != 0.75 {
		t.Errorf("average = %v, want 0.75", got)
	}
	if got := agg.Update(progress.Update{RunnerIndex: 7, Completed: 4, Total: 4}); got != 0.75 {
		t.Errorf("out-of-range index should be ignored, average = %v", got)
	}
	if got := agg.Average(); got != 0.75 {
		t.Errorf("Average() = %v, want 0.75", got)
	}
	if eta := agg.ETA(); eta < 0 {
		t.Errorf("ETA() = %v, should never be negative", eta)
	}
}
