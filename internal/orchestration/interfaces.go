package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/agecalc/internal/age"
	"github.com/agbru/agecalc/internal/progress"
)

// StrategyResult is what one strategy produced for the whole roster.
type StrategyResult struct {
	Name string
	// People holds the computed ages in roster order, or nil on failure.
	People []age.ComputedPerson
	Duration time.Duration
	Err      error
}

// PresentationOptions holds the flags that change how a roster is printed.
type PresentationOptions struct {
	Verbose bool
}

// ProgressReporter renders per-strategy completion while a batch runs.
type ProgressReporter interface {
	// DisplayProgress consumes progressChan until it is closed, then calls
	// wg.Done. It runs on its own goroutine.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numRunners int, out io.Writer)
}

// ProgressReporterFunc lets a plain function serve as a ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.Update, numRunners int, out io.Writer)

func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numRunners int, out io.Writer) {
	f(wg, progressChan, numRunners, out)
}

// NullProgressReporter discards progress. Used by --quiet.
type NullProgressReporter struct{}

func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter prints the outcome of a batch.
type ResultPresenter interface {
	// PresentComparisonTable displays the per-strategy summary table.
	PresentComparisonTable(results []StrategyResult, out io.Writer)

	// PresentResult displays the computed roster of the winning strategy.
	PresentResult(result StrategyResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler reports a failed batch and picks the exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// Recorder observes finished strategy runs, typically to export metrics.
type Recorder interface {
	ObserveRun(strategy string, people int, duration time.Duration, err error)
}
