package orchestration

import (
	"time"

	"github.com/agbru/agecalc/internal/format"
	"github.com/agbru/agecalc/internal/progress"
)

// ProgressAggregator tracks per-strategy completion and exposes the average,
// so a single bar can represent several strategies running side by side.
type ProgressAggregator struct {
	eta        *format.ProgressWithETA
	numRunners int
}

// NewProgressAggregator creates an aggregator for numRunners strategies.
// Returns nil if numRunners <= 0.
func NewProgressAggregator(numRunners int) *ProgressAggregator {
	if numRunners <= 0 {
		return nil
	}
	return &ProgressAggregator{
		eta:        format.NewProgressWithETA(numRunners),
		numRunners: numRunners,
	}
}

// Update records an update and returns the new average in [0, 1].
// Updates with an out-of-range index are ignored.
func (a *ProgressAggregator) Update(u progress.Update) float64 {
	avg, _ := a.eta.UpdateWithETA(u.RunnerIndex, u.Fraction())
	return avg
}

// Average returns the mean completion across strategies.
func (a *ProgressAggregator) Average() float64 {
	return a.eta.CalculateAverage()
}

// ETA returns the estimated time until every strategy settles, 0 while unknown.
func (a *ProgressAggregator) ETA() time.Duration {
	return a.eta.GetETA()
}

// NumRunners returns the number of strategies being tracked.
func (a *ProgressAggregator) NumRunners() int {
	return a.numRunners
}

// IsMultiRunner returns true if tracking more than one strategy.
func (a *ProgressAggregator) IsMultiRunner() bool {
	return a.numRunners > 1
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan progress.Update) {
	for range progressChan {
	}
}
