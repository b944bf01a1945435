package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/agecalc/internal/format"
	"github.com/agbru/agecalc/internal/orchestration"
	"github.com/agbru/agecalc/internal/progress"
)

const (
	// ProgressRefreshRate is how often the spinner suffix is redrawn.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the bar length in cells.
	ProgressBarWidth = 30
)

// Spinner is the terminal animation shown while strategies run. Tests swap
// newSpinner for a fake that records suffixes.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

// UpdateSuffix replaces the text after the spinner glyph. Suffix is read by
// the spinner goroutine, so it is written under the spinner's lock.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress renders a spinner with an aggregated progress bar and ETA
// until progressChan is closed. It calls wg.Done on return.
//
// Parameters:
//   - wg: The wait group to signal on completion.
//   - progressChan: The channel of per-person updates from every strategy.
//   - numRunners: The number of strategies reporting on the channel.
//   - out: The writer the spinner draws on.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numRunners int, out io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numRunners)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	label := "Computing ages"
	if agg.IsMultiRunner() {
		label = fmt.Sprintf("Comparing %d strategies", agg.NumRunners())
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(fmt.Sprintf(" %s %s", label, format.FormatProgressBarWithETA(0, 0, ProgressBarWidth)))
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				fmt.Fprintf(out, "%s %s\n", label, format.FormatProgressBarWithETA(agg.Average(), 0, ProgressBarWidth))
				return
			}
			agg.Update(update)
		case <-ticker.C:
			s.UpdateSuffix(fmt.Sprintf(" %s %s", label, format.FormatProgressBarWithETA(agg.Average(), agg.ETA(), ProgressBarWidth)))
		}
	}
}
