package orchestration

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/agecalc/internal/age"
	"github.com/agbru/agecalc/internal/batch"
	apperrors "github.com/agbru/agecalc/internal/errors"
	"github.com/agbru/agecalc/internal/progress"
)

// ProgressBufferMultiplier sizes the progress channel per runner so lookups
// rarely block on a slow terminal.
const ProgressBufferMultiplier = 5

// ExecuteStrategies runs every runner over the same read-only roster at once
// and returns one result per runner, in the order given. opts.OnProgress is
// replaced with a feed into progressReporter; recorder may be nil.
func ExecuteStrategies(ctx context.Context, runners []batch.Runner, people []age.Person, opts batch.Options,
	progressReporter ProgressReporter, recorder Recorder, out io.Writer) []StrategyResult {
	var g errgroup.Group
	results := make([]StrategyResult, len(runners))
	progressChan := make(chan progress.Update, len(runners)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(runners), out)

	for i, r := range runners {
		idx, runner := i, r
		g.Go(func() error {
			runOpts := opts
			runOpts.OnProgress = func(completed, total int) {
				progressChan <- progress.Update{RunnerIndex: idx, Completed: completed, Total: total}
			}
			startTime := time.Now()
			res, err := runner.Run(ctx, people, runOpts)
			duration := time.Since(startTime)
			if err != nil {
				err = apperrors.BatchError{Strategy: runner.Name(), Cause: err}
			}
			results[idx] = StrategyResult{
				Name: runner.Name(), People: res, Duration: duration, Err: err,
			}
			if recorder != nil {
				recorder.ObserveRun(runner.Name(), len(people), duration, err)
			}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults prints the comparison table and the winning
// roster, and returns ExitErrorMismatch when two successful strategies
// disagree on any age.
func AnalyzeComparisonResults(results []StrategyResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValidResult *StrategyResult
	var firstError error
	var firstErrorDuration time.Duration
	successCount := 0

	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
				firstErrorDuration = results[i].Duration
			}
		} else {
			successCount++
			if firstValidResult == nil {
				firstValidResult = &results[i]
			}
		}
	}

	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No strategy could complete the batch.\n")
		return errHandler.HandleError(firstError, firstErrorDuration, out)
	}

	for _, res := range results {
		if res.Err == nil && !slices.Equal(res.People, firstValidResult.People) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The strategies disagree on the computed ages.\n")
			return apperrors.ExitErrorMismatch
		}
	}

	if firstError != nil {
		fmt.Fprintf(out, "\nGlobal Status: Partial. %d of %d strategies completed and agree.\n", successCount, len(results))
	} else {
		fmt.Fprintf(out, "\nGlobal Status: Success. All strategies agree.\n")
	}
	presenter.PresentResult(*firstValidResult, opts, out)
	return apperrors.ExitSuccess
}

// FindBestResult returns the fastest successful result, or nil.
func FindBestResult(results []StrategyResult) *StrategyResult {
	var best *StrategyResult
	for i := range results {
		if results[i].Err == nil && (best == nil || results[i].Duration < best.Duration) {
			best = &results[i]
		}
	}
	return best
}
