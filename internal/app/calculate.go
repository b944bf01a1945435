package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/agecalc/internal/age"
	"github.com/agbru/agecalc/internal/batch"
	"github.com/agbru/agecalc/internal/cli"
	apperrors "github.com/agbru/agecalc/internal/errors"
	"github.com/agbru/agecalc/internal/logging"
	"github.com/agbru/agecalc/internal/metrics"
	"github.com/agbru/agecalc/internal/orchestration"
	"github.com/agbru/agecalc/internal/roster"
)

// runCalculate loads the roster, runs the selected strategies and reports.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	people, err := a.loadRoster()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorInvalidInput
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	runners := orchestration.GetRunnersToRun(a.Config.Strategy, a.Registry)
	referenceDate := a.Clock.Now()

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, len(people), referenceDate, out)
		cli.PrintExecutionMode(runners, out)
	}

	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	opts := batch.Options{
		Delay:          a.Config.Delay,
		Clock:          age.FixedClock(referenceDate),
		MaxConcurrency: a.Config.MaxConcurrency,
		RateLimit:      a.Config.RateLimit,
		Logger:         a.Logger,
	}
	recorder := metrics.NewBatch()

	a.Logger.Info("starting batch",
		logging.Int("people", len(people)),
		logging.Int("strategies", len(runners)),
		logging.Float64("rate", a.Config.RateLimit),
		logging.String("reference_date", referenceDate.Format(time.DateOnly)))

	results := orchestration.ExecuteStrategies(ctx, runners, people, opts, progressReporter, recorder, progressOut)

	for i, res := range results {
		if res.Err != nil && errors.Is(res.Err, context.DeadlineExceeded) {
			results[i].Err = apperrors.TimeoutError{Operation: res.Name, Limit: a.Config.Timeout, Cause: res.Err}
		}
		a.Logger.Debug("strategy finished",
			logging.String("strategy", res.Name),
			logging.Duration("duration", res.Duration),
			logging.Int("people", len(res.People)),
			logging.Err(res.Err))
	}

	exitCode := a.analyzeResultsWithOutput(results, referenceDate, out)
	a.writeMetrics(recorder)
	return exitCode
}

// loadRoster returns the roster from --input, or the built-in sample.
func (a *Application) loadRoster() ([]age.Person, error) {
	if a.Config.InputFile == "" {
		return roster.Sample(), nil
	}
	people, err := roster.Load(a.Config.InputFile)
	if err != nil {
		return nil, apperrors.WrapError(err, "cannot load %s", a.Config.InputFile)
	}
	return people, nil
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.StrategyResult, referenceDate time.Time, out io.Writer) int {
	presenter := cli.CLIResultPresenter{}
	presOpts := orchestration.PresentationOptions{Verbose: a.Config.Verbose}

	reportOut := out
	if a.Config.Quiet {
		reportOut = io.Discard
	}
	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, reportOut)

	best := orchestration.FindBestResult(results)
	if exitCode != apperrors.ExitSuccess || best == nil {
		if a.Config.Quiet {
			if err := firstError(results); err != nil {
				fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
			} else {
				fmt.Fprintf(a.ErrWriter, "Error: strategies disagree on the computed ages\n")
			}
		}
		return exitCode
	}

	if a.Config.Quiet {
		cli.DisplayQuietResult(out, best.People)
	}

	outputCfg := cli.OutputConfig{
		OutputFile:    a.Config.OutputFile,
		Quiet:         a.Config.Quiet,
		ReferenceDate: referenceDate,
	}
	if err := cli.WriteResultToFile(*best, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving results: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if outputCfg.OutputFile != "" && !outputCfg.Quiet {
		cli.DisplaySavedNotice(out, outputCfg.OutputFile)
	}

	if a.Config.Verbose && !a.Config.Quiet {
		snap := metrics.ReadMemory()
		a.Logger.Debug("memory after batch", snap.LogFields()...)
		cli.DisplayMemoryStats(snap, out)
	}
	return exitCode
}

// writeMetrics writes the metrics file if requested. Failures are logged
// and never change the exit code.
func (a *Application) writeMetrics(recorder *metrics.Batch) {
	if a.Config.MetricsFile == "" {
		return
	}
	if err := recorder.WriteToTextfile(a.Config.MetricsFile); err != nil {
		a.Logger.Error("cannot write metrics file", err, logging.String("path", a.Config.MetricsFile))
	}
}

func firstError(results []orchestration.StrategyResult) error {
	for _, res := range results {
		if res.Err != nil {
			return res.Err
		}
	}
	return nil
}
