// Package app wires configuration, roster loading, the batch strategies and
// the CLI presentation into the agecalc command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/agbru/agecalc/internal/age"
	"github.com/agbru/agecalc/internal/batch"
	"github.com/agbru/agecalc/internal/cli"
	"github.com/agbru/agecalc/internal/config"
	apperrors "github.com/agbru/agecalc/internal/errors"
	"github.com/agbru/agecalc/internal/logging"
	"github.com/agbru/agecalc/internal/ui"
)

// Application is one parsed invocation of agecalc.
type Application struct {
	Config    config.AppConfig
	Registry  *batch.Registry
	ErrWriter io.Writer
	Clock     age.Clock
	Logger    logging.Logger
}

// AppOption customises New, mostly for tests.
type AppOption func(*Application)

// WithRegistry replaces the default strategy registry.
func WithRegistry(r *batch.Registry) AppOption {
	return func(a *Application) { a.Registry = r }
}

// WithClock overrides the clock used when --now is not given.
func WithClock(c age.Clock) AppOption {
	return func(a *Application) { a.Clock = c }
}

// WithLogger overrides the console logger derived from --log-level.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New parses args, whose first element is the program name, into an
// Application.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Registry == nil {
		app.Registry = batch.NewDefaultRegistry()
	}

	programName := "agecalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Registry.List())
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if ref, pinned := cfg.ReferenceDate(); pinned {
		app.Clock = age.FixedClock(ref)
	}
	app.Clock = age.ClockOrSystem(app.Clock)
	if app.Logger == nil {
		app.Logger = logging.NewConsoleLogger(errWriter, "agecalc", cfg.LogLevel)
	}
	return app, nil
}

// Run performs the requested mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)
	return a.runCalculate(ctx, out)
}

// runCompletion writes the script for --completion to out.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Registry.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// IsHelpError reports whether New stopped because --help was given.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
