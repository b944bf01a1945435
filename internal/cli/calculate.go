package cli

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/agbru/agecalc/internal/batch"
	"github.com/agbru/agecalc/internal/config"
	"github.com/agbru/agecalc/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the roster size, reference date, per-lookup delay, timeout and
// any concurrency or rate limits.
//
// Parameters:
//   - cfg: The application configuration.
//   - rosterSize: The number of people to process.
//   - referenceDate: The date ages are computed against.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, rosterSize int, referenceDate time.Time, out io.Writer) {
	source := "built-in sample"
	if cfg.InputFile != "" {
		source = cfg.InputFile
	}
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Computing ages for %s%d%s people (%s) as of %s%s%s.\n",
		ui.ColorSetting(), rosterSize, ui.ColorReset(), source,
		ui.ColorSetting(), referenceDate.Format(time.DateOnly), ui.ColorReset())
	fmt.Fprintf(out, "Lookup delay %s%s%s, timeout %s%s%s.\n",
		ui.ColorDuration(), cfg.Delay, ui.ColorReset(), ui.ColorDuration(), cfg.Timeout, ui.ColorReset())
	if cfg.MaxConcurrency > 0 || cfg.RateLimit > 0 {
		fmt.Fprintf(out, "Limits: max-concurrency=%s%d%s, rate=%s%g/s%s (0 = unlimited).\n",
			ui.ColorSetting(), cfg.MaxConcurrency, ui.ColorReset(), ui.ColorSetting(), cfg.RateLimit, ui.ColorReset())
	}
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorSetting(), runtime.NumCPU(), ui.ColorReset(), ui.ColorSetting(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single strategy vs comparison).
//
// Parameters:
//   - runners: The strategies that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(runners []batch.Runner, out io.Writer) {
	var modeDesc string
	switch len(runners) {
	case 0:
		modeDesc = "No strategy selected"
	case 1:
		modeDesc = fmt.Sprintf("Single batch with the %s%s%s strategy",
			ui.ColorStrategy(), runners[0].Name(), ui.ColorReset())
	default:
		modeDesc = fmt.Sprintf("Parallel comparison of %d strategies", len(runners))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
