package cli

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/agecalc/internal/age"
	apperrors "github.com/agbru/agecalc/internal/errors"
	"github.com/agbru/agecalc/internal/format"
	"github.com/agbru/agecalc/internal/metrics"
	"github.com/agbru/agecalc/internal/orchestration"
	"github.com/agbru/agecalc/internal/progress"
	"github.com/agbru/agecalc/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI output.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar while strategies run.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numRunners int, out io.Writer) {
	DisplayProgress(wg, progressChan, numRunners, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter and
// orchestration.ErrorHandler for the command line.
type CLIResultPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentComparisonTable displays the comparison summary table with
// strategy names, durations, and status in a formatted tabular layout.
// Uses manual padding to correctly handle ANSI color codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.StrategyResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	maxNameLen := len("Strategy")
	maxDurationLen := len("Duration")
	for _, res := range results {
		maxNameLen = max(maxNameLen, len(res.Name))
		maxDurationLen = max(maxDurationLen, len(format.FormatExecutionDuration(res.Duration)))
	}

	fmt.Fprintf(out, "%sStrategy%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorHeading(), ui.ColorReset(), padRight("", maxNameLen-len("Strategy")),
		ui.ColorHeading(), ui.ColorReset(), padRight("", maxDurationLen-len("Duration")),
		ui.ColorHeading(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorFailure(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success (%d people)%s", ui.ColorSuccess(), len(res.People), ui.ColorReset())
		}
		duration := format.FormatExecutionDuration(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorStrategy(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorDuration(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			status)
	}
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult displays the computed roster of a successful strategy.
func (CLIResultPresenter) PresentResult(result orchestration.StrategyResult, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Verbose {
		fmt.Fprintf(out, "\nComputed by %s%s%s in %s%s%s.\n",
			ui.ColorStrategy(), result.Name, ui.ColorReset(),
			ui.ColorDuration(), format.FormatExecutionDuration(result.Duration), ui.ColorReset())
	}
	DisplayPeople(result.People, out)
}

// HandleError handles batch errors and returns an appropriate exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleBatchError(err, duration, out, CLIColorProvider{})
}

// DisplayPeople renders the computed roster as a two-column table using the
// lipgloss styles of the active theme.
func DisplayPeople(people []age.ComputedPerson, out io.Writer) {
	styles := ui.GetTableStyles()
	fmt.Fprintf(out, "\n--- Ages ---\n")
	if len(people) == 0 {
		fmt.Fprintln(out, styles.Muted.Render("(empty roster)"))
		return
	}

	nameWidth, ageWidth := len("Name"), len("Age")
	for _, p := range people {
		nameWidth = max(nameWidth, lipgloss.Width(p.Name))
		ageWidth = max(ageWidth, len(strconv.Itoa(p.Age)))
	}

	nameCol := lipgloss.NewStyle().Width(nameWidth + 3)
	ageCol := lipgloss.NewStyle().Width(ageWidth).Align(lipgloss.Right)

	fmt.Fprintln(out, lipgloss.JoinHorizontal(lipgloss.Top,
		nameCol.Render(styles.Header.Render("Name")),
		ageCol.Render(styles.Header.Render("Age"))))
	for _, p := range people {
		fmt.Fprintln(out, lipgloss.JoinHorizontal(lipgloss.Top,
			nameCol.Render(styles.Person.Render(p.Name)),
			ageCol.Render(styles.Age.Render(strconv.Itoa(p.Age)))))
	}
}

// DisplayMemoryStats prints the runtime memory snapshot taken after a run.
func DisplayMemoryStats(snap metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(snap.HeapInUse))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(snap.Allocated))
	fmt.Fprintf(out, "  Reserved:        %s\n", format.FormatBytes(snap.FromOS))
	fmt.Fprintf(out, "  GC cycles:       %d\n", snap.GCCycles)
	fmt.Fprintf(out, "  GC pause total:  %s\n", format.FormatExecutionDuration(snap.GCPause))
}

// CLIColorProvider implements apperrors.ColorProvider using the ui theme.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

// Red returns the failure color.
func (CLIColorProvider) Red() string { return ui.ColorFailure() }

// Yellow returns the warning color used for timeouts and cancellation.
func (CLIColorProvider) Yellow() string { return ui.ColorWarning() }

// Reset returns the reset code.
func (CLIColorProvider) Reset() string { return ui.ColorReset() }
