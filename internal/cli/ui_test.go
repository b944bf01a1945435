package cli

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/agecalc/internal/age"
	apperrors "github.com/agbru/agecalc/internal/errors"
	"github.com/agbru/agecalc/internal/metrics"
	"github.com/agbru/agecalc/internal/orchestration"
	"github.com/agbru/agecalc/internal/progress"
	"github.com/agbru/agecalc/internal/ui"
)

// fakeSpinner records what DisplayProgress does to the spinner.
type fakeSpinner struct {
	mu      sync.Mutex
	started bool
	stopped bool
	suffix  string
}

func (m *fakeSpinner) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
}

func (m *fakeSpinner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *fakeSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suffix = suffix
}

// Tests below touch package-level state (newSpinner, the ui theme) and do not
// run in parallel.

func TestRealSpinner(t *testing.T) {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))
	rs := &realSpinner{s}

	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
	if s.Suffix != " test" {
		t.Errorf("suffix = %q, want %q", s.Suffix, " test")
	}
}

func TestDisplayProgress(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	fake := &fakeSpinner{}
	newSpinner = func(options ...spinner.Option) Spinner {
		return fake
	}

	var wg sync.WaitGroup
	wg.Add(1)

	progressChan := make(chan progress.Update)
	var out bytes.Buffer

	go func() {
		progressChan <- progress.Update{RunnerIndex: 0, Completed: 2, Total: 4}
		progressChan <- progress.Update{RunnerIndex: 0, Completed: 4, Total: 4}
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, 1, &out)
	wg.Wait()

	if !fake.started {
		t.Error("Spinner should have started")
	}
	if !fake.stopped {
		t.Error("Spinner should have stopped")
	}
	if !strings.Contains(out.String(), "100.00%") {
		t.Errorf("final line should show completion, got %q", out.String())
	}
}

func TestDisplayProgress_ZeroRunners(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan progress.Update)
	close(progressChan)

	var out bytes.Buffer
	DisplayProgress(&wg, progressChan, 0, &out)
	wg.Wait()
	if out.Len() != 0 {
		t.Errorf("nothing should be drawn without runners, got %q", out.String())
	}
}

func TestPresentComparisonTable(t *testing.T) {
	defer ui.SetActive(ui.Active())
	ui.SetActive(ui.NoColorTheme)

	results := []orchestration.StrategyResult{
		{Name: "future", People: make([]age.ComputedPerson, 4), Duration: 12 * time.Millisecond},
		{Name: "callback", Err: errors.New("invalid birth date for David"), Duration: 0},
	}
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(results, &buf)

	output := buf.String()
	for _, want := range []string{"Strategy", "Duration", "future", "12ms", "Success (4 people)", "callback", "< 1µs", "Failure (invalid birth date for David)"} {
		if !strings.Contains(output, want) {
			t.Errorf("table should contain %q, got:\n%s", want, output)
		}
	}
}

func TestPresentResult(t *testing.T) {
	defer ui.SetActive(ui.Active())
	ui.SetActive(ui.NoColorTheme)

	result := orchestration.StrategyResult{
		Name:     "await",
		People:   []age.ComputedPerson{{Name: "Ana", Age: 36}, {Name: "Mateo", Age: 25}},
		Duration: time.Second,
	}

	t.Run("Plain", func(t *testing.T) {
		var buf bytes.Buffer
		CLIResultPresenter{}.PresentResult(result, orchestration.PresentationOptions{}, &buf)
		output := buf.String()
		if strings.Contains(output, "Computed by") {
			t.Error("non-verbose output should not show the strategy line")
		}
		lines := strings.Split(strings.TrimSpace(output), "\n")
		if len(lines) != 4 {
			t.Fatalf("expected header, column titles and 2 rows, got %d lines:\n%s", len(lines), output)
		}
		if !strings.HasPrefix(lines[2], "Ana") || !strings.HasSuffix(strings.TrimSpace(lines[2]), "36") {
			t.Errorf("unexpected row %q", lines[2])
		}
	})

	t.Run("Verbose", func(t *testing.T) {
		var buf bytes.Buffer
		CLIResultPresenter{}.PresentResult(result, orchestration.PresentationOptions{Verbose: true}, &buf)
		if !strings.Contains(buf.String(), "Computed by await in 1s") {
			t.Errorf("verbose output should show the strategy line, got:\n%s", buf.String())
		}
	})

	t.Run("Empty roster", func(t *testing.T) {
		var buf bytes.Buffer
		DisplayPeople(nil, &buf)
		if !strings.Contains(buf.String(), "(empty roster)") {
			t.Errorf("unexpected output %q", buf.String())
		}
	})
}

func TestHandleError(t *testing.T) {
	defer ui.SetActive(ui.Active())
	ui.SetActive(ui.NoColorTheme)

	var buf bytes.Buffer
	err := apperrors.BatchError{Strategy: "callback", Cause: apperrors.InvalidBirthDateError{Person: "David", Value: "nope"}}
	code := CLIResultPresenter{}.HandleError(err, 0, &buf)
	if code != apperrors.ExitErrorInvalidInput {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorInvalidInput)
	}
	if !strings.Contains(buf.String(), "David") {
		t.Errorf("message should name the person, got %q", buf.String())
	}
}

func TestDisplayMemoryStats(t *testing.T) {
	var buf bytes.Buffer
	DisplayMemoryStats(metrics.MemorySnapshot{
		HeapInUse: 2048,
		Allocated: 4 * 1024 * 1024,
		FromOS:    8 * 1024 * 1024,
		GCCycles:  3,
		GCPause:   1500 * time.Microsecond,
	}, &buf)
	output := buf.String()
	for _, want := range []string{"2.0 KiB", "4.0 MiB", "8.0 MiB", "GC cycles:       3", "1.5ms"} {
		if !strings.Contains(output, want) {
			t.Errorf("memory stats should contain %q, got:\n%s", want, output)
		}
	}
}

func TestCLIColorProvider(t *testing.T) {
	defer ui.SetActive(ui.Active())
	ui.SetActive(ui.DarkTheme)

	var c CLIColorProvider
	if c.Red() != ui.ColorFailure() || c.Yellow() != ui.ColorWarning() || c.Reset() != "\033[0m" || c.Red() == "" {
		t.Error("CLIColorProvider should follow the active theme")
	}
}
