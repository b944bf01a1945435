// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayPeople], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     They handle directory setup and error wrapping.
//     Examples: [WriteResultToFile].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/agbru/agecalc/internal/age"
	"github.com/agbru/agecalc/internal/orchestration"
	"github.com/agbru/agecalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	// The extension selects the encoding: .json, .yaml or .yml.
	OutputFile string
	// Quiet mode prints only name<TAB>age lines.
	Quiet bool
	// ReferenceDate is the date the ages were computed against.
	ReferenceDate time.Time
}

// ResultDocument is the serialized form of a results file.
type ResultDocument struct {
	GeneratedAt   string               `json:"generatedAt" yaml:"generatedAt"`
	ReferenceDate string               `json:"referenceDate" yaml:"referenceDate"`
	Strategy      string               `json:"strategy" yaml:"strategy"`
	Duration      string               `json:"duration" yaml:"duration"`
	People        []age.ComputedPerson `json:"people" yaml:"people"`
}

// WriteResultToFile writes a strategy result to config.OutputFile, creating
// parent directories as needed. It is a no-op when OutputFile is empty.
func WriteResultToFile(result orchestration.StrategyResult, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	doc := ResultDocument{
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		ReferenceDate: config.ReferenceDate.Format(time.DateOnly),
		Strategy:      result.Name,
		Duration:      result.Duration.String(),
		People:        result.People,
	}
	if doc.People == nil {
		doc.People = []age.ComputedPerson{}
	}

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(config.OutputFile)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(doc)
	default:
		data, err = json.MarshalIndent(doc, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	if dir := filepath.Dir(config.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(config.OutputFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// FormatQuietResult formats a roster as name<TAB>age lines for scripting.
func FormatQuietResult(people []age.ComputedPerson) string {
	var b strings.Builder
	for _, p := range people {
		fmt.Fprintf(&b, "%s\t%d\n", p.Name, p.Age)
	}
	return b.String()
}

// DisplayQuietResult outputs a roster in quiet mode.
func DisplayQuietResult(out io.Writer, people []age.ComputedPerson) {
	fmt.Fprint(out, FormatQuietResult(people))
}

// DisplaySavedNotice reports where results were written.
func DisplaySavedNotice(out io.Writer, path string) {
	fmt.Fprintf(out, "\n%s✓ Results saved to: %s%s%s\n",
		ui.ColorSuccess(), ui.ColorMuted(), path, ui.ColorReset())
}
