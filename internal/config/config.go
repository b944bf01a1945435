// Package config parses the command line and environment into an AppConfig.
//
// Priority: CLI flags > AGECALC_* environment variables > defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/agecalc/internal/errors"
)

// EnvPrefix is prepended to every environment variable the configuration reads.
const EnvPrefix = "AGECALC_"

// Defaults.
const (
	DefaultStrategy = "all"
	DefaultDelay    = 500 * time.Millisecond
	DefaultTimeout  = 30 * time.Second
	DefaultLogLevel = "warn"
)

// NowLayout is the accepted format of --now.
const NowLayout = time.DateOnly

// AppConfig holds every user-facing setting.
type AppConfig struct {
	Strategy       string
	InputFile      string
	Delay          time.Duration
	Timeout        time.Duration
	Now            string
	MaxConcurrency int
	RateLimit      float64
	OutputFile     string
	MetricsFile    string
	Quiet          bool
	Verbose        bool
	NoColor        bool
	LogLevel       string
	Completion     string
}

// ReferenceDate returns the pinned reference date and true, or false when the
// system clock should be used.
func (c AppConfig) ReferenceDate() (time.Time, bool) {
	if c.Now == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(NowLayout, c.Now)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseConfig parses args (without the program name) into an AppConfig and
// validates it. Usage and parse errors go to errWriter. --help yields an error
// matching flag.ErrHelp.
//
// Parameters:
//   - programName: Name shown in usage output.
//   - args: Command-line arguments.
//   - errWriter: Destination for usage and parse errors.
//   - availableStrategies: Valid values for --strategy besides "all".
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: A ConfigError, flag.ErrHelp, or nil.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableStrategies []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{}
	fs.StringVar(&cfg.Strategy, "strategy", DefaultStrategy,
		fmt.Sprintf("Batch strategy to run: all, %s.", strings.Join(availableStrategies, ", ")))
	fs.StringVar(&cfg.InputFile, "input", "", "YAML or JSON roster file (default: built-in sample roster).")
	fs.StringVar(&cfg.InputFile, "i", "", "Shorthand for --input.")
	fs.DurationVar(&cfg.Delay, "delay", DefaultDelay, "Simulated latency of each lookup.")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum run time.")
	fs.StringVar(&cfg.Now, "now", "", "Reference date (YYYY-MM-DD) ages are computed against (default: today).")
	fs.IntVar(&cfg.MaxConcurrency, "max-concurrency", 0, "Maximum lookups in flight per strategy (0 = unbounded).")
	fs.Float64Var(&cfg.RateLimit, "rate", 0, "Maximum lookup starts per second per strategy (0 = unlimited).")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write results to a file (.json, .yaml or .yml).")
	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for --output.")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only name<TAB>age lines.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Show the winning strategy, its duration and memory statistics.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error.")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a shell completion script (bash, zsh, fish, powershell) and exit.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(availableStrategies); err != nil {
		fmt.Fprintf(errWriter, "Configuration error: %v\n", err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the semantic constraints between fields.
func (c AppConfig) Validate(availableStrategies []string) error {
	if c.Strategy != DefaultStrategy && !slices.Contains(availableStrategies, c.Strategy) {
		return apperrors.NewConfigError("unknown strategy %q (want all, %s)", c.Strategy, strings.Join(availableStrategies, ", "))
	}
	if c.Delay < 0 {
		return apperrors.NewConfigError("--delay must be non-negative, got %s", c.Delay)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("--timeout must be positive, got %s", c.Timeout)
	}
	if c.MaxConcurrency < 0 {
		return apperrors.NewConfigError("--max-concurrency must be non-negative, got %d", c.MaxConcurrency)
	}
	if c.RateLimit < 0 {
		return apperrors.NewConfigError("--rate must be non-negative, got %g", c.RateLimit)
	}
	if c.Now != "" {
		if _, err := time.Parse(NowLayout, c.Now); err != nil {
			return apperrors.NewConfigError("--now must be a YYYY-MM-DD date, got %q", c.Now)
		}
	}
	if c.OutputFile != "" {
		switch ext := strings.ToLower(filepath.Ext(c.OutputFile)); ext {
		case ".json", ".yaml", ".yml":
		default:
			return apperrors.NewConfigError("--output must end in .json, .yaml or .yml, got %q", c.OutputFile)
		}
	}
	switch c.Completion {
	case "", "bash", "zsh", "fish", "powershell", "ps":
	default:
		return apperrors.NewConfigError("unsupported shell %q for --completion", c.Completion)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error", "disabled":
	default:
		return apperrors.NewConfigError("unknown log level %q", c.LogLevel)
	}
	return nil
}
