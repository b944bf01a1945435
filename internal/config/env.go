package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// envBinding ties one AGECALC_* variable to the flag it stands in for. set
// stores the value and reports whether it parsed; a value that does not parse
// leaves the flag default in place.
type envBinding struct {
	key   string
	flags []string
	set   func(c *AppConfig, v string) bool
}

var envBindings = []envBinding{
	{"STRATEGY", []string{"strategy"}, text(func(c *AppConfig) *string { return &c.Strategy })},
	{"INPUT", []string{"input", "i"}, text(func(c *AppConfig) *string { return &c.InputFile })},
	{"NOW", []string{"now"}, text(func(c *AppConfig) *string { return &c.Now })},
	{"DELAY", []string{"delay"}, duration(func(c *AppConfig) *time.Duration { return &c.Delay })},
	{"TIMEOUT", []string{"timeout"}, duration(func(c *AppConfig) *time.Duration { return &c.Timeout })},
	{"MAX_CONCURRENCY", []string{"max-concurrency"}, func(c *AppConfig, v string) bool {
		n, err := strconv.Atoi(v)
		if err == nil {
			c.MaxConcurrency = n
		}
		return err == nil
	}},
	{"RATE", []string{"rate"}, func(c *AppConfig, v string) bool {
		r, err := strconv.ParseFloat(v, 64)
		if err == nil {
			c.RateLimit = r
		}
		return err == nil
	}},
	{"OUTPUT", []string{"output", "o"}, text(func(c *AppConfig) *string { return &c.OutputFile })},
	{"METRICS_FILE", []string{"metrics-file"}, text(func(c *AppConfig) *string { return &c.MetricsFile })},
	{"LOG_LEVEL", []string{"log-level"}, text(func(c *AppConfig) *string { return &c.LogLevel })},
	{"QUIET", []string{"quiet", "q"}, boolean(func(c *AppConfig) *bool { return &c.Quiet })},
	{"VERBOSE", []string{"verbose", "v"}, boolean(func(c *AppConfig) *bool { return &c.Verbose })},
	{"NO_COLOR", []string{"no-color"}, boolean(func(c *AppConfig) *bool { return &c.NoColor })},
}

func text(field func(*AppConfig) *string) func(*AppConfig, string) bool {
	return func(c *AppConfig, v string) bool {
		*field(c) = v
		return true
	}
}

func duration(field func(*AppConfig) *time.Duration) func(*AppConfig, string) bool {
	return func(c *AppConfig, v string) bool {
		d, err := time.ParseDuration(v)
		if err == nil {
			*field(c) = d
		}
		return err == nil
	}
}

func boolean(field func(*AppConfig) *bool) func(*AppConfig, string) bool {
	return func(c *AppConfig, v string) bool {
		b, ok := parseSwitch(v)
		if ok {
			*field(c) = b
		}
		return ok
	}
}

// parseSwitch reads true/1/yes and false/0/no in any case.
func parseSwitch(v string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}

// applyEnvOverrides fills every flag left off the command line from its
// non-empty AGECALC_* variable.
func applyEnvOverrides(cfg *AppConfig, fs *flag.FlagSet) {
	onCommandLine := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { onCommandLine[f.Name] = true })

	for _, b := range envBindings {
		if anySet(b.flags, onCommandLine) {
			continue
		}
		if v := os.Getenv(EnvPrefix + b.key); v != "" {
			b.set(cfg, v)
		}
	}
}

func anySet(names []string, set map[string]bool) bool {
	for _, n := range names {
		if set[n] {
			return true
		}
	}
	return false
}
