package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion is one agecalc flag as the completion generators see it.
// Every generator reads flagRegistry, so a new flag only needs an entry there.
type FlagCompletion struct {
	Long       string   // long flag name without "--" (e.g., "input")
	Short      string   // short flag without "-" (e.g., "i")
	Help       string   // description text
	Values     []string // suggested completion values (nil = boolean/no suggestions)
	ValueName  string   // label for the value (e.g., "duration"); empty for booleans
	IsFile     bool     // true if the flag takes a file path
	IsStrategy bool     // true if values come from the strategy registry
}

// flagRegistry is the list of agecalc flags offered by completion scripts.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show usage and exit"},
	{Long: "version", Help: "Print the agecalc version"},
	{Long: "strategy", Help: "Batch strategy to run", IsStrategy: true, ValueName: "strategy"},
	{Long: "input", Short: "i", Help: "YAML or JSON roster file", IsFile: true, ValueName: "file"},
	{Long: "delay", Help: "Simulated latency of each lookup", Values: []string{"0s", "100ms", "500ms", "1s"}, ValueName: "duration"},
	{Long: "timeout", Help: "Maximum run time", Values: []string{"5s", "30s", "1m", "5m"}, ValueName: "duration"},
	{Long: "now", Help: "Reference date (YYYY-MM-DD)", ValueName: "date"},
	{Long: "max-concurrency", Help: "Maximum lookups in flight per strategy", Values: []string{"0", "1", "2", "4", "8"}, ValueName: "number"},
	{Long: "rate", Help: "Maximum lookup starts per second", Values: []string{"0", "5", "10", "50"}, ValueName: "rate"},
	{Long: "output", Short: "o", Help: "Write results to a JSON or YAML file", IsFile: true, ValueName: "file"},
	{Long: "metrics-file", Help: "Write Prometheus metrics to a file", IsFile: true, ValueName: "file"},
	{Long: "quiet", Short: "q", Help: "Print only name and age lines"},
	{Long: "verbose", Short: "v", Help: "Show the winning strategy and memory statistics"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error", "disabled"}, ValueName: "level"},
	{Long: "completion", Help: "Print a shell completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// CompletionShells lists the values accepted by GenerateCompletion.
var CompletionShells = []string{"bash", "zsh", "fish", "powershell", "ps"}

// GenerateCompletion writes the completion script for shell to out, offering
// strategies as values of --strategy. Shells outside CompletionShells are
// rejected.
func GenerateCompletion(out io.Writer, shell string, strategies []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(strategies)
	case "zsh":
		script = zshCompletion(strategies)
	case "fish":
		script = fishCompletion(strategies)
	case "powershell", "ps":
		script = powerShellCompletion(strategies)
	default:
		return fmt.Errorf("no completion for shell %q (want bash, zsh, fish or powershell)", shell)
	}
	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

// strategyChoices returns the strategy names plus "all".
func strategyChoices(strategies []string) []string {
	return append(append([]string{}, strategies...), "all")
}

func bashCompletion(strategies []string) string {
	var opts []string
	var cases strings.Builder
	var filePatterns []string
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}

		patterns := "--" + f.Long
		if f.Short != "" {
			patterns += "|-" + f.Short
		}
		switch {
		case f.IsFile:
			filePatterns = append(filePatterns, patterns)
		case f.IsStrategy:
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -W \"${strategies}\" -- \"${cur}\") )\n            return 0\n            ;;\n", patterns)
		case len(f.Values) > 0:
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n", patterns, strings.Join(f.Values, " "))
		}
	}
	if len(filePatterns) > 0 {
		fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n", strings.Join(filePatterns, "|"))
	}

	return fmt.Sprintf(`# Bash completion script for agecalc
# Add this to your ~/.bashrc or ~/.bash_completion

_agecalc_completions() {
    local cur prev opts strategies
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    strategies="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _agecalc_completions agecalc
`, strings.Join(opts, " "), strings.Join(strategyChoices(strategies), " "), cases.String())
}

func zshCompletion(strategies []string) string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	return fmt.Sprintf(`#compdef agecalc

# Zsh completion script for agecalc
# Add this to your ~/.zshrc or place in $fpath

_agecalc() {
    local -a strategies
    strategies=(%s)

    _arguments -s \
%s
}

_agecalc "$@"
`, strings.Join(strategyChoices(strategies), " "), strings.Join(args, " \\\n"))
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsStrategy:
		valueSuffix = fmt.Sprintf(":%s:($strategies)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

func fishCompletion(strategies []string) string {
	lines := []string{
		"# Fish completion script for agecalc",
		"# Add this to ~/.config/fish/completions/agecalc.fish",
		"",
		"complete -c agecalc -f",
	}
	choices := strings.Join(strategyChoices(strategies), " ")
	for _, f := range flagRegistry {
		parts := []string{"complete -c agecalc"}
		if f.Short != "" {
			parts = append(parts, "-s "+f.Short)
		}
		parts = append(parts, "-l "+f.Long, fmt.Sprintf("-d '%s'", f.Help))
		switch {
		case f.IsFile:
			parts = append(parts, "-rF")
		case f.IsStrategy:
			parts = append(parts, fmt.Sprintf("-xa '%s'", choices))
		case len(f.Values) > 0:
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
		case f.ValueName != "":
			parts = append(parts, "-x")
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n") + "\n"
}

func powerShellCompletion(strategies []string) string {
	var options []string
	var switches []string
	for _, f := range flagRegistry {
		if f.Short != "" {
			options = append(options, fmt.Sprintf("        @{Name = '-%s'; Description = '%s' }", f.Short, f.Help))
		}
		options = append(options, fmt.Sprintf("        @{Name = '--%s'; Description = '%s' }", f.Long, f.Help))

		values := f.Values
		if f.IsStrategy {
			values = strategyChoices(strategies)
		}
		if len(values) == 0 || f.IsFile {
			continue
		}
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = fmt.Sprintf("'%s'", v)
		}
		switches = append(switches, fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quoted, ", ")))
	}

	return fmt.Sprintf(`# PowerShell completion script for agecalc
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName 'agecalc' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, strings.Join(options, "\n"), strings.Join(switches, "\n"))
}
