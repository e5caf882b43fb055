package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "max")
	Short     string   // short flag without "-" (e.g., "n")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "number", "duration")
	IsFile    bool     // true if the flag takes a file path
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "max", Short: "n", Help: "Upper bound of the scanned range", Values: []string{"100000", "1000000", "10000000"}, ValueName: "number"},
	{Long: "workers", Help: "Comma-separated worker counts", Values: []string{"1,2,4,8", "1,2,4,6,8,12,16"}, ValueName: "list"},
	{Long: "baseline", Help: "Where the main-thread run goes", Values: []string{"first", "last", "off"}, ValueName: "position"},
	{Long: "join", Help: "How runs wait for their workers", Values: []string{"wait", "poll"}, ValueName: "mode"},
	{Long: "poll-interval", Help: "Liveness check period in poll mode", Values: []string{"1ms", "10ms", "50ms"}, ValueName: "duration"},
	{Long: "startup-delay", Help: "Pause before the first run", Values: []string{"0s", "500ms", "1s"}, ValueName: "duration"},
	{Long: "max-workers", Help: "Maximum number of live workers", ValueName: "number"},
	{Long: "gc", Help: "Garbage collector control during runs", Values: []string{"auto", "aggressive", "disabled"}, ValueName: "mode"},
	{Long: "print-primes", Help: "Print the first 1000 primes of each run"},
	{Long: "verbose", Short: "v", Help: "Show per-run statistics"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "tui", Help: "Interactive dashboard"},
	{Long: "log-format", Help: "Diagnostic log format", Values: []string{"console", "json"}, ValueName: "format"},
	{Long: "output", Short: "o", Help: "CSV results file", IsFile: true, ValueName: "file"},
	{Long: "metrics-file", Help: "Prometheus textfile export", IsFile: true, ValueName: "file"},
	{Long: "profile", Help: "YAML campaign profile", IsFile: true, ValueName: "file"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion generates a shell completion script for the specified shell.
func GenerateCompletion(out io.Writer, shell string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out)
	case "zsh":
		return generateZshCompletion(out)
	case "fish":
		return generateFishCompletion(out)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
}

func generateBashCompletion(out io.Writer) error {
	var opts []string
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}

	var cases strings.Builder
	var filePatterns []string
	for _, f := range flagRegistry {
		switch {
		case f.IsFile:
			filePatterns = append(filePatterns, flagPatterns(f)...)
		case len(f.Values) > 0:
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				strings.Join(flagPatterns(f), "|"), strings.Join(f.Values, " "))
		}
	}
	if len(filePatterns) > 0 {
		fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n",
			strings.Join(filePatterns, "|"))
	}

	_, err := fmt.Fprintf(out, `# bash completion for primebench
# Add to ~/.bashrc: eval "$(primebench --completion bash)"

_primebench() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"

    case "${prev}" in
%s    esac

    COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
    return 0
}

complete -F _primebench primebench
`, strings.Join(opts, " "), cases.String())
	return err
}

func flagPatterns(f FlagCompletion) []string {
	var p []string
	if f.Long != "" {
		p = append(p, "--"+f.Long)
	}
	if f.Short != "" {
		p = append(p, "-"+f.Short)
	}
	return p
}

func generateZshCompletion(out io.Writer) error {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	_, err := fmt.Fprintf(out, `#compdef primebench
# zsh completion for primebench

_primebench() {
    _arguments -s \
%s
}

_primebench "$@"
`, strings.Join(args, " \\\n"))
	return err
}

// zshArgEntry renders one _arguments spec. Flags with both forms are
// declared mutually exclusive.
func zshArgEntry(f FlagCompletion) string {
	var action string
	switch {
	case f.IsFile:
		action = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(f.Values) > 0:
		action = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		action = fmt.Sprintf(":%s:", f.ValueName)
	}
	help := strings.ReplaceAll(f.Help, "'", "")
	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, help, action)
	}
	name := "--" + f.Long
	if f.Long == "" {
		name = "-" + f.Short
	}
	return fmt.Sprintf("        '%s[%s]%s'", name, help, action)
}

func generateFishCompletion(out io.Writer) error {
	var b strings.Builder
	b.WriteString("# fish completion for primebench\n\n")
	for _, f := range flagRegistry {
		b.WriteString(fishCompleteLine(f))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(out, b.String())
	return err
}

func fishCompleteLine(f FlagCompletion) string {
	line := "complete -c primebench"
	if f.Short != "" {
		line += " -s " + f.Short
	}
	if f.Long != "" {
		line += " -l " + f.Long
	}
	switch {
	case f.IsFile:
		line += " -r -F"
	case len(f.Values) > 0:
		line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
	case f.ValueName != "":
		line += " -x"
	}
	return line + fmt.Sprintf(" -d '%s'", f.Help)
}
