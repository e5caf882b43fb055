// Package config parses and validates the benchmark configuration.
//
// Sources, highest priority first: command-line flags, PRIMEBENCH_*
// environment variables, the YAML profile named by --profile, defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/agbru/primebench/internal/errors"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "PRIMEBENCH_"

// Defaults.
const (
	DefaultMaxNumber    = 10_000_000
	DefaultStartupDelay = 500 * time.Millisecond
	DefaultPollInterval = 10 * time.Millisecond
	DefaultMaxWorkers   = 256
	// MaxNumberLimit caps --max well below the point where range bounds
	// (max+1) would overflow an int.
	MaxNumberLimit = 1_000_000_000_000
)

// DefaultWorkerCounts is the campaign run when --workers is not given.
var DefaultWorkerCounts = []int{1, 2, 4, 6, 8, 12, 16}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// MaxNumber is the inclusive upper bound of the scanned range [1, MaxNumber].
	MaxNumber int `yaml:"max_number" validate:"gte=1,lte=1000000000000"`
	// WorkerCounts lists the worker count of each run, in order. Empty means
	// adaptive counts derived from the machine.
	WorkerCounts []int `yaml:"workers" validate:"dive,gte=1"`
	// Baseline places the main-thread run: first, last or off.
	Baseline string `yaml:"baseline" validate:"oneof=first last off"`
	// JoinMode selects how a run waits for its workers: wait or poll.
	JoinMode string `yaml:"join" validate:"oneof=wait poll"`
	// PollInterval is the liveness check period of the poll join.
	PollInterval time.Duration `yaml:"poll_interval" validate:"gt=0"`
	// StartupDelay is the pause before the message exchange and the first run.
	StartupDelay time.Duration `yaml:"startup_delay" validate:"gte=0"`
	// MaxWorkers caps the number of live workers.
	MaxWorkers int `yaml:"max_workers" validate:"gte=1"`
	// GCMode controls the garbage collector during runs.
	GCMode string `yaml:"gc" validate:"oneof=auto aggressive disabled"`
	// PrintPrimes dumps the first 1000 primes after each run.
	PrintPrimes bool `yaml:"print_primes"`
	// Verbose adds per-run statistics.
	Verbose bool `yaml:"verbose"`
	// Quiet keeps only the per-run result lines.
	Quiet bool `yaml:"quiet"`
	// NoColor disables ANSI colors.
	NoColor bool `yaml:"no_color"`
	// TUI runs the interactive dashboard instead of line output.
	TUI bool `yaml:"tui"`
	// LogFormat selects diagnostic log lines on stderr: console or json.
	LogFormat string `yaml:"log_format" validate:"oneof=console json"`
	// OutputFile receives a CSV of every run.
	OutputFile string `yaml:"output"`
	// MetricsFile receives the Prometheus series in text format.
	MetricsFile string `yaml:"metrics_file"`

	// Profile is the YAML file the configuration was layered on.
	Profile string `yaml:"-"`
	// Completion asks for a shell completion script instead of a campaign.
	Completion string `yaml:"-" validate:"omitempty,oneof=bash zsh fish"`
	// ShowVersion asks for the version instead of a campaign.
	ShowVersion bool `yaml:"-"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() AppConfig {
	return AppConfig{
		MaxNumber:    DefaultMaxNumber,
		WorkerCounts: append([]int(nil), DefaultWorkerCounts...),
		Baseline:     "first",
		JoinMode:     "wait",
		PollInterval: DefaultPollInterval,
		StartupDelay: DefaultStartupDelay,
		MaxWorkers:   DefaultMaxWorkers,
		GCMode:       "disabled",
		LogFormat:    "console",
	}
}

// intList is a flag.Value holding a comma-separated list of integers.
// "auto" clears the list.
type intList struct{ values *[]int }

func (l intList) String() string {
	if l.values == nil {
		return ""
	}
	parts := make([]string, len(*l.values))
	for i, v := range *l.values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (l intList) Set(s string) error {
	list, err := ParseWorkerList(s)
	if err != nil {
		return err
	}
	*l.values = list
	return nil
}

// ParseWorkerList parses "1,2,4". Blank entries are skipped; "auto" and the
// empty string yield an empty list.
func ParseWorkerList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "auto") {
		return []int{}, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid worker count %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

// newFlagSet binds every flag to cfg, using its current values as defaults.
func newFlagSet(programName string, cfg *AppConfig, errWriter io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\nBenchmarks a parallel prime search over [1, max] for each worker count.\n\nOptions:\n", programName)
		fs.PrintDefaults()
	}

	fs.IntVar(&cfg.MaxNumber, "max", cfg.MaxNumber, "Upper bound of the scanned range [1, max].")
	fs.IntVar(&cfg.MaxNumber, "n", cfg.MaxNumber, "Upper bound (shorthand).")
	fs.Var(intList{&cfg.WorkerCounts}, "workers", "Comma-separated worker counts, one run each (\"auto\" derives them from the CPU count).")
	fs.StringVar(&cfg.Baseline, "baseline", cfg.Baseline, "Main-thread run position: first, last or off.")
	fs.StringVar(&cfg.JoinMode, "join", cfg.JoinMode, "How runs wait for workers: wait or poll.")
	fs.DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "Liveness check period in poll mode.")
	fs.DurationVar(&cfg.StartupDelay, "startup-delay", cfg.StartupDelay, "Pause before the first run.")
	fs.IntVar(&cfg.MaxWorkers, "max-workers", cfg.MaxWorkers, "Maximum number of live workers.")
	fs.StringVar(&cfg.GCMode, "gc", cfg.GCMode, "Garbage collector control during runs: auto, aggressive or disabled.")
	fs.BoolVar(&cfg.PrintPrimes, "print-primes", cfg.PrintPrimes, "Print the first 1000 primes of each run.")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Show per-run statistics.")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Show per-run statistics (shorthand).")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "Print only the result lines.")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "Quiet mode (shorthand).")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output.")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "Show the interactive dashboard.")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Diagnostic log format on stderr: console or json.")
	fs.StringVar(&cfg.OutputFile, "output", cfg.OutputFile, "Write every run to this CSV file.")
	fs.StringVar(&cfg.OutputFile, "o", cfg.OutputFile, "CSV results file (shorthand).")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "Write Prometheus metrics to this file.")
	fs.StringVar(&cfg.Profile, "profile", cfg.Profile, "YAML campaign profile.")
	fs.StringVar(&cfg.Completion, "completion", cfg.Completion, "Print a completion script for bash, zsh or fish.")
	fs.BoolVar(&cfg.ShowVersion, "version", cfg.ShowVersion, "Print the version.")
	fs.BoolVar(&cfg.ShowVersion, "V", cfg.ShowVersion, "Print the version (shorthand).")
	return fs
}

// ParseConfig builds the configuration from args (without the program name),
// the environment and the optional profile. Parse errors and invalid values
// are returned as apperrors.ConfigError; -h returns flag.ErrHelp.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := Defaults()
	fs := newFlagSet(programName, &cfg, errWriter)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	profile := cfg.Profile
	if profile == "" && !isFlagSet(fs, "profile") {
		profile = getEnvString("PROFILE", "")
	}
	if profile != "" {
		// Parse again on top of the profile so that flags keep priority.
		cfg = Defaults()
		if err := LoadProfile(profile, &cfg); err != nil {
			return AppConfig{}, err
		}
		fs = newFlagSet(programName, &cfg, io.Discard)
		if err := fs.Parse(args); err != nil {
			return AppConfig{}, apperrors.NewConfigError("%v", err)
		}
		cfg.Profile = profile
	}

	applyEnvOverrides(&cfg, fs)
	cfg = ApplyAdaptiveWorkerCounts(cfg)

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their profile names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" || name == "" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

// Validate checks the configuration. It returns an apperrors.ConfigError
// naming the first offending field.
func (c AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return apperrors.NewConfigError("invalid %s %v: must satisfy %s", fe.Field(), fe.Value(), constraint(fe))
		}
		return apperrors.NewConfigError("invalid configuration: %v", err)
	}
	for i, n := range c.WorkerCounts {
		if n > c.MaxWorkers {
			return apperrors.NewConfigError("invalid workers[%d] %d: exceeds max-workers %d", i, n, c.MaxWorkers)
		}
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose are mutually exclusive")
	}
	return nil
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + " " + fe.Param()
}
