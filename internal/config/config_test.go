package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/primebench/internal/errors"
)

func parse(t *testing.T, args ...string) (AppConfig, error) {
	t.Helper()
	return ParseConfig("primebench", args, io.Discard)
}

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parse(t)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxNumber != DefaultMaxNumber {
		t.Errorf("MaxNumber = %d", cfg.MaxNumber)
	}
	if !slices.Equal(cfg.WorkerCounts, []int{1, 2, 4, 6, 8, 12, 16}) {
		t.Errorf("WorkerCounts = %v", cfg.WorkerCounts)
	}
	if cfg.Baseline != "first" || cfg.JoinMode != "wait" || cfg.GCMode != "disabled" {
		t.Errorf("unexpected modes: %+v", cfg)
	}
	if cfg.StartupDelay != 500*time.Millisecond || cfg.PollInterval != 10*time.Millisecond {
		t.Errorf("unexpected durations: %v %v", cfg.StartupDelay, cfg.PollInterval)
	}
	if cfg.MaxWorkers != DefaultMaxWorkers {
		t.Errorf("MaxWorkers = %d", cfg.MaxWorkers)
	}
}

func TestParseConfig_DefaultsNotShared(t *testing.T) {
	cfg := Defaults()
	cfg.WorkerCounts[0] = 99
	if DefaultWorkerCounts[0] != 1 {
		t.Fatal("Defaults must copy the worker list")
	}
}

func TestParseConfig_Flags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(AppConfig) bool
	}{
		{"max long", []string{"--max", "100"}, func(c AppConfig) bool { return c.MaxNumber == 100 }},
		{"max short", []string{"-n", "250"}, func(c AppConfig) bool { return c.MaxNumber == 250 }},
		{"max at limit", []string{"-n", "1000000000000"}, func(c AppConfig) bool { return c.MaxNumber == MaxNumberLimit }},
		{"workers", []string{"--workers", "1, 3,5"}, func(c AppConfig) bool { return slices.Equal(c.WorkerCounts, []int{1, 3, 5}) }},
		{"baseline", []string{"--baseline", "last"}, func(c AppConfig) bool { return c.Baseline == "last" }},
		{"join", []string{"--join", "poll", "--poll-interval", "2ms"}, func(c AppConfig) bool {
			return c.JoinMode == "poll" && c.PollInterval == 2*time.Millisecond
		}},
		{"startup delay", []string{"--startup-delay", "0s"}, func(c AppConfig) bool { return c.StartupDelay == 0 }},
		{"gc", []string{"--gc", "auto"}, func(c AppConfig) bool { return c.GCMode == "auto" }},
		{"print primes", []string{"--print-primes"}, func(c AppConfig) bool { return c.PrintPrimes }},
		{"quiet", []string{"-q"}, func(c AppConfig) bool { return c.Quiet }},
		{"verbose", []string{"-v"}, func(c AppConfig) bool { return c.Verbose }},
		{"output", []string{"-o", "out.csv"}, func(c AppConfig) bool { return c.OutputFile == "out.csv" }},
		{"log format", []string{"--log-format", "json"}, func(c AppConfig) bool { return c.LogFormat == "json" }},
		{"metrics", []string{"--metrics-file", "m.prom"}, func(c AppConfig) bool { return c.MetricsFile == "m.prom" }},
		{"tui", []string{"--tui", "--no-color"}, func(c AppConfig) bool { return c.TUI && c.NoColor }},
		{"completion", []string{"--completion", "zsh"}, func(c AppConfig) bool { return c.Completion == "zsh" }},
		{"version", []string{"-V"}, func(c AppConfig) bool { return c.ShowVersion }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parse(t, tt.args...)
			if err != nil {
				t.Fatalf("ParseConfig(%v): %v", tt.args, err)
			}
			if !tt.check(cfg) {
				t.Errorf("ParseConfig(%v) = %+v", tt.args, cfg)
			}
		})
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"zero max", []string{"-n", "0"}, "max_number"},
		{"max above limit", []string{"-n", "1000000000001"}, "max_number"},
		{"max int", []string{"--max", "9223372036854775807"}, "max_number"},
		{"zero worker", []string{"--workers", "1,0"}, "workers[1]"},
		{"bad worker", []string{"--workers", "1,x"}, "invalid worker count"},
		{"bad baseline", []string{"--baseline", "middle"}, "baseline"},
		{"bad join", []string{"--join", "spin"}, "join"},
		{"bad gc", []string{"--gc", "never"}, "gc"},
		{"bad log format", []string{"--log-format", "xml"}, "log_format"},
		{"zero poll", []string{"--poll-interval", "0s"}, "poll_interval"},
		{"over max workers", []string{"--workers", "8", "--max-workers", "4"}, "exceeds max-workers"},
		{"bad completion", []string{"--completion", "tcsh"}, "completion"},
		{"quiet verbose", []string{"-q", "-v"}, "mutually exclusive"},
		{"unknown flag", []string{"--algo", "fast"}, "flag provided but not defined"},
		{"positional", []string{"extra"}, "unexpected arguments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			var ce apperrors.ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	var buf strings.Builder
	_, err := ParseConfig("primebench", []string{"-h"}, &buf)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(buf.String(), "Usage: primebench") {
		t.Errorf("usage not printed: %q", buf.String())
	}
}

func TestParseConfig_AutoWorkers(t *testing.T) {
	cfg, err := parse(t, "--workers", "auto")
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.WorkerCounts) == 0 || cfg.WorkerCounts[0] != 1 {
		t.Errorf("WorkerCounts = %v", cfg.WorkerCounts)
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PRIMEBENCH_MAX_NUMBER", "5000")
	t.Setenv("PRIMEBENCH_WORKERS", "2,4")
	t.Setenv("PRIMEBENCH_BASELINE", "OFF")
	t.Setenv("PRIMEBENCH_STARTUP_DELAY", "1ms")
	t.Setenv("PRIMEBENCH_PRINT_PRIMES", "yes")
	t.Setenv("PRIMEBENCH_MAX_WORKERS", "not-a-number")

	cfg, err := parse(t)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxNumber != 5000 || !slices.Equal(cfg.WorkerCounts, []int{2, 4}) {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.Baseline != "off" || cfg.StartupDelay != time.Millisecond || !cfg.PrintPrimes {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.MaxWorkers != DefaultMaxWorkers {
		t.Errorf("invalid env value should be ignored, MaxWorkers = %d", cfg.MaxWorkers)
	}
}

func TestParseConfig_FlagsBeatEnv(t *testing.T) {
	t.Setenv("PRIMEBENCH_MAX_NUMBER", "5000")
	t.Setenv("PRIMEBENCH_QUIET", "true")

	cfg, err := parse(t, "-n", "42", "--quiet=false")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxNumber != 42 || cfg.Quiet {
		t.Errorf("flags should win over env: %+v", cfg)
	}
}

func TestParseConfig_Profile(t *testing.T) {
	path := writeProfile(t, `
max_number: 777
workers: [3, 1]
baseline: last
poll_interval: 3ms
verbose: true
`)
	t.Setenv("PRIMEBENCH_BASELINE", "off")

	cfg, err := parse(t, "--profile", path, "-n", "900")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxNumber != 900 {
		t.Errorf("flag should beat profile, MaxNumber = %d", cfg.MaxNumber)
	}
	if cfg.Baseline != "off" {
		t.Errorf("env should beat profile, Baseline = %q", cfg.Baseline)
	}
	if !slices.Equal(cfg.WorkerCounts, []int{3, 1}) || cfg.PollInterval != 3*time.Millisecond || !cfg.Verbose {
		t.Errorf("profile not applied: %+v", cfg)
	}
	if cfg.GCMode != "disabled" {
		t.Errorf("keys absent from the profile keep their default, GCMode = %q", cfg.GCMode)
	}
	if cfg.Profile != path {
		t.Errorf("Profile = %q", cfg.Profile)
	}
}

func TestParseConfig_ProfileFromEnv(t *testing.T) {
	t.Setenv("PRIMEBENCH_PROFILE", writeProfile(t, "max_number: 31\n"))
	cfg, err := parse(t)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxNumber != 31 {
		t.Errorf("MaxNumber = %d", cfg.MaxNumber)
	}
}

func TestLoadProfile_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(t.TempDir(), "nope.yaml")},
		{"unknown key", writeProfile(t, "threads: 4\n")},
		{"bad duration", writeProfile(t, "poll_interval: 5\n")},
		{"bad type", writeProfile(t, "workers: many\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			err := LoadProfile(tt.path, &cfg)
			var ce apperrors.ConfigError
			if !errors.As(err, &ce) {
				t.Errorf("expected ConfigError, got %v", err)
			}
		})
	}
}

func TestLoadProfile_Empty(t *testing.T) {
	cfg := Defaults()
	if err := LoadProfile(writeProfile(t, ""), &cfg); err != nil {
		t.Fatalf("empty profile: %v", err)
	}
	if cfg.MaxNumber != DefaultMaxNumber {
		t.Errorf("MaxNumber = %d", cfg.MaxNumber)
	}
}

func TestParseWorkerList(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"1,2,4", []int{1, 2, 4}, false},
		{" 8 ", []int{8}, false},
		{"1,,2,", []int{1, 2}, false},
		{"", []int{}, false},
		{"AUTO", []int{}, false},
		{"1,two", nil, true},
	}
	for _, tt := range tests {
		got, err := ParseWorkerList(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseWorkerList(%q) err = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && !slices.Equal(got, tt.want) {
			t.Errorf("ParseWorkerList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIntListString(t *testing.T) {
	t.Parallel()
	list := []int{1, 6, 12}
	if got := (intList{&list}).String(); got != "1,6,12" {
		t.Errorf("String() = %q", got)
	}
	if got := (intList{}).String(); got != "" {
		t.Errorf("zero String() = %q", got)
	}
}

func TestAdaptiveWorkerCounts(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cpus, limit int
		want        []int
	}{
		{1, 0, []int{1}},
		{0, 0, []int{1}},
		{4, 0, []int{1, 2, 4}},
		{6, 0, []int{1, 2, 4, 6}},
		{16, 0, []int{1, 2, 4, 8, 16}},
		{24, 10, []int{1, 2, 4, 8, 10}},
	}
	for _, tt := range tests {
		if got := AdaptiveWorkerCounts(tt.cpus, tt.limit); !slices.Equal(got, tt.want) {
			t.Errorf("AdaptiveWorkerCounts(%d, %d) = %v, want %v", tt.cpus, tt.limit, got, tt.want)
		}
	}
}

func TestApplyAdaptiveWorkerCounts_KeepsExplicitList(t *testing.T) {
	t.Parallel()
	cfg := Defaults()
	cfg.WorkerCounts = []int{3}
	if got := ApplyAdaptiveWorkerCounts(cfg).WorkerCounts; !slices.Equal(got, []int{3}) {
		t.Errorf("WorkerCounts = %v", got)
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]bool{"true": true, "1": true, "YES": true, "false": false, "0": false, "no": false} {
		if got := parseBoolEnv(in, !want); got != want {
			t.Errorf("parseBoolEnv(%q) = %v", in, got)
		}
	}
	if !parseBoolEnv("maybe", true) {
		t.Error("unrecognized value should return the default")
	}
}
