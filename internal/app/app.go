package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/primebench/internal/cli"
	"github.com/agbru/primebench/internal/config"
	apperrors "github.com/agbru/primebench/internal/errors"
	"github.com/agbru/primebench/internal/logging"
	"github.com/agbru/primebench/internal/ui"
)

// Application represents the primebench application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer

	logger         logging.Logger
	tracerProvider trace.TracerProvider
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger replaces the stderr console logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.logger = l }
}

// WithTracerProvider sets the provider of campaign and run spans. The global
// otel provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) AppOption {
	return func(a *Application) { a.tracerProvider = tp }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "primebench"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.logger == nil {
		level := zerolog.WarnLevel
		if cfg.Verbose {
			level = zerolog.InfoLevel
		}
		if cfg.LogFormat == "json" {
			app.logger = logging.NewLogger(errWriter, "primebench", level)
		} else {
			app.logger = logging.NewConsoleLogger(errWriter, "primebench", level)
		}
	}
	return app, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	ui.InitTheme(a.Config.NoColor)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if err := a.startup(ctx); err != nil {
		return apperrors.HandleRunError(err, a.ErrWriter, ui.ErrorColors{})
	}

	if a.Config.TUI {
		return a.runTUI(ctx, out)
	}
	return a.runCLI(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
