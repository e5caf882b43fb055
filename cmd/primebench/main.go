package main

import (
	"context"
	"os"

	"github.com/agbru/primebench/internal/app"
	apperrors "github.com/agbru/primebench/internal/errors"
	"github.com/agbru/primebench/internal/ui"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.HandleRunError(err, os.Stderr, ui.ErrorColors{}))
	}

	exitCode := application.Run(context.Background(), os.Stdout)
	os.Exit(exitCode)
}
