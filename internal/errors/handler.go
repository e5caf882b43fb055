package apperrors

import (
	"errors"
	"fmt"
	"io"
)

// ColorProvider supplies the ANSI sequences used when printing errors.
// It keeps this package independent of the ui package.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

type noColor struct{}

func (noColor) Red() string    { return "" }
func (noColor) Yellow() string { return "" }
func (noColor) Reset() string  { return "" }

// HandleRunError prints err to out and maps it to an exit code.
// A nil colors value prints without ANSI sequences.
func HandleRunError(err error, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = noColor{}
	}

	if IsContextError(err) {
		fmt.Fprintf(out, "%sCampaign canceled: %v%s\n", colors.Yellow(), err, colors.Reset())
		return ExitErrorCanceled
	}

	var cfgErr ConfigError
	var valErr ValidationError
	if errors.As(err, &cfgErr) || errors.As(err, &valErr) {
		fmt.Fprintf(out, "%sConfiguration error: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorConfig
	}

	var runErr RunError
	if errors.As(err, &runErr) {
		fmt.Fprintf(out, "%sError: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorRun
	}

	fmt.Fprintf(out, "%sError: %v%s\n", colors.Red(), err, colors.Reset())
	return ExitErrorGeneric
}
