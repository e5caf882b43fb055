package ui

// Color accessors read the active theme, so they honor --no-color and NO_COLOR.

// ColorReset clears all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed is used for failures.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen is used for successful outcomes.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow is used for warnings and timings.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue is the primary accent.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta is used for informational values.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan is used for secondary values such as counts.
func ColorCyan() string { return GetCurrentTheme().Secondary }

func ColorBold() string { return GetCurrentTheme().Bold }

func ColorUnderline() string { return GetCurrentTheme().Underline }

// ErrorColors adapts the active theme to apperrors.ColorProvider.
type ErrorColors struct{}

func (ErrorColors) Red() string    { return ColorRed() }
func (ErrorColors) Yellow() string { return ColorYellow() }
func (ErrorColors) Reset() string  { return ColorReset() }
