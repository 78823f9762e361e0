package logger

import "github.com/fatih/color"

// colorScheme defines consistent colors for status tokens.
// Green: passing cases
// Red: failing cases and orchestration errors
// Yellow: warnings and skip counts
// Cyan: case identifiers
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	label   *color.Color
}

// newColorScheme creates the standard color scheme. When enabled is false
// every color renders as plain text, for pipes and NO_COLOR environments.
func newColorScheme(enabled bool) *colorScheme {
	s := &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
	}
	if !enabled {
		s.success.DisableColor()
		s.fail.DisableColor()
		s.warn.DisableColor()
		s.label.DisableColor()
	}
	return s
}
