package ui

import (
	"fmt"
	"io"
	"os"
)

// Output destinations, replaceable in tests.
var (
	Out    io.Writer = os.Stdout
	ErrOut io.Writer = os.Stderr
)

// Success prints a success message with a checkmark icon
func Success(msg string) {
	fmt.Fprintln(Out, SuccessStyle.Render("✓ "+msg))
}

// Successf prints a formatted success message with a checkmark icon
func Successf(format string, args ...interface{}) {
	Success(fmt.Sprintf(format, args...))
}

// Error prints an error message with an X icon
func Error(msg string) {
	fmt.Fprintln(ErrOut, ErrorStyle.Render("✗ "+msg))
}

// Warning prints a warning message with a warning icon
func Warning(msg string) {
	fmt.Fprintln(ErrOut, WarningStyle.Render("⚠ "+msg))
}

// Info prints an info message with an info icon
func Info(msg string) {
	fmt.Fprintln(Out, InfoStyle.Render("ℹ "+msg))
}

// Print prints a plain message (no styling)
func Print(msg string) {
	fmt.Fprintln(Out, msg)
}

// Printf prints a formatted plain message (no styling)
func Printf(format string, args ...interface{}) {
	fmt.Fprintf(Out, format, args...)
}

// Title prints a large title with background
func Title(title string) {
	fmt.Fprintln(Out, TitleStyle.Render(title))
}

// Dim renders dimmed/muted text
func Dim(text string) string {
	return DimStyle.Render(text)
}

// Bold renders bold text
func Bold(text string) string {
	return BoldStyle.Render(text)
}

// Highlight renders highlighted text (primary color, bold)
func Highlight(text string) string {
	return HighlightStyle.Render(text)
}

// Muted renders muted text
func Muted(text string) string {
	return MutedStyle.Render(text)
}
