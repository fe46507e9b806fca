package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned when the form is still invalid after
	// the configured number of validation passes.
	ErrTooManyAttempts = errors.New("tui: too many invalid attempts")
)
