package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoActions is returned when a session is started without any action
	// to offer.
	ErrNoActions = errors.New("tui: no actions configured")
)
