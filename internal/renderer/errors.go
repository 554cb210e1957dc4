package renderer

import "errors"

// Dispatcher errors.
var (
	// ErrAlreadyRunning indicates Start was called on a running dispatcher.
	ErrAlreadyRunning = errors.New("dispatcher already running")

	// ErrNotRunning indicates the dispatcher has not been started or was stopped.
	ErrNotRunning = errors.New("dispatcher not running")
)
