package palette

import "errors"

// Errors returned by palette operations.
var (
	// ErrUnknownEntry indicates no entry is registered under an identifier.
	ErrUnknownEntry = errors.New("unknown palette entry")

	// ErrInvalidEntry indicates an entry failed validation on registration.
	ErrInvalidEntry = errors.New("invalid palette entry")
)
