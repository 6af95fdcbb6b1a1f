package common

import "errors"

// Validation failures are rejected before any network or database call.
var (
	ErrEmptyPost       = errors.New("post cannot be empty")
	ErrLinksNotAllowed = errors.New("links are not allowed for security reasons")
	ErrFileTooLarge    = errors.New("file exceeds the upload size limit")
)

// ErrTimeout marks a load that exceeded its time budget. Callers show a
// "taking longer than usual" message instead of a terminal error.
var ErrTimeout = errors.New("request timed out")

// IsValidationError reports whether err was raised by input validation
// rather than a backend failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyPost) ||
		errors.Is(err, ErrLinksNotAllowed) ||
		errors.Is(err, ErrFileTooLarge)
}
