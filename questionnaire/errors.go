package questionnaire

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("questionnaire: aborted")
	// ErrNoChoice is returned when a driver reports a selection outside the
	// offered options.
	ErrNoChoice = errors.New("questionnaire: selection out of range")
)
