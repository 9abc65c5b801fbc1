package prediction

import "errors"

// Validation and locking outcomes. Anything else returned by the services is a storage failure.
var (
	ErrInvalidScore        = errors.New("score must be a non-negative whole number")
	ErrPenaltiesRequired   = errors.New("a knockout draw needs a penalty score")
	ErrPenaltiesMustDiffer = errors.New("a penalty shootout must have a winner")
	ErrLocked              = errors.New("predictions for this match are locked")
	ErrNotFound            = errors.New("match not found")
)

// IsValidation reports whether err was caused by the submitted scores themselves
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidScore) ||
		errors.Is(err, ErrPenaltiesRequired) ||
		errors.Is(err, ErrPenaltiesMustDiffer)
}
