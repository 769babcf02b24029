package bmi

import "errors"

// Sentinel kinds for validation failures. Messages are shown to the user as-is.
var (
	ErrInvalidWeight     = errors.New("enter a valid weight (positive number)")
	ErrInvalidHeight     = errors.New("enter a valid height (positive number)")
	ErrComputationFailed = errors.New("could not calculate BMI, check the entered values")
	ErrUnknownUnit       = errors.New("unknown unit system; use metric or imperial")
)

// Reason returns a short machine-readable name for a validation error,
// or "unknown" when err is not one of this package's kinds.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidWeight):
		return "invalid_weight"
	case errors.Is(err, ErrInvalidHeight):
		return "invalid_height"
	case errors.Is(err, ErrComputationFailed):
		return "computation_failed"
	case errors.Is(err, ErrUnknownUnit):
		return "unknown_unit"
	default:
		return "unknown"
	}
}

// IsValidation reports whether err is a user input validation failure.
func IsValidation(err error) bool {
	return Reason(err) != "unknown"
}
