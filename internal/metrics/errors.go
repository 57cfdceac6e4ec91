package metrics

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, comparable with errors.Is.
var (
	// ErrInvalidInput indicates a period record that cannot produce finite metrics.
	ErrInvalidInput = constError("invalid input")

	// ErrCalculationOverflow indicates a derived value that is Inf or NaN.
	ErrCalculationOverflow = constError("calculation overflow")
)

// InvalidInputError reports which field of which period was rejected.
// It unwraps to ErrInvalidInput.
type InvalidInputError struct {
	Period string
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidInputError) Error() string {
	period := e.Period
	if period == "" {
		period = "<unlabeled>"
	}
	return fmt.Sprintf("invalid input: period %q field %s = %g: %s", period, e.Field, e.Value, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidInput).
func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }
