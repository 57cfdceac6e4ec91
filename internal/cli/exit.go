package cli

import (
	"errors"

	"github.com/rshade/serviceimpact/internal/metrics"
)

// Process exit codes.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitInvalidInput = 2
)

// ExitCode maps a command error to a process exit code. Invalid period
// input exits with ExitInvalidInput so scripts can tell bad data apart from
// other failures.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var inputErr *metrics.InvalidInputError
	if errors.As(err, &inputErr) || errors.Is(err, metrics.ErrInvalidInput) {
		return ExitInvalidInput
	}
	return ExitFailure
}
