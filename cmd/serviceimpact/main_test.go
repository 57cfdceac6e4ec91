package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/serviceimpact/internal/cli"
	"github.com/rshade/serviceimpact/internal/metrics"
	"github.com/rshade/serviceimpact/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		assert.NotNil(t, root)
		assert.Equal(t, "serviceimpact", root.Use)
	})
}

func TestExtractExitCode(t *testing.T) {
	inputErr := &metrics.InvalidInputError{
		Period: "Pre-Service (Oct)",
		Field:  metrics.FieldDistanceKm,
		Value:  0,
		Reason: "must be greater than zero",
	}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error returns 0", err: nil, want: 0},
		{name: "invalid input exits 2", err: inputErr, want: 2},
		{name: "wrapped invalid input exits 2", err: fmt.Errorf("before: %w", inputErr), want: 2},
		{name: "joined invalid input exits 2", err: errors.Join(errors.New("outer"), inputErr), want: 2},
		{name: "sentinel invalid input exits 2", err: metrics.ErrInvalidInput, want: 2},
		{name: "overflow exits 1", err: metrics.ErrCalculationOverflow, want: 1},
		{name: "generic error exits 1", err: errors.New("generic error"), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractExitCode(tt.err))
		})
	}
}
