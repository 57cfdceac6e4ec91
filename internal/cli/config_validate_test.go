package cli_test

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/serviceimpact/internal/cli"
	"github.com/rshade/serviceimpact/internal/config"
	"github.com/rshade/serviceimpact/internal/metrics"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantErr   error
		wantInput bool
	}{
		{
			name:    "missing file uses defaults",
			content: "",
		},
		{
			name:    "valid file",
			content: "schema_version: 1.2.0\noutput:\n  default_format: markdown\n",
		},
		{
			name:    "unsupported schema",
			content: "schema_version: 2.0.0\n",
			wantErr: config.ErrUnsupportedSchema,
		},
		{
			name:    "unknown format",
			content: "output:\n  default_format: xml\n",
			wantErr: config.ErrInvalidFormat,
		},
		{
			name: "invalid period",
			content: `periods:
  before: {label: Before, distance_km: 0, oil_added_liters: 2.3, days_monitored: 22}
  after: {label: After, distance_km: 2013, oil_added_liters: 2.75, days_monitored: 45}
`,
			wantErr:   metrics.ErrInvalidInput,
			wantInput: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := setupCLITest(t)
			if tt.content != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))
			}

			output, err := executeRoot(t, "config", "validate")
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Contains(t, output, "Configuration is valid")
				return
			}

			require.Error(t, err)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantInput {
				var inputErr *metrics.InvalidInputError
				require.True(t, errors.As(err, &inputErr))
				assert.Equal(t, metrics.FieldDistanceKm, inputErr.Field)
				assert.Equal(t, cli.ExitInvalidInput, cli.ExitCode(err))
			}
		})
	}
}

func TestConfigShow_PrintsEffectiveConfig(t *testing.T) {
	path := setupCLITest(t)
	require.NoError(t, os.WriteFile(path, []byte("output:\n  default_format: json\n  width: 90\n"), 0o600))
	t.Setenv("SERVICEIMPACT_OUTPUT", "ndjson")

	output, err := executeRoot(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, output, "default_format: ndjson", "env overrides the file")
	assert.Contains(t, output, "width: 90")
	assert.Contains(t, output, "schema_version: 1.0.0")
}

func TestConfig_MalformedFileFailsEveryCommand(t *testing.T) {
	path := setupCLITest(t)
	require.NoError(t, os.WriteFile(path, []byte("output: [unclosed\n"), 0o600))

	_, err := executeRoot(t, "report")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading configuration")
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))
}
