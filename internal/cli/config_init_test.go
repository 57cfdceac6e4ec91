package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rshade/serviceimpact/internal/config"
	"github.com/rshade/serviceimpact/internal/report"
)

func TestConfigInit_CreatesDefaultFile(t *testing.T) {
	path := setupCLITest(t)

	output, err := executeRoot(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, output, "Configuration initialized at "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, config.CurrentSchemaVersion, cfg.SchemaVersion)
	assert.Equal(t, string(report.FormatTable), cfg.Output.DefaultFormat)
	assert.Nil(t, cfg.Periods, "periods are only written with --with-periods")
}

func TestConfigInit_WithPeriods(t *testing.T) {
	path := setupCLITest(t)

	_, err := executeRoot(t, "config", "init", "--with-periods")
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Periods)
	assert.Equal(t, config.DefaultPeriods(), *cfg.Periods)
}

func TestConfigInit_ExistingFileRequiresForce(t *testing.T) {
	path := setupCLITest(t)
	original := "# old config\noutput:\n  default_format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o600))

	_, err := executeRoot(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data), "file must not change without --force")
}

func TestConfigInit_ForceOverwritesConfig(t *testing.T) {
	path := setupCLITest(t)
	original := "# old config\noutput:\n  default_format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o600))

	output, err := executeRoot(t, "config", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, output, "Configuration initialized at")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, original, string(data))
	assert.Contains(t, string(data), "schema_version")
}

func TestConfigInit_ConfigFlagWinsOverEnv(t *testing.T) {
	envPath := setupCLITest(t)
	flagPath := filepath.Join(t.TempDir(), "nested", "custom.yaml")

	_, err := executeRoot(t, "--config", flagPath, "config", "init")
	require.NoError(t, err)

	_, err = os.Stat(flagPath)
	require.NoError(t, err, "config should be written to the --config path")
	_, err = os.Stat(envPath)
	assert.True(t, os.IsNotExist(err), "env path should be untouched")
}
