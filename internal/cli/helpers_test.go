package cli_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rshade/serviceimpact/internal/cli"
)

// setupCLITest isolates config and logging from the developer's environment
// and returns a config path inside a temp dir.
func setupCLITest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("SERVICEIMPACT_CONFIG", path)
	t.Setenv("SERVICEIMPACT_LOG_LEVEL", "error")
	t.Setenv("SERVICEIMPACT_LOG_FORMAT", "")
	t.Setenv("SERVICEIMPACT_OUTPUT", "")
	return path
}

// executeRoot runs the root command with args and returns combined output.
func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
