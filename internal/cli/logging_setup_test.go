package cli_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readLogEntries parses the JSON lines written to a log file.
func readLogEntries(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []map[string]any
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func findEntry(entries []map[string]any, msg string) map[string]any {
	for _, e := range entries {
		if e["message"] == msg {
			return e
		}
	}
	return nil
}

func TestLogging_FileLogFinishedOnSuccessAndFailure(t *testing.T) {
	tests := []struct {
		name    string
		args    func(dir string) []string
		wantErr bool
	}{
		{
			name:    "successful command",
			args:    func(string) []string { return []string{"report", "--output", "ndjson"} },
			wantErr: false,
		},
		{
			name: "failing command",
			args: func(dir string) []string {
				input := filepath.Join(dir, "periods.yaml")
				content := "before: {label: B, distance_km: 0, oil_added_liters: 1, days_monitored: 1}\n" +
					"after: {label: A, distance_km: 1, oil_added_liters: 1, days_monitored: 1}\n"
				require.NoError(t, os.WriteFile(input, []byte(content), 0o600))
				return []string{"report", "--input", input}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := setupCLITest(t)
			t.Setenv("SERVICEIMPACT_LOG_LEVEL", "debug")

			dir := t.TempDir()
			logPath := filepath.Join(dir, "serviceimpact.log")
			cfg := fmt.Sprintf("logging:\n  level: debug\n  file: %s\n", logPath)
			require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0o600))

			output, err := executeRoot(t, tt.args(dir)...)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, output, "Logging to "+logPath)

			entries := readLogEntries(t, logPath)
			require.NotNil(t, findEntry(entries, "command started"))

			finished := findEntry(entries, "command finished")
			require.NotNil(t, finished, "command finished must be logged even when the command fails")
			assert.Equal(t, "report", finished["command"])
			if tt.wantErr {
				assert.Contains(t, finished["error"], "invalid input")
			} else {
				assert.NotContains(t, finished, "error")
			}
		})
	}
}
