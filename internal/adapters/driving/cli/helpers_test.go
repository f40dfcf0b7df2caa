package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// runCLI executes the root command with args and captures stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	configPath, statePath, verbose = "", "", false
	checkpointsLimit = 20
	t.Cleanup(func() {
		configPath, statePath, verbose = "", "", false
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// fixClock pins the CLI clock for the duration of the test.
func fixClock(t *testing.T, at time.Time) {
	t.Helper()
	original := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = original })
}

// writeJSON writes v as JSON into a temp file and returns its path.
func writeJSON(t *testing.T, name string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

// ratesServer answers /{date}?base=X with a fixed rate table, or with the
// status in failOn for the listed dates.
func ratesServer(t *testing.T, failOn map[string]int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		date := strings.TrimPrefix(r.URL.Path, "/")
		if status, ok := failOn[date]; ok {
			w.WriteHeader(status)
			_, _ = fmt.Fprintf(w, `{"error":"no data for %s"}`, date)
			return
		}
		base := r.URL.Query().Get("base")
		_, _ = fmt.Fprintf(w, `{"base":%q,"date":%q,"rates":{"EUR":0.9,"GBP":0.8}}`, base, date)
	}))
	t.Cleanup(server.Close)
	return server
}

// messages decodes JSON lines.
func messages(t *testing.T, out string) []map[string]any {
	t.Helper()
	var msgs []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		var msg map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &msg), line)
		msgs = append(msgs, msg)
	}
	return msgs
}
