package cli_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/findash/internal/cli"
	"github.com/rshade/findash/internal/config"
)

const aaplMonthly = `[
  {"index": "2024-01-01", "Open": 185.5, "High": 196.38, "Low": 180.17, "Close": 184.4, "Volume": 1100000},
  {"index": "2024-02-01", "Open": 183.99, "High": 191.05, "Low": 179.25, "Close": 180.75, "Volume": 980000}
]`

const msftDaily = `[{"index": "2024-03-01", "Open": 411.27, "High": 415.87, "Low": 410.88, "Close": 415.5, "Volume": 17823400}]`

// setupCLITest isolates config and logging and registers cleanup for global state.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvDotEnv, filepath.Join(home, "missing.env"))
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvBaseURL, "")
	t.Setenv(config.EnvSeries, "")
	t.Setenv(config.EnvInterval, "")
	t.Setenv(config.EnvLogFile, "")
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// newBackend serves canned series and records request paths.
func newBackend(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var paths []string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/data/monthly/AAPL", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(aaplMonthly))
	})
	mux.HandleFunc("/api/data/daily/MSFT", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(msftDaily))
	})
	mux.HandleFunc("/api/data/monthly/FAIL", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/api/data/monthly/EMPTY", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &paths
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeWithStderr(t, args...)
	return out, err
}

func executeWithStderr(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestFetch_Table(t *testing.T) {
	setupCLITest(t)
	srv, paths := newBackend(t)

	out, err := execute(t, "fetch", "aapl", "--base-url", srv.URL)
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/data/monthly/AAPL"}, *paths)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "AAPL", lines[0])
	assert.Equal(t, []string{"Date", "Open", "High", "Low", "Close", "Volume"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2024-01-01", "185.5", "196.38", "180.17", "184.4", "1100000"}, strings.Fields(lines[3]))
	assert.Equal(t, "2024-02-01", strings.Fields(lines[4])[0])
}

func TestFetch_KeepsArgumentOrder(t *testing.T) {
	setupCLITest(t)
	srv, _ := newBackend(t)

	out, err := execute(t, "fetch", "EMPTY", "AAPL", "--base-url", srv.URL)
	require.NoError(t, err)

	emptyAt := strings.Index(out, "EMPTY\n")
	aaplAt := strings.Index(out, "AAPL\n")
	require.GreaterOrEqual(t, emptyAt, 0)
	require.Greater(t, aaplAt, emptyAt)
	assert.Contains(t, out[emptyAt:aaplAt], "No data available")
}

func TestFetch_JSON(t *testing.T) {
	setupCLITest(t)
	srv, _ := newBackend(t)

	out, err := execute(t, "fetch", "AAPL", "EMPTY", "-o", "json", "--base-url", srv.URL)
	require.NoError(t, err)

	var got []struct {
		Symbol string           `json:"symbol"`
		Rows   []map[string]any `json:"rows"`
		Error  string           `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "AAPL", got[0].Symbol)
	assert.Len(t, got[0].Rows, 2)
	assert.Equal(t, "2024-01-01", got[0].Rows[0]["index"])
	assert.Equal(t, "EMPTY", got[1].Symbol)
	assert.Empty(t, got[1].Rows)
	assert.Empty(t, got[1].Error)
}

func TestFetch_SeriesFlag(t *testing.T) {
	setupCLITest(t)
	srv, paths := newBackend(t)

	out, err := execute(t, "fetch", "MSFT", "--series", "daily", "--base-url", srv.URL)
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/data/daily/MSFT"}, *paths)
	assert.Contains(t, out, "411.27")
}

func TestFetch_FailureExitsNonZero(t *testing.T) {
	setupCLITest(t)
	srv, _ := newBackend(t)

	out, err := execute(t, "fetch", "AAPL", "FAIL", "--base-url", srv.URL)
	require.Error(t, err)

	require.ErrorIs(t, err, cli.ErrFetchFailed)
	assert.Contains(t, err.Error(), "FAIL")
	assert.Contains(t, out, "2024-01-01", "successful symbols still print")
	assert.Contains(t, out, "No data available")
}

func TestFetch_UnreachableBackend(t *testing.T) {
	setupCLITest(t)
	srv, _ := newBackend(t)
	url := srv.URL
	srv.Close()

	_, err := execute(t, "fetch", "AAPL", "--base-url", url)
	require.ErrorIs(t, err, cli.ErrFetchFailed)
}

func TestFetch_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no symbols", args: []string{"fetch"}},
		{name: "unknown series", args: []string{"fetch", "AAPL", "--series", "weekly"}},
		{name: "unknown output", args: []string{"fetch", "AAPL", "--output", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestFetch_BaseURLFromEnv(t *testing.T) {
	setupCLITest(t)
	srv, paths := newBackend(t)
	t.Setenv(config.EnvBaseURL, srv.URL)

	_, err := execute(t, "fetch", "AAPL")
	require.NoError(t, err)
	assert.Len(t, *paths, 1)
}

func TestDashboard_RequiresTerminal(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "dashboard")
	require.ErrorIs(t, err, cli.ErrNotInteractive)
}

func TestDashboard_UnusableLogFileIsDiscarded(t *testing.T) {
	setupCLITest(t)
	// A regular file where the config directory should be makes the log
	// directory impossible to create.
	home := filepath.Join(t.TempDir(), "home")
	require.NoError(t, os.WriteFile(home, []byte("x"), 0o600))
	t.Setenv(config.EnvHome, home)
	config.ResetGlobalConfigForTest()

	_, errOut, err := executeWithStderr(t, "dashboard", "--debug")
	require.ErrorIs(t, err, cli.ErrNotInteractive)
	assert.Contains(t, errOut, "logs discarded")
	assert.NotContains(t, errOut, "logging to stderr")
	assert.NotContains(t, errOut, "command started")
}

func TestFetch_UnusableLogFileFallsBackToStderr(t *testing.T) {
	setupCLITest(t)
	srv, _ := newBackend(t)
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	t.Setenv(config.EnvLogFile, filepath.Join(blocker, "logs", "findash.log"))
	config.ResetGlobalConfigForTest()

	_, errOut, err := executeWithStderr(t, "fetch", "AAPL", "--base-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, errOut, "logging to stderr")
}

func TestConfigInit(t *testing.T) {
	home := setupCLITest(t)
	path := filepath.Join(home, "config.yaml")

	out, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "base_url: http://localhost:5001")

	_, err = execute(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigShow(t *testing.T) {
	home := setupCLITest(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"),
		[]byte("dashboard:\n  default_symbol: TSLA\n"), 0o600))

	out, err := execute(t, "config", "show", "--base-url", "http://prices:9000", "--series", "intraday")
	require.NoError(t, err)

	assert.Contains(t, out, "base_url: http://prices:9000")
	assert.Contains(t, out, "series: intraday")
	assert.Contains(t, out, "default_symbol: TSLA")
}

func TestVersion(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "findash dev (commit unknown, built unknown)\n", out)
}

func TestHelp(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "--help")
	require.NoError(t, err)
	for _, want := range []string{"dashboard", "fetch", "config", "--base-url", "--series", "--interval", "--debug"} {
		assert.Contains(t, out, want)
	}
}
