package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/findash/internal/logging"
	"github.com/rshade/findash/internal/marketdata"
)

// recordingFetcher remembers the request id each symbol was fetched with.
type recordingFetcher struct {
	mu         sync.Mutex
	requestIDs map[string]string
}

func (f *recordingFetcher) Fetch(ctx context.Context, symbol string) ([]marketdata.Row, error) {
	f.mu.Lock()
	f.requestIDs[symbol] = logging.RequestIDFromContext(ctx)
	f.mu.Unlock()
	if symbol == "FAIL" {
		return nil, marketdata.ErrTransport
	}
	return []marketdata.Row{{"index": "2024-01-01"}}, nil
}

func TestFetchAll_RequestIDReachesFetcherAndLogs(t *testing.T) {
	var buf bytes.Buffer
	saved := logger
	logger = logging.NewLogger(logging.Config{Level: "debug", Format: logging.FormatJSON}, &buf)
	t.Cleanup(func() { logger = saved })

	f := &recordingFetcher{requestIDs: map[string]string{}}
	results := fetchAll(context.Background(), f, []string{"aapl", "FAIL"}, 1)

	require.Len(t, results, 2)
	assert.Equal(t, "AAPL", results[0].Symbol)
	require.ErrorIs(t, results[1].err, marketdata.ErrTransport)

	require.NotEmpty(t, f.requestIDs["AAPL"])
	assert.NotEqual(t, f.requestIDs["AAPL"], f.requestIDs["FAIL"])

	events := 0
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var event map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &event))
		symbol, _ := event["symbol"].(string)
		assert.Equal(t, f.requestIDs[symbol], event["request_id"], "event %v", event["message"])
		events++
	}
	assert.Equal(t, 2, events)
}
