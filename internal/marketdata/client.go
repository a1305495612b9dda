package marketdata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rshade/findash/internal/logging"
)

// Series selects which backend route a Client reads from.
type Series string

// Supported series.
const (
	SeriesMonthly  Series = "monthly"
	SeriesDaily    Series = "daily"
	SeriesIntraday Series = "intraday"
)

// DefaultInterval is the intraday bar size used when none is configured.
const DefaultInterval = "5min"

// ErrUnknownSeries is returned by ParseSeries.
var ErrUnknownSeries = errors.New("unknown series")

// ParseSeries validates a series name.
func ParseSeries(s string) (Series, error) {
	switch Series(s) {
	case SeriesMonthly, SeriesDaily, SeriesIntraday:
		return Series(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSeries, s)
	}
}

// ClientConfig configures a Client.
type ClientConfig struct {
	// BaseURL is scheme://host:port of the backend.
	BaseURL string
	// Series defaults to SeriesMonthly.
	Series Series
	// Interval is only used by SeriesIntraday; defaults to DefaultInterval.
	Interval string
}

// Client fetches price series from the dashboard backend.
type Client struct {
	cfg        ClientConfig
	httpClient *http.Client
}

// NewClient returns a Client. A nil httpClient gets NewHTTPClient(0).
func NewClient(cfg ClientConfig, httpClient *http.Client) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("base URL is required")
	}
	if cfg.Series == "" {
		cfg.Series = SeriesMonthly
	}
	if _, err := ParseSeries(string(cfg.Series)); err != nil {
		return nil, err
	}
	if cfg.Interval == "" {
		cfg.Interval = DefaultInterval
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if httpClient == nil {
		httpClient = NewHTTPClient(0)
	}
	return &Client{cfg: cfg, httpClient: httpClient}, nil
}

// NewHTTPClient returns an http.Client with bounded dial and TLS handshakes.
// timeout bounds a whole request; 0 means no overall limit.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

// Series returns the configured series.
func (c *Client) Series() Series {
	return c.cfg.Series
}

// URL returns the request URL for symbol. The symbol is interpolated
// verbatim: it is not escaped, so "/" adds a path segment and "?" or "#"
// cut the path short.
func (c *Client) URL(symbol string) string {
	u := c.cfg.BaseURL + "/api/data/" + string(c.cfg.Series) + "/" + symbol
	if c.cfg.Series == SeriesIntraday {
		u += "/" + c.cfg.Interval
	}
	return u
}

// Fetch retrieves the rows for symbol, preserving server order.
func (c *Client) Fetch(ctx context.Context, symbol string) ([]Row, error) {
	log := logging.FromContext(ctx)
	u := c.URL(symbol)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			log.Warn().Ctx(ctx).Err(closeErr).Msg("failed to close response body")
		}
	}()

	log.Debug().
		Ctx(ctx).
		Str("component", "marketdata").
		Str("url", u).
		Int("status", res.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("backend responded")

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{StatusCode: res.StatusCode, URL: u}
	}

	return decodeRows(res)
}

// decodeRows accepts only a JSON array of objects.
func decodeRows(res *http.Response) ([]Row, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedBody)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	rows := []Row{}
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	return rows, nil
}
