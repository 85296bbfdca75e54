package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// DefaultLocalBaseURL is the desktop client's embedded HTTP API.
const DefaultLocalBaseURL = "http://localhost:3490"

// LocalClient reads totals from the desktop client's local HTTP API.
// No auth, no account id; this is the fallback when no API key is
// configured.
type LocalClient struct {
	base string
	http *http.Client
	log  *slog.Logger
}

// NewLocalClient builds a client against the default local endpoint.
func NewLocalClient(log *slog.Logger) *LocalClient {
	if log == nil {
		log = slog.Default()
	}
	return &LocalClient{
		base: DefaultLocalBaseURL,
		http: &http.Client{Timeout: 3 * time.Second},
		log:  log,
	}
}

// WithBaseURL overrides the endpoint, for tests.
func (c *LocalClient) WithBaseURL(base string) *LocalClient {
	c.base = base
	return c
}

// AccountTotals fetches the local client's running totals and adapts
// them to the shared UserStats shape. Ranks and pulse history are not
// available locally.
func (c *LocalClient) AccountTotals(ctx context.Context) (*UserStats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/v1/account-totals", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Endpoint: "/v1/account-totals", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Endpoint: "/v1/account-totals", Status: resp.StatusCode}
	}

	var totals accountTotals
	if err := json.NewDecoder(resp.Body).Decode(&totals); err != nil {
		return nil, &FetchError{Endpoint: "/v1/account-totals", Err: fmt.Errorf("decode: %w", err)}
	}

	stats := &UserStats{Username: "local"}
	stats.Totals.Keys, _ = totals.Keys.Int64()
	stats.Totals.Clicks, _ = totals.Clicks.Int64()
	stats.Totals.DownloadMB, _ = totals.Download.Float64()
	stats.Totals.UploadMB, _ = totals.Upload.Float64()
	stats.Totals.UptimeSeconds, _ = totals.Uptime.Int64()
	stats.Totals.Scrolls, _ = totals.Scrolls.Int64()
	return stats, nil
}

// TriggerPulse asks the desktop client to pulse now.
func (c *LocalClient) TriggerPulse(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/v1/pulse", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{Endpoint: "/v1/pulse", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return &FetchError{Endpoint: "/v1/pulse", Status: resp.StatusCode}
	}
	c.log.Info("pulse requested via local api")
	return nil
}
