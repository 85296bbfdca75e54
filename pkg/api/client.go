package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the hosted stats API root.
	DefaultBaseURL = "https://whatpulse.org/api/v1"

	requestTimeout = 10 * time.Second
)

// Client talks to the hosted account API. It is safe for concurrent use;
// the rate limiter keeps background refresh from tripping the server's
// per-key quota.
type Client struct {
	base    string
	token   string
	userID  string
	http    *http.Client
	limiter *rate.Limiter
	log     *slog.Logger
}

// NewClient builds a hosted-API client from a Bearer token. The account
// id is read from the token itself.
func NewClient(token string, log *slog.Logger) (*Client, error) {
	userID, err := SubjectFromToken(token)
	if err != nil {
		return nil, fmt.Errorf("api key: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		base:    DefaultBaseURL,
		token:   token,
		userID:  userID,
		http:    &http.Client{Timeout: requestTimeout},
		limiter: rate.NewLimiter(rate.Every(time.Second), 4),
		log:     log,
	}, nil
}

// WithBaseURL overrides the API root, for tests and self-hosted mirrors.
func (c *Client) WithBaseURL(base string) *Client {
	c.base = base
	return c
}

// UserID is the account id extracted from the token.
func (c *Client) UserID() string { return c.userID }

// User fetches the account summary.
func (c *Client) User(ctx context.Context) (*UserStats, error) {
	var env userEnvelope
	if err := c.get(ctx, "/users/"+c.userID, nil, &env); err != nil {
		return nil, err
	}
	return &env.User, nil
}

// Pulses fetches the most recent pulses, newest first. A non-empty
// filter constrains the range server-side ("today", "week",
// "custom:2026-01-01:2026-01-31", ...).
func (c *Client) Pulses(ctx context.Context, filter string, limit int) ([]Pulse, error) {
	q := url.Values{"user": {c.userID}}
	if filter != "" {
		q.Set("range", filter)
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	var env pulsesEnvelope
	if err := c.get(ctx, "/pulses", q, &env); err != nil {
		return nil, err
	}
	return env.Pulses, nil
}

// Computers lists the account's registered machines.
func (c *Client) Computers(ctx context.Context) ([]Computer, error) {
	q := url.Values{"user": {c.userID}}
	var env computersEnvelope
	if err := c.get(ctx, "/computers", q, &env); err != nil {
		return nil, err
	}
	return env.Computers, nil
}

// Raw fetches an arbitrary API path and returns the undecoded body,
// backing the `raw` subcommand.
func (c *Client) Raw(ctx context.Context, path string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, path)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Endpoint: path, Status: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) newRequest(ctx context.Context, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	full := path
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	req, err := c.newRequest(ctx, full)
	if err != nil {
		return err
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("api request failed", "path", path, "error", err)
		return &FetchError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("api request", "path", path, "status", resp.StatusCode,
		"elapsed", time.Since(started))

	if resp.StatusCode != http.StatusOK {
		return &FetchError{Endpoint: path, Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Endpoint: path, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}
