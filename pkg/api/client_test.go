package api

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// testToken builds an unsigned JWT with the given sub claim.
func testToken(sub string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"` + sub + `"}`))
	return header + "." + payload + ".sig"
}

func TestSubjectFromToken(t *testing.T) {
	sub, err := SubjectFromToken(testToken("271407"))
	if err != nil {
		t.Fatalf("SubjectFromToken: %v", err)
	}
	if sub != "271407" {
		t.Errorf("sub = %q, want 271407", sub)
	}
}

func TestSubjectFromTokenRejectsOpaqueKeys(t *testing.T) {
	if _, err := SubjectFromToken("not-a-jwt"); err == nil {
		t.Error("expected error for non-JWT token")
	}
	if _, err := SubjectFromToken("a.%%%.c"); err == nil {
		t.Error("expected error for undecodable payload")
	}
}

func TestClientUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/42" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer "+testToken("42") {
			t.Errorf("auth header = %q", got)
		}
		w.Write([]byte(`{"user":{"id":42,"username":"jess","pulses":1234,
			"totals":{"keys":"50000000","clicks":"9000000","download_mb":"1.5",
			"upload_mb":"0.5","uptime_seconds":"360000","scrolls":"100","distance_miles":"2.2"}}}`))
	}))
	defer srv.Close()

	c, err := NewClient(testToken("42"), nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	c.WithBaseURL(srv.URL)

	user, err := c.User(context.Background())
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if user.Username != "jess" {
		t.Errorf("username = %q", user.Username)
	}
	if user.Totals.Keys != 50000000 {
		t.Errorf("keys = %d, want 50000000", user.Totals.Keys)
	}
}

func TestClientPulsesRangeFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("range"); got != "week" {
			t.Errorf("range = %q, want week", got)
		}
		if got := r.URL.Query().Get("user"); got != "7" {
			t.Errorf("user = %q, want 7", got)
		}
		w.Write([]byte(`{"pulses":[{"id":1,"date":"2026-08-25 10:00:00","keys":4200}]}`))
	}))
	defer srv.Close()

	c, _ := NewClient(testToken("7"), nil)
	c.WithBaseURL(srv.URL)

	pulses, err := c.Pulses(context.Background(), "week", 0)
	if err != nil {
		t.Fatalf("Pulses: %v", err)
	}
	if len(pulses) != 1 || pulses[0].Keys != 4200 {
		t.Errorf("pulses = %+v", pulses)
	}
}

func TestClientSurfacesHTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, _ := NewClient(testToken("7"), nil)
	c.WithBaseURL(srv.URL)

	_, err := c.User(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error = %v, want *FetchError", err)
	}
	if fe.Status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", fe.Status)
	}
}

func TestLocalClientAccountTotals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/account-totals" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"keys":"123456","clicks":"7890","download":"10.5",
			"upload":"2.25","uptime":"86400","scrolls":"300"}`))
	}))
	defer srv.Close()

	c := NewLocalClient(nil).WithBaseURL(srv.URL)
	stats, err := c.AccountTotals(context.Background())
	if err != nil {
		t.Fatalf("AccountTotals: %v", err)
	}
	if stats.Totals.Keys != 123456 {
		t.Errorf("keys = %d", stats.Totals.Keys)
	}
	if stats.Totals.UptimeSeconds != 86400 {
		t.Errorf("uptime = %d", stats.Totals.UptimeSeconds)
	}
}

func TestLocalClientTriggerPulse(t *testing.T) {
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewLocalClient(nil).WithBaseURL(srv.URL)
	if err := c.TriggerPulse(context.Background()); err != nil {
		t.Fatalf("TriggerPulse: %v", err)
	}
	if method != http.MethodPost || path != "/v1/pulse" {
		t.Errorf("request = %s %s", method, path)
	}
}
