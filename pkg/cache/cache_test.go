package cache

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"), ttl)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t, 0)
	if err := s.Put("user", []byte(`{"name":"jess"}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	data, ok := s.Get("user")
	if !ok {
		t.Fatal("Get: miss after Put")
	}
	if string(data) != `{"name":"jess"}` {
		t.Errorf("data = %s", data)
	}
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t, 0)
	if _, ok := s.Get("nope"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestTTLExpiry(t *testing.T) {
	s := openTestStore(t, 0)
	if err := s.PutWithTTL("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("PutWithTTL: %v", err)
	}
	if _, ok := s.Get("k"); !ok {
		t.Fatal("fresh entry should hit")
	}

	// Advance the clock past the TTL.
	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, ok := s.Get("k"); ok {
		t.Error("expired entry should miss")
	}
	// Lazy delete happened; a later read still misses.
	if _, ok := s.Get("k"); ok {
		t.Error("expired entry should stay gone")
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	s := openTestStore(t, 0)
	if err := s.Put("k", []byte("v")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	s.now = func() time.Time { return time.Now().Add(1000 * time.Hour) }
	if _, ok := s.Get("k"); !ok {
		t.Error("zero-TTL entry should never expire")
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t, 0)
	s.Put("k", []byte("v"))
	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := s.Get("k"); ok {
		t.Error("deleted key should miss")
	}
}

func TestTypedRoundTrip(t *testing.T) {
	type payload struct {
		Keys   int64  `json:"keys"`
		Source string `json:"source"`
	}
	s := openTestStore(t, 0)
	if err := PutTyped(s, "stats", payload{Keys: 42, Source: "web"}); err != nil {
		t.Fatalf("PutTyped: %v", err)
	}
	got, ok := GetTyped[payload](s, "stats")
	if !ok {
		t.Fatal("GetTyped: miss")
	}
	if got.Keys != 42 || got.Source != "web" {
		t.Errorf("got = %+v", got)
	}

	if _, ok := GetTyped[payload](s, "absent"); ok {
		t.Error("GetTyped of missing key should report false")
	}
}

func TestAge(t *testing.T) {
	s := openTestStore(t, 0)
	s.Put("k", []byte("v"))
	age, ok := s.Age("k")
	if !ok {
		t.Fatal("Age: miss")
	}
	if age < 0 || age > time.Minute {
		t.Errorf("age = %v", age)
	}
	if _, ok := s.Age("missing"); ok {
		t.Error("Age of missing key should report false")
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	s, err := Open(path, 0)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.Put("k", []byte("v"))
	s.Close()

	s2, err := Open(path, 0)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	if data, ok := s2.Get("k"); !ok || string(data) != "v" {
		t.Errorf("reopened get = %q, %v", data, ok)
	}
}
