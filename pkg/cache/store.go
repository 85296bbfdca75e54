// Package cache persists the last good API payloads so the dashboard
// can warm-start with stale data while the first fetches are in flight.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("payloads")

// entry is the stored envelope: payload plus write time for TTL checks.
type entry struct {
	Created int64           `json:"created"` // UnixNano
	TTLNS   int64           `json:"ttl_ns"`  // 0 = no expiry
	Data    json.RawMessage `json:"data"`
}

// Store is a single-file key-value cache with per-entry TTL.
type Store struct {
	db         *bolt.DB
	defaultTTL time.Duration
	now        func() time.Time
}

// Open creates or opens the cache file. DefaultTTL of 0 means entries
// never expire.
func Open(path string, defaultTTL time.Duration) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cache: create directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: init bucket: %w", err)
	}
	return &Store{db: db, defaultTTL: defaultTTL, now: time.Now}, nil
}

// Close releases the cache file.
func (s *Store) Close() error { return s.db.Close() }

// Get retrieves the raw payload for key. Expired entries are treated as
// missing and removed lazily.
func (s *Store) Get(key string) ([]byte, bool) {
	var e entry
	found := false
	s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketName).Get([]byte(key))
		if raw == nil {
			return nil
		}
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil
		}
		found = true
		return nil
	})
	if !found {
		return nil, false
	}
	if e.TTLNS > 0 && s.now().UnixNano()-e.Created > e.TTLNS {
		s.Delete(key)
		return nil, false
	}
	return e.Data, true
}

// Put stores value under key with the store's default TTL.
func (s *Store) Put(key string, value []byte) error {
	return s.PutWithTTL(key, value, s.defaultTTL)
}

// PutWithTTL stores value under key with a custom TTL.
func (s *Store) PutWithTTL(key string, value []byte, ttl time.Duration) error {
	raw, err := json.Marshal(entry{
		Created: s.now().UnixNano(),
		TTLNS:   int64(ttl),
		Data:    value,
	})
	if err != nil {
		return fmt.Errorf("cache: marshal entry for %q: %w", key, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), raw)
	})
}

// Delete removes key if present.
func (s *Store) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
}

// Age reports how long ago key was written. ok is false when missing.
func (s *Store) Age(key string) (time.Duration, bool) {
	var e entry
	found := false
	s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketName).Get([]byte(key))
		if raw == nil {
			return nil
		}
		if json.Unmarshal(raw, &e) == nil {
			found = true
		}
		return nil
	})
	if !found {
		return 0, false
	}
	return s.now().Sub(time.Unix(0, e.Created)), true
}
