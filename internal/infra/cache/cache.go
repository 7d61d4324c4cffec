package cache

import (
	"log/slog"
	"sync"
	"time"
)

// Default expirations. Both apply to every entry; whichever deadline is
// reached first evicts it.
const (
	DefaultTTL     = 15 * time.Minute
	DefaultSliding = 5 * time.Minute
)

type entry struct {
	value      any
	absoluteAt time.Time
	slidingAt  time.Time
}

// Store is a single-process TTL cache. It is best effort by contract: no
// operation ever surfaces an error to the caller, a broken or expired
// entry just reads as a miss.
type Store struct {
	mu      sync.Mutex
	sliding time.Duration
	ttl     time.Duration
	entries map[string]*entry
}

// Default is the process-wide store used by the request pipeline.
var Default = New()

func New() *Store {
	return NewWithExpirations(DefaultTTL, DefaultSliding)
}

// NewWithExpirations exists so tests can run with short deadlines.
func NewWithExpirations(ttl, sliding time.Duration) *Store {
	return &Store{
		sliding: sliding,
		ttl:     ttl,
		entries: make(map[string]*entry),
	}
}

// Get returns the live value for key. A hit pushes the sliding deadline
// forward; the absolute deadline never moves.
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	now := time.Now()
	if now.After(e.absoluteAt) || now.After(e.slidingAt) {
		delete(s.entries, key)
		return nil, false
	}
	e.slidingAt = now.Add(s.sliding)
	return e.value, true
}

// Set stores value under key. A non-positive ttl means the default
// absolute expiration.
func (s *Store) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.ttl
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = &entry{
		value:      value,
		absoluteAt: now.Add(ttl),
		slidingAt:  now.Add(s.sliding),
	}
	slog.Debug("cache set", "key", key, "ttl", ttl)
}

func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Exists reports whether key holds a live entry without refreshing its
// sliding deadline.
func (s *Store) Exists(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return false
	}
	now := time.Now()
	if now.After(e.absoluteAt) || now.After(e.slidingAt) {
		delete(s.entries, key)
		return false
	}
	return true
}

// RemoveByPattern is a documented no-op. The in-process map keeps no key
// index, so pattern invalidation is not supported; a key-tracking or
// distributed cache would be needed for that.
func (s *Store) RemoveByPattern(pattern string) {
	slog.Warn("pattern-based cache removal not supported by in-process store", "pattern", pattern)
}

// GetAs is the typed accessor. A value of the wrong type reads as a miss.
func GetAs[T any](s *Store, key string) (T, bool) {
	var zero T
	v, ok := s.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
