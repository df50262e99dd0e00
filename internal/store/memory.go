package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"weather-monitor/internal/weather"
)

// readingHistory holds a time-ordered list of readings for a location.
type readingHistory struct {
	readings []weather.Reading
}

// MemoryStore is a concurrency-safe in-memory implementation of
// weather.Store. It mirrors the SQLite store's idempotency on
// (location, observation time) and is used in tests and as a
// zero-setup development backend.
type MemoryStore struct {
	mu sync.RWMutex

	// key: location key, value: history
	data map[string]*readingHistory

	// retention configuration
	maxHistory int           // max number of readings per location
	maxAge     time.Duration // optional max age for readings
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*readingHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SaveReading appends a new reading for a location and enforces retention.
// A reading with an observation time already present is ignored.
func (s *MemoryStore) SaveReading(_ context.Context, r weather.Reading) (bool, error) {
	key := r.Location.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[key]
	if !ok {
		history = &readingHistory{}
		s.data[key] = history
	}

	for _, existing := range history.readings {
		if existing.ObservedAt.Equal(r.ObservedAt) {
			return false, nil
		}
	}

	history.readings = append(history.readings, r)
	sort.Slice(history.readings, func(i, j int) bool {
		return history.readings[i].ObservedAt.Before(history.readings[j].ObservedAt)
	})

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.readings) > s.maxHistory {
		over := len(history.readings) - s.maxHistory
		history.readings = history.readings[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.readings); i++ {
			if !history.readings[i].ObservedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 && i < len(history.readings) {
			history.readings = history.readings[i:]
		}
	}

	return true, nil
}

// GetLatest returns the most recent reading for a location.
func (s *MemoryStore) GetLatest(_ context.Context, loc weather.Location) (weather.Reading, error) {
	key := loc.Key()

	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.readings) == 0 {
		return weather.Reading{}, ErrNotFound
	}
	return history.readings[len(history.readings)-1], nil
}

// GetRange returns all readings for a location between from and to (inclusive),
// ordered by observation time ascending.
func (s *MemoryStore) GetRange(_ context.Context, loc weather.Location, from, to time.Time) ([]weather.Reading, error) {
	key := loc.Key()

	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.readings) == 0 {
		return nil, ErrNotFound
	}

	var result []weather.Reading
	for _, r := range history.readings {
		if !r.ObservedAt.Before(from) && !r.ObservedAt.After(to) {
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

var _ weather.Store = (*MemoryStore)(nil)
