package store

import (
	"context"
	"testing"
	"time"

	"weather-monitor/internal/weather"
)

// TestMemoryStoreIdempotent verifies the in-memory store matches the SQLite
// store's duplicate handling.
func TestMemoryStoreIdempotent(t *testing.T) {
	s := NewMemoryStore(0, 0)
	ctx := context.Background()

	observed := time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC)
	r := testReading(observed)

	inserted, err := s.SaveReading(ctx, r)
	if err != nil || !inserted {
		t.Fatalf("expected first save to insert, got inserted=%v err=%v", inserted, err)
	}
	inserted, err = s.SaveReading(ctx, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted {
		t.Fatal("expected duplicate save to be ignored")
	}
}

// TestMemoryStoreRetention verifies the per-location history cap.
func TestMemoryStoreRetention(t *testing.T) {
	s := NewMemoryStore(2, 0)
	ctx := context.Background()

	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		if _, err := s.SaveReading(ctx, testReading(base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	loc := weather.Location{City: "Rio de Janeiro", Country: "BR"}
	readings, err := s.GetRange(ctx, loc, base, base.Add(4*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(readings) != 2 {
		t.Fatalf("expected history capped at 2, got %d", len(readings))
	}
	if !readings[0].ObservedAt.Equal(base.Add(2 * time.Hour)) {
		t.Fatalf("expected oldest readings evicted, got first at %v", readings[0].ObservedAt)
	}
}
