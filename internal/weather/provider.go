package weather

import (
	"context"
	"time"
)

// Provider abstracts a weather data source (e.g. Weatherbit).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (Reading, error)
}

// Store is the contract any persistence backend must satisfy.
// SaveReading is idempotent on (Location, ObservedAt): re-saving the same
// observation is a no-op and reports inserted=false.
type Store interface {
	SaveReading(ctx context.Context, r Reading) (inserted bool, err error)
	GetLatest(ctx context.Context, loc Location) (Reading, error)
	GetRange(ctx context.Context, loc Location, from, to time.Time) ([]Reading, error)
	Close() error
}
