package weather

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// Service orchestrates fetching readings from the provider and persisting them.
type Service struct {
	store    Store
	provider Provider
}

// NewService creates a new Service.
func NewService(store Store, provider Provider) *Service {
	return &Service{
		store:    store,
		provider: provider,
	}
}

// CollectAndStore fetches one current reading for the given location and
// persists it. It returns whether a new row was inserted; false means the
// provider returned an observation we had already stored. On provider or
// store failure nothing is written.
func (s *Service) CollectAndStore(ctx context.Context, loc Location) (Reading, bool, error) {
	if s.provider == nil {
		return Reading{}, false, fmt.Errorf("no weather provider configured")
	}

	r, err := s.provider.Fetch(ctx, loc)
	if err != nil {
		return Reading{}, false, fmt.Errorf("fetch %s from %s: %w", loc.Key(), s.provider.Name(), err)
	}
	r.FetchedAt = time.Now().UTC()

	inserted, err := s.store.SaveReading(ctx, r)
	if err != nil {
		return Reading{}, false, fmt.Errorf("save reading for %s: %w", loc.Key(), err)
	}

	if inserted {
		log.WithFields(log.Fields{
			"location":    r.Location.Key(),
			"observed_at": r.ObservedAt,
		}).Info("stored new reading")
	} else {
		log.WithFields(log.Fields{
			"location":    r.Location.Key(),
			"observed_at": r.ObservedAt,
		}).Debug("duplicate observation, skipped")
	}

	return r, inserted, nil
}

// Latest returns the most recent stored reading for a location.
func (s *Service) Latest(ctx context.Context, loc Location) (Reading, error) {
	return s.store.GetLatest(ctx, loc)
}

// History returns stored readings for a location within [from, to],
// ordered by observation time ascending.
func (s *Service) History(ctx context.Context, loc Location, from, to time.Time) ([]Reading, error) {
	return s.store.GetRange(ctx, loc, from, to)
}

// DailyStats returns per-day aggregates over the readings in [from, to].
func (s *Service) DailyStats(ctx context.Context, loc Location, from, to time.Time) ([]DailyStat, error) {
	readings, err := s.store.GetRange(ctx, loc, from, to)
	if err != nil {
		return nil, err
	}
	return AggregateDaily(readings), nil
}
