package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"weather-monitor/internal/weather"
)

// Scheduler periodically collects weather readings for configured locations.
// Collection failures are logged and never propagate; the next tick retries.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	locations []weather.Location
	interval  time.Duration
}

// New creates a new Scheduler.
func New(locations []weather.Location, interval time.Duration, service *weather.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		locations: locations,
		interval:  interval,
	}
}

// Start schedules the periodic collection job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		log.Warn("scheduler: no locations configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	_, err := s.scheduler.Every(interval).Do(s.runOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// runOnce collects all configured locations concurrently. Each location gets
// its own bounded context so one slow fetch cannot stall the whole cycle.
func (s *Scheduler) runOnce() {
	runID := uuid.NewString()
	logger := log.WithField("run_id", runID)
	logger.Info("scheduler: running collection cycle")

	start := time.Now()

	var wg sync.WaitGroup
	for _, loc := range s.locations {
		loc := loc
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if _, _, err := s.service.CollectAndStore(ctx, loc); err != nil {
				logger.WithField("location", loc.Key()).Errorf("collection failed: %v", err)
			}
		}()
	}
	wg.Wait()

	logger.WithField("duration", time.Since(start)).Info("scheduler: collection cycle completed")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
