package providers

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"weather-monitor/internal/weather"
)

// RateLimitedProvider wraps a weather.Provider with outbound rate limiting
// so scheduled and on-demand collections together stay within the
// provider's request quota.
type RateLimitedProvider struct {
	provider weather.Provider
	limiter  *rate.Limiter
}

// NewRateLimitedProvider creates a rate limited provider. rps may be
// fractional for less than one request per second.
func NewRateLimitedProvider(provider weather.Provider, rps float64, burst int) *RateLimitedProvider {
	return &RateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimitedProvider) Name() string {
	return r.provider.Name()
}

// Fetch waits for rate limiter permission, then forwards to the underlying provider.
func (r *RateLimitedProvider) Fetch(ctx context.Context, loc weather.Location) (weather.Reading, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return weather.Reading{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.Fetch(ctx, loc)
}

var _ weather.Provider = (*RateLimitedProvider)(nil)
