package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"weather-monitor/internal/common"
	"weather-monitor/internal/weather"
)

// WeatherbitProvider implements the weather.Provider interface for Weatherbit.
type WeatherbitProvider struct {
	name    string
	apiKey  string
	baseURL string
	lang    string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherbitProvider(client *http.Client, apiKey, lang string) *WeatherbitProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weatherbit",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &WeatherbitProvider{
		name:    "weatherbit",
		apiKey:  apiKey,
		baseURL: "https://api.weatherbit.io/v2.0/current",
		lang:    lang,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

func (p *WeatherbitProvider) Name() string {
	return p.name
}

func (p *WeatherbitProvider) Fetch(ctx context.Context, loc weather.Location) (weather.Reading, error) {
	if p.apiKey == "" {
		return weather.Reading{}, fmt.Errorf("weatherbit api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		values.Set("units", "M")
		if p.lang != "" {
			values.Set("lang", p.lang)
		}

		// Weatherbit accepts either lat/lon or city (optionally with country).
		if loc.Lat != nil && loc.Lon != nil {
			values.Set("lat", fmt.Sprintf("%f", *loc.Lat))
			values.Set("lon", fmt.Sprintf("%f", *loc.Lon))
		} else {
			values.Set("city", loc.City)
			if loc.Country != "" {
				values.Set("country", loc.Country)
			}
		}

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Reading{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Data []struct {
			Ts          int64    `json:"ts"`
			Timezone    string   `json:"timezone"`
			CityName    string   `json:"city_name"`
			CountryCode string   `json:"country_code"`
			Lat         *float64 `json:"lat"`
			Lon         *float64 `json:"lon"`
			Temp        float64  `json:"temp"`
			AppTemp     float64  `json:"app_temp"`
			Rh          float64  `json:"rh"`
			Pres        float64  `json:"pres"`
			WindSpd     float64  `json:"wind_spd"`
			WindDir     float64  `json:"wind_dir"`
			Clouds      float64  `json:"clouds"`
			Vis         float64  `json:"vis"`
			Weather     struct {
				Code        int    `json:"code"`
				Description string `json:"description"`
			} `json:"weather"`
		} `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Reading{}, err
	}

	if len(payload.Data) == 0 {
		return weather.Reading{}, fmt.Errorf("weatherbit returned no observations for %s", loc.Key())
	}
	d := payload.Data[0]

	// ts is epoch seconds, always UTC regardless of the reported timezone.
	ts := time.Unix(d.Ts, 0).UTC()
	if d.Ts == 0 {
		ts = time.Now().UTC()
	}

	// Prefer the location identity we were asked about; fall back to what
	// the provider resolved (relevant for coordinate lookups).
	resolved := loc
	if resolved.City == "" {
		resolved.City = d.CityName
	}
	if resolved.Country == "" {
		resolved.Country = d.CountryCode
	}
	if resolved.Lat == nil {
		resolved.Lat = d.Lat
	}
	if resolved.Lon == nil {
		resolved.Lon = d.Lon
	}

	cond := mapWeatherbitCondition(d.Weather.Code, d.Weather.Description)

	return weather.Reading{
		Location:    resolved,
		ObservedAt:  ts,
		Timezone:    d.Timezone,
		Temperature: d.Temp,
		FeelsLike:   d.AppTemp,
		Humidity:    d.Rh,
		Pressure:    d.Pres,
		WindSpeed:   d.WindSpd,
		WindDir:     d.WindDir,
		Clouds:      d.Clouds,
		Visibility:  d.Vis,
		Description: d.Weather.Description,
		Condition:   cond,
	}, nil
}

// mapWeatherbitCondition normalizes Weatherbit weather codes; when the code is
// absent the free-text description is used as a fallback.
func mapWeatherbitCondition(code int, description string) weather.Condition {
	switch {
	case code >= 200 && code < 300:
		return weather.ConditionStorm
	case code >= 300 && code < 400:
		return weather.ConditionRain
	case code >= 500 && code < 600:
		return weather.ConditionRain
	case code >= 600 && code < 700:
		return weather.ConditionSnow
	case code >= 700 && code < 800:
		return weather.ConditionMist
	case code == 800:
		return weather.ConditionClear
	case code > 800 && code < 900:
		return weather.ConditionCloudy
	case code == 900:
		return weather.ConditionRain
	}

	switch {
	case common.HasAnyFold(description, "thunder", "storm"):
		return weather.ConditionStorm
	case common.HasAnyFold(description, "rain", "shower", "drizzle", "chuva"):
		return weather.ConditionRain
	case common.HasAnyFold(description, "snow", "sleet", "neve"):
		return weather.ConditionSnow
	case common.HasAnyFold(description, "mist", "fog", "haze", "nevoeiro"):
		return weather.ConditionMist
	case common.HasAnyFold(description, "cloud", "nublado", "nuvens"):
		return weather.ConditionCloudy
	case common.HasAnyFold(description, "clear", "sunny", "limpo"):
		return weather.ConditionClear
	default:
		return weather.ConditionUnknown
	}
}
