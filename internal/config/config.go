package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"weather-monitor/internal/weather"
)

type AppConfig struct {
	// WeatherbitAPIKey is the credential for the external provider. Required.
	WeatherbitAPIKey string

	// WeatherbitLang selects the language of provider descriptions.
	WeatherbitLang string

	// FetchInterval controls how often the collector runs for each location.
	FetchInterval time.Duration

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration

	// DBPath is the SQLite database file.
	DBPath string

	// Locations to track.
	Locations []weather.Location

	// Outbound provider rate limit.
	ProviderRPS   float64
	ProviderBurst int

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Infof("no .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.WeatherbitAPIKey = os.Getenv("WEATHERBIT_API_KEY")
	if cfg.WeatherbitAPIKey == "" {
		return nil, fmt.Errorf("WEATHERBIT_API_KEY is required")
	}
	cfg.WeatherbitLang = getenvDefault("WEATHERBIT_LANG", "pt")

	// Collection interval: default 15 minutes.
	intervalStr := getenvDefault("FETCH_INTERVAL", "15m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "20s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.DBPath = getenvDefault("WEATHER_DB_PATH", "./data/weather.db")
	cfg.Port = getenvDefault("PORT", "8080")

	cfg.ProviderRPS = getenvFloat("PROVIDER_RPS", 0.5)
	cfg.ProviderBurst = getenvInt("PROVIDER_BURST", 3)

	locs, err := loadLocations()
	if err != nil {
		return nil, err
	}
	cfg.Locations = locs

	return cfg, nil
}

// locationsFile is the YAML shape of WEATHER_LOCATIONS_FILE.
type locationsFile struct {
	Locations []weather.Location `yaml:"locations"`
}

// loadLocations resolves the tracked locations: a YAML file when
// WEATHER_LOCATIONS_FILE is set, the parallel city/country env lists
// otherwise, and a single default location as a last resort.
func loadLocations() ([]weather.Location, error) {
	if path := os.Getenv("WEATHER_LOCATIONS_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read locations file: %w", err)
		}
		var f locationsFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse locations file: %w", err)
		}
		if len(f.Locations) == 0 {
			return nil, fmt.Errorf("locations file %s defines no locations", path)
		}
		return f.Locations, nil
	}

	city := os.Getenv("WEATHER_LOCATION_CITY")
	country := os.Getenv("WEATHER_LOCATION_COUNTRY")
	if city == "" {
		return []weather.Location{{
			City:    getenvDefault("DEFAULT_CITY", "Rio de Janeiro"),
			Country: getenvDefault("DEFAULT_COUNTRY", "BR"),
		}}, nil
	}

	cities := strings.Split(city, ",")
	countries := strings.Split(country, ",")
	if len(cities) != len(countries) {
		return nil, fmt.Errorf("number of cities and countries must be the same")
	}
	var locs []weather.Location
	for i := range cities {
		locs = append(locs, weather.Location{
			City:    strings.TrimSpace(cities[i]),
			Country: strings.TrimSpace(countries[i]),
		})
	}

	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
