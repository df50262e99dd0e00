package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WEATHERBIT_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.FetchInterval != 15*time.Minute {
		t.Fatalf("expected default interval 15m, got %v", cfg.FetchInterval)
	}
	if cfg.DBPath != "./data/weather.db" {
		t.Fatalf("unexpected default db path: %q", cfg.DBPath)
	}
	if len(cfg.Locations) != 1 || cfg.Locations[0].City != "Rio de Janeiro" || cfg.Locations[0].Country != "BR" {
		t.Fatalf("unexpected default locations: %+v", cfg.Locations)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("WEATHERBIT_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without WEATHERBIT_API_KEY")
	}
}

func TestLoadLocationLists(t *testing.T) {
	t.Setenv("WEATHERBIT_API_KEY", "test-key")
	t.Setenv("WEATHER_LOCATION_CITY", "Rio de Janeiro, Lisboa")
	t.Setenv("WEATHER_LOCATION_COUNTRY", "BR, PT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Locations) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(cfg.Locations))
	}
	if cfg.Locations[1].City != "Lisboa" || cfg.Locations[1].Country != "PT" {
		t.Fatalf("unexpected second location: %+v", cfg.Locations[1])
	}
}

func TestLoadLocationListsMismatch(t *testing.T) {
	t.Setenv("WEATHERBIT_API_KEY", "test-key")
	t.Setenv("WEATHER_LOCATION_CITY", "Rio de Janeiro,Lisboa")
	t.Setenv("WEATHER_LOCATION_COUNTRY", "BR")

	if _, err := Load(); err == nil {
		t.Fatal("expected error on mismatched city/country lists")
	}
}

func TestLoadLocationsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.yaml")
	content := []byte(`locations:
  - city: Rio de Janeiro
    country: BR
  - city: Recife
    country: BR
    lat: -8.05
    lon: -34.9
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write locations file: %v", err)
	}

	t.Setenv("WEATHERBIT_API_KEY", "test-key")
	t.Setenv("WEATHER_LOCATIONS_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Locations) != 2 {
		t.Fatalf("expected 2 locations from file, got %d", len(cfg.Locations))
	}
	second := cfg.Locations[1]
	if second.City != "Recife" || second.Lat == nil || *second.Lat != -8.05 {
		t.Fatalf("unexpected second location: %+v", second)
	}
}

func TestLoadInvalidInterval(t *testing.T) {
	t.Setenv("WEATHERBIT_API_KEY", "test-key")
	t.Setenv("FETCH_INTERVAL", "often")

	if _, err := Load(); err == nil {
		t.Fatal("expected error on invalid FETCH_INTERVAL")
	}
}
