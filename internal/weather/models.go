package weather

import (
	"time"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Location represents a logical place for which we track weather.
// City/Country must be provided; Lat/Lon are optional and let the
// provider resolve the place by coordinates instead of by name.
type Location struct {
	City    string   `json:"city" yaml:"city"`
	Country string   `json:"country" yaml:"country"`
	Lat     *float64 `json:"lat,omitempty" yaml:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty" yaml:"lon,omitempty"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return l.City + ":" + l.Country
}

// Reading is one timestamped weather observation for one location.
// Readings are immutable once stored; (Location, ObservedAt) identifies
// an observation uniquely.
type Reading struct {
	Location   Location  `json:"location"`
	ObservedAt time.Time `json:"observedAt"` // always UTC
	Timezone   string    `json:"timezone"`   // IANA zone reported by the provider

	Temperature float64   `json:"temperatureC"`
	FeelsLike   float64   `json:"feelsLikeC"`
	Humidity    float64   `json:"humidityPercent"`
	Pressure    float64   `json:"pressureHpa"`
	WindSpeed   float64   `json:"windSpeedMs"`
	WindDir     float64   `json:"windDirDeg"`
	Clouds      float64   `json:"cloudsPercent"`
	Visibility  float64   `json:"visibilityKm"`
	Description string    `json:"description"`
	Condition   Condition `json:"condition"`

	FetchedAt time.Time `json:"fetchedAt"` // when the collector retrieved it
}

// LocalDay returns the calendar day of the observation in the timezone
// reported by the provider, falling back to UTC when the zone is unknown.
func (r Reading) LocalDay() time.Time {
	loc := time.UTC
	if r.Timezone != "" {
		if tz, err := time.LoadLocation(r.Timezone); err == nil {
			loc = tz
		}
	}
	t := r.ObservedAt.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DailyStat is a per-day aggregate of readings for one location.
type DailyStat struct {
	Day          time.Time `json:"day"` // midnight in the location's local zone
	AvgTemp      float64   `json:"avgTempC"`
	MinTemp      float64   `json:"minTempC"`
	MaxTemp      float64   `json:"maxTempC"`
	AvgFeelsLike float64   `json:"avgFeelsLikeC"`
	AvgHumidity  float64   `json:"avgHumidityPercent"`
	AvgWind      float64   `json:"avgWindSpeedMs"`
	Samples      int       `json:"samples"`
}
