package weather

import (
	"testing"
	"time"
)

func statsReading(observedAt time.Time, tz string, temp, hum float64) Reading {
	return Reading{
		Location:    Location{City: "Rio de Janeiro", Country: "BR"},
		ObservedAt:  observedAt,
		Timezone:    tz,
		Temperature: temp,
		FeelsLike:   temp + 2,
		Humidity:    hum,
		WindSpeed:   2,
	}
}

func TestAggregateDaily(t *testing.T) {
	day1 := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC)

	readings := []Reading{
		statsReading(day2, "UTC", 30, 60),
		statsReading(day1, "UTC", 20, 80),
		statsReading(day1.Add(2*time.Hour), "UTC", 24, 70),
	}

	stats := AggregateDaily(readings)
	if len(stats) != 2 {
		t.Fatalf("expected 2 daily buckets, got %d", len(stats))
	}

	first := stats[0]
	if !first.Day.Equal(time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected first bucket on Aug 20, got %v", first.Day)
	}
	if first.Samples != 2 {
		t.Fatalf("expected 2 samples on first day, got %d", first.Samples)
	}
	if first.AvgTemp != 22 {
		t.Fatalf("expected avg temp 22, got %v", first.AvgTemp)
	}
	if first.MinTemp != 20 || first.MaxTemp != 24 {
		t.Fatalf("expected min/max 20/24, got %v/%v", first.MinTemp, first.MaxTemp)
	}
	if first.AvgHumidity != 75 {
		t.Fatalf("expected avg humidity 75, got %v", first.AvgHumidity)
	}

	if stats[1].Samples != 1 || stats[1].AvgTemp != 30 {
		t.Fatalf("unexpected second bucket: %+v", stats[1])
	}
}

// TestAggregateDailyLocalZone verifies bucketing uses the location's local
// day: an observation shortly after midnight UTC still belongs to the
// previous day in Sao Paulo (UTC-3).
func TestAggregateDailyLocalZone(t *testing.T) {
	readings := []Reading{
		statsReading(time.Date(2026, 8, 20, 23, 30, 0, 0, time.UTC), "America/Sao_Paulo", 20, 80),
		statsReading(time.Date(2026, 8, 21, 2, 30, 0, 0, time.UTC), "America/Sao_Paulo", 22, 80),
	}

	stats := AggregateDaily(readings)
	if len(stats) != 1 {
		t.Fatalf("expected both readings in one local day, got %d buckets", len(stats))
	}
	if stats[0].Day.Day() != 20 {
		t.Fatalf("expected local day Aug 20, got %v", stats[0].Day)
	}
}

func TestAggregateDailyEmpty(t *testing.T) {
	if stats := AggregateDaily(nil); stats != nil {
		t.Fatalf("expected nil for no readings, got %v", stats)
	}
}
