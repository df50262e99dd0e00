package weather

import "sort"

// AggregateDaily buckets readings by their local calendar day and computes
// per-day aggregates. Numeric fields are averaged except temperature, which
// also carries min/max. The result is ordered by day ascending.
func AggregateDaily(readings []Reading) []DailyStat {
	if len(readings) == 0 {
		return nil
	}

	type bucket struct {
		stat DailyStat
		sumT float64
		sumF float64
		sumH float64
		sumW float64
	}

	buckets := make(map[string]*bucket)

	for _, r := range readings {
		day := r.LocalDay()
		key := day.Format("2006-01-02")

		b, ok := buckets[key]
		if !ok {
			b = &bucket{stat: DailyStat{
				Day:     day,
				MinTemp: r.Temperature,
				MaxTemp: r.Temperature,
			}}
			buckets[key] = b
		}

		b.sumT += r.Temperature
		b.sumF += r.FeelsLike
		b.sumH += r.Humidity
		b.sumW += r.WindSpeed
		b.stat.Samples++

		if r.Temperature < b.stat.MinTemp {
			b.stat.MinTemp = r.Temperature
		}
		if r.Temperature > b.stat.MaxTemp {
			b.stat.MaxTemp = r.Temperature
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	stats := make([]DailyStat, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		n := float64(b.stat.Samples)
		b.stat.AvgTemp = b.sumT / n
		b.stat.AvgFeelsLike = b.sumF / n
		b.stat.AvgHumidity = b.sumH / n
		b.stat.AvgWind = b.sumW / n
		stats = append(stats, b.stat)
	}

	return stats
}
