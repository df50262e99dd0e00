package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"weather-monitor/internal/weather"
)

var (
	// ErrNotFound is returned when no data is available for a given location.
	ErrNotFound = errors.New("no weather data for location")
)

const schema = `
CREATE TABLE IF NOT EXISTS weather_observations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	city_name TEXT NOT NULL,
	country_code TEXT NOT NULL,
	lat REAL,
	lon REAL,
	ts_utc INTEGER NOT NULL,
	tz TEXT,
	temp_c REAL,
	feels_like_c REAL,
	humidity REAL,
	pressure REAL,
	wind_speed REAL,
	wind_dir REAL,
	clouds REAL,
	visibility_km REAL,
	condition TEXT,
	weather_description TEXT,
	fetched_at INTEGER,
	created_at TEXT DEFAULT (CURRENT_TIMESTAMP),
	UNIQUE(city_name, country_code, ts_utc)
);
`

// SQLiteStore persists weather readings in a SQLite database.
// The UNIQUE(city_name, country_code, ts_utc) constraint plus
// INSERT OR IGNORE makes SaveReading idempotent: re-storing the same
// observation leaves a single row.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and creates if needed) the database at path and
// ensures the schema exists. The parent directory is created for file-backed
// databases.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && !strings.HasPrefix(path, ":") && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// SQLite supports one writer at a time; a single pooled connection
	// avoids SQLITE_BUSY between the scheduler and the API.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// SaveReading inserts one observation. It reports false when the row already
// existed for the same (city, country, observation time).
func (s *SQLiteStore) SaveReading(ctx context.Context, r weather.Reading) (bool, error) {
	const q = `
	INSERT OR IGNORE INTO weather_observations (
		city_name, country_code, lat, lon, ts_utc, tz,
		temp_c, feels_like_c, humidity, pressure, wind_speed, wind_dir,
		clouds, visibility_km, condition, weather_description, fetched_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var lat, lon interface{}
	if r.Location.Lat != nil {
		lat = *r.Location.Lat
	}
	if r.Location.Lon != nil {
		lon = *r.Location.Lon
	}

	res, err := s.db.ExecContext(ctx, q,
		r.Location.City, r.Location.Country, lat, lon,
		r.ObservedAt.UTC().Unix(), r.Timezone,
		r.Temperature, r.FeelsLike, r.Humidity, r.Pressure,
		r.WindSpeed, r.WindDir, r.Clouds, r.Visibility,
		string(r.Condition), r.Description, r.FetchedAt.UTC().Unix(),
	)
	if err != nil {
		return false, fmt.Errorf("insert observation: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

const readingColumns = `
	city_name, country_code, lat, lon, ts_utc, tz,
	temp_c, feels_like_c, humidity, pressure, wind_speed, wind_dir,
	clouds, visibility_km, condition, weather_description, fetched_at`

// GetLatest returns the most recent reading for a location.
func (s *SQLiteStore) GetLatest(ctx context.Context, loc weather.Location) (weather.Reading, error) {
	q := fmt.Sprintf(`
	SELECT %s FROM weather_observations
	WHERE city_name = ? AND country_code = ?
	ORDER BY ts_utc DESC
	LIMIT 1`, readingColumns)

	row := s.db.QueryRowContext(ctx, q, loc.City, loc.Country)
	r, err := scanReading(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return weather.Reading{}, ErrNotFound
		}
		return weather.Reading{}, fmt.Errorf("query latest: %w", err)
	}
	return r, nil
}

// GetRange returns readings for a location between from and to (inclusive),
// ordered by observation time ascending.
func (s *SQLiteStore) GetRange(ctx context.Context, loc weather.Location, from, to time.Time) ([]weather.Reading, error) {
	q := fmt.Sprintf(`
	SELECT %s FROM weather_observations
	WHERE city_name = ? AND country_code = ? AND ts_utc >= ? AND ts_utc <= ?
	ORDER BY ts_utc ASC`, readingColumns)

	rows, err := s.db.QueryContext(ctx, q, loc.City, loc.Country, from.UTC().Unix(), to.UTC().Unix())
	if err != nil {
		return nil, fmt.Errorf("query range: %w", err)
	}
	defer rows.Close()

	var readings []weather.Reading
	for rows.Next() {
		r, err := scanReading(rows)
		if err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		readings = append(readings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate observations: %w", err)
	}

	if len(readings) == 0 {
		return nil, ErrNotFound
	}
	return readings, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReading(row rowScanner) (weather.Reading, error) {
	var (
		r         weather.Reading
		lat, lon  sql.NullFloat64
		tsUTC     int64
		fetchedAt sql.NullInt64
		cond      string
	)

	err := row.Scan(
		&r.Location.City, &r.Location.Country, &lat, &lon, &tsUTC, &r.Timezone,
		&r.Temperature, &r.FeelsLike, &r.Humidity, &r.Pressure,
		&r.WindSpeed, &r.WindDir, &r.Clouds, &r.Visibility,
		&cond, &r.Description, &fetchedAt,
	)
	if err != nil {
		return weather.Reading{}, err
	}

	if lat.Valid {
		v := lat.Float64
		r.Location.Lat = &v
	}
	if lon.Valid {
		v := lon.Float64
		r.Location.Lon = &v
	}
	r.ObservedAt = time.Unix(tsUTC, 0).UTC()
	if fetchedAt.Valid {
		r.FetchedAt = time.Unix(fetchedAt.Int64, 0).UTC()
	}
	r.Condition = weather.Condition(cond)

	return r, nil
}

var _ weather.Store = (*SQLiteStore)(nil)
