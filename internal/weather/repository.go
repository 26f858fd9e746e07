package weather

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/oakmere/weathervane/internal/opt"
)

// Repository defines the persistence contract for locations and records.
// Reads that can legitimately find nothing return an opt.Opt rather than a
// nil pointer or empty slice, so callers can tell an empty answer from a
// miss without inspecting collection sizes.
type Repository interface {
	CreateLocation(ctx context.Context, name string, lat, lon, asl float64) (int64, error)
	Location(ctx context.Context, id int64) (opt.Opt[Location], error)
	Locations(ctx context.Context) (opt.Opt[[]Location], error)
	LocationsByName(ctx context.Context, term string) (opt.Opt[[]Location], error)

	CreateRecord(ctx context.Context, rec Record) (int64, error)
	Record(ctx context.Context, id int64) (opt.Opt[Record], error)
	RecordAt(ctx context.Context, locID int64, ts Timestamp) (opt.Opt[Record], error)
	Records(ctx context.Context) (opt.Opt[[]Record], error)
	RecordsFor(ctx context.Context, locID int64) (opt.Opt[[]Record], error)
	RecordsBetween(ctx context.Context, locID int64, from, to Timestamp) (opt.Opt[[]Record], error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed weather repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// CreateLocation inserts a new location and returns its assigned ID.
// Returns ErrEmptyName when the name is blank.
func (r *SQLiteRepository) CreateLocation(ctx context.Context, name string, lat, lon, asl float64) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, ErrEmptyName
	}
	const query = `INSERT INTO locations (name, lat, lon, asl) VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, name, lat, lon, asl)
	if err != nil {
		return 0, fmt.Errorf("inserting location %q: %w", name, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new location id: %w", err)
	}
	return id, nil
}

// Location returns a single location by ID, or absent if no row matches.
func (r *SQLiteRepository) Location(ctx context.Context, id int64) (opt.Opt[Location], error) {
	const query = `SELECT loc_id, name, lat, lon, asl FROM locations WHERE loc_id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var l Location
	err := row.Scan(&l.LocID, &l.Name, &l.Lat, &l.Lon, &l.Asl)
	if errors.Is(err, sql.ErrNoRows) {
		return opt.None[Location](), nil
	}
	if err != nil {
		return opt.None[Location](), fmt.Errorf("scanning location %d: %w", id, err)
	}
	return opt.Some(l), nil
}

// Locations returns every location, or absent if the table is empty.
// Row order is unspecified.
func (r *SQLiteRepository) Locations(ctx context.Context) (opt.Opt[[]Location], error) {
	const query = `SELECT loc_id, name, lat, lon, asl FROM locations`
	return r.queryLocations(ctx, query)
}

// LocationsByName returns locations whose name contains the search term
// anywhere, or absent when nothing matches. Case sensitivity follows the
// engine default for LIKE.
func (r *SQLiteRepository) LocationsByName(ctx context.Context, term string) (opt.Opt[[]Location], error) {
	const query = `SELECT loc_id, name, lat, lon, asl FROM locations WHERE name LIKE ?`
	return r.queryLocations(ctx, query, "%"+term+"%")
}

// CreateRecord inserts a new observation and returns its assigned ID.
// Returns ErrUnknownLocation when the referenced location does not exist.
func (r *SQLiteRepository) CreateRecord(ctx context.Context, rec Record) (int64, error) {
	const query = `INSERT INTO records (loc_id, ts, temperature, humidity, wind_speed, wind_direction)
		VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		rec.LocID, rec.Date.String(), rec.Temperature, rec.Humidity, rec.WindSpeed, rec.WindDirection)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("location %d: %w", rec.LocID, ErrUnknownLocation)
		}
		return 0, fmt.Errorf("inserting record for location %d: %w", rec.LocID, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new record id: %w", err)
	}
	return id, nil
}

// Record returns a single observation by ID, or absent on a miss.
func (r *SQLiteRepository) Record(ctx context.Context, id int64) (opt.Opt[Record], error) {
	const query = `SELECT record_id, loc_id, ts, temperature, humidity, wind_speed, wind_direction
		FROM records WHERE record_id = ?`
	return r.queryOneRecord(ctx, query, id)
}

// RecordAt returns the observation for a location at an exact timestamp,
// or absent on a miss.
func (r *SQLiteRepository) RecordAt(ctx context.Context, locID int64, ts Timestamp) (opt.Opt[Record], error) {
	const query = `SELECT record_id, loc_id, ts, temperature, humidity, wind_speed, wind_direction
		FROM records WHERE loc_id = ? AND ts = ?`
	return r.queryOneRecord(ctx, query, locID, ts.String())
}

// Records returns every observation, or absent if the table is empty.
func (r *SQLiteRepository) Records(ctx context.Context) (opt.Opt[[]Record], error) {
	const query = `SELECT record_id, loc_id, ts, temperature, humidity, wind_speed, wind_direction
		FROM records`
	return r.queryRecords(ctx, query)
}

// RecordsFor returns every observation at a location, or absent if there
// are none.
func (r *SQLiteRepository) RecordsFor(ctx context.Context, locID int64) (opt.Opt[[]Record], error) {
	const query = `SELECT record_id, loc_id, ts, temperature, humidity, wind_speed, wind_direction
		FROM records WHERE loc_id = ?`
	return r.queryRecords(ctx, query, locID)
}

// RecordsBetween returns observations at a location with from <= ts <= to,
// inclusive on both bounds, or absent if there are none.
func (r *SQLiteRepository) RecordsBetween(ctx context.Context, locID int64, from, to Timestamp) (opt.Opt[[]Record], error) {
	const query = `SELECT record_id, loc_id, ts, temperature, humidity, wind_speed, wind_direction
		FROM records WHERE loc_id = ? AND ts BETWEEN ? AND ?`
	return r.queryRecords(ctx, query, locID, from.String(), to.String())
}

// queryLocations executes a query and wraps the result set in an Opt.
func (r *SQLiteRepository) queryLocations(ctx context.Context, query string, args ...any) (opt.Opt[[]Location], error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return opt.None[[]Location](), fmt.Errorf("querying locations: %w", err)
	}
	defer rows.Close()

	var locations []Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.LocID, &l.Name, &l.Lat, &l.Lon, &l.Asl); err != nil {
			return opt.None[[]Location](), fmt.Errorf("scanning location row: %w", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return opt.None[[]Location](), fmt.Errorf("iterating location rows: %w", err)
	}
	if len(locations) == 0 {
		return opt.None[[]Location](), nil
	}
	return opt.Some(locations), nil
}

// queryOneRecord executes a single-row record query and wraps the result in
// an Opt.
func (r *SQLiteRepository) queryOneRecord(ctx context.Context, query string, args ...any) (opt.Opt[Record], error) {
	row := r.db.QueryRowContext(ctx, query, args...)
	rec, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return opt.None[Record](), nil
	}
	if err != nil {
		return opt.None[Record](), fmt.Errorf("scanning record: %w", err)
	}
	return opt.Some(rec), nil
}

// queryRecords executes a query and wraps the result set in an Opt.
func (r *SQLiteRepository) queryRecords(ctx context.Context, query string, args ...any) (opt.Opt[[]Record], error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return opt.None[[]Record](), fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return opt.None[[]Record](), fmt.Errorf("scanning record row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return opt.None[[]Record](), fmt.Errorf("iterating record rows: %w", err)
	}
	if len(records) == 0 {
		return opt.None[[]Record](), nil
	}
	return opt.Some(records), nil
}

// scanRecord scans one record row through the given Scan function.
// The ts column is stored as wire-format TEXT and parsed here.
func scanRecord(scan func(dest ...any) error) (Record, error) {
	var rec Record
	var ts string
	err := scan(&rec.RecordID, &rec.LocID, &ts,
		&rec.Temperature, &rec.Humidity, &rec.WindSpeed, &rec.WindDirection)
	if err != nil {
		return Record{}, err
	}
	parsed, err := ParseTimestamp(ts)
	if err != nil {
		return Record{}, fmt.Errorf("stored timestamp: %w", err)
	}
	rec.Date = parsed
	return rec, nil
}

// isForeignKeyViolation reports whether err is a SQLite foreign-key
// constraint failure.
func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrConstraint &&
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
}
