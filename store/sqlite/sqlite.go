/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements pay.Store (trips + rate configuration) using SQLite. The
  original tool persisted trips in browser key-value storage; the same
  save/load/delete contract maps directly onto two small tables.

INTERFACES IMPLEMENTED:
  pay.TripStore: Trip record persistence
  pay.RateStore: Active rate-table configuration (JSON, versioned)

KEY TABLES:
  trips:       One row per saved candidate trip
  rate_tables: The active rate configuration, version bumped on replace

TIMESTAMPS:
  The store owns created_at/updated_at. created_at is written once and
  survives updates; updated_at is refreshed on every save.

DECIMALS:
  Decimal fields (purser hours, holiday hours, percentages) are stored as
  TEXT and re-parsed on load, so no precision is lost in the round trip.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety and WAL mode for better read
  concurrency. In production with PostgreSQL, database-level concurrency
  control handles this instead.

USAGE:
  store, err := sqlite.New("./data/trips.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - pay/store.go: Interface definitions
  - pay/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/skydeck/pay-engine/pay"
)

// Store implements pay.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Compile-time check that Store satisfies the full store surface.
var _ pay.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Saved candidate trips
	CREATE TABLE IF NOT EXISTS trips (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		pay_year TEXT NOT NULL DEFAULT '',
		trip_length_days INTEGER NOT NULL DEFAULT 1,
		credited_hours INTEGER NOT NULL DEFAULT 0,
		credited_minutes INTEGER NOT NULL DEFAULT 0,
		tafb_hours INTEGER NOT NULL DEFAULT 0,
		tafb_minutes INTEGER NOT NULL DEFAULT 0,
		white_flag BOOLEAN NOT NULL DEFAULT FALSE,
		purple_flag BOOLEAN NOT NULL DEFAULT FALSE,
		galley_pay_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		purser_pay_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		international_override BOOLEAN NOT NULL DEFAULT FALSE,
		international_pay_override BOOLEAN NOT NULL DEFAULT FALSE,
		language_pay_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		holiday_pay_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		purple_premium_label TEXT NOT NULL DEFAULT '',
		galley_hours INTEGER NOT NULL DEFAULT 0,
		galley_minutes INTEGER NOT NULL DEFAULT 0,
		aircraft_type TEXT NOT NULL DEFAULT '',
		purser_us_hours TEXT NOT NULL DEFAULT '0',
		purser_non_us_hours TEXT NOT NULL DEFAULT '0',
		holiday_hours TEXT NOT NULL DEFAULT '0',
		retirement_percentage TEXT NOT NULL DEFAULT '0',
		tax_rate_percentage TEXT NOT NULL DEFAULT '0',
		color TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_trips_created_at ON trips(created_at);

	-- Active rate configuration (single row, versioned on replace)
	CREATE TABLE IF NOT EXISTS rate_tables (
		id TEXT PRIMARY KEY,
		config_json TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

const tripColumns = `id, name, pay_year, trip_length_days,
	credited_hours, credited_minutes, tafb_hours, tafb_minutes,
	white_flag, purple_flag, galley_pay_enabled, purser_pay_enabled,
	international_override, international_pay_override, language_pay_enabled, holiday_pay_enabled,
	purple_premium_label, galley_hours, galley_minutes, aircraft_type,
	purser_us_hours, purser_non_us_hours, holiday_hours,
	retirement_percentage, tax_rate_percentage, color, created_at, updated_at`

// =============================================================================
// TRIP STORE (pay.TripStore interface)
// =============================================================================

// SaveTrip inserts or updates a trip. created_at is written once;
// updates refresh every other column plus updated_at.
func (s *Store) SaveTrip(ctx context.Context, trip pay.TripRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO trips (` + tripColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			pay_year = excluded.pay_year,
			trip_length_days = excluded.trip_length_days,
			credited_hours = excluded.credited_hours,
			credited_minutes = excluded.credited_minutes,
			tafb_hours = excluded.tafb_hours,
			tafb_minutes = excluded.tafb_minutes,
			white_flag = excluded.white_flag,
			purple_flag = excluded.purple_flag,
			galley_pay_enabled = excluded.galley_pay_enabled,
			purser_pay_enabled = excluded.purser_pay_enabled,
			international_override = excluded.international_override,
			international_pay_override = excluded.international_pay_override,
			language_pay_enabled = excluded.language_pay_enabled,
			holiday_pay_enabled = excluded.holiday_pay_enabled,
			purple_premium_label = excluded.purple_premium_label,
			galley_hours = excluded.galley_hours,
			galley_minutes = excluded.galley_minutes,
			aircraft_type = excluded.aircraft_type,
			purser_us_hours = excluded.purser_us_hours,
			purser_non_us_hours = excluded.purser_non_us_hours,
			holiday_hours = excluded.holiday_hours,
			retirement_percentage = excluded.retirement_percentage,
			tax_rate_percentage = excluded.tax_rate_percentage,
			color = excluded.color,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query,
		trip.ID, trip.Name, trip.PayYear, trip.TripLengthDays,
		trip.CreditedHours.Hours, trip.CreditedHours.Minutes,
		trip.TAFB.Hours, trip.TAFB.Minutes,
		trip.WhiteFlag, trip.PurpleFlag, trip.GalleyPayEnabled, trip.PurserPayEnabled,
		trip.InternationalOverride, trip.InternationalPayOverride,
		trip.LanguagePayEnabled, trip.HolidayPayEnabled,
		trip.PurpleFlagPremiumLabel,
		trip.GalleyHours.Hours, trip.GalleyHours.Minutes,
		trip.AircraftType,
		trip.PurserUSHours.String(), trip.PurserNonUSHours.String(),
		trip.HolidayHours.String(),
		trip.RetirementPercentage.String(), trip.TaxRatePercentage.String(),
		trip.Color, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save trip: %w", err)
	}
	return nil
}

// GetTrip retrieves a trip by ID. Returns (nil, nil) when missing.
func (s *Store) GetTrip(ctx context.Context, id string) (*pay.TripRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE id = ?`, id)

	trip, err := scanTrip(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// ListTrips returns all saved trips, oldest first.
func (s *Store) ListTrips(ctx context.Context) ([]pay.TripRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tripColumns+` FROM trips ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	var trips []pay.TripRecord
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, rows.Err()
}

// DeleteTrip removes a trip. Missing ids are not an error.
func (s *Store) DeleteTrip(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", id)
	return err
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTrip(row scanner) (pay.TripRecord, error) {
	var (
		trip                 pay.TripRecord
		purserUS, purserNon  string
		holidayHours         string
		retirementPct        string
		taxPct               string
		createdAt, updatedAt string
	)

	err := row.Scan(
		&trip.ID, &trip.Name, &trip.PayYear, &trip.TripLengthDays,
		&trip.CreditedHours.Hours, &trip.CreditedHours.Minutes,
		&trip.TAFB.Hours, &trip.TAFB.Minutes,
		&trip.WhiteFlag, &trip.PurpleFlag, &trip.GalleyPayEnabled, &trip.PurserPayEnabled,
		&trip.InternationalOverride, &trip.InternationalPayOverride,
		&trip.LanguagePayEnabled, &trip.HolidayPayEnabled,
		&trip.PurpleFlagPremiumLabel,
		&trip.GalleyHours.Hours, &trip.GalleyHours.Minutes,
		&trip.AircraftType,
		&purserUS, &purserNon, &holidayHours,
		&retirementPct, &taxPct, &trip.Color, &createdAt, &updatedAt,
	)
	if err != nil {
		return trip, err
	}

	trip.PurserUSHours = pay.ParseDecimal(purserUS)
	trip.PurserNonUSHours = pay.ParseDecimal(purserNon)
	trip.HolidayHours = pay.ParseDecimal(holidayHours)
	trip.RetirementPercentage = pay.ParseDecimal(retirementPct)
	trip.TaxRatePercentage = pay.ParseDecimal(taxPct)
	trip.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	trip.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return trip, nil
}

// =============================================================================
// RATE STORE (pay.RateStore interface)
// =============================================================================

// activeRateID keys the single active configuration row.
const activeRateID = "active"

// SaveRateTable stores (or replaces) the active rate configuration,
// bumping the version on replace.
func (s *Store) SaveRateTable(ctx context.Context, configJSON string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO rate_tables (id, config_json, version, created_at, updated_at)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			config_json = excluded.config_json,
			version = rate_tables.version + 1,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query, activeRateID, configJSON, now, now)
	return err
}

// LoadRateTable returns the stored configuration JSON, or "" when none
// has been saved yet.
func (s *Store) LoadRateTable(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var configJSON string
	err := s.db.QueryRowContext(ctx,
		"SELECT config_json FROM rate_tables WHERE id = ?", activeRateID,
	).Scan(&configJSON)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return configJSON, nil
}

// RateTableVersion returns the version of the active configuration,
// or 0 when none is stored.
func (s *Store) RateTableVersion(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var version int
	err := s.db.QueryRowContext(ctx,
		"SELECT version FROM rate_tables WHERE id = ?", activeRateID,
	).Scan(&version)

	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return version, nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"trips", "rate_tables"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
