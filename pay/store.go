/*
store.go - Persistence interface for trips and rate configuration

PURPOSE:
  Defines the boundary between the engine and whatever holds saved trips.
  The original tool keeps trips in browser key-value storage; here the
  contract is an interface so SQLite (production) and an in-memory map
  (tests/dev) are interchangeable.

KEY INTERFACES:
  TripStore: Save/load/delete trip records
  RateStore: Persist the active rate-table configuration (JSON)
  Store:     Both, plus Reset for scenario reloads

ORDERING:
  ListTrips makes no ordering promise. The calculator is order-independent
  and the ranking rule is stable under first-seen ties, so callers must
  not rely on storage order.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: Production SQLite
  - pay/store/memory.go:    In-memory for testing

SEE ALSO:
  - calculator.go: Consumes trips loaded through this interface
  - factory/rates.go: Parses the JSON that RateStore persists
*/
package pay

import "context"

// TripStore persists trip records.
type TripStore interface {
	// SaveTrip inserts or updates a trip. The store owns CreatedAt and
	// UpdatedAt: CreatedAt is set once and preserved across updates.
	SaveTrip(ctx context.Context, trip TripRecord) error

	// GetTrip returns the trip, or (nil, nil) when it does not exist.
	GetTrip(ctx context.Context, id string) (*TripRecord, error)

	// ListTrips returns all saved trips. No ordering guarantee.
	ListTrips(ctx context.Context) ([]TripRecord, error)

	// DeleteTrip removes a trip. Deleting a missing id is not an error.
	DeleteTrip(ctx context.Context, id string) error
}

// RateStore persists the active rate-table configuration as JSON.
type RateStore interface {
	// SaveRateTable stores (or replaces) the active configuration.
	SaveRateTable(ctx context.Context, configJSON string) error

	// LoadRateTable returns the stored configuration, or "" when none
	// has been saved and the caller should use the built-in default.
	LoadRateTable(ctx context.Context) (string, error)

	// RateTableVersion returns how many times the configuration has been
	// replaced, or 0 when none is stored.
	RateTableVersion(ctx context.Context) (int, error)
}

// Store is the full persistence surface the API layer depends on.
type Store interface {
	TripStore
	RateStore

	// Reset clears all data. Used by scenario loading.
	Reset(ctx context.Context) error
}
