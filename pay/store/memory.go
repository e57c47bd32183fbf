// Package store provides Store implementations.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/skydeck/pay-engine/pay"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu          sync.RWMutex
	trips       map[string]pay.TripRecord
	rateConfig  string
	rateVersion int
}

func NewMemory() *Memory {
	return &Memory{trips: make(map[string]pay.TripRecord)}
}

// SaveTrip inserts or updates a trip. CreatedAt survives updates.
func (m *Memory) SaveTrip(_ context.Context, trip pay.TripRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := m.trips[trip.ID]; ok {
		trip.CreatedAt = existing.CreatedAt
	} else {
		trip.CreatedAt = now
	}
	trip.UpdatedAt = now
	m.trips[trip.ID] = trip
	return nil
}

func (m *Memory) GetTrip(_ context.Context, id string) (*pay.TripRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	trip, ok := m.trips[id]
	if !ok {
		return nil, nil
	}
	return &trip, nil
}

func (m *Memory) ListTrips(_ context.Context) ([]pay.TripRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]pay.TripRecord, 0, len(m.trips))
	for _, trip := range m.trips {
		result = append(result, trip)
	}
	return result, nil
}

func (m *Memory) DeleteTrip(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.trips, id)
	return nil
}

func (m *Memory) SaveRateTable(_ context.Context, configJSON string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rateConfig = configJSON
	m.rateVersion++
	return nil
}

func (m *Memory) LoadRateTable(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.rateConfig, nil
}

func (m *Memory) RateTableVersion(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.rateVersion, nil
}

func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.trips = make(map[string]pay.TripRecord)
	m.rateConfig = ""
	m.rateVersion = 0
	return nil
}

// Compile-time check that Memory satisfies the full store surface.
var _ pay.Store = (*Memory)(nil)
