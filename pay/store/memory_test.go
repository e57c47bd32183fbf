package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skydeck/pay-engine/pay"
	"github.com/skydeck/pay-engine/pay/store"
)

func TestMemory_TripLifecycle(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	trip := pay.TripRecord{ID: "t1", Name: "SFO Turn", PayYear: "Year 2", TripLengthDays: 2}
	require.NoError(t, m.SaveTrip(ctx, trip))

	got, err := m.GetTrip(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "SFO Turn", got.Name)
	assert.False(t, got.CreatedAt.IsZero())

	// Update keeps created_at
	trip.Name = "SFO Turn v2"
	require.NoError(t, m.SaveTrip(ctx, trip))
	updated, err := m.GetTrip(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "SFO Turn v2", updated.Name)
	assert.True(t, updated.CreatedAt.Equal(got.CreatedAt))

	require.NoError(t, m.DeleteTrip(ctx, "t1"))
	gone, err := m.GetTrip(ctx, "t1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestMemory_GetTrip_ReturnsCopy(t *testing.T) {
	// Mutating a returned record must not reach the stored one.
	m := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, m.SaveTrip(ctx, pay.TripRecord{ID: "t1", Name: "Original"}))

	got, err := m.GetTrip(ctx, "t1")
	require.NoError(t, err)
	got.Name = "Mutated"

	again, err := m.GetTrip(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Original", again.Name)
}

func TestMemory_RateTableAndReset(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	config, err := m.LoadRateTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", config)

	version, err := m.RateTableVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, version, "version is 0 until a table is stored")

	require.NoError(t, m.SaveRateTable(ctx, `{"v":1}`))
	config, err = m.LoadRateTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, config)

	require.NoError(t, m.SaveRateTable(ctx, `{"v":2}`))
	version, err = m.RateTableVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, version, "each replace bumps the version")

	require.NoError(t, m.SaveTrip(ctx, pay.TripRecord{ID: "t1"}))
	require.NoError(t, m.Reset(ctx))

	trips, err := m.ListTrips(ctx)
	require.NoError(t, err)
	assert.Empty(t, trips)

	config, err = m.LoadRateTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", config)

	version, err = m.RateTableVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, version, "reset clears the version")
}
