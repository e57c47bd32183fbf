package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skydeck/pay-engine/pay"
	"github.com/skydeck/pay-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleTrip(id string) pay.TripRecord {
	return pay.TripRecord{
		ID:                     id,
		Name:                   "LAX Turn",
		PayYear:                "Year 4",
		TripLengthDays:         3,
		CreditedHours:          pay.Clock{Hours: 16, Minutes: 45},
		TAFB:                   pay.Clock{Hours: 62, Minutes: 30},
		WhiteFlag:              true,
		PurserPayEnabled:       true,
		PurpleFlagPremiumLabel: "2",
		GalleyHours:            pay.Clock{Hours: 8},
		AircraftType:           pay.AircraftNarrow2,
		PurserUSHours:          decimal.RequireFromString("10.5"),
		PurserNonUSHours:       decimal.RequireFromString("6.25"),
		HolidayHours:           decimal.RequireFromString("4"),
		RetirementPercentage:   decimal.RequireFromString("6"),
		TaxRatePercentage:      decimal.RequireFromString("22"),
		Color:                  "#43aa8b",
	}
}

// =============================================================================
// TRIP PERSISTENCE
// =============================================================================

func TestStore_SaveAndGetTrip(t *testing.T) {
	// GIVEN: A trip with every field populated
	// WHEN: Saving and reading it back
	// THEN: All fields survive the round trip, decimals included

	store := newTestStore(t)
	ctx := context.Background()

	trip := sampleTrip("trip-1")
	require.NoError(t, store.SaveTrip(ctx, trip))

	got, err := store.GetTrip(ctx, "trip-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, trip.Name, got.Name)
	assert.Equal(t, trip.PayYear, got.PayYear)
	assert.Equal(t, trip.TripLengthDays, got.TripLengthDays)
	assert.Equal(t, trip.CreditedHours, got.CreditedHours)
	assert.Equal(t, trip.TAFB, got.TAFB)
	assert.Equal(t, trip.WhiteFlag, got.WhiteFlag)
	assert.Equal(t, trip.PurserPayEnabled, got.PurserPayEnabled)
	assert.Equal(t, trip.AircraftType, got.AircraftType)
	assert.Equal(t, trip.Color, got.Color)
	assert.True(t, got.PurserUSHours.Equal(trip.PurserUSHours))
	assert.True(t, got.PurserNonUSHours.Equal(trip.PurserNonUSHours))
	assert.True(t, got.RetirementPercentage.Equal(trip.RetirementPercentage))
	assert.False(t, got.CreatedAt.IsZero(), "store assigns created_at")
	assert.False(t, got.UpdatedAt.IsZero(), "store assigns updated_at")
}

func TestStore_GetTrip_MissingReturnsNilNil(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetTrip(context.Background(), "nope")

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_SaveTrip_UpsertPreservesCreatedAt(t *testing.T) {
	// GIVEN: A saved trip
	// WHEN: Saving again under the same id with new fields
	// THEN: created_at is unchanged, updated_at moves, fields are replaced

	store := newTestStore(t)
	ctx := context.Background()

	trip := sampleTrip("trip-1")
	require.NoError(t, store.SaveTrip(ctx, trip))
	first, err := store.GetTrip(ctx, "trip-1")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	trip.Name = "LAX Turn (edited)"
	trip.TripLengthDays = 4
	require.NoError(t, store.SaveTrip(ctx, trip))

	second, err := store.GetTrip(ctx, "trip-1")
	require.NoError(t, err)
	assert.Equal(t, "LAX Turn (edited)", second.Name)
	assert.Equal(t, 4, second.TripLengthDays)
	assert.True(t, second.CreatedAt.Equal(first.CreatedAt), "created_at must survive edits")
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt) || second.UpdatedAt.Equal(first.UpdatedAt))

	trips, err := store.ListTrips(ctx)
	require.NoError(t, err)
	assert.Len(t, trips, 1, "upsert must not duplicate")
}

func TestStore_ListTrips_OrderedByCreation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.SaveTrip(ctx, sampleTrip(id)))
		time.Sleep(5 * time.Millisecond)
	}

	trips, err := store.ListTrips(ctx)
	require.NoError(t, err)
	require.Len(t, trips, 3)
	assert.Equal(t, "a", trips[0].ID)
	assert.Equal(t, "b", trips[1].ID)
	assert.Equal(t, "c", trips[2].ID)
}

func TestStore_DeleteTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTrip(ctx, sampleTrip("trip-1")))
	require.NoError(t, store.DeleteTrip(ctx, "trip-1"))

	got, err := store.GetTrip(ctx, "trip-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting a missing trip is not an error
	assert.NoError(t, store.DeleteTrip(ctx, "trip-1"))
}

// =============================================================================
// RATE TABLE PERSISTENCE
// =============================================================================

func TestStore_RateTable_SaveLoadAndVersion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Nothing stored yet
	config, err := store.LoadRateTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", config)

	require.NoError(t, store.SaveRateTable(ctx, `{"v":1}`))
	config, err = store.LoadRateTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, config)

	v1, err := store.RateTableVersion(ctx)
	require.NoError(t, err)

	// Replacing bumps the version
	require.NoError(t, store.SaveRateTable(ctx, `{"v":2}`))
	config, err = store.LoadRateTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, config)

	v2, err := store.RateTableVersion(ctx)
	require.NoError(t, err)
	assert.Greater(t, v2, v1)
}

func TestStore_Reset_WipesEverything(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTrip(ctx, sampleTrip("trip-1")))
	require.NoError(t, store.SaveRateTable(ctx, `{"v":1}`))

	require.NoError(t, store.Reset(ctx))

	trips, err := store.ListTrips(ctx)
	require.NoError(t, err)
	assert.Empty(t, trips)

	config, err := store.LoadRateTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", config)
}
