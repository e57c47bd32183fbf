package pay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skydeck/pay-engine/factory"
	"github.com/skydeck/pay-engine/pay"
)

// =============================================================================
// LOOKUP FALLBACK CONTRACT
// =============================================================================

func TestLookupPayYear_KnownLabel(t *testing.T) {
	rates := factory.Default()

	year, fellBack := rates.LookupPayYear("Year 5")

	assert.False(t, fellBack)
	assert.True(t, year.BaseRate.Equal(dec("35.74")))
	assert.True(t, year.FlagRate.Equal(dec("53.61")))
}

func TestLookupPayYear_UnknownLabelFallsBack(t *testing.T) {
	rates := factory.Default()

	year, fellBack := rates.LookupPayYear("Year 40")

	assert.True(t, fellBack)
	assert.True(t, year.BaseRate.Equal(dec("28.88")), "Year 1 rates apply")
}

func TestLookupPayYear_EmptyLabelFallsBack(t *testing.T) {
	rates := factory.Default()

	_, fellBack := rates.LookupPayYear("")

	assert.True(t, fellBack)
}

func TestLookupPurserRates_UnknownAircraftFallsBack(t *testing.T) {
	rates := factory.Default()

	purser, fellBack := rates.LookupPurserRates("A380")

	assert.True(t, fellBack)
	assert.True(t, purser.USRate.Equal(dec("3")), "Narrow1 rates apply")
	assert.True(t, purser.NonUSRate.Equal(dec("4")))
}

func TestLookupPurpleMultiplier(t *testing.T) {
	rates := factory.Default()

	// Known label
	mult, fellBack := rates.LookupPurpleMultiplier("3")
	assert.False(t, fellBack)
	assert.True(t, mult.Equal(dec("3")))

	// Empty label resolves to the default premium, not a fallback
	mult, fellBack = rates.LookupPurpleMultiplier("")
	assert.False(t, fellBack)
	assert.True(t, mult.Equal(dec("1.5")))

	// Unknown label is neutral
	mult, fellBack = rates.LookupPurpleMultiplier("4.5")
	assert.True(t, fellBack)
	assert.True(t, mult.Equal(dec("1")))
}

// =============================================================================
// DEFAULT TABLE SHAPE
// =============================================================================

func TestDefaultTable_CarriesFallbackEntries(t *testing.T) {
	rates := factory.Default()

	_, ok := rates.PayRatesByYear[pay.DefaultPayYear]
	assert.True(t, ok, "table must carry the %s entry", pay.DefaultPayYear)

	_, ok = rates.PurserRatesByAircraft[pay.DefaultAircraft]
	assert.True(t, ok, "table must carry the %s entry", pay.DefaultAircraft)

	assert.Len(t, rates.PayRatesByYear, 13)
	assert.True(t, rates.DomesticPerDiem.Equal(dec("2.40")))
	assert.True(t, rates.InternationalPerDiem.Equal(dec("2.90")))
}
