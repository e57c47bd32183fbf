package factory_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skydeck/pay-engine/factory"
	"github.com/skydeck/pay-engine/pay"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// =============================================================================
// JSON PARSING AND VALIDATION
// =============================================================================

func TestParseRateTable_ValidConfig(t *testing.T) {
	configJSON := `{
		"pay_rates_by_year": {
			"Year 1": {"base_rate": 30.00, "flag_rate": 45.00}
		},
		"purser_rates_by_aircraft": {
			"Narrow1": {"us_rate": 3.25, "non_us_rate": 4.25}
		},
		"flag_multipliers": {"white": 1.5, "purple": {"1.5": 1.5}},
		"galley_rate": 2.00,
		"language_rate": 2.50,
		"holiday_multiplier": 1.5,
		"domestic_per_diem": 2.40,
		"international_per_diem": 2.90
	}`

	table, err := factory.ParseRateTable(configJSON)
	require.NoError(t, err)

	year, fellBack := table.LookupPayYear("Year 1")
	assert.False(t, fellBack)
	assert.True(t, year.BaseRate.Equal(dec("30")))
	assert.True(t, table.DomesticPerDiem.Equal(dec("2.4")))
}

func TestParseRateTable_MalformedJSON(t *testing.T) {
	_, err := factory.ParseRateTable("{not json")
	assert.Error(t, err)
}

func TestLoadRateTableFile(t *testing.T) {
	// GIVEN: The default table written out as a JSON file
	// WHEN: Loading it via the -rates startup path
	// THEN: The parsed table carries the file's rates

	rj := factory.ToJSON(factory.Default())
	rj.PayRatesByYear["Year 1"] = factory.YearRatesJSON{BaseRate: 31.11, FlagRate: 46.67}
	data, err := json.Marshal(rj)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "rates.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	table, err := factory.LoadRateTableFile(path)
	require.NoError(t, err)
	year, _ := table.LookupPayYear("Year 1")
	assert.True(t, year.BaseRate.Equal(dec("31.11")))
}

func TestLoadRateTableFile_MissingFile(t *testing.T) {
	_, err := factory.LoadRateTableFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestFromJSON_RejectsTableWithoutFallbackEntries(t *testing.T) {
	// The engine's fallback contract resolves unknown keys to "Year 1"
	// and "Narrow1"; a table missing either cannot honor it.
	rj := factory.RateTableJSON{
		PayRatesByYear: map[string]factory.YearRatesJSON{
			"Year 2": {BaseRate: 30, FlagRate: 45},
		},
		PurserRatesByAircraft: map[string]factory.PurserRatesJSON{
			"Narrow1": {USRate: 3, NonUSRate: 4},
		},
	}
	_, err := factory.FromJSON(rj)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), pay.DefaultPayYear)

	rj = factory.RateTableJSON{
		PayRatesByYear: map[string]factory.YearRatesJSON{
			"Year 1": {BaseRate: 30, FlagRate: 45},
		},
		PurserRatesByAircraft: map[string]factory.PurserRatesJSON{
			"Wide": {USRate: 5.5, NonUSRate: 6.5},
		},
	}
	_, err = factory.FromJSON(rj)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), pay.DefaultAircraft)
}

func TestToJSON_RoundTripsDefault(t *testing.T) {
	table := factory.Default()

	rj := factory.ToJSON(table)
	back, err := factory.FromJSON(rj)
	require.NoError(t, err)

	assert.Len(t, back.PayRatesByYear, len(table.PayRatesByYear))
	year, _ := back.LookupPayYear("Year 13+")
	assert.True(t, year.BaseRate.Equal(dec("67.22")))
	assert.True(t, back.Flags.White.Equal(table.Flags.White))
}

// =============================================================================
// DEFAULT TABLE
// =============================================================================

func TestDefault_ContractRates(t *testing.T) {
	table := factory.Default()

	year, fellBack := table.LookupPayYear("Year 1")
	assert.False(t, fellBack)
	assert.True(t, year.BaseRate.Equal(dec("28.88")))
	assert.True(t, year.FlagRate.Equal(dec("43.32")))

	purser, fellBack := table.LookupPurserRates(pay.AircraftWide)
	assert.False(t, fellBack)
	assert.True(t, purser.USRate.Equal(dec("5.5")))
	assert.True(t, purser.NonUSRate.Equal(dec("6.5")))

	assert.True(t, table.Flags.White.Equal(dec("1.5")))
	assert.True(t, table.GalleyRate.Equal(dec("2")))
	assert.True(t, table.LanguageRate.Equal(dec("2.5")))
}

func TestDefault_ReturnsFreshTablePerCall(t *testing.T) {
	// Handlers treat the table as immutable; a mutation through one
	// reference must not leak into later Default() calls.
	a := factory.Default()
	a.PayRatesByYear["Year 1"] = pay.YearRates{}

	b := factory.Default()
	year, _ := b.LookupPayYear("Year 1")
	assert.True(t, year.BaseRate.Equal(dec("28.88")))
}
