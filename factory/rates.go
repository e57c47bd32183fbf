/*
Package factory provides JSON to Go rate-table conversion.

PURPOSE:
  Converts JSON rate-table definitions into pay.RateTable values. This
  enables rate configuration without code changes - a new contract year's
  rates can be loaded from a file or stored row, and the engine never
  knows the difference from the built-in default.

WHY JSON?
  - Non-developers can update contract rates
  - Easy integration with an admin UI
  - Version control for rate definitions
  - Database storage of the active table

JSON SCHEMA:
  {
    "pay_rates_by_year": {
      "Year 1": {"base_rate": 28.88, "flag_rate": 43.32},
      ...
    },
    "purser_rates_by_aircraft": {
      "Narrow1": {"us_rate": 3.00, "non_us_rate": 4.00},
      ...
    },
    "flag_multipliers": {
      "white": 1.5,
      "purple": {"1.5": 1.5, "2": 2, "3": 3}
    },
    "galley_rate": 2.00,
    "language_rate": 2.50,
    "holiday_multiplier": 1.5,
    "domestic_per_diem": 2.40,
    "international_per_diem": 2.90
  }

VALIDATION:
  A table without the "Year 1" entry is rejected here: that entry is the
  universal lookup fallback, and loading a table that cannot honor the
  fallback contract would push failures into the engine, which by design
  has none.

USAGE:
  table, err := factory.ParseRateTable(jsonStr)
  if err != nil {
      table = factory.Default()
  }
  breakdown := pay.Calculate(trip, table)

SEE ALSO:
  - pay/rates.go: RateTable type and lookup contract
  - store/sqlite/sqlite.go: Persists the JSON form
*/
package factory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/skydeck/pay-engine/pay"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// RateTableJSON is the JSON representation of a rate table.
type RateTableJSON struct {
	PayRatesByYear        map[string]YearRatesJSON   `json:"pay_rates_by_year"`
	PurserRatesByAircraft map[string]PurserRatesJSON `json:"purser_rates_by_aircraft"`
	FlagMultipliers       FlagMultipliersJSON        `json:"flag_multipliers"`
	GalleyRate            float64                    `json:"galley_rate"`
	LanguageRate          float64                    `json:"language_rate"`
	HolidayMultiplier     float64                    `json:"holiday_multiplier"`
	DomesticPerDiem       float64                    `json:"domestic_per_diem"`
	InternationalPerDiem  float64                    `json:"international_per_diem"`
}

// YearRatesJSON represents one seniority year's rates.
type YearRatesJSON struct {
	BaseRate float64 `json:"base_rate"`
	FlagRate float64 `json:"flag_rate"`
}

// PurserRatesJSON represents one aircraft class's purser rates.
type PurserRatesJSON struct {
	USRate    float64 `json:"us_rate"`
	NonUSRate float64 `json:"non_us_rate"`
}

// FlagMultipliersJSON represents the premium multipliers.
type FlagMultipliersJSON struct {
	White  float64            `json:"white"`
	Purple map[string]float64 `json:"purple"`
}

// =============================================================================
// CONVERSION
// =============================================================================

// ParseRateTable parses a JSON string into a RateTable.
func ParseRateTable(jsonStr string) (*pay.RateTable, error) {
	var rj RateTableJSON
	if err := json.Unmarshal([]byte(jsonStr), &rj); err != nil {
		return nil, fmt.Errorf("failed to parse rate table JSON: %w", err)
	}
	return FromJSON(rj)
}

// LoadRateTableFile reads a rate table from a JSON file on disk, for the
// -rates startup flag.
func LoadRateTableFile(path string) (*pay.RateTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate table file: %w", err)
	}
	return ParseRateTable(string(data))
}

// FromJSON converts RateTableJSON to a pay.RateTable.
func FromJSON(rj RateTableJSON) (*pay.RateTable, error) {
	if _, ok := rj.PayRatesByYear[pay.DefaultPayYear]; !ok {
		return nil, fmt.Errorf("rate table missing required %q entry", pay.DefaultPayYear)
	}
	if _, ok := rj.PurserRatesByAircraft[pay.DefaultAircraft]; !ok {
		return nil, fmt.Errorf("rate table missing required %q purser entry", pay.DefaultAircraft)
	}

	table := &pay.RateTable{
		PayRatesByYear:        make(map[string]pay.YearRates, len(rj.PayRatesByYear)),
		PurserRatesByAircraft: make(map[string]pay.PurserRates, len(rj.PurserRatesByAircraft)),
		Flags: pay.FlagMultipliers{
			White:  decimal.NewFromFloat(rj.FlagMultipliers.White),
			Purple: make(map[string]decimal.Decimal, len(rj.FlagMultipliers.Purple)),
		},
		GalleyRate:           decimal.NewFromFloat(rj.GalleyRate),
		LanguageRate:         decimal.NewFromFloat(rj.LanguageRate),
		HolidayMultiplier:    decimal.NewFromFloat(rj.HolidayMultiplier),
		DomesticPerDiem:      decimal.NewFromFloat(rj.DomesticPerDiem),
		InternationalPerDiem: decimal.NewFromFloat(rj.InternationalPerDiem),
	}

	for label, yr := range rj.PayRatesByYear {
		table.PayRatesByYear[label] = pay.YearRates{
			BaseRate: decimal.NewFromFloat(yr.BaseRate),
			FlagRate: decimal.NewFromFloat(yr.FlagRate),
		}
	}
	for aircraft, pr := range rj.PurserRatesByAircraft {
		table.PurserRatesByAircraft[aircraft] = pay.PurserRates{
			USRate:    decimal.NewFromFloat(pr.USRate),
			NonUSRate: decimal.NewFromFloat(pr.NonUSRate),
		}
	}
	for label, mult := range rj.FlagMultipliers.Purple {
		table.Flags.Purple[label] = decimal.NewFromFloat(mult)
	}

	return table, nil
}

// ToJSON converts a RateTable back to its JSON form.
func ToJSON(table *pay.RateTable) RateTableJSON {
	rj := RateTableJSON{
		PayRatesByYear:        make(map[string]YearRatesJSON, len(table.PayRatesByYear)),
		PurserRatesByAircraft: make(map[string]PurserRatesJSON, len(table.PurserRatesByAircraft)),
		FlagMultipliers: FlagMultipliersJSON{
			White:  f64(table.Flags.White),
			Purple: make(map[string]float64, len(table.Flags.Purple)),
		},
		GalleyRate:           f64(table.GalleyRate),
		LanguageRate:         f64(table.LanguageRate),
		HolidayMultiplier:    f64(table.HolidayMultiplier),
		DomesticPerDiem:      f64(table.DomesticPerDiem),
		InternationalPerDiem: f64(table.InternationalPerDiem),
	}

	for label, yr := range table.PayRatesByYear {
		rj.PayRatesByYear[label] = YearRatesJSON{
			BaseRate: f64(yr.BaseRate),
			FlagRate: f64(yr.FlagRate),
		}
	}
	for aircraft, pr := range table.PurserRatesByAircraft {
		rj.PurserRatesByAircraft[aircraft] = PurserRatesJSON{
			USRate:    f64(pr.USRate),
			NonUSRate: f64(pr.NonUSRate),
		}
	}
	for label, mult := range table.Flags.Purple {
		rj.FlagMultipliers.Purple[label] = f64(mult)
	}

	return rj
}

func f64(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// =============================================================================
// DEFAULT TABLE - Current contract rates
// =============================================================================

// Default returns the built-in rate table, used whenever no configuration
// has been stored. Thirteen seniority steps with a top-out at "Year 13+",
// flag rates at 1.5x base, and the standard hourly per-diem split.
func Default() *pay.RateTable {
	table, err := FromJSON(defaultJSON())
	if err != nil {
		// The default table is a compile-time constant; failing to build
		// it is a programming error, not a runtime condition.
		panic(fmt.Sprintf("invalid built-in rate table: %v", err))
	}
	return table
}

func defaultJSON() RateTableJSON {
	return RateTableJSON{
		PayRatesByYear: map[string]YearRatesJSON{
			"Year 1":   {BaseRate: 28.88, FlagRate: 43.32},
			"Year 2":   {BaseRate: 30.52, FlagRate: 45.78},
			"Year 3":   {BaseRate: 32.21, FlagRate: 48.32},
			"Year 4":   {BaseRate: 33.95, FlagRate: 50.93},
			"Year 5":   {BaseRate: 35.74, FlagRate: 53.61},
			"Year 6":   {BaseRate: 38.12, FlagRate: 57.18},
			"Year 7":   {BaseRate: 40.65, FlagRate: 60.98},
			"Year 8":   {BaseRate: 43.34, FlagRate: 65.01},
			"Year 9":   {BaseRate: 46.21, FlagRate: 69.32},
			"Year 10":  {BaseRate: 49.27, FlagRate: 73.91},
			"Year 11":  {BaseRate: 52.54, FlagRate: 78.81},
			"Year 12":  {BaseRate: 56.02, FlagRate: 84.03},
			"Year 13+": {BaseRate: 67.22, FlagRate: 100.83},
		},
		PurserRatesByAircraft: map[string]PurserRatesJSON{
			pay.AircraftNarrow1: {USRate: 3.00, NonUSRate: 4.00},
			pay.AircraftNarrow2: {USRate: 4.00, NonUSRate: 5.00},
			pay.AircraftWide:    {USRate: 5.50, NonUSRate: 6.50},
		},
		FlagMultipliers: FlagMultipliersJSON{
			White:  1.5,
			Purple: map[string]float64{"1.5": 1.5, "2": 2, "3": 3},
		},
		GalleyRate:           2.00,
		LanguageRate:         2.50,
		HolidayMultiplier:    1.5,
		DomesticPerDiem:      2.40,
		InternationalPerDiem: 2.90,
	}
}
