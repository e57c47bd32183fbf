/*
rates.go - Rate table lookups with fallback

PURPOSE:
  Defines the static pay-policy data the calculator reads: base/flag rates
  per seniority year, purser rates per aircraft class, flag multipliers,
  and the flat-rate scalars (galley, language, per diem). Pure data with
  lookup-with-fallback behavior and nothing else.

FALLBACK CONTRACT:
  A single malformed trip must never crash the batch calculation of a
  trip list, so no lookup here can fail:
  - Unknown pay year     -> the "Year 1" entry
  - Unknown aircraft     -> the "Narrow1" entry
  - Unknown purple label -> multiplier 1

  Each lookup reports whether it fell back so the calculator can surface
  the substitution as a diagnostic on the PayBreakdown.

LIFECYCLE:
  Constructed once (hardcoded default, JSON config, or stored row) and
  shared read-only by every calculation. Nothing in this package mutates
  a RateTable after construction.

SEE ALSO:
  - calculator.go: The only consumer of these lookups
  - factory/rates.go: JSON conversion and the default contract table
*/
package pay

import "github.com/shopspring/decimal"

// =============================================================================
// LOOKUP KEYS AND DEFAULTS
// =============================================================================

const (
	// DefaultPayYear is the universal fallback seniority entry. Every
	// valid RateTable must contain it.
	DefaultPayYear = "Year 1"

	// DefaultAircraft is the fallback purser rate class.
	DefaultAircraft = "Narrow1"

	// DefaultPurpleLabel is the premium applied when a purple-flagged
	// trip carries no explicit label.
	DefaultPurpleLabel = "1.5"
)

// Aircraft classes with purser rate entries.
const (
	AircraftNarrow1 = "Narrow1"
	AircraftNarrow2 = "Narrow2"
	AircraftWide    = "Wide"
)

// =============================================================================
// RATE TABLE
// =============================================================================

// YearRates holds the hourly rates for one seniority year.
type YearRates struct {
	BaseRate decimal.Decimal
	FlagRate decimal.Decimal
}

// PurserRates holds the supplemental purser rates for one aircraft class,
// split by flown region.
type PurserRates struct {
	USRate    decimal.Decimal
	NonUSRate decimal.Decimal
}

// FlagMultipliers holds the premium multipliers applied to the base rate.
type FlagMultipliers struct {
	White  decimal.Decimal
	Purple map[string]decimal.Decimal // premium label -> multiplier
}

// RateTable is the complete pay policy. Treated as immutable once built;
// callers share a single table across all calculations.
type RateTable struct {
	PayRatesByYear        map[string]YearRates
	PurserRatesByAircraft map[string]PurserRates
	Flags                 FlagMultipliers

	GalleyRate           decimal.Decimal // flat $/hr for galley position
	LanguageRate         decimal.Decimal // flat $/hr for language-of-destination
	HolidayMultiplier    decimal.Decimal // contract constant, carried as data
	DomesticPerDiem      decimal.Decimal // $/TAFB hour, domestic trips
	InternationalPerDiem decimal.Decimal // $/TAFB hour, international trips
}

// =============================================================================
// LOOKUPS - Never fail, always report fallback
// =============================================================================

// LookupPayYear resolves a seniority label. Unknown or empty labels
// resolve to the DefaultPayYear entry; fellBack is true in that case.
// A table missing the default entry yields zero rates (and fellBack).
func (t *RateTable) LookupPayYear(label string) (rates YearRates, fellBack bool) {
	if r, ok := t.PayRatesByYear[label]; ok {
		return r, false
	}
	return t.PayRatesByYear[DefaultPayYear], true
}

// LookupPurserRates resolves an aircraft class, falling back to Narrow1.
func (t *RateTable) LookupPurserRates(aircraft string) (rates PurserRates, fellBack bool) {
	if r, ok := t.PurserRatesByAircraft[aircraft]; ok {
		return r, false
	}
	return t.PurserRatesByAircraft[DefaultAircraft], true
}

// LookupPurpleMultiplier resolves a purple premium label. Unknown labels
// resolve to multiplier 1: the flag then has no effect rather than
// poisoning the whole calculation.
func (t *RateTable) LookupPurpleMultiplier(label string) (mult decimal.Decimal, fellBack bool) {
	if label == "" {
		label = DefaultPurpleLabel
	}
	if m, ok := t.Flags.Purple[label]; ok {
		return m, false
	}
	return decimal.NewFromInt(1), true
}
