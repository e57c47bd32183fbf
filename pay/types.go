/*
Package pay provides the crew trip compensation engine.

PURPOSE:
  This package contains the data model and the pure calculation logic that
  turns a recorded trip into a full pay breakdown under a multi-component
  pay policy: seniority-based rates, flag premium multipliers, conditional
  pay components (galley, purser, language, international override),
  per-diem geography rules, prorated holiday pay, and a net-pay estimate.

KEY CONCEPTS IN THIS FILE (types.go):
  - Clock: An hour/minute pair as entered on a form (e.g., 12h30m)
  - TripRecord: One candidate trip as saved by the user
  - PayBreakdown: The derived result, recomputed on demand, never stored

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal to avoid floating-point errors
  2. Tolerance: Malformed input degrades to zero/defaults, never to an error
  3. Purity: Calculation reads its inputs and nothing else

USAGE:
  trip := pay.TripRecord{
      PayYear:       "Year 3",
      CreditedHours: pay.Clock{Hours: 10},
      TAFB:          pay.Clock{Hours: 26, Minutes: 30},
  }
  breakdown := pay.Calculate(trip, rates)

SEE ALSO:
  - rates.go: RateTable lookups with fallback
  - calculator.go: The calculation algorithm and best-value ranking
*/
package pay

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CLOCK - Hour/minute pair from form input
// =============================================================================

// Clock is a duration as the trip form captures it: separate hour and
// minute integers. Minutes outside [0,59] and negative hours are treated
// as zero when converting to decimal hours.
type Clock struct {
	Hours   int
	Minutes int
}

// Decimal converts the pair to decimal hours: hours + minutes/60.
func (c Clock) Decimal() decimal.Decimal {
	h := c.Hours
	if h < 0 {
		h = 0
	}
	m := c.Minutes
	if m < 0 || m > 59 {
		m = 0
	}
	return decimal.NewFromInt(int64(h)).Add(
		decimal.NewFromInt(int64(m)).Div(sixty))
}

// IsZero reports whether the clock reads 0h0m (after clamping).
func (c Clock) IsZero() bool { return c.Decimal().IsZero() }

var sixty = decimal.NewFromInt(60)

// =============================================================================
// DEFENSIVE PARSING - Form fields arrive as strings
// =============================================================================

// ParseDecimal parses a user-entered numeric string, returning zero for
// anything unparseable. Negative values are floored at zero: no pay
// component may subtract.
func ParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ParseInt parses a user-entered integer string, returning def for
// anything unparseable or negative.
func ParseInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return def
	}
	return n
}

// ParseClock builds a Clock from two form strings. Each field defaults
// to zero on parse failure.
func ParseClock(hours, minutes string) Clock {
	return Clock{Hours: ParseInt(hours, 0), Minutes: ParseInt(minutes, 0)}
}

// =============================================================================
// TRIP RECORD - One saved candidate trip
// =============================================================================

// TripRecord is a single candidate trip assignment as recorded by the
// user. The form collaborator builds it, the storage collaborator persists
// it, and Calculate reads it as an immutable snapshot.
//
// Conditional fields (GalleyHours, AircraftType, ...) are only meaningful
// when their enabling flag is true; Calculate ignores them otherwise.
type TripRecord struct {
	ID   string
	Name string

	PayYear        string // key into RateTable.PayRatesByYear; falls back to "Year 1"
	TripLengthDays int    // form layer defaults unparseable input to 1

	CreditedHours Clock // paid flight-duty hours
	TAFB          Clock // time away from base: per-diem and holiday denominator

	// Premium flags
	WhiteFlag  bool
	PurpleFlag bool

	// Conditional pay components
	GalleyPayEnabled         bool
	PurserPayEnabled         bool
	InternationalOverride    bool // selects the international per-diem rate
	InternationalPayOverride bool // adds the override pay component
	LanguagePayEnabled       bool
	HolidayPayEnabled        bool

	PurpleFlagPremiumLabel string          // key into FlagMultipliers.Purple, default "1.5"
	GalleyHours            Clock           // hours working the galley position
	AircraftType           string          // key into PurserRatesByAircraft, default "Narrow1"
	PurserUSHours          decimal.Decimal // purser hours flown in US airspace
	PurserNonUSHours       decimal.Decimal // purser hours flown outside US airspace
	HolidayHours           decimal.Decimal // hours flagged as holiday, capped [0,24]

	// Financial adjustments, each 0-100
	RetirementPercentage decimal.Decimal
	TaxRatePercentage    decimal.Decimal

	// Presentation only. Assigned at creation, never touched by the engine.
	Color string

	// Set by the storage collaborator.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// =============================================================================
// PAY BREAKDOWN - Derived result, recomputed per render
// =============================================================================

// PayBreakdown is the full compensation result for one trip. Every field
// is always populated; a disabled component is zero, never absent.
type PayBreakdown struct {
	// Component pays. TotalGrossPay is exactly the sum of these seven.
	BasePay                  decimal.Decimal
	GalleyPay                decimal.Decimal
	PurserPay                decimal.Decimal
	InternationalOverridePay decimal.Decimal
	LanguagePay              decimal.Decimal
	PerDiem                  decimal.Decimal
	HolidayPay               decimal.Decimal

	// EffectiveRate is the base rate after flag multipliers.
	EffectiveRate decimal.Decimal

	TotalGrossPay  decimal.Decimal
	NetPayEstimate decimal.Decimal // gross - retirement, then taxed (order is a contract)

	HourlyValue decimal.Decimal // gross / credited hours, 0 when credited is 0
	PerDayValue decimal.Decimal // gross / trip length days; the ranking key

	// Fallbacks records every lookup that resolved via a table default
	// (unknown pay year, aircraft type, or premium label). Diagnostic
	// only; a fallback never fails the calculation.
	Fallbacks []string
}

// Round returns a copy with all money fields rounded to cents. Display
// helper for the API layer; ranking always compares unrounded values.
func (b PayBreakdown) Round() PayBreakdown {
	r := b
	r.BasePay = b.BasePay.Round(2)
	r.GalleyPay = b.GalleyPay.Round(2)
	r.PurserPay = b.PurserPay.Round(2)
	r.InternationalOverridePay = b.InternationalOverridePay.Round(2)
	r.LanguagePay = b.LanguagePay.Round(2)
	r.PerDiem = b.PerDiem.Round(2)
	r.HolidayPay = b.HolidayPay.Round(2)
	r.EffectiveRate = b.EffectiveRate.Round(2)
	r.TotalGrossPay = b.TotalGrossPay.Round(2)
	r.NetPayEstimate = b.NetPayEstimate.Round(2)
	r.HourlyValue = b.HourlyValue.Round(2)
	r.PerDayValue = b.PerDayValue.Round(2)
	return r
}
