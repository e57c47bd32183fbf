/*
calculator.go - Trip compensation algorithm and best-value ranking

PURPOSE:
  Implements Calculate, the single entry point of the engine: TripRecord +
  RateTable in, fully-populated PayBreakdown out. Also implements the
  ranking rule the trip-list collaborator uses to badge the most lucrative
  trip in a set.

ALGORITHM (in order):
  1.  Resolve pay year (fallback to Year 1), take baseRate
  2.  creditedHours and dutyHours (TAFB) as decimal hours
  3.  Flag multiplier: white and purple compose multiplicatively
  4.  effectiveRate = baseRate * multiplier
  5.  basePay = creditedHours * effectiveRate
  6.  galleyPay, purserPay, languagePay, internationalOverridePay, perDiem
  7.  holidayPay prorates effective hourly value across duty time
  8.  gross = sum of the seven components
  9.  net = (gross - retirement) * (1 - tax)  -- retirement FIRST
  10. hourlyValue and perDayValue (the ranking key)

FAILURE SEMANTICS:
  There are none. Every malformed field degrades to zero or a documented
  default, every division by zero forces the dependent value to zero, and
  the call always returns a complete breakdown. Fallback lookups are
  recorded on PayBreakdown.Fallbacks for diagnostics.

PURITY:
  Identical inputs produce identical outputs. No I/O, no shared state, no
  clock reads. Safe to call once per trip per render, in any order.

SEE ALSO:
  - rates.go: Lookup-with-fallback contract
  - types.go: TripRecord and PayBreakdown
*/
package pay

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
	dayCap  = decimal.NewFromInt(24)
)

// =============================================================================
// CALCULATE
// =============================================================================

// Calculate computes the full pay breakdown for one trip. It never fails:
// unknown lookup keys fall back to table defaults, unparseable or negative
// values degrade to zero, and divisions by zero yield zero. A nil rate
// table produces a zeroed breakdown.
func Calculate(trip TripRecord, rates *RateTable) PayBreakdown {
	var b PayBreakdown
	if rates == nil {
		return zeroed(b)
	}

	// 1. Seniority rates.
	year, fellBack := rates.LookupPayYear(trip.PayYear)
	if fellBack {
		b.Fallbacks = append(b.Fallbacks,
			fmt.Sprintf("unknown pay year %q, using %s", trip.PayYear, DefaultPayYear))
	}

	// 2. Durations.
	credited := trip.CreditedHours.Decimal()
	duty := trip.TAFB.Decimal()

	// 3-4. Flag multipliers compose multiplicatively and independently.
	mult := one
	if trip.WhiteFlag {
		mult = mult.Mul(rates.Flags.White)
	}
	if trip.PurpleFlag {
		purple, fellBack := rates.LookupPurpleMultiplier(trip.PurpleFlagPremiumLabel)
		if fellBack {
			b.Fallbacks = append(b.Fallbacks,
				fmt.Sprintf("unknown purple premium %q, using multiplier 1", trip.PurpleFlagPremiumLabel))
		}
		mult = mult.Mul(purple)
	}
	b.EffectiveRate = year.BaseRate.Mul(mult)

	// 5. Base pay.
	b.BasePay = credited.Mul(b.EffectiveRate)

	// 6. Galley: flat rate on galley hours.
	b.GalleyPay = decimal.Zero
	if trip.GalleyPayEnabled {
		b.GalleyPay = trip.GalleyHours.Decimal().Mul(rates.GalleyRate)
	}

	// 7. Purser: per-aircraft rates split by flown region.
	b.PurserPay = decimal.Zero
	if trip.PurserPayEnabled {
		purser, fellBack := rates.LookupPurserRates(trip.AircraftType)
		if fellBack {
			b.Fallbacks = append(b.Fallbacks,
				fmt.Sprintf("unknown aircraft %q, using %s", trip.AircraftType, DefaultAircraft))
		}
		us := floorZero(trip.PurserUSHours)
		nonUS := floorZero(trip.PurserNonUSHours)
		b.PurserPay = us.Mul(purser.USRate).Add(nonUS.Mul(purser.NonUSRate))
	}

	// 8. Language: flat rate on credited hours.
	b.LanguagePay = decimal.Zero
	if trip.LanguagePayEnabled {
		b.LanguagePay = credited.Mul(rates.LanguageRate)
	}

	// 9. International override: the flag-rate delta per credited hour.
	// The delta is floored at zero for tables where flag <= base.
	b.InternationalOverridePay = decimal.Zero
	if trip.InternationalPayOverride {
		delta := floorZero(year.FlagRate.Sub(year.BaseRate))
		b.InternationalOverridePay = credited.Mul(delta)
	}

	// 10. Per diem: every TAFB hour, rate keyed to geography.
	perDiemRate := rates.DomesticPerDiem
	if trip.InternationalOverride {
		perDiemRate = rates.InternationalPerDiem
	}
	b.PerDiem = duty.Mul(perDiemRate)

	// 11. Holiday: effective hourly value prorated across duty time,
	// scaled by holiday hours. Zero duty time forces zero holiday pay.
	b.HolidayPay = decimal.Zero
	if trip.HolidayPayEnabled && duty.IsPositive() {
		holidayHours := clampHoliday(trip.HolidayHours)
		b.HolidayPay = b.EffectiveRate.Mul(credited).Div(duty).Mul(holidayHours)
	}

	// 12. Gross is exactly the sum of the seven components.
	b.TotalGrossPay = b.BasePay.
		Add(b.GalleyPay).
		Add(b.PurserPay).
		Add(b.LanguagePay).
		Add(b.InternationalOverridePay).
		Add(b.PerDiem).
		Add(b.HolidayPay)

	// 13-15. Retirement comes off gross first; tax applies to the
	// remainder. This ordering is a contract, not an implementation
	// detail.
	retirement := b.TotalGrossPay.Mul(clampPercent(trip.RetirementPercentage)).Div(hundred)
	netBeforeTax := b.TotalGrossPay.Sub(retirement)
	taxFactor := one.Sub(clampPercent(trip.TaxRatePercentage).Div(hundred))
	b.NetPayEstimate = netBeforeTax.Mul(taxFactor)

	// 16. Hourly value.
	b.HourlyValue = decimal.Zero
	if credited.IsPositive() {
		b.HourlyValue = b.TotalGrossPay.Div(credited)
	}

	// 17. Per-day value, the ranking key. The form layer defaults an
	// unparseable length to 1 day; a stored zero still means zero here.
	b.PerDayValue = decimal.Zero
	if trip.TripLengthDays > 0 {
		b.PerDayValue = b.TotalGrossPay.Div(decimal.NewFromInt(int64(trip.TripLengthDays)))
	}

	return b
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func clampPercent(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(hundred) {
		return hundred
	}
	return d
}

func clampHoliday(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(dayCap) {
		return dayCap
	}
	return d
}

// zeroed fills every decimal field so callers never see uninitialized
// values even on the nil-rates path.
func zeroed(b PayBreakdown) PayBreakdown {
	b.BasePay = decimal.Zero
	b.GalleyPay = decimal.Zero
	b.PurserPay = decimal.Zero
	b.InternationalOverridePay = decimal.Zero
	b.LanguagePay = decimal.Zero
	b.PerDiem = decimal.Zero
	b.HolidayPay = decimal.Zero
	b.EffectiveRate = decimal.Zero
	b.TotalGrossPay = decimal.Zero
	b.NetPayEstimate = decimal.Zero
	b.HourlyValue = decimal.Zero
	b.PerDayValue = decimal.Zero
	return b
}

// =============================================================================
// BEST VALUE RANKING
// =============================================================================

// BestValueID returns the id of the trip with the strictly greatest
// per-day value. Ties keep the first-seen trip. The badge is only shown
// for a real comparison, so sets of zero or one trip return "".
func BestValueID(trips []TripRecord, rates *RateTable) string {
	if len(trips) < 2 {
		return ""
	}
	bestID := trips[0].ID
	best := Calculate(trips[0], rates).PerDayValue
	for _, trip := range trips[1:] {
		if v := Calculate(trip, rates).PerDayValue; v.GreaterThan(best) {
			best = v
			bestID = trip.ID
		}
	}
	return bestID
}
