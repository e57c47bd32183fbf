/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

FORM CONTRACT:
  The trip editor submits numeric fields as STRINGS ("10", "", "abc").
  SaveTripRequest mirrors that contract; conversion to a TripRecord is
  defensive and never fails - unparseable fields degrade to zero or to
  the documented defaults, matching the engine's tolerance policy.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

SEE ALSO:
  - handlers.go: Uses these types
  - pay/types.go: The domain model these wrap
*/
package api

import (
	"time"

	"github.com/skydeck/pay-engine/factory"
	"github.com/skydeck/pay-engine/pay"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// SaveTripRequest is the request to create or update a trip. Numeric
// fields are strings because that is what the form produces; boolean
// toggles are real booleans (the form collaborator converts any legacy
// "Yes"/"No" representation before submitting).
type SaveTripRequest struct {
	Name           string `json:"name"`
	PayYear        string `json:"pay_year"`
	TripLengthDays string `json:"trip_length_days"`

	CreditedHours   string `json:"credited_hours"`
	CreditedMinutes string `json:"credited_minutes"`
	TAFBHours       string `json:"tafb_hours"`
	TAFBMinutes     string `json:"tafb_minutes"`

	WhiteFlag                bool `json:"white_flag"`
	PurpleFlag               bool `json:"purple_flag"`
	GalleyPayEnabled         bool `json:"galley_pay_enabled"`
	PurserPayEnabled         bool `json:"purser_pay_enabled"`
	InternationalOverride    bool `json:"international_override"`
	InternationalPayOverride bool `json:"international_pay_override"`
	LanguagePayEnabled       bool `json:"language_pay_enabled"`
	HolidayPayEnabled        bool `json:"holiday_pay_enabled"`

	PurpleFlagPremiumLabel string `json:"purple_flag_premium_label"`
	GalleyHours            string `json:"galley_hours"`
	GalleyMinutes          string `json:"galley_minutes"`
	AircraftType           string `json:"aircraft_type"`
	PurserUSHours          string `json:"purser_us_hours"`
	PurserNonUSHours       string `json:"purser_non_us_hours"`
	HolidayHours           string `json:"holiday_hours"`

	RetirementPercentage string `json:"retirement_percentage"`
	TaxRatePercentage    string `json:"tax_rate_percentage"`
}

// TripDTO represents a saved trip in API responses.
type TripDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	PayYear        string `json:"pay_year"`
	TripLengthDays int    `json:"trip_length_days"`

	CreditedHours   int `json:"credited_hours"`
	CreditedMinutes int `json:"credited_minutes"`
	TAFBHours       int `json:"tafb_hours"`
	TAFBMinutes     int `json:"tafb_minutes"`

	WhiteFlag                bool `json:"white_flag"`
	PurpleFlag               bool `json:"purple_flag"`
	GalleyPayEnabled         bool `json:"galley_pay_enabled"`
	PurserPayEnabled         bool `json:"purser_pay_enabled"`
	InternationalOverride    bool `json:"international_override"`
	InternationalPayOverride bool `json:"international_pay_override"`
	LanguagePayEnabled       bool `json:"language_pay_enabled"`
	HolidayPayEnabled        bool `json:"holiday_pay_enabled"`

	PurpleFlagPremiumLabel string  `json:"purple_flag_premium_label,omitempty"`
	GalleyHours            int     `json:"galley_hours,omitempty"`
	GalleyMinutes          int     `json:"galley_minutes,omitempty"`
	AircraftType           string  `json:"aircraft_type,omitempty"`
	PurserUSHours          float64 `json:"purser_us_hours,omitempty"`
	PurserNonUSHours       float64 `json:"purser_non_us_hours,omitempty"`
	HolidayHours           float64 `json:"holiday_hours,omitempty"`

	RetirementPercentage float64 `json:"retirement_percentage"`
	TaxRatePercentage    float64 `json:"tax_rate_percentage"`

	Color     string `json:"color"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// PayBreakdownDTO represents a calculated breakdown, rounded to cents
// for display. Ranking inside the server always uses unrounded values.
type PayBreakdownDTO struct {
	BasePay                  float64 `json:"base_pay"`
	GalleyPay                float64 `json:"galley_pay"`
	PurserPay                float64 `json:"purser_pay"`
	InternationalOverridePay float64 `json:"international_override_pay"`
	LanguagePay              float64 `json:"language_pay"`
	PerDiem                  float64 `json:"per_diem"`
	HolidayPay               float64 `json:"holiday_pay"`

	EffectiveRate  float64 `json:"effective_rate"`
	TotalGrossPay  float64 `json:"total_gross_pay"`
	NetPayEstimate float64 `json:"net_pay_estimate"`
	HourlyValue    float64 `json:"hourly_value"`
	PerDayValue    float64 `json:"per_day_value"`

	Fallbacks []string `json:"fallbacks,omitempty"`
}

// TripWithPayDTO pairs a trip with its breakdown.
type TripWithPayDTO struct {
	Trip TripDTO         `json:"trip"`
	Pay  PayBreakdownDTO `json:"pay"`
}

// TripListResponse is the list view payload: every trip with its
// breakdown, plus the best-value id when the set is comparable.
type TripListResponse struct {
	Trips       []TripWithPayDTO `json:"trips"`
	BestValueID string           `json:"best_value_id,omitempty"`
}

// RateTableResponse is the rate-table payload: the active table plus the
// stored version (0 until a table has been saved; bumped on replace).
type RateTableResponse struct {
	Version int                   `json:"version"`
	Table   factory.RateTableJSON `json:"table"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	TripCount   int    `json:"trip_count"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

// toTripRecord converts a form request into a TripRecord. Defensive by
// contract: trip length defaults to 1, everything else to zero or the
// engine's lookup defaults.
func toTripRecord(req SaveTripRequest, id, color string) pay.TripRecord {
	return pay.TripRecord{
		ID:             id,
		Name:           req.Name,
		PayYear:        req.PayYear,
		TripLengthDays: pay.ParseInt(req.TripLengthDays, 1),

		CreditedHours: pay.ParseClock(req.CreditedHours, req.CreditedMinutes),
		TAFB:          pay.ParseClock(req.TAFBHours, req.TAFBMinutes),

		WhiteFlag:                req.WhiteFlag,
		PurpleFlag:               req.PurpleFlag,
		GalleyPayEnabled:         req.GalleyPayEnabled,
		PurserPayEnabled:         req.PurserPayEnabled,
		InternationalOverride:    req.InternationalOverride,
		InternationalPayOverride: req.InternationalPayOverride,
		LanguagePayEnabled:       req.LanguagePayEnabled,
		HolidayPayEnabled:        req.HolidayPayEnabled,

		PurpleFlagPremiumLabel: req.PurpleFlagPremiumLabel,
		GalleyHours:            pay.ParseClock(req.GalleyHours, req.GalleyMinutes),
		AircraftType:           req.AircraftType,
		PurserUSHours:          pay.ParseDecimal(req.PurserUSHours),
		PurserNonUSHours:       pay.ParseDecimal(req.PurserNonUSHours),
		HolidayHours:           pay.ParseDecimal(req.HolidayHours),

		RetirementPercentage: pay.ParseDecimal(req.RetirementPercentage),
		TaxRatePercentage:    pay.ParseDecimal(req.TaxRatePercentage),

		Color: color,
	}
}

func toTripDTO(trip pay.TripRecord) TripDTO {
	dto := TripDTO{
		ID:             trip.ID,
		Name:           trip.Name,
		PayYear:        trip.PayYear,
		TripLengthDays: trip.TripLengthDays,

		CreditedHours:   trip.CreditedHours.Hours,
		CreditedMinutes: trip.CreditedHours.Minutes,
		TAFBHours:       trip.TAFB.Hours,
		TAFBMinutes:     trip.TAFB.Minutes,

		WhiteFlag:                trip.WhiteFlag,
		PurpleFlag:               trip.PurpleFlag,
		GalleyPayEnabled:         trip.GalleyPayEnabled,
		PurserPayEnabled:         trip.PurserPayEnabled,
		InternationalOverride:    trip.InternationalOverride,
		InternationalPayOverride: trip.InternationalPayOverride,
		LanguagePayEnabled:       trip.LanguagePayEnabled,
		HolidayPayEnabled:        trip.HolidayPayEnabled,

		PurpleFlagPremiumLabel: trip.PurpleFlagPremiumLabel,
		GalleyHours:            trip.GalleyHours.Hours,
		GalleyMinutes:          trip.GalleyHours.Minutes,
		AircraftType:           trip.AircraftType,

		Color: trip.Color,
	}

	dto.PurserUSHours, _ = trip.PurserUSHours.Float64()
	dto.PurserNonUSHours, _ = trip.PurserNonUSHours.Float64()
	dto.HolidayHours, _ = trip.HolidayHours.Float64()
	dto.RetirementPercentage, _ = trip.RetirementPercentage.Float64()
	dto.TaxRatePercentage, _ = trip.TaxRatePercentage.Float64()

	if !trip.CreatedAt.IsZero() {
		dto.CreatedAt = trip.CreatedAt.Format(time.RFC3339)
	}
	if !trip.UpdatedAt.IsZero() {
		dto.UpdatedAt = trip.UpdatedAt.Format(time.RFC3339)
	}
	return dto
}

func toPayDTO(b pay.PayBreakdown) PayBreakdownDTO {
	r := b.Round()
	var dto PayBreakdownDTO
	dto.BasePay, _ = r.BasePay.Float64()
	dto.GalleyPay, _ = r.GalleyPay.Float64()
	dto.PurserPay, _ = r.PurserPay.Float64()
	dto.InternationalOverridePay, _ = r.InternationalOverridePay.Float64()
	dto.LanguagePay, _ = r.LanguagePay.Float64()
	dto.PerDiem, _ = r.PerDiem.Float64()
	dto.HolidayPay, _ = r.HolidayPay.Float64()
	dto.EffectiveRate, _ = r.EffectiveRate.Float64()
	dto.TotalGrossPay, _ = r.TotalGrossPay.Float64()
	dto.NetPayEstimate, _ = r.NetPayEstimate.Float64()
	dto.HourlyValue, _ = r.HourlyValue.Float64()
	dto.PerDayValue, _ = r.PerDayValue.Float64()
	dto.Fallbacks = b.Fallbacks
	return dto
}
