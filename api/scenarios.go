/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	trips for testing and demos. Each scenario sets up a comparison that
	demonstrates specific pay components.

AVAILABLE SCENARIOS:

	domestic-month:      Three domestic trips of different lengths
	international-bid:   Purser international flying vs. a domestic line
	holiday-choice:      Holiday trip vs. white-flag pickup

HOW SCENARIOS WORK:
 1. Reset database (clear all trips and the stored rate table)
 2. Save the scenario's trips through the store
 3. The list endpoint ranks them; best_value_id shows the winner

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "holiday-choice"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx, h)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Trip and rate handlers
  - pay/calculator.go: The breakdown the scenarios showcase
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/skydeck/pay-engine/pay"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "domestic-month",
		Name:        "Domestic Month",
		Description: "Three domestic trips of different lengths, same pay year",
		TripCount:   3,
	},
	{
		ID:          "international-bid",
		Name:        "International Bid",
		Description: "Purser international flying compared against a domestic line",
		TripCount:   2,
	},
	{
		ID:          "holiday-choice",
		Name:        "Holiday Choice",
		Description: "Holiday trip vs. a white-flag pickup over the same days",
		TripCount:   2,
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	current := h.loadedScenario()
	if current == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	// Scenario ID exists but not in list (shouldn't happen)
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          current,
		Name:        current,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.setLoadedScenario("")

	var err error
	switch req.ScenarioID {
	case "domestic-month":
		err = h.loadDomesticMonthScenario(ctx)
	case "international-bid":
		err = h.loadInternationalBidScenario(ctx)
	case "holiday-choice":
		err = h.loadHolidayChoiceScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	h.setLoadedScenario(req.ScenarioID)

	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// ResetDatabase wipes all trips and the stored rate table. The built-in
// rate table becomes active again.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.setLoadedScenario("")

	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadDomesticMonthScenario(ctx context.Context) error {
	trips := []pay.TripRecord{
		{
			Name:           "2-Day Turn",
			PayYear:        "Year 3",
			TripLengthDays: 2,
			CreditedHours:  pay.Clock{Hours: 10, Minutes: 30},
			TAFB:           pay.Clock{Hours: 34, Minutes: 0},
		},
		{
			Name:           "3-Day Trip",
			PayYear:        "Year 3",
			TripLengthDays: 3,
			CreditedHours:  pay.Clock{Hours: 16, Minutes: 15},
			TAFB:           pay.Clock{Hours: 62, Minutes: 30},
		},
		{
			Name:             "4-Day Trip",
			PayYear:          "Year 3",
			TripLengthDays:   4,
			CreditedHours:    pay.Clock{Hours: 23, Minutes: 45},
			TAFB:             pay.Clock{Hours: 86, Minutes: 0},
			GalleyPayEnabled: true,
			GalleyHours:      pay.Clock{Hours: 23, Minutes: 45},
			AircraftType:     pay.AircraftNarrow2,
		},
	}
	return h.saveScenarioTrips(ctx, trips)
}

func (h *Handler) loadInternationalBidScenario(ctx context.Context) error {
	trips := []pay.TripRecord{
		{
			Name:                  "Transatlantic Purser",
			PayYear:               "Year 8",
			TripLengthDays:        4,
			CreditedHours:         pay.Clock{Hours: 26, Minutes: 0},
			TAFB:                  pay.Clock{Hours: 78, Minutes: 0},
			PurserPayEnabled:      true,
			InternationalOverride: true,
			LanguagePayEnabled:    true,
			AircraftType:          pay.AircraftWide,
			PurserNonUSHours:      decimal.NewFromInt(26),
		},
		{
			Name:           "Domestic Line Week",
			PayYear:        "Year 8",
			TripLengthDays: 4,
			CreditedHours:  pay.Clock{Hours: 24, Minutes: 30},
			TAFB:           pay.Clock{Hours: 80, Minutes: 0},
		},
	}
	return h.saveScenarioTrips(ctx, trips)
}

func (h *Handler) loadHolidayChoiceScenario(ctx context.Context) error {
	trips := []pay.TripRecord{
		{
			Name:              "Christmas 3-Day",
			PayYear:           "Year 5",
			TripLengthDays:    3,
			CreditedHours:     pay.Clock{Hours: 15, Minutes: 0},
			TAFB:              pay.Clock{Hours: 58, Minutes: 0},
			HolidayPayEnabled: true,
			HolidayHours:      decimal.NewFromInt(8),
		},
		{
			Name:           "White Flag Pickup",
			PayYear:        "Year 5",
			TripLengthDays: 3,
			CreditedHours:  pay.Clock{Hours: 14, Minutes: 30},
			TAFB:           pay.Clock{Hours: 55, Minutes: 30},
			WhiteFlag:      true,
		},
	}
	return h.saveScenarioTrips(ctx, trips)
}

func (h *Handler) saveScenarioTrips(ctx context.Context, trips []pay.TripRecord) error {
	for _, trip := range trips {
		trip.ID = uuid.NewString()
		trip.Color = randomColor()
		if err := h.Store.SaveTrip(ctx, trip); err != nil {
			return fmt.Errorf("saving %q: %w", trip.Name, err)
		}
	}
	return nil
}
