/*
handlers.go - HTTP API handlers for the trip pay engine

PURPOSE:
  Exposes the pay engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the engine and store.

ENDPOINTS:
  Trips:
    GET    /api/trips            List trips with breakdowns + best-value id
    POST   /api/trips            Create trip (form fields are strings)
    GET    /api/trips/{id}       Get one trip
    PUT    /api/trips/{id}       Update trip (color/created_at preserved)
    DELETE /api/trips/{id}       Delete trip
    GET    /api/trips/{id}/pay   Breakdown for one trip

  Rates:
    GET    /api/rates            Active rate table (JSON form)
    PUT    /api/rates            Replace the active rate table

  Scenarios:
    GET    /api/scenarios        List demo scenarios
    POST   /api/scenarios/load   Load a demo scenario (resets trips)
    POST   /api/scenarios/reset  Wipe the database

ARCHITECTURE:
  Handler holds the store and the active rate table. The table is loaded
  once at startup (stored config or built-in default) and replaced only
  through PUT /api/rates; every calculation shares it read-only.

ERROR HANDLING:
  Malformed numeric form fields are NOT errors - they degrade per the
  engine's tolerance policy. 400 is reserved for bodies that fail JSON
  decoding and for rate tables that fail validation.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario definitions
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skydeck/pay-engine/factory"
	"github.com/skydeck/pay-engine/pay"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store pay.Store

	// mu guards the fields below; rate swaps and scenario loads race
	// with in-flight calculations otherwise.
	mu sync.RWMutex

	// Active rate table, shared read-only by every calculation.
	rates *pay.RateTable

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store. The built-in
// rate table is active until LoadRates finds a stored one.
func NewHandler(store pay.Store) *Handler {
	return &Handler{
		Store: store,
		rates: factory.Default(),
	}
}

// LoadRates loads the stored rate configuration, if any. A corrupt
// stored table is logged and skipped; the built-in default stays active.
func (h *Handler) LoadRates(ctx context.Context) error {
	configJSON, err := h.Store.LoadRateTable(ctx)
	if err != nil {
		return err
	}
	if configJSON == "" {
		return nil
	}

	table, err := factory.ParseRateTable(configJSON)
	if err != nil {
		log.Printf("Warning: stored rate table is invalid, using default: %v", err)
		return nil
	}
	h.SetRates(table)
	return nil
}

// Rates returns the active rate table.
func (h *Handler) Rates() *pay.RateTable {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rates
}

// SetRates swaps the active rate table. The table itself is immutable;
// only the pointer needs guarding.
func (h *Handler) SetRates(table *pay.RateTable) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rates = table
}

func (h *Handler) loadedScenario() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.currentScenario
}

func (h *Handler) setLoadedScenario(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.currentScenario = id
}

// tripColors is the palette a new trip's card color is drawn from.
// Presentation only; carried through edits unchanged.
var tripColors = []string{
	"#f94144", "#f3722c", "#f8961e", "#f9c74f",
	"#90be6d", "#43aa8b", "#4d908e", "#577590",
}

func randomColor() string {
	return tripColors[rand.Intn(len(tripColors))]
}

// =============================================================================
// TRIP HANDLERS
// =============================================================================

// ListTrips returns every saved trip with its breakdown, plus the
// best-value id when there is more than one trip to compare.
func (h *Handler) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.Store.ListTrips(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list trips", err)
		return
	}

	rates := h.Rates()
	resp := TripListResponse{Trips: make([]TripWithPayDTO, len(trips))}
	for i, trip := range trips {
		resp.Trips[i] = TripWithPayDTO{
			Trip: toTripDTO(trip),
			Pay:  toPayDTO(pay.Calculate(trip, rates)),
		}
	}
	resp.BestValueID = pay.BestValueID(trips, rates)

	writeJSON(w, http.StatusOK, resp)
}

// CreateTrip creates a new trip from form input. The id and card color
// are assigned here and never change afterwards.
func (h *Handler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req SaveTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	trip := toTripRecord(req, uuid.NewString(), randomColor())
	if err := h.Store.SaveTrip(r.Context(), trip); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save trip", err)
		return
	}

	saved, err := h.Store.GetTrip(r.Context(), trip.ID)
	if err != nil || saved == nil {
		writeError(w, http.StatusInternalServerError, "Failed to load saved trip", err)
		return
	}

	writeJSON(w, http.StatusCreated, TripWithPayDTO{
		Trip: toTripDTO(*saved),
		Pay:  toPayDTO(pay.Calculate(*saved, h.Rates())),
	})
}

// GetTrip returns a single trip.
func (h *Handler) GetTrip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	trip, err := h.Store.GetTrip(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get trip", err)
		return
	}
	if trip == nil {
		writeError(w, http.StatusNotFound, "Trip not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toTripDTO(*trip))
}

// UpdateTrip replaces a trip's editable fields. The card color and
// created_at survive edits.
func (h *Handler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.Store.GetTrip(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get trip", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Trip not found", nil)
		return
	}

	var req SaveTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	trip := toTripRecord(req, id, existing.Color)
	if err := h.Store.SaveTrip(r.Context(), trip); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save trip", err)
		return
	}

	saved, err := h.Store.GetTrip(r.Context(), id)
	if err != nil || saved == nil {
		writeError(w, http.StatusInternalServerError, "Failed to load saved trip", err)
		return
	}

	writeJSON(w, http.StatusOK, TripWithPayDTO{
		Trip: toTripDTO(*saved),
		Pay:  toPayDTO(pay.Calculate(*saved, h.Rates())),
	})
}

// DeleteTrip removes a trip.
func (h *Handler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteTrip(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete trip", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTripPay returns the breakdown for one trip.
func (h *Handler) GetTripPay(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	trip, err := h.Store.GetTrip(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get trip", err)
		return
	}
	if trip == nil {
		writeError(w, http.StatusNotFound, "Trip not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toPayDTO(pay.Calculate(*trip, h.Rates())))
}

// =============================================================================
// RATE HANDLERS
// =============================================================================

// GetRates returns the active rate table in its JSON form, with the
// stored version (0 until a table has been saved).
func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	version, err := h.Store.RateTableVersion(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read rate table version", err)
		return
	}

	writeJSON(w, http.StatusOK, RateTableResponse{
		Version: version,
		Table:   factory.ToJSON(h.Rates()),
	})
}

// UpdateRates replaces the active rate table. The table must carry the
// fallback entries ("Year 1", "Narrow1") or it is rejected.
func (h *Handler) UpdateRates(w http.ResponseWriter, r *http.Request) {
	var rj factory.RateTableJSON
	if err := json.NewDecoder(r.Body).Decode(&rj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	table, err := factory.FromJSON(rj)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rate table", err)
		return
	}

	configJSON, err := json.Marshal(rj)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode rate table", err)
		return
	}
	if err := h.Store.SaveRateTable(r.Context(), string(configJSON)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save rate table", err)
		return
	}
	h.SetRates(table)

	version, err := h.Store.RateTableVersion(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read rate table version", err)
		return
	}

	writeJSON(w, http.StatusOK, RateTableResponse{
		Version: version,
		Table:   factory.ToJSON(table),
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := ErrorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
