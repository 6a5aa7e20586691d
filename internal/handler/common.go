package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/civicworks/volunteerhub/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	BaseResponse
	Error   string    `json:"error"`
	Details *[]string `json:"details,omitempty"`
}

type BaseResponse struct {
	Ok bool `json:"ok"`
}

// respondWithError sends an error response with a message
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// uuidParam parses a UUID path parameter by name.
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

// handleServiceError maps domain errors onto HTTP status codes. Handlers
// share this since the error taxonomy is uniform across resources.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidChannel),
		errors.Is(err, domain.ErrNoEnabledChannel):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		respondWithError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrProfileNotFound):
		respondWithError(w, http.StatusNotFound, "Profile not found")
	case errors.Is(err, domain.ErrEventNotFound):
		respondWithError(w, http.StatusNotFound, "Event not found")
	case errors.Is(err, domain.ErrOpportunityNotFound):
		respondWithError(w, http.StatusNotFound, "Opportunity not found")
	case errors.Is(err, domain.ErrMatchRequestNotFound):
		respondWithError(w, http.StatusNotFound, "Match request not found")
	case errors.Is(err, domain.ErrMatchNotFound):
		respondWithError(w, http.StatusNotFound, "Match not found")
	case errors.Is(err, domain.ErrNotificationNotFound):
		respondWithError(w, http.StatusNotFound, "Notification not found")
	case errors.Is(err, domain.ErrHistoryEntryNotFound):
		respondWithError(w, http.StatusNotFound, "History entry not found")
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrProfileAlreadyExists):
		respondWithError(w, http.StatusConflict, "Profile already exists")
	case errors.Is(err, domain.ErrDuplicateMatchRequest):
		respondWithError(w, http.StatusConflict, "User already has an active request for this opportunity")
	case errors.Is(err, domain.ErrDuplicateHistoryEntry):
		respondWithError(w, http.StatusConflict, "History entry already exists for this user, event, and date")
	case errors.Is(err, domain.ErrAvailabilityOverlap):
		respondWithError(w, http.StatusConflict, "Availability window overlaps with existing window")
	case errors.Is(err, domain.ErrOpportunityAtCapacity):
		respondWithError(w, http.StatusConflict, "Opportunity is at maximum capacity")
	case errors.Is(err, domain.ErrMatchRequestNotPending):
		respondWithError(w, http.StatusBadRequest, "Only pending match requests can be resolved")
	case errors.Is(err, domain.ErrInvalidStateTransition):
		respondWithError(w, http.StatusBadRequest, "Invalid state transition")
	case errors.Is(err, domain.ErrUnauthorized):
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "Forbidden")
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
