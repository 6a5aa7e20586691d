// internal/handler/history.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/civicworks/volunteerhub/internal/service"
)

type HistoryHandler struct {
	service *service.HistoryService
}

func NewHistoryHandler(service *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

func (h *HistoryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var input service.CreateHistoryEntryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	entry, err := h.service.CreateEntry(r.Context(), input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, entry)
}

// ListRecent returns entries from the trailing window of days
// (default 30).
func (h *HistoryHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	entries, err := h.service.RecentHistory(r.Context(), days)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}

func (h *HistoryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	entry, err := h.service.GetEntry(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, entry)
}

func (h *HistoryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	var input service.UpdateHistoryEntryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	entry, err := h.service.UpdateEntry(r.Context(), id, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, entry)
}

func (h *HistoryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	if err := h.service.DeleteEntry(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

func (h *HistoryHandler) UserHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	entries, err := h.service.UserHistory(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}

func (h *HistoryHandler) EventHistory(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuidParam(r, "eventID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	entries, err := h.service.EventHistory(r.Context(), eventID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}

func (h *HistoryHandler) TotalHours(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	total, err := h.service.TotalHours(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]float64{"total_hours": total})
}

// HoursInPeriod sums hours between ?from= and ?to= (RFC 3339).
func (h *HistoryHandler) HoursInPeriod(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid 'from' timestamp")
		return
	}
	to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid 'to' timestamp")
		return
	}

	total, err := h.service.HoursInPeriod(r.Context(), userID, from, to)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]float64{"total_hours": total})
}

func (h *HistoryHandler) EventCount(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	count, err := h.service.EventCount(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int{"event_count": count})
}

func (h *HistoryHandler) Roles(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	roles, err := h.service.Roles(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string][]string{"roles": roles})
}

func (h *HistoryHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	stats, err := h.service.Statistics(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// MonthlyHours buckets one year's hours by month. Year defaults to the
// current one.
func (h *HistoryHandler) MonthlyHours(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid year")
			return
		}
	}

	monthly, err := h.service.MonthlyHours(r.Context(), userID, year)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, monthly)
}

// TopVolunteers returns a leaderboard by ?by=hours (default) or
// ?by=events, limited to ?limit= entries.
func (h *HistoryHandler) TopVolunteers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	var (
		rankings []service.VolunteerRanking
		err      error
	)
	switch by := r.URL.Query().Get("by"); by {
	case "", "hours":
		rankings, err = h.service.TopVolunteersByHours(r.Context(), limit)
	case "events":
		rankings, err = h.service.TopVolunteersByEvents(r.Context(), limit)
	default:
		respondWithError(w, http.StatusBadRequest, "'by' must be hours or events")
		return
	}
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, rankings)
}
