// internal/handler/matching.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/civicworks/volunteerhub/internal/service"
	"github.com/google/uuid"
)

type MatchingHandler struct {
	service *service.MatchingService
}

func NewMatchingHandler(service *service.MatchingService) *MatchingHandler {
	return &MatchingHandler{service: service}
}

func (h *MatchingHandler) CreateOpportunity(w http.ResponseWriter, r *http.Request) {
	var input service.CreateOpportunityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	opp, err := h.service.CreateOpportunity(r.Context(), input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, opp)
}

func (h *MatchingHandler) GetOpportunity(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID")
		return
	}

	opp, err := h.service.GetOpportunity(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, opp)
}

// ListOpportunities returns all opportunities, or those of one event
// when ?event_id= is given.
func (h *MatchingHandler) ListOpportunities(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("event_id"); raw != "" {
		eventID, err := uuid.Parse(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid event ID")
			return
		}
		opps, err := h.service.ListOpportunitiesByEvent(r.Context(), eventID)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, opps)
		return
	}

	opps, err := h.service.ListOpportunities(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, opps)
}

func (h *MatchingHandler) UpdateOpportunity(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID")
		return
	}

	var input service.UpdateOpportunityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	opp, err := h.service.UpdateOpportunity(r.Context(), id, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, opp)
}

func (h *MatchingHandler) DeleteOpportunity(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID")
		return
	}

	if err := h.service.DeleteOpportunity(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

type createMatchRequestRequest struct {
	UserID        uuid.UUID `json:"user_id"`
	OpportunityID uuid.UUID `json:"opportunity_id"`
}

func (h *MatchingHandler) CreateMatchRequest(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.UserID == uuid.Nil || req.OpportunityID == uuid.Nil {
		respondWithError(w, http.StatusBadRequest, "user_id and opportunity_id are required")
		return
	}

	matchRequest, err := h.service.CreateMatchRequest(r.Context(), req.UserID, req.OpportunityID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, matchRequest)
}

func (h *MatchingHandler) GetMatchRequest(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid match request ID")
		return
	}

	req, err := h.service.GetMatchRequest(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, req)
}

func (h *MatchingHandler) ListMatchRequestsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	reqs, err := h.service.ListMatchRequestsByUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, reqs)
}

func (h *MatchingHandler) ListMatchRequestsByOpportunity(w http.ResponseWriter, r *http.Request) {
	oppID, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID")
		return
	}

	reqs, err := h.service.ListMatchRequestsByOpportunity(r.Context(), oppID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, reqs)
}

func (h *MatchingHandler) ApproveMatchRequest(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid match request ID")
		return
	}

	match, err := h.service.ApproveMatchRequest(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, match)
}

type rejectMatchRequestRequest struct {
	Reason string `json:"reason"`
}

func (h *MatchingHandler) RejectMatchRequest(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid match request ID")
		return
	}

	var body rejectMatchRequestRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
	}

	req, err := h.service.RejectMatchRequest(r.Context(), id, body.Reason)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, req)
}

func (h *MatchingHandler) ListMatchesByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	matches, err := h.service.ListMatchesByUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, matches)
}

func (h *MatchingHandler) ListMatchesByOpportunity(w http.ResponseWriter, r *http.Request) {
	oppID, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID")
		return
	}

	matches, err := h.service.ListMatchesByOpportunity(r.Context(), oppID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, matches)
}

func (h *MatchingHandler) CancelMatch(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid match ID")
		return
	}

	if err := h.service.CancelMatch(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

func minScoreFromQuery(r *http.Request) (*float64, bool) {
	raw := r.URL.Query().Get("min_score")
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || v > 1 {
		return nil, false
	}
	return &v, true
}

// FindVolunteers ranks candidate volunteers for an opportunity.
func (h *MatchingHandler) FindVolunteers(w http.ResponseWriter, r *http.Request) {
	oppID, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity ID")
		return
	}

	minScore, ok := minScoreFromQuery(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "min_score must be between 0 and 1")
		return
	}

	results, err := h.service.FindMatchingVolunteers(r.Context(), oppID, h.service.MinScoreOrDefault(minScore))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, results)
}

// FindOpportunities ranks candidate opportunities for a volunteer.
func (h *MatchingHandler) FindOpportunities(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	minScore, ok := minScoreFromQuery(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "min_score must be between 0 and 1")
		return
	}

	results, err := h.service.FindMatchingOpportunities(r.Context(), userID, h.service.MinScoreOrDefault(minScore))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, results)
}

type expireRequestsRequest struct {
	DaysOld int `json:"days_old"`
}

// ExpireOldRequests sweeps stale pending requests. The cutoff comes
// from the ?days= query parameter; a JSON body with days_old wins
// when both are given.
func (h *MatchingHandler) ExpireOldRequests(w http.ResponseWriter, r *http.Request) {
	var req expireRequestsRequest
	if raw := r.URL.Query().Get("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			respondWithError(w, http.StatusBadRequest, "days must be a non-negative integer")
			return
		}
		req.DaysOld = days
	}
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
	}

	count, err := h.service.ExpireOldRequests(r.Context(), req.DaysOld)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int64{"expired_count": count})
}
