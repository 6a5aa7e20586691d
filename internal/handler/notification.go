// internal/handler/notification.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/civicworks/volunteerhub/internal/model"
	"github.com/civicworks/volunteerhub/internal/service"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	service *service.NotificationService
}

func NewNotificationHandler(service *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) Send(w http.ResponseWriter, r *http.Request) {
	var input service.SendNotificationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	notification, err := h.service.Send(r.Context(), input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, notification)
}

func (h *NotificationHandler) GetNotification(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	notification, err := h.service.GetNotification(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, notification)
}

// ListByUser returns a user's notifications. Supported query
// parameters: status, limit.
func (h *NotificationHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	status := model.NotificationStatus(r.URL.Query().Get("status"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	notifications, err := h.service.ListByUser(r.Context(), userID, status, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	if err := h.service.MarkRead(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	count, err := h.service.UnreadCount(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int64{"unread_count": count})
}

func (h *NotificationHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	prefs, err := h.service.Preferences(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, prefs)
}

func (h *NotificationHandler) SetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var prefs map[model.NotificationChannel]bool
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.service.SetPreferences(r.Context(), userID, prefs); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

func (h *NotificationHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.service.ListPending(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, notifications)
}

func (h *NotificationHandler) RetryFailed(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.RetryFailed(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int{"retried_count": count})
}

type eventNotificationRequest struct {
	RecipientID   uuid.UUID `json:"recipient_id"`
	EventTitle    string    `json:"event_title"`
	EventDate     time.Time `json:"event_date"`
	EventLocation string    `json:"event_location"`
	HoursBefore   int       `json:"hours_before"`
	UpdateDetails string    `json:"update_details"`
	Reason        string    `json:"reason"`
}

type matchNotificationRequest struct {
	RecipientID      uuid.UUID `json:"recipient_id"`
	EventTitle       string    `json:"event_title"`
	OpportunityTitle string    `json:"opportunity_title"`
	Reason           string    `json:"reason"`
	MatchingSkills   []string  `json:"matching_skills"`
}

func (h *NotificationHandler) SendEventAssignment(w http.ResponseWriter, r *http.Request) {
	var req eventNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	notification, err := h.service.SendEventAssignment(r.Context(), req.RecipientID, req.EventTitle, req.EventDate, req.EventLocation)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, notification)
}

func (h *NotificationHandler) SendEventReminder(w http.ResponseWriter, r *http.Request) {
	var req eventNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	notification, err := h.service.SendEventReminder(r.Context(), req.RecipientID, req.EventTitle, req.EventDate, req.EventLocation, req.HoursBefore)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, notification)
}

func (h *NotificationHandler) SendEventUpdate(w http.ResponseWriter, r *http.Request) {
	var req eventNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	notification, err := h.service.SendEventUpdate(r.Context(), req.RecipientID, req.EventTitle, req.UpdateDetails)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, notification)
}

func (h *NotificationHandler) SendEventCancellation(w http.ResponseWriter, r *http.Request) {
	var req eventNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	notification, err := h.service.SendEventCancellation(r.Context(), req.RecipientID, req.EventTitle, req.Reason)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, notification)
}

func (h *NotificationHandler) SendMatchRequestApproved(w http.ResponseWriter, r *http.Request) {
	var req matchNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	notification, err := h.service.SendMatchRequestApproved(r.Context(), req.RecipientID, req.EventTitle, req.OpportunityTitle)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, notification)
}

func (h *NotificationHandler) SendMatchRequestRejected(w http.ResponseWriter, r *http.Request) {
	var req matchNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	notification, err := h.service.SendMatchRequestRejected(r.Context(), req.RecipientID, req.EventTitle, req.OpportunityTitle, req.Reason)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, notification)
}

func (h *NotificationHandler) SendNewOpportunity(w http.ResponseWriter, r *http.Request) {
	var req matchNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	notification, err := h.service.SendNewOpportunity(r.Context(), req.RecipientID, req.EventTitle, req.OpportunityTitle, req.MatchingSkills)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, notification)
}
