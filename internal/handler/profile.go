// internal/handler/profile.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/civicworks/volunteerhub/internal/service"
)

type ProfileHandler struct {
	service *service.ProfileService
}

func NewProfileHandler(service *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var input service.CreateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	profile, err := h.service.CreateProfile(r.Context(), userID, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, profile)
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var input service.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.service.DeleteProfile(r.Context(), userID); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

type skillRequest struct {
	Skill string `json:"skill"`
}

func (h *ProfileHandler) AddSkill(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req skillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	profile, err := h.service.AddSkill(r.Context(), userID, req.Skill)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) RemoveSkill(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req skillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	profile, err := h.service.RemoveSkill(r.Context(), userID, req.Skill)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

type tagRequest struct {
	Tag string `json:"tag"`
}

func (h *ProfileHandler) AddTag(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req tagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	profile, err := h.service.AddTag(r.Context(), userID, req.Tag)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req tagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	profile, err := h.service.RemoveTag(r.Context(), userID, req.Tag)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) AddAvailability(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var input service.AvailabilityWindowInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	profile, err := h.service.AddAvailabilityWindow(r.Context(), userID, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) RemoveAvailability(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "userID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var input service.AvailabilityWindowInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	profile, err := h.service.RemoveAvailabilityWindow(r.Context(), userID, input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

// SearchProfiles filters profiles by the query string. Supported
// parameters: skills, tags (comma-separated), or weekday, start_minute,
// end_minute for availability.
func (h *ProfileHandler) SearchProfiles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if raw := q.Get("skills"); raw != "" {
		profiles, err := h.service.FindBySkills(r.Context(), strings.Split(raw, ","))
		if err != nil {
			handleServiceError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, profiles)
		return
	}

	if raw := q.Get("tags"); raw != "" {
		profiles, err := h.service.FindByTags(r.Context(), strings.Split(raw, ","))
		if err != nil {
			handleServiceError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, profiles)
		return
	}

	if raw := q.Get("weekday"); raw != "" {
		weekday, err := strconv.Atoi(raw)
		if err != nil || weekday < 0 || weekday > 6 {
			respondWithError(w, http.StatusBadRequest, "Invalid weekday")
			return
		}
		start, err := strconv.Atoi(q.Get("start_minute"))
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid start_minute")
			return
		}
		end, err := strconv.Atoi(q.Get("end_minute"))
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid end_minute")
			return
		}

		profiles, err := h.service.FindAvailable(r.Context(), weekday, start, end)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, profiles)
		return
	}

	profiles, err := h.service.ListProfiles(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, profiles)
}
