// internal/handler/user.go
package handler

import (
	"net/http"

	"github.com/civicworks/volunteerhub/internal/middleware"
	"github.com/civicworks/volunteerhub/internal/service"
	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// EnsureUser provisions (or fetches) the account for the caller's token.
// The account ID is derived from the token subject, so the call is
// idempotent.
func (h *UserHandler) EnsureUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.service.EnsureUser(r.Context(), service.EnsureUserInput{
		Auth0Sub: claims.Subject,
		Email:    claims.Email,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// GetUser returns a user by ID.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// GetUserByAuth0Sub returns a user by their identity subject.
func (h *UserHandler) GetUserByAuth0Sub(w http.ResponseWriter, r *http.Request) {
	sub := chi.URLParam(r, "sub")
	if sub == "" {
		respondWithError(w, http.StatusBadRequest, "Invalid subject")
		return
	}

	user, err := h.service.GetUserByAuth0Sub(r.Context(), sub)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// Me returns the account for the caller's token.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	sub, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.service.GetUserByAuth0Sub(r.Context(), sub)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
