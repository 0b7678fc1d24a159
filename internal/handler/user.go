// internal/handler/user.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/JoshCentner/ShadowMatchPro/internal/service"
	"github.com/JoshCentner/ShadowMatchPro/internal/storage"
)

type UserHandler struct {
	users *service.UserService
	store storage.Store
}

func NewUserHandler(users *service.UserService, store storage.Store) *UserHandler {
	return &UserHandler{users: users, store: store}
}

// UpdateProfile applies a partial profile update.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var input service.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	user, err := h.users.UpdateProfile(r.Context(), userID, input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// ListOpportunities returns the opportunities created by a user, enriched.
func (h *UserHandler) ListOpportunities(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	opportunities, err := h.store.ListOpportunitiesByCreator(r.Context(), userID)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, opportunities)
}

// ListApplications returns the applications a user has made.
func (h *UserHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	applications, err := h.store.ListApplicationsByUser(r.Context(), userID)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, applications)
}
