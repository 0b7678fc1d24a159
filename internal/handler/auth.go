// internal/handler/auth.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/JoshCentner/ShadowMatchPro/internal/service"
)

type AuthHandler struct {
	users *service.UserService
}

func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Register creates a user on first sign-in: 201 for a new row, 200 when the
// email is already known.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user data")
		return
	}

	output, err := h.users.Register(r.Context(), input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	status := http.StatusOK
	if output.Created {
		status = http.StatusCreated
	}
	respondWithJSON(w, status, output.User)
}

// GoogleSignIn creates or refreshes a user from the identity-provider
// profile and returns a bearer token alongside the user.
func (h *AuthHandler) GoogleSignIn(w http.ResponseWriter, r *http.Request) {
	var input service.GoogleSignInInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Email and name are required")
		return
	}

	output, err := h.users.GoogleSignIn(r.Context(), input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, output)
}

// Me returns the current user identified by the userId query parameter.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	rawID := r.URL.Query().Get("userId")
	if rawID == "" {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	userID, err := strconv.Atoi(rawID)
	if err != nil || userID <= 0 {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.users.Me(r.Context(), userID)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
