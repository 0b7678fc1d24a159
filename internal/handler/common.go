// internal/handler/common.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/JoshCentner/ShadowMatchPro/internal/domain"
)

var validate = validator.New()

type ErrorResponse struct {
	Error string `json:"error"`
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

// respondWithDomainError maps the domain error taxonomy onto HTTP statuses:
// absence -> 404, invariant violations and bad input -> 400, ownership -> 403,
// anything else -> 500 with the detail kept out of the response body.
func respondWithDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"error", err,
			"path", r.URL.Path,
			"requestID", chimw.GetReqID(r.Context()),
		)
		respondWithError(w, status, "Internal server error")
		return
	}
	respondWithError(w, status, err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrOrganisationNotFound),
		errors.Is(err, domain.ErrOpportunityNotFound),
		errors.Is(err, domain.ErrApplicationNotFound),
		errors.Is(err, domain.ErrLearningAreaNotFound),
		errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrNoOrganisation),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrOpportunityNotOpen),
		errors.Is(err, domain.ErrDuplicateApplication),
		errors.Is(err, domain.ErrAlreadyAccepted),
		errors.Is(err, domain.ErrDuplicateOrgName),
		errors.Is(err, domain.ErrDuplicateAreaName),
		errors.Is(err, domain.ErrEmailAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotCreator),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// idParam parses a positive integer URL parameter.
func idParam(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return id, nil
}
