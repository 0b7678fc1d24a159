// internal/handler/application.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/JoshCentner/ShadowMatchPro/internal/metrics"
	"github.com/JoshCentner/ShadowMatchPro/internal/middleware"
	"github.com/JoshCentner/ShadowMatchPro/internal/service"
	"github.com/JoshCentner/ShadowMatchPro/internal/storage"
)

type ApplicationHandler struct {
	lifecycle *service.LifecycleService
	store     storage.Store
	metrics   *metrics.Collector
}

func NewApplicationHandler(lifecycle *service.LifecycleService, store storage.Store, collector *metrics.Collector) *ApplicationHandler {
	return &ApplicationHandler{lifecycle: lifecycle, store: store, metrics: collector}
}

// ListByOpportunity returns the applications made against an opportunity.
func (h *ApplicationHandler) ListByOpportunity(w http.ResponseWriter, r *http.Request) {
	opportunityID, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity id")
		return
	}

	applications, err := h.store.ListApplicationsByOpportunity(r.Context(), opportunityID)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, applications)
}

// Apply creates an application against an open opportunity.
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var input service.ApplyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid application data")
		return
	}

	application, err := h.lifecycle.Apply(r.Context(), input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordApplicationCreated()
	}

	respondWithJSON(w, http.StatusCreated, application)
}

// Accept records the single successful application for an opportunity and
// moves it to Filled.
func (h *ApplicationHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var input service.AcceptInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	if callerID, ok := middleware.UserIDFromContext(r.Context()); ok {
		input.CallerID = &callerID
	}

	accepted, err := h.lifecycle.Accept(r.Context(), input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordOpportunityFilled()
	}

	respondWithJSON(w, http.StatusCreated, accepted)
}
