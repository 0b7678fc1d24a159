// internal/handler/opportunity.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/JoshCentner/ShadowMatchPro/internal/middleware"
	"github.com/JoshCentner/ShadowMatchPro/internal/model"
	"github.com/JoshCentner/ShadowMatchPro/internal/service"
	"github.com/JoshCentner/ShadowMatchPro/internal/storage"
)

type OpportunityHandler struct {
	lifecycle *service.LifecycleService
	store     storage.Store
}

func NewOpportunityHandler(lifecycle *service.LifecycleService, store storage.Store) *OpportunityHandler {
	return &OpportunityHandler{lifecycle: lifecycle, store: store}
}

// List returns enriched opportunities, optionally filtered by organisation,
// status and format.
func (h *OpportunityHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := storage.OpportunityFilter{}

	if raw := r.URL.Query().Get("organisationId"); raw != "" {
		orgID, err := strconv.Atoi(raw)
		if err != nil || orgID <= 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid organisationId filter")
			return
		}
		filter.OrganisationID = &orgID
	}
	filter.Status = model.OpportunityStatus(r.URL.Query().Get("status"))
	filter.Format = model.OpportunityFormat(r.URL.Query().Get("format"))

	opportunities, err := h.store.ListOpportunities(r.Context(), filter)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, opportunities)
}

// Get returns one enriched opportunity.
func (h *OpportunityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity id")
		return
	}

	opportunity, err := h.store.GetOpportunityByID(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, opportunity)
}

// Create creates an opportunity and links any provided learning areas.
func (h *OpportunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateOpportunityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity data")
		return
	}

	opportunity, err := h.lifecycle.CreateOpportunity(r.Context(), input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, opportunity)
}

type updateOpportunityRequest struct {
	Title            *string                  `json:"title"`
	Description      *string                  `json:"description"`
	Format           *model.OpportunityFormat `json:"format"`
	DurationLimit    *model.DurationLimit     `json:"durationLimit"`
	Status           *model.OpportunityStatus `json:"status"`
	HostDetails      *string                  `json:"hostDetails"`
	LearningOutcomes *string                  `json:"learningOutcomes"`
}

// Update applies a partial update; status changes are validated against the
// lifecycle rules.
func (h *OpportunityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid opportunity id")
		return
	}

	var req updateOpportunityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	input := service.UpdateOpportunityInput{
		Update: storage.OpportunityUpdate{
			Title:            req.Title,
			Description:      req.Description,
			Format:           req.Format,
			DurationLimit:    req.DurationLimit,
			Status:           req.Status,
			HostDetails:      req.HostDetails,
			LearningOutcomes: req.LearningOutcomes,
		},
	}
	if callerID, ok := middleware.UserIDFromContext(r.Context()); ok {
		input.CallerID = &callerID
	}

	opportunity, err := h.lifecycle.UpdateOpportunity(r.Context(), id, input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, opportunity)
}
