// internal/handler/organisation.go
package handler

import (
	"net/http"

	"github.com/JoshCentner/ShadowMatchPro/internal/storage"
)

type OrganisationHandler struct {
	store storage.Store
}

func NewOrganisationHandler(store storage.Store) *OrganisationHandler {
	return &OrganisationHandler{store: store}
}

// List returns every organisation.
func (h *OrganisationHandler) List(w http.ResponseWriter, r *http.Request) {
	organisations, err := h.store.ListOrganisations(r.Context())
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, organisations)
}
