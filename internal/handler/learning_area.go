// internal/handler/learning_area.go
package handler

import (
	"net/http"

	"github.com/JoshCentner/ShadowMatchPro/internal/storage"
)

type LearningAreaHandler struct {
	store storage.Store
}

func NewLearningAreaHandler(store storage.Store) *LearningAreaHandler {
	return &LearningAreaHandler{store: store}
}

// List returns the learning-area tag vocabulary.
func (h *LearningAreaHandler) List(w http.ResponseWriter, r *http.Request) {
	areas, err := h.store.ListLearningAreas(r.Context())
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, areas)
}
