// internal/handler/client_config.go
package handler

import (
	"net/http"

	"github.com/JoshCentner/ShadowMatchPro/internal/config"
)

type ClientConfigHandler struct {
	cfg *config.Config
}

func NewClientConfigHandler(cfg *config.Config) *ClientConfigHandler {
	return &ClientConfigHandler{cfg: cfg}
}

// Get exposes the client-safe configuration. Nothing secret may appear here.
func (h *ClientConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"apiBaseUrl":     h.cfg.Public.APIBaseURL,
		"googleClientId": h.cfg.Public.GoogleClientID,
	})
}
