package handlers

import (
	"net/http"

	"github.com/aadedavid/PortoSantosHack2025/internal/marinetraffic"
)

// MarineTrafficHandler serves outbound deep-links to MarineTraffic.
type MarineTrafficHandler struct{}

// NewMarineTrafficHandler creates the handler.
func NewMarineTrafficHandler() *MarineTrafficHandler {
	return &MarineTrafficHandler{}
}

// GetSantosLinks handles GET /api/marine-traffic/santos.
// Query params: lang (optional, "en" or "pt", default "en").
func (h *MarineTrafficHandler) GetSantosLinks(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = "en"
	}
	writeJSON(w, http.StatusOK, marinetraffic.SantosPortLinks(lang))
}
