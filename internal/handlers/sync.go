package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/aadedavid/PortoSantosHack2025/internal/sync"
)

// Syncer runs one data synchronization pass.
type Syncer interface {
	Run(ctx context.Context) (*sync.Result, error)
}

// SyncHandler handles the manual sync endpoint.
type SyncHandler struct {
	syncer Syncer
}

// NewSyncHandler creates a new handler with the given syncer.
func NewSyncHandler(syncer Syncer) *SyncHandler {
	return &SyncHandler{syncer: syncer}
}

// SyncResponse is the JSON response for POST /api/sync-external-data.
type SyncResponse struct {
	Message           string `json:"message"`
	VesselsProcessed  int    `json:"vesselsProcessed"`
	ConflictsDetected int    `json:"conflictsDetected"`
}

// SyncExternalData handles POST /api/sync-external-data. Fetching four
// upstream feeds can take a while, so the timeout is generous.
func (h *SyncHandler) SyncExternalData(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	result, err := h.syncer.Run(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, SyncResponse{
		Message:           "Data synchronized successfully",
		VesselsProcessed:  result.VesselsProcessed,
		ConflictsDetected: result.ConflictsDetected,
	})
}
