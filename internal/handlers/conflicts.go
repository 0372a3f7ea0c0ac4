package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aadedavid/PortoSantosHack2025/internal/models"
	"github.com/aadedavid/PortoSantosHack2025/internal/storage"
)

// ConflictRepository defines the conflict operations the handlers need.
type ConflictRepository interface {
	ListConflicts(ctx context.Context, includeResolved bool) ([]models.ConflictAlert, error)
	ResolveConflict(ctx context.Context, conflictID string) error
}

// ConflictHandler handles HTTP requests for berth conflicts.
type ConflictHandler struct {
	repo ConflictRepository
}

// NewConflictHandler creates a new handler with the given repository.
func NewConflictHandler(repo ConflictRepository) *ConflictHandler {
	return &ConflictHandler{repo: repo}
}

// ConflictsResponse is the JSON response for GET /api/conflicts.
type ConflictsResponse struct {
	Conflicts []models.ConflictAlert `json:"conflicts"`
	Count     int                    `json:"count"`
}

// GetConflicts handles GET /api/conflicts. Resolved conflicts are excluded
// unless include_resolved=true is passed.
func (h *ConflictHandler) GetConflicts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	includeResolved := r.URL.Query().Get("include_resolved") == "true"

	conflicts, err := h.repo.ListConflicts(ctx, includeResolved)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get conflicts")
		return
	}
	if conflicts == nil {
		conflicts = []models.ConflictAlert{}
	}
	writeJSON(w, http.StatusOK, ConflictsResponse{Conflicts: conflicts, Count: len(conflicts)})
}

// ResolveConflict handles POST /api/conflicts/{conflictID}/resolve.
func (h *ConflictHandler) ResolveConflict(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	conflictID := chi.URLParam(r, "conflictID")
	if err := h.repo.ResolveConflict(ctx, conflictID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Conflict not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to resolve conflict")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Conflict resolved successfully"})
}
