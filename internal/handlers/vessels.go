package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aadedavid/PortoSantosHack2025/internal/models"
	"github.com/aadedavid/PortoSantosHack2025/internal/storage"
	"github.com/aadedavid/PortoSantosHack2025/internal/timeline"
)

// VesselRepository defines the schedule read operations the handlers need.
type VesselRepository interface {
	ListSchedules(ctx context.Context) ([]models.VesselSchedule, error)
	GetSchedule(ctx context.Context, vesselID string) (*models.VesselSchedule, error)
}

// VesselHandler handles HTTP requests for vessel schedules.
type VesselHandler struct {
	repo VesselRepository
}

// NewVesselHandler creates a new handler with the given repository.
func NewVesselHandler(repo VesselRepository) *VesselHandler {
	return &VesselHandler{repo: repo}
}

// VesselsResponse is the JSON response for GET /api/vessels.
type VesselsResponse struct {
	Vessels []models.VesselSchedule `json:"vessels"`
	Count   int                     `json:"count"`
}

// GetVessels handles GET /api/vessels.
func (h *VesselHandler) GetVessels(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	vessels, err := h.repo.ListSchedules(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get vessels")
		return
	}
	if vessels == nil {
		vessels = []models.VesselSchedule{}
	}
	writeJSON(w, http.StatusOK, VesselsResponse{Vessels: vessels, Count: len(vessels)})
}

// GetVessel handles GET /api/vessels/{vesselID}.
func (h *VesselHandler) GetVessel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	vesselID := chi.URLParam(r, "vesselID")
	vessel, err := h.repo.GetSchedule(ctx, vesselID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Vessel not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get vessel")
		return
	}
	writeJSON(w, http.StatusOK, vessel)
}

// GetBerthTimeline handles GET /api/berths/timeline. Schedules are grouped
// by terminal and sorted by estimated berthing time for the Gantt view.
func (h *VesselHandler) GetBerthTimeline(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	vessels, err := h.repo.ListSchedules(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get berth timeline")
		return
	}
	writeJSON(w, http.StatusOK, timeline.Build(vessels))
}
