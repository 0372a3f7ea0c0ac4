package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aadedavid/PortoSantosHack2025/internal/consolidate"
	"github.com/aadedavid/PortoSantosHack2025/internal/kpi"
)

// KPIHandler handles HTTP requests for punctuality metrics.
type KPIHandler struct {
	repo       VesselRepository
	windowDays int
}

// NewKPIHandler creates a new handler. windowDays is the default window
// length when the request supplies no dates.
func NewKPIHandler(repo VesselRepository, windowDays int) *KPIHandler {
	if windowDays <= 0 {
		windowDays = 30
	}
	return &KPIHandler{repo: repo, windowDays: windowDays}
}

// GetKPIs handles GET /api/kpis.
// Query params: start_date, end_date (ISO-8601, both optional; defaults to
// the trailing configured window ending now).
func (h *KPIHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	start, end, err := h.window(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	schedules, err := h.repo.ListSchedules(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get schedules")
		return
	}

	writeJSON(w, http.StatusOK, kpi.Calculate(schedules, start, end))
}

func (h *KPIHandler) window(r *http.Request) (start, end time.Time, err error) {
	end = time.Now().UTC()
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		end, err = consolidate.ParseTimestamp(raw)
		if err != nil {
			return start, end, fmt.Errorf("invalid end_date: %v", err)
		}
	}

	start = end.AddDate(0, 0, -h.windowDays)
	if raw := r.URL.Query().Get("start_date"); raw != "" {
		start, err = consolidate.ParseTimestamp(raw)
		if err != nil {
			return start, end, fmt.Errorf("invalid start_date: %v", err)
		}
	}
	return start, end, nil
}
