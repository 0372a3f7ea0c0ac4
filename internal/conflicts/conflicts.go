// Package conflicts finds time-overlapping berth assignments among
// consolidated vessel schedules.
package conflicts

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aadedavid/PortoSantosHack2025/internal/models"
)

// Detect returns one ConflictAlert per pair of schedules whose occupancy
// windows overlap on the same terminal. Only schedules with a terminal name
// and estimated berthing and departure instants participate; everything else
// is excluded from the analysis, which is not an error.
//
// Windows are half-open [start, end): two windows that touch at a boundary
// do not conflict. A schedule can appear in several alerts if it overlaps
// with more than one vessel.
func Detect(schedules []models.VesselSchedule) []models.ConflictAlert {
	byTerminal := make(map[string][]models.VesselSchedule)
	var terminals []string
	for _, s := range schedules {
		if s.Terminal == "" || s.ETB.Estimated == nil || s.ETD.Estimated == nil {
			continue
		}
		if _, seen := byTerminal[s.Terminal]; !seen {
			terminals = append(terminals, s.Terminal)
		}
		byTerminal[s.Terminal] = append(byTerminal[s.Terminal], s)
	}

	var alerts []models.ConflictAlert
	for _, terminal := range terminals {
		group := byTerminal[terminal]
		// Per-terminal vessel counts are small, so the quadratic pairwise
		// scan is fine.
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				if alert := checkOverlap(group[i], group[j], terminal); alert != nil {
					alerts = append(alerts, *alert)
				}
			}
		}
	}
	return alerts
}

// checkOverlap tests two schedules for berth-window overlap and builds the
// alert when they do.
func checkOverlap(a, b models.VesselSchedule, terminal string) *models.ConflictAlert {
	aStart, aEnd := occupancyWindow(a)
	bStart, bEnd := occupancyWindow(b)
	if aStart == nil || aEnd == nil || bStart == nil || bEnd == nil {
		return nil
	}

	if !(aStart.Before(*bEnd) && bStart.Before(*aEnd)) {
		return nil
	}

	overlapStart := maxTime(*aStart, *bStart)
	overlapEnd := minTime(*aEnd, *bEnd)
	overlapMinutes := int(overlapEnd.Sub(overlapStart).Minutes())

	return &models.ConflictAlert{
		ID:       uuid.New().String(),
		Terminal: terminal,
		Vessels:  []string{a.VesselID, b.VesselID},
		Kind:     models.ConflictOverlap,
		Description: fmt.Sprintf("Conflito de atracação: %s e %s sobrepõem em %d minutos",
			a.VesselID, b.VesselID, overlapMinutes),
		OverlapMinutes: overlapMinutes,
		CreatedAt:      time.Now().UTC(),
	}
}

// occupancyWindow returns the berth occupancy window of a schedule,
// preferring estimates over actuals on both ends.
func occupancyWindow(s models.VesselSchedule) (start, end *time.Time) {
	start = s.ETB.Estimated
	if start == nil {
		start = s.ATB
	}
	end = s.ETD.Estimated
	if end == nil {
		end = s.ATD
	}
	return start, end
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
