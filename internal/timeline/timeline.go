// Package timeline derives the terminal-grouped berth timeline used by the
// scheduling Gantt view.
package timeline

import (
	"sort"
	"time"

	"github.com/aadedavid/PortoSantosHack2025/internal/models"
)

// UnassignedTerminal groups schedules that have no terminal yet.
const UnassignedTerminal = "Terminal Não Definido"

// Entry is one vessel bar on the berth timeline. Timestamps are RFC3339
// strings so the frontend can render them without caring about Go zero
// values; nil means the instant is unknown.
type Entry struct {
	VesselID      string                 `json:"vesselId"`
	VesselName    string                 `json:"vesselName"`
	ETB           *string                `json:"etb"`
	ETD           *string                `json:"etd"`
	ATB           *string                `json:"atb"`
	ATD           *string                `json:"atd"`
	Status        models.OperationStatus `json:"status"`
	Priority      models.RAPPriority     `json:"priority"`
	Agency        string                 `json:"agency,omitempty"`
	OperationType string                 `json:"operationType,omitempty"`
	Observations  string                 `json:"observations,omitempty"`
}

// Build groups schedules by terminal and sorts each group by estimated
// berthing time, with undefined ETBs last.
func Build(schedules []models.VesselSchedule) map[string][]Entry {
	timeline := make(map[string][]Entry)

	for _, s := range schedules {
		terminal := s.Terminal
		if terminal == "" {
			terminal = UnassignedTerminal
		}

		name := s.VesselName
		if name == "" {
			name = s.VesselID
		}

		timeline[terminal] = append(timeline[terminal], Entry{
			VesselID:      s.VesselID,
			VesselName:    name,
			ETB:           formatInstant(s.ETB.Estimated),
			ETD:           formatInstant(s.ETD.Estimated),
			ATB:           formatInstant(s.ATB),
			ATD:           formatInstant(s.ATD),
			Status:        s.Status,
			Priority:      s.Priority,
			Agency:        s.Agency,
			OperationType: s.OperationType,
			Observations:  s.Observations,
		})
	}

	for terminal := range timeline {
		entries := timeline[terminal]
		sort.SliceStable(entries, func(i, j int) bool {
			return etbSortKey(entries[i]) < etbSortKey(entries[j])
		})
	}
	return timeline
}

func formatInstant(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

// etbSortKey orders entries by ETB; RFC3339 strings in UTC sort
// lexicographically, and a far-future sentinel pushes unknown ETBs last.
func etbSortKey(e Entry) string {
	if e.ETB == nil {
		return "9999-12-31T23:59:59Z"
	}
	return *e.ETB
}
