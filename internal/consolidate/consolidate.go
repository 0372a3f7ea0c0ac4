// Package consolidate merges the four upstream port feeds into one canonical
// VesselSchedule per vessel identifier.
//
// Terminal records are the primary source: they create schedules. The other
// feeds only enrich schedules that already exist; records referencing an
// unknown vessel identifier are dropped. The enrichment order is a fixed
// business policy (terminal, then agency, then pilotage, then authority) and
// is represented as an explicit step list so new feeds can be appended.
package consolidate

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aadedavid/PortoSantosHack2025/internal/feeds"
	"github.com/aadedavid/PortoSantosHack2025/internal/models"
)

// statusMapping translates terminal feed statuses to internal statuses.
// Unmapped values fall back to StatusPlanned.
var statusMapping = map[string]models.OperationStatus{
	"concluida":               models.StatusCompleted,
	"aguardando_navio":        models.StatusPending,
	"cancelada":               models.StatusCancelled,
	"aguardando_documentacao": models.StatusPending,
	"concluida_com_atraso":    models.StatusDelayed,
	"parcial":                 models.StatusInProgress,
}

// MapStatus converts a raw terminal operation status to the internal status.
func MapStatus(raw string) models.OperationStatus {
	if s, ok := statusMapping[raw]; ok {
		return s
	}
	return models.StatusPlanned
}

// index holds schedules keyed by vessel identifier while preserving the
// order in which identifiers were first seen.
type index struct {
	byVessel map[string]*models.VesselSchedule
	order    []string
}

func newIndex() *index {
	return &index{byVessel: make(map[string]*models.VesselSchedule)}
}

func (ix *index) put(vesselID string, s *models.VesselSchedule) {
	if _, seen := ix.byVessel[vesselID]; !seen {
		ix.order = append(ix.order, vesselID)
	}
	ix.byVessel[vesselID] = s
}

func (ix *index) get(vesselID string) *models.VesselSchedule {
	return ix.byVessel[vesselID]
}

func (ix *index) schedules() []models.VesselSchedule {
	out := make([]models.VesselSchedule, 0, len(ix.order))
	for _, id := range ix.order {
		out = append(out, *ix.byVessel[id])
	}
	return out
}

// Consolidate merges the four feeds into one schedule per vessel identifier.
// A malformed timestamp in any record is a fatal error for the whole pass;
// records without a vessel identifier (terminal feed) or referencing an
// unknown one (agency/pilotage feeds) are skipped silently.
func Consolidate(
	agency []feeds.AgencyRecord,
	pilotage []feeds.PilotageRecord,
	terminal []feeds.TerminalRecord,
	authority []feeds.AuthorityRecord,
) ([]models.VesselSchedule, error) {
	ix := newIndex()

	steps := []struct {
		name  string
		apply func(*index) error
	}{
		{"terminal", func(ix *index) error { return applyTerminal(ix, terminal) }},
		{"agency", func(ix *index) error { return applyAgency(ix, agency) }},
		{"pilotage", func(ix *index) error { return applyPilotage(ix, pilotage) }},
		{"authority", func(ix *index) error { return applyAuthority(ix, authority) }},
	}

	for _, step := range steps {
		if err := step.apply(ix); err != nil {
			return nil, fmt.Errorf("consolidate %s feed: %w", step.name, err)
		}
	}

	return ix.schedules(), nil
}

// applyTerminal seeds one schedule per terminal record. Later records for
// the same vessel identifier replace earlier ones within the pass.
func applyTerminal(ix *index, records []feeds.TerminalRecord) error {
	now := time.Now().UTC()

	for _, rec := range records {
		if rec.VesselID == "" {
			continue
		}

		s := &models.VesselSchedule{
			ID:            uuid.New().String(),
			VesselID:      rec.VesselID,
			Terminal:      rec.TerminalName,
			OperationType: rec.OperationType,
			Status:        MapStatus(rec.OperationStatus),
			Observations:  rec.Observations,
			Priority:      models.PrioritySequential,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if rec.PlannedBerthing != "" {
			t, err := ParseTimestamp(rec.PlannedBerthing)
			if err != nil {
				return fmt.Errorf("vessel %s dataPrevistaAtracacao: %w", rec.VesselID, err)
			}
			s.ETB.Estimated = &t
		}
		if rec.ActualBerthing != "" {
			t, err := ParseTimestamp(rec.ActualBerthing)
			if err != nil {
				return fmt.Errorf("vessel %s dataRealAtracacao: %w", rec.VesselID, err)
			}
			s.ATB = &t
		}

		ix.put(rec.VesselID, s)
	}
	return nil
}

// applyAgency sets the maritime agency name on known vessels.
func applyAgency(ix *index, records []feeds.AgencyRecord) error {
	for _, rec := range records {
		if s := ix.get(rec.VesselID); s != nil {
			s.Agency = rec.AgencyName
		}
	}
	return nil
}

// applyPilotage enriches known vessels with maneuver timestamps and
// incident notes. Each assignment is independent: a single record may set
// any subset of the fields depending on which source fields are populated.
func applyPilotage(ix *index, records []feeds.PilotageRecord) error {
	for _, rec := range records {
		s := ix.get(rec.VesselID)
		if s == nil {
			continue
		}

		if rec.RequestedAt != "" {
			t, err := ParseTimestamp(rec.RequestedAt)
			if err != nil {
				return fmt.Errorf("vessel %s dataSolicitacao: %w", rec.VesselID, err)
			}
			s.ETA.Registered = &t
		}
		if rec.ExecutedAt != "" {
			t, err := ParseTimestamp(rec.ExecutedAt)
			if err != nil {
				return fmt.Errorf("vessel %s dataExecucao: %w", rec.VesselID, err)
			}
			switch rec.ManeuverType {
			case "entrada":
				s.ATA = &t
			case "saida":
				s.ATD = &t
			}
		}
		if rec.IncidentReason != "" {
			s.Incidents = rec.IncidentReason
		}
	}
	return nil
}

// applyAuthority is a placeholder enrichment step: the port authority feed
// carries no field group that maps onto the consolidated schedule yet.
func applyAuthority(ix *index, records []feeds.AuthorityRecord) error {
	_ = records
	return nil
}
