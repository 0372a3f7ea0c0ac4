package consolidate

import (
	"strings"
	"testing"
	"time"

	"github.com/aadedavid/PortoSantosHack2025/internal/feeds"
	"github.com/aadedavid/PortoSantosHack2025/internal/models"
)

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := ParseTimestamp(value)
	if err != nil {
		t.Fatalf("ParseTimestamp(%q) failed: %v", value, err)
	}
	return ts
}

func TestConsolidateTerminalSeedsSchedules(t *testing.T) {
	terminal := []feeds.TerminalRecord{
		{
			VesselID:        "NAVIO-001",
			TerminalName:    "Tecon Santos",
			OperationType:   "descarga",
			OperationStatus: "parcial",
			Observations:    "operação parcial",
			PlannedBerthing: "2024-03-10T08:00:00Z",
			ActualBerthing:  "2024-03-10T08:45:00Z",
		},
		{VesselID: "", TerminalName: "Tecon Santos"}, // no identifier, skipped
		{VesselID: "NAVIO-002", TerminalName: "TGG"},
	}

	schedules, err := Consolidate(nil, nil, terminal, nil)
	if err != nil {
		t.Fatalf("Consolidate failed: %v", err)
	}

	if len(schedules) != 2 {
		t.Fatalf("expected 2 schedules, got %d", len(schedules))
	}

	s := schedules[0]
	if s.VesselID != "NAVIO-001" {
		t.Errorf("first schedule vessel = %q, want NAVIO-001", s.VesselID)
	}
	if s.Terminal != "Tecon Santos" {
		t.Errorf("terminal = %q, want Tecon Santos", s.Terminal)
	}
	if s.Status != models.StatusInProgress {
		t.Errorf("status = %q, want %q (parcial maps to in progress)", s.Status, models.StatusInProgress)
	}
	if s.Priority != models.PrioritySequential {
		t.Errorf("priority = %q, want default %q", s.Priority, models.PrioritySequential)
	}
	if s.ETB.Estimated == nil || !s.ETB.Estimated.Equal(mustParse(t, "2024-03-10T08:00:00Z")) {
		t.Errorf("ETB.Estimated = %v, want 2024-03-10T08:00:00Z", s.ETB.Estimated)
	}
	if s.ATB == nil || !s.ATB.Equal(mustParse(t, "2024-03-10T08:45:00Z")) {
		t.Errorf("ATB = %v, want 2024-03-10T08:45:00Z", s.ATB)
	}

	if schedules[1].VesselID != "NAVIO-002" {
		t.Errorf("second schedule vessel = %q, want NAVIO-002 (insertion order)", schedules[1].VesselID)
	}
}

func TestConsolidateDuplicateTerminalLastWins(t *testing.T) {
	terminal := []feeds.TerminalRecord{
		{VesselID: "NAVIO-001", TerminalName: "Tecon Santos", OperationStatus: "aguardando_navio"},
		{VesselID: "NAVIO-001", TerminalName: "TGG", OperationStatus: "concluida"},
	}

	schedules, err := Consolidate(nil, nil, terminal, nil)
	if err != nil {
		t.Fatalf("Consolidate failed: %v", err)
	}
	if len(schedules) != 1 {
		t.Fatalf("expected 1 schedule for duplicated identifier, got %d", len(schedules))
	}
	if schedules[0].Terminal != "TGG" {
		t.Errorf("terminal = %q, want TGG (last record wins)", schedules[0].Terminal)
	}
	if schedules[0].Status != models.StatusCompleted {
		t.Errorf("status = %q, want %q", schedules[0].Status, models.StatusCompleted)
	}
}

func TestConsolidateAgencyEnrichment(t *testing.T) {
	terminal := []feeds.TerminalRecord{{VesselID: "NAVIO-001", TerminalName: "Tecon Santos"}}
	agency := []feeds.AgencyRecord{
		{VesselID: "NAVIO-001", AgencyName: "Wilson Sons"},
		{VesselID: "NAVIO-999", AgencyName: "Fantasma"}, // unknown vessel, dropped
	}

	schedules, err := Consolidate(agency, nil, terminal, nil)
	if err != nil {
		t.Fatalf("Consolidate failed: %v", err)
	}
	if len(schedules) != 1 {
		t.Fatalf("agency records must never create schedules: got %d", len(schedules))
	}
	if schedules[0].Agency != "Wilson Sons" {
		t.Errorf("agency = %q, want Wilson Sons", schedules[0].Agency)
	}
}

func TestConsolidatePilotageEnrichment(t *testing.T) {
	terminal := []feeds.TerminalRecord{
		{VesselID: "NAVIO-001", TerminalName: "Tecon Santos"},
		{VesselID: "NAVIO-002", TerminalName: "Tecon Santos"},
	}
	pilotage := []feeds.PilotageRecord{
		{
			VesselID:     "NAVIO-001",
			RequestedAt:  "2024-03-09T20:00:00Z",
			ExecutedAt:   "2024-03-10T06:00:00Z",
			ManeuverType: "entrada",
		},
		{
			VesselID:       "NAVIO-001",
			ExecutedAt:     "2024-03-12T14:00:00Z",
			ManeuverType:   "saida",
			IncidentReason: "neblina no canal",
		},
		{VesselID: "NAVIO-003", ExecutedAt: "2024-03-10T06:00:00Z", ManeuverType: "entrada"}, // unknown, dropped
	}

	schedules, err := Consolidate(nil, pilotage, terminal, nil)
	if err != nil {
		t.Fatalf("Consolidate failed: %v", err)
	}
	if len(schedules) != 2 {
		t.Fatalf("expected 2 schedules, got %d", len(schedules))
	}

	s := schedules[0]
	if s.ETA.Registered == nil || !s.ETA.Registered.Equal(mustParse(t, "2024-03-09T20:00:00Z")) {
		t.Errorf("ETA.Registered = %v, want 2024-03-09T20:00:00Z", s.ETA.Registered)
	}
	if s.ATA == nil || !s.ATA.Equal(mustParse(t, "2024-03-10T06:00:00Z")) {
		t.Errorf("ATA = %v, want entrada execution time", s.ATA)
	}
	if s.ATD == nil || !s.ATD.Equal(mustParse(t, "2024-03-12T14:00:00Z")) {
		t.Errorf("ATD = %v, want saida execution time", s.ATD)
	}
	if s.Incidents != "neblina no canal" {
		t.Errorf("incidents = %q, want incident reason carried over", s.Incidents)
	}

	// NAVIO-002 received no pilotage data
	if schedules[1].ATA != nil || schedules[1].ATD != nil {
		t.Errorf("NAVIO-002 should have no actuals, got ATA=%v ATD=%v", schedules[1].ATA, schedules[1].ATD)
	}
}

func TestConsolidateMalformedTimestampFails(t *testing.T) {
	terminal := []feeds.TerminalRecord{
		{VesselID: "NAVIO-001", TerminalName: "Tecon Santos", PlannedBerthing: "not-a-date"},
	}

	_, err := Consolidate(nil, nil, terminal, nil)
	if err == nil {
		t.Fatal("expected error for malformed timestamp, got nil")
	}
	if !strings.Contains(err.Error(), "NAVIO-001") {
		t.Errorf("error should name the vessel: %v", err)
	}
}

func TestConsolidateEmptyInput(t *testing.T) {
	schedules, err := Consolidate(nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("Consolidate on empty input failed: %v", err)
	}
	if len(schedules) != 0 {
		t.Errorf("expected no schedules, got %d", len(schedules))
	}
}

func TestConsolidateIdempotent(t *testing.T) {
	agency := []feeds.AgencyRecord{{VesselID: "NAVIO-001", AgencyName: "Wilson Sons"}}
	pilotage := []feeds.PilotageRecord{
		{VesselID: "NAVIO-001", RequestedAt: "2024-03-09T20:00:00Z"},
	}
	terminal := []feeds.TerminalRecord{
		{VesselID: "NAVIO-001", TerminalName: "Tecon Santos", PlannedBerthing: "2024-03-10T08:00:00Z"},
	}

	first, err := Consolidate(agency, pilotage, terminal, nil)
	if err != nil {
		t.Fatalf("first pass failed: %v", err)
	}
	second, err := Consolidate(agency, pilotage, terminal, nil)
	if err != nil {
		t.Fatalf("second pass failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("pass sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		// ids and creation timestamps are generated per pass
		a.ID, b.ID = "", ""
		a.CreatedAt, b.CreatedAt = time.Time{}, time.Time{}
		a.UpdatedAt, b.UpdatedAt = time.Time{}, time.Time{}
		if a.VesselID != b.VesselID || a.Agency != b.Agency || a.Terminal != b.Terminal {
			t.Errorf("schedule %d differs between passes: %+v vs %+v", i, a, b)
		}
		if (a.ETA.Registered == nil) != (b.ETA.Registered == nil) {
			t.Errorf("schedule %d ETA.Registered presence differs", i)
		}
	}
}

func TestMapStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want models.OperationStatus
	}{
		{"concluida", models.StatusCompleted},
		{"aguardando_navio", models.StatusPending},
		{"cancelada", models.StatusCancelled},
		{"aguardando_documentacao", models.StatusPending},
		{"concluida_com_atraso", models.StatusDelayed},
		{"parcial", models.StatusInProgress},
		{"", models.StatusPlanned},
		{"algo_desconhecido", models.StatusPlanned},
	}

	for _, tc := range tests {
		if got := MapStatus(tc.raw); got != tc.want {
			t.Errorf("MapStatus(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
