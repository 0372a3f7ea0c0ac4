package conflicts

import (
	"testing"
	"time"

	"github.com/aadedavid/PortoSantosHack2025/internal/models"
)

func ts(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", value, err)
	}
	parsed = parsed.UTC()
	return &parsed
}

func schedule(t *testing.T, vesselID, terminal, etb, etd string) models.VesselSchedule {
	t.Helper()
	s := models.VesselSchedule{VesselID: vesselID, Terminal: terminal}
	if etb != "" {
		s.ETB.Estimated = ts(t, etb)
	}
	if etd != "" {
		s.ETD.Estimated = ts(t, etd)
	}
	return s
}

func TestDetectTouchingWindowsDoNotConflict(t *testing.T) {
	schedules := []models.VesselSchedule{
		schedule(t, "A", "Tecon", "2024-03-10T10:00:00Z", "2024-03-10T12:00:00Z"),
		schedule(t, "B", "Tecon", "2024-03-10T12:00:00Z", "2024-03-10T14:00:00Z"),
	}

	alerts := Detect(schedules)
	if len(alerts) != 0 {
		t.Fatalf("touching windows must not conflict, got %d alerts", len(alerts))
	}
}

func TestDetectOneMinuteOverlap(t *testing.T) {
	schedules := []models.VesselSchedule{
		schedule(t, "A", "Tecon", "2024-03-10T10:00:00Z", "2024-03-10T12:01:00Z"),
		schedule(t, "B", "Tecon", "2024-03-10T12:00:00Z", "2024-03-10T14:00:00Z"),
	}

	alerts := Detect(schedules)
	if len(alerts) != 1 {
		t.Fatalf("expected exactly 1 alert, got %d", len(alerts))
	}

	a := alerts[0]
	if a.OverlapMinutes != 1 {
		t.Errorf("overlap = %d minutes, want 1", a.OverlapMinutes)
	}
	if a.Kind != models.ConflictOverlap {
		t.Errorf("kind = %q, want overlap", a.Kind)
	}
	if a.Terminal != "Tecon" {
		t.Errorf("terminal = %q, want Tecon", a.Terminal)
	}
	if len(a.Vessels) != 2 || a.Vessels[0] != "A" || a.Vessels[1] != "B" {
		t.Errorf("vessels = %v, want [A B] in encounter order", a.Vessels)
	}
	if a.Resolved {
		t.Error("new alert must not be resolved")
	}
}

func TestDetectSymmetric(t *testing.T) {
	a := schedule(t, "A", "Tecon", "2024-03-10T10:00:00Z", "2024-03-10T13:00:00Z")
	b := schedule(t, "B", "Tecon", "2024-03-10T11:00:00Z", "2024-03-10T14:00:00Z")

	forward := Detect([]models.VesselSchedule{a, b})
	reverse := Detect([]models.VesselSchedule{b, a})

	if len(forward) != 1 || len(reverse) != 1 {
		t.Fatalf("expected 1 alert each way, got %d and %d", len(forward), len(reverse))
	}
	if forward[0].OverlapMinutes != reverse[0].OverlapMinutes {
		t.Errorf("overlap minutes differ by input order: %d vs %d",
			forward[0].OverlapMinutes, reverse[0].OverlapMinutes)
	}
	if forward[0].OverlapMinutes != 120 {
		t.Errorf("overlap = %d minutes, want 120", forward[0].OverlapMinutes)
	}
}

func TestDetectRequiresTerminalAndEstimates(t *testing.T) {
	overlapping := []models.VesselSchedule{
		schedule(t, "A", "", "2024-03-10T10:00:00Z", "2024-03-10T14:00:00Z"), // no terminal
		schedule(t, "B", "Tecon", "", "2024-03-10T14:00:00Z"),               // no ETB
		schedule(t, "C", "Tecon", "2024-03-10T10:00:00Z", ""),               // no ETD
		schedule(t, "D", "Tecon", "2024-03-10T10:00:00Z", "2024-03-10T14:00:00Z"),
	}

	alerts := Detect(overlapping)
	if len(alerts) != 0 {
		t.Fatalf("incomplete schedules must be excluded, got %d alerts", len(alerts))
	}
}

func TestDetectDifferentTerminalsNoConflict(t *testing.T) {
	schedules := []models.VesselSchedule{
		schedule(t, "A", "Tecon", "2024-03-10T10:00:00Z", "2024-03-10T14:00:00Z"),
		schedule(t, "B", "TGG", "2024-03-10T10:00:00Z", "2024-03-10T14:00:00Z"),
	}

	if alerts := Detect(schedules); len(alerts) != 0 {
		t.Fatalf("different terminals must not conflict, got %d alerts", len(alerts))
	}
}

func TestDetectVesselInMultipleConflicts(t *testing.T) {
	schedules := []models.VesselSchedule{
		schedule(t, "A", "Tecon", "2024-03-10T08:00:00Z", "2024-03-10T20:00:00Z"),
		schedule(t, "B", "Tecon", "2024-03-10T09:00:00Z", "2024-03-10T10:00:00Z"),
		schedule(t, "C", "Tecon", "2024-03-10T11:00:00Z", "2024-03-10T12:00:00Z"),
	}

	alerts := Detect(schedules)
	if len(alerts) != 2 {
		t.Fatalf("expected A-B and A-C alerts, got %d", len(alerts))
	}
	for _, a := range alerts {
		if a.Vessels[0] != "A" {
			t.Errorf("first vessel = %q, want A (first encountered)", a.Vessels[0])
		}
	}
}

func TestDetectEmptyInput(t *testing.T) {
	if alerts := Detect(nil); len(alerts) != 0 {
		t.Fatalf("expected no alerts on empty input, got %d", len(alerts))
	}
}

func TestDetectOverlapMinutesFloor(t *testing.T) {
	// 90 seconds of overlap floors to 1 minute
	schedules := []models.VesselSchedule{
		schedule(t, "A", "Tecon", "2024-03-10T10:00:00Z", "2024-03-10T12:01:30Z"),
		schedule(t, "B", "Tecon", "2024-03-10T12:00:00Z", "2024-03-10T14:00:00Z"),
	}

	alerts := Detect(schedules)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].OverlapMinutes != 1 {
		t.Errorf("overlap = %d, want floor to 1", alerts[0].OverlapMinutes)
	}
}
