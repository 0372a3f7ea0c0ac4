// Package kpi computes punctuality indicators over a consolidated schedule
// set restricted to a closed time window.
package kpi

import (
	"time"

	"github.com/aadedavid/PortoSantosHack2025/internal/models"
)

// RCJToleranceMinutes is the berth-window reliability tolerance: a berthing
// within this many minutes of its estimate counts as reliable.
const RCJToleranceMinutes = 30

// Calculate computes the KPI set over schedules whose representative instant
// falls inside [start, end]. The three statistics are independent: a
// schedule missing fields for one may still contribute to another. A nil
// rate means no schedule produced a sample for it.
func Calculate(schedules []models.VesselSchedule, start, end time.Time) models.KPIMetrics {
	metrics := models.KPIMetrics{
		PeriodStart: start,
		PeriodEnd:   end,
	}

	var relevant []models.VesselSchedule
	for _, s := range schedules {
		ref := representativeInstant(s)
		if ref == nil {
			continue
		}
		if ref.Before(start) || ref.After(end) {
			continue
		}
		relevant = append(relevant, s)
	}

	metrics.TotalCalls = len(relevant)
	if len(relevant) == 0 {
		return metrics
	}

	metrics.MAEETA = maeETA(relevant)
	metrics.WBRatio = wbRatio(relevant)
	metrics.RCJReliability = rcjReliability(relevant)
	return metrics
}

// representativeInstant picks the windowing timestamp for a schedule, in
// fixed priority order: actual arrival, actual berthing, registered ETA,
// estimated ETB.
func representativeInstant(s models.VesselSchedule) *time.Time {
	switch {
	case s.ATA != nil:
		return s.ATA
	case s.ATB != nil:
		return s.ATB
	case s.ETA.Registered != nil:
		return s.ETA.Registered
	case s.ETB.Estimated != nil:
		return s.ETB.Estimated
	}
	return nil
}

// maeETA is the mean absolute error between the ETA reference (estimated,
// else registered) and the actual arrival, falling back to the actual
// berthing when the arrival is unknown.
func maeETA(schedules []models.VesselSchedule) *float64 {
	var sum float64
	var n int
	for _, s := range schedules {
		ref := s.ETA.Estimated
		if ref == nil {
			ref = s.ETA.Registered
		}
		if ref == nil {
			continue
		}

		var actual *time.Time
		if s.ATA != nil {
			actual = s.ATA
		} else if s.ATB != nil {
			actual = s.ATB
		}
		if actual == nil {
			continue
		}

		sum += absMinutes(actual.Sub(*ref))
		n++
	}
	return mean(sum, n)
}

// wbRatio is the mean of per-call waiting/berthed time ratios. Arrival is
// the actual arrival when known, otherwise the registered ETA. Calls with a
// non-positive berthed time or negative waiting time do not contribute.
func wbRatio(schedules []models.VesselSchedule) *float64 {
	var sum float64
	var n int
	for _, s := range schedules {
		arrival := s.ATA
		if arrival == nil {
			arrival = s.ETA.Registered
		}
		if arrival == nil || s.ATB == nil || s.ATD == nil {
			continue
		}

		waiting := s.ATB.Sub(*arrival).Minutes()
		berthed := s.ATD.Sub(*s.ATB).Minutes()
		if berthed > 0 && waiting >= 0 {
			sum += waiting / berthed
			n++
		}
	}
	return mean(sum, n)
}

// rcjReliability is the percentage of berthings that happened within the
// tolerance of their estimate.
func rcjReliability(schedules []models.VesselSchedule) *float64 {
	var trials, successes int
	for _, s := range schedules {
		if s.ETB.Estimated == nil || s.ATB == nil {
			continue
		}
		trials++
		if absMinutes(s.ATB.Sub(*s.ETB.Estimated)) <= RCJToleranceMinutes {
			successes++
		}
	}
	if trials == 0 {
		return nil
	}
	pct := 100 * float64(successes) / float64(trials)
	return &pct
}

func absMinutes(d time.Duration) float64 {
	m := d.Minutes()
	if m < 0 {
		return -m
	}
	return m
}

func mean(sum float64, n int) *float64 {
	if n == 0 {
		return nil
	}
	m := sum / float64(n)
	return &m
}
