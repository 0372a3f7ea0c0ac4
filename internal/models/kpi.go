package models

import "time"

// KPIMetrics aggregates punctuality indicators over the schedules whose
// representative instant falls inside [PeriodStart, PeriodEnd]. A nil rate
// means "no schedule contributed a sample", which is distinct from zero.
type KPIMetrics struct {
	MAEETA         *float64  `json:"maeEta"`         // mean |actual arrival - ETA| in minutes
	WBRatio        *float64  `json:"wbRatio"`        // mean waiting-to-berthed ratio
	RCJReliability *float64  `json:"rcjReliability"` // % of berthings within ±30 min of ETB
	PeriodStart    time.Time `json:"periodStart"`
	PeriodEnd      time.Time `json:"periodEnd"`
	TotalCalls     int       `json:"totalCalls"`
}
