package models

import "time"

// OperationStatus is the internal lifecycle status of a vessel call.
type OperationStatus string

const (
	StatusPlanned    OperationStatus = "planned"
	StatusInProgress OperationStatus = "in_progress"
	StatusCompleted  OperationStatus = "completed"
	StatusCancelled  OperationStatus = "cancelled"
	StatusDelayed    OperationStatus = "delayed"
	StatusPending    OperationStatus = "pending"
)

// RAPPriority is the berthing priority class assigned by the port authority.
type RAPPriority string

const (
	PriorityImmediate    RAPPriority = "immediate"
	PriorityPreferential RAPPriority = "preferential"
	PriorityPriority     RAPPriority = "priority"
	PrioritySequential   RAPPriority = "sequential"
)

// TimestampInfo groups the three variants a scheduling timestamp can have:
// the estimate published by the terminal, the value registered on a request,
// and the occurred value. "Real" is carried for API compatibility but is not
// populated by consolidation (actuals live in ATA/ATB/ATD).
type TimestampInfo struct {
	Estimated  *time.Time `json:"estimated,omitempty"`
	Real       *time.Time `json:"real,omitempty"`
	Registered *time.Time `json:"registered,omitempty"`
}

// VesselSchedule is the canonical consolidated record for one vessel call.
// VesselID is the merge key across all upstream feeds; there is at most one
// schedule per vessel identifier at any time.
type VesselSchedule struct {
	ID         string `json:"id"`
	VesselID   string `json:"vesselId"`
	VesselName string `json:"vesselName,omitempty"`
	Agency     string `json:"agency,omitempty"`
	Terminal   string `json:"terminal,omitempty"`
	Berth      string `json:"berth,omitempty"`

	ETA TimestampInfo `json:"eta"`
	ETB TimestampInfo `json:"etb"`
	ETD TimestampInfo `json:"etd"`

	ATA *time.Time `json:"ata,omitempty"`
	ATB *time.Time `json:"atb,omitempty"`
	ATD *time.Time `json:"atd,omitempty"`

	Priority RAPPriority     `json:"priority"`
	Status   OperationStatus `json:"status"`

	OperationType string `json:"operationType,omitempty"`
	Observations  string `json:"observations,omitempty"`
	Incidents     string `json:"incidents,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
