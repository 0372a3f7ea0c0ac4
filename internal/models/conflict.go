package models

import "time"

// ConflictKind classifies a berth conflict. Only overlap conflicts are
// produced today; the other kinds are reserved for future detectors.
type ConflictKind string

const (
	ConflictOverlap           ConflictKind = "overlap"
	ConflictCapacityExceeded  ConflictKind = "capacity_exceeded"
	ConflictPriorityViolation ConflictKind = "priority_violation"
)

// ConflictAlert describes one pairwise berth-time overlap on a terminal.
// Alerts are created fresh on every sync pass; the storage layer is
// responsible for upserting them without duplication.
type ConflictAlert struct {
	ID             string       `json:"id"`
	Terminal       string       `json:"terminal"`
	Vessels        []string     `json:"vessels"`
	Kind           ConflictKind `json:"kind"`
	Description    string       `json:"description"`
	OverlapMinutes int          `json:"overlapMinutes"`
	CreatedAt      time.Time    `json:"createdAt"`
	Resolved       bool         `json:"resolved"`
}
