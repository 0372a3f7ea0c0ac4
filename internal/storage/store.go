package storage

import (
	"context"
	"errors"
	"time"

	"github.com/aadedavid/PortoSantosHack2025/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// SyncRun records one fetch-and-consolidate pass.
type SyncRun struct {
	ID                string
	StartedAt         time.Time
	VesselsProcessed  int
	ConflictsDetected int
}

// Store is the persistence boundary of the service. Two implementations
// exist: SQLite (default) and Postgres, selected by configuration.
type Store interface {
	EnsureSchema(ctx context.Context) error

	UpsertSchedules(ctx context.Context, schedules []models.VesselSchedule) error
	ListSchedules(ctx context.Context) ([]models.VesselSchedule, error)
	GetSchedule(ctx context.Context, vesselID string) (*models.VesselSchedule, error)

	UpsertConflicts(ctx context.Context, alerts []models.ConflictAlert) error
	ListConflicts(ctx context.Context, includeResolved bool) ([]models.ConflictAlert, error)
	ResolveConflict(ctx context.Context, conflictID string) error
	CleanupResolvedConflicts(ctx context.Context, retention time.Duration) (int, error)

	RecordSyncRun(ctx context.Context, run SyncRun) error

	Ping(ctx context.Context) error
	Close() error
}
