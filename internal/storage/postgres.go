package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aadedavid/PortoSantosHack2025/internal/models"
)

// PostgresStore is the pgx-backed Store implementation, selected when
// DATABASE_URL is set.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres creates a connection pool against the given database URL.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS vessel_schedules (
	vessel_id       TEXT PRIMARY KEY,
	id              TEXT NOT NULL,
	vessel_name     TEXT,
	agency          TEXT,
	terminal        TEXT,
	berth           TEXT,
	eta_estimated   TIMESTAMPTZ,
	eta_real        TIMESTAMPTZ,
	eta_registered  TIMESTAMPTZ,
	etb_estimated   TIMESTAMPTZ,
	etb_real        TIMESTAMPTZ,
	etb_registered  TIMESTAMPTZ,
	etd_estimated   TIMESTAMPTZ,
	etd_real        TIMESTAMPTZ,
	etd_registered  TIMESTAMPTZ,
	ata             TIMESTAMPTZ,
	atb             TIMESTAMPTZ,
	atd             TIMESTAMPTZ,
	priority        TEXT NOT NULL DEFAULT 'sequential',
	status          TEXT NOT NULL DEFAULT 'planned',
	operation_type  TEXT,
	observations    TEXT,
	incidents       TEXT,
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_schedules_terminal ON vessel_schedules (terminal);

CREATE TABLE IF NOT EXISTS conflict_alerts (
	conflict_id     TEXT PRIMARY KEY,
	terminal        TEXT NOT NULL,
	vessel_a        TEXT NOT NULL,
	vessel_b        TEXT NOT NULL,
	kind            TEXT NOT NULL,
	description     TEXT NOT NULL,
	overlap_minutes INTEGER NOT NULL,
	resolved        BOOLEAN NOT NULL DEFAULT FALSE,
	created_at      TIMESTAMPTZ NOT NULL,
	resolved_at     TIMESTAMPTZ,
	UNIQUE (terminal, vessel_a, vessel_b, kind)
);

CREATE INDEX IF NOT EXISTS idx_conflicts_resolved ON conflict_alerts (resolved);

CREATE TABLE IF NOT EXISTS sync_runs (
	run_id             TEXT PRIMARY KEY,
	started_at         TIMESTAMPTZ NOT NULL,
	vessels_processed  INTEGER NOT NULL,
	conflicts_detected INTEGER NOT NULL
);
`

// EnsureSchema creates tables if they don't exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Ping reports database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// UpsertSchedules inserts or updates consolidated schedules keyed by vessel
// identifier.
func (s *PostgresStore) UpsertSchedules(ctx context.Context, schedules []models.VesselSchedule) error {
	if len(schedules) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO vessel_schedules (
			vessel_id, id, vessel_name, agency, terminal, berth,
			eta_estimated, eta_real, eta_registered,
			etb_estimated, etb_real, etb_registered,
			etd_estimated, etd_real, etd_registered,
			ata, atb, atd,
			priority, status, operation_type, observations, incidents,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25
		)
		ON CONFLICT (vessel_id) DO UPDATE SET
			vessel_name = EXCLUDED.vessel_name,
			agency = EXCLUDED.agency,
			terminal = EXCLUDED.terminal,
			berth = EXCLUDED.berth,
			eta_estimated = EXCLUDED.eta_estimated,
			eta_real = EXCLUDED.eta_real,
			eta_registered = EXCLUDED.eta_registered,
			etb_estimated = EXCLUDED.etb_estimated,
			etb_real = EXCLUDED.etb_real,
			etb_registered = EXCLUDED.etb_registered,
			etd_estimated = EXCLUDED.etd_estimated,
			etd_real = EXCLUDED.etd_real,
			etd_registered = EXCLUDED.etd_registered,
			ata = EXCLUDED.ata,
			atb = EXCLUDED.atb,
			atd = EXCLUDED.atd,
			priority = EXCLUDED.priority,
			status = EXCLUDED.status,
			operation_type = EXCLUDED.operation_type,
			observations = EXCLUDED.observations,
			incidents = EXCLUDED.incidents,
			updated_at = EXCLUDED.updated_at
	`

	for _, sched := range schedules {
		_, err := tx.Exec(ctx, query,
			sched.VesselID, sched.ID, nullStr(sched.VesselName), nullStr(sched.Agency),
			nullStr(sched.Terminal), nullStr(sched.Berth),
			sched.ETA.Estimated, sched.ETA.Real, sched.ETA.Registered,
			sched.ETB.Estimated, sched.ETB.Real, sched.ETB.Registered,
			sched.ETD.Estimated, sched.ETD.Real, sched.ETD.Registered,
			sched.ATA, sched.ATB, sched.ATD,
			string(sched.Priority), string(sched.Status),
			nullStr(sched.OperationType), nullStr(sched.Observations), nullStr(sched.Incidents),
			sched.CreatedAt, sched.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert schedule %s: %w", sched.VesselID, err)
		}
	}

	return tx.Commit(ctx)
}

const pgScheduleSelect = `
	SELECT vessel_id, id, vessel_name, agency, terminal, berth,
		eta_estimated, eta_real, eta_registered,
		etb_estimated, etb_real, etb_registered,
		etd_estimated, etd_real, etd_registered,
		ata, atb, atd,
		priority, status, operation_type, observations, incidents,
		created_at, updated_at
	FROM vessel_schedules`

// ListSchedules returns all stored schedules ordered by vessel identifier.
func (s *PostgresStore) ListSchedules(ctx context.Context) ([]models.VesselSchedule, error) {
	rows, err := s.pool.Query(ctx, pgScheduleSelect+" ORDER BY vessel_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var schedules []models.VesselSchedule
	for rows.Next() {
		sched, err := scanPgSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, *sched)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule rows: %w", err)
	}
	return schedules, nil
}

// GetSchedule returns the schedule for one vessel identifier, or ErrNotFound.
func (s *PostgresStore) GetSchedule(ctx context.Context, vesselID string) (*models.VesselSchedule, error) {
	rows, err := s.pool.Query(ctx, pgScheduleSelect+" WHERE vessel_id = $1", vesselID)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	return scanPgSchedule(rows)
}

func scanPgSchedule(rows pgx.Rows) (*models.VesselSchedule, error) {
	var sched models.VesselSchedule
	var vesselName, agency, terminal, berth, opType, observations, incidents *string
	var priority, status string

	err := rows.Scan(
		&sched.VesselID, &sched.ID, &vesselName, &agency, &terminal, &berth,
		&sched.ETA.Estimated, &sched.ETA.Real, &sched.ETA.Registered,
		&sched.ETB.Estimated, &sched.ETB.Real, &sched.ETB.Registered,
		&sched.ETD.Estimated, &sched.ETD.Real, &sched.ETD.Registered,
		&sched.ATA, &sched.ATB, &sched.ATD,
		&priority, &status, &opType, &observations, &incidents,
		&sched.CreatedAt, &sched.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan schedule row: %w", err)
	}

	sched.VesselName = deref(vesselName)
	sched.Agency = deref(agency)
	sched.Terminal = deref(terminal)
	sched.Berth = deref(berth)
	sched.OperationType = deref(opType)
	sched.Observations = deref(observations)
	sched.Incidents = deref(incidents)
	sched.Priority = models.RAPPriority(priority)
	sched.Status = models.OperationStatus(status)
	return &sched, nil
}

// UpsertConflicts inserts or updates conflict alerts by derived identity.
func (s *PostgresStore) UpsertConflicts(ctx context.Context, alerts []models.ConflictAlert) error {
	if len(alerts) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO conflict_alerts (
			conflict_id, terminal, vessel_a, vessel_b, kind,
			description, overlap_minutes, resolved, created_at, resolved_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8, NULL)
		ON CONFLICT (terminal, vessel_a, vessel_b, kind) DO UPDATE SET
			description = EXCLUDED.description,
			overlap_minutes = EXCLUDED.overlap_minutes,
			resolved = FALSE,
			resolved_at = NULL
	`

	for _, a := range alerts {
		if len(a.Vessels) != 2 {
			return fmt.Errorf("conflict %s: expected 2 vessels, got %d", a.ID, len(a.Vessels))
		}
		_, err := tx.Exec(ctx, query,
			a.ID, a.Terminal, a.Vessels[0], a.Vessels[1], string(a.Kind),
			a.Description, a.OverlapMinutes, a.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert conflict %s: %w", a.ID, err)
		}
	}

	return tx.Commit(ctx)
}

// ListConflicts returns conflict alerts, newest first.
func (s *PostgresStore) ListConflicts(ctx context.Context, includeResolved bool) ([]models.ConflictAlert, error) {
	query := `
		SELECT conflict_id, terminal, vessel_a, vessel_b, kind,
			description, overlap_minutes, resolved, created_at
		FROM conflict_alerts`
	if !includeResolved {
		query += " WHERE resolved = FALSE"
	}
	query += " ORDER BY created_at DESC, conflict_id"

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query conflicts: %w", err)
	}
	defer rows.Close()

	var alerts []models.ConflictAlert
	for rows.Next() {
		var a models.ConflictAlert
		var vesselA, vesselB, kind string
		err := rows.Scan(&a.ID, &a.Terminal, &vesselA, &vesselB, &kind,
			&a.Description, &a.OverlapMinutes, &a.Resolved, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conflict row: %w", err)
		}
		a.Vessels = []string{vesselA, vesselB}
		a.Kind = models.ConflictKind(kind)
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conflict rows: %w", err)
	}
	return alerts, nil
}

// ResolveConflict marks one alert as resolved, or returns ErrNotFound.
func (s *PostgresStore) ResolveConflict(ctx context.Context, conflictID string) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE conflict_alerts SET resolved = TRUE, resolved_at = NOW() WHERE conflict_id = $1",
		conflictID,
	)
	if err != nil {
		return fmt.Errorf("failed to resolve conflict: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CleanupResolvedConflicts deletes resolved alerts older than the retention
// window.
func (s *PostgresStore) CleanupResolvedConflicts(ctx context.Context, retention time.Duration) (int, error) {
	hours := int(retention.Hours())
	if hours < 1 {
		hours = 1
	}
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM conflict_alerts WHERE resolved = TRUE AND resolved_at < NOW() - make_interval(hours => $1)",
		hours,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup conflicts: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// RecordSyncRun stores one fetch-and-consolidate pass.
func (s *PostgresStore) RecordSyncRun(ctx context.Context, run SyncRun) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO sync_runs (run_id, started_at, vessels_processed, conflicts_detected)
		 VALUES ($1, $2, $3, $4)`,
		run.ID, run.StartedAt, run.VesselsProcessed, run.ConflictsDetected,
	)
	if err != nil {
		return fmt.Errorf("failed to record sync run: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
