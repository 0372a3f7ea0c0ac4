package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aadedavid/PortoSantosHack2025/internal/models"
)

const scheduleColumns = `
	vessel_id, id, vessel_name, agency, terminal, berth,
	eta_estimated, eta_real, eta_registered,
	etb_estimated, etb_real, etb_registered,
	etd_estimated, etd_real, etd_registered,
	ata, atb, atd,
	priority, status, operation_type, observations, incidents,
	created_at, updated_at`

// UpsertSchedules inserts or updates consolidated schedules keyed by vessel
// identifier. The original created_at of an existing row is preserved.
func (s *SQLiteStore) UpsertSchedules(ctx context.Context, schedules []models.VesselSchedule) error {
	if len(schedules) == 0 {
		return nil
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vessel_schedules (`+scheduleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (vessel_id) DO UPDATE SET
			vessel_name = excluded.vessel_name,
			agency = excluded.agency,
			terminal = excluded.terminal,
			berth = excluded.berth,
			eta_estimated = excluded.eta_estimated,
			eta_real = excluded.eta_real,
			eta_registered = excluded.eta_registered,
			etb_estimated = excluded.etb_estimated,
			etb_real = excluded.etb_real,
			etb_registered = excluded.etb_registered,
			etd_estimated = excluded.etd_estimated,
			etd_real = excluded.etd_real,
			etd_registered = excluded.etd_registered,
			ata = excluded.ata,
			atb = excluded.atb,
			atd = excluded.atd,
			priority = excluded.priority,
			status = excluded.status,
			operation_type = excluded.operation_type,
			observations = excluded.observations,
			incidents = excluded.incidents,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare schedule statement: %w", err)
	}
	defer stmt.Close()

	for _, sched := range schedules {
		_, err := stmt.ExecContext(ctx,
			sched.VesselID, sched.ID, nullStr(sched.VesselName), nullStr(sched.Agency),
			nullStr(sched.Terminal), nullStr(sched.Berth),
			fmtTime(sched.ETA.Estimated), fmtTime(sched.ETA.Real), fmtTime(sched.ETA.Registered),
			fmtTime(sched.ETB.Estimated), fmtTime(sched.ETB.Real), fmtTime(sched.ETB.Registered),
			fmtTime(sched.ETD.Estimated), fmtTime(sched.ETD.Real), fmtTime(sched.ETD.Registered),
			fmtTime(sched.ATA), fmtTime(sched.ATB), fmtTime(sched.ATD),
			string(sched.Priority), string(sched.Status),
			nullStr(sched.OperationType), nullStr(sched.Observations), nullStr(sched.Incidents),
			sched.CreatedAt.UTC().Format(time.RFC3339), sched.UpdatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert schedule %s: %w", sched.VesselID, err)
		}
	}

	return tx.Commit()
}

// ListSchedules returns all stored schedules ordered by vessel identifier.
func (s *SQLiteStore) ListSchedules(ctx context.Context) ([]models.VesselSchedule, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+scheduleColumns+` FROM vessel_schedules ORDER BY vessel_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var schedules []models.VesselSchedule
	for rows.Next() {
		sched, err := scanSchedule(rows)
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
func (s *SQLiteStore) GetSchedule(ctx context.Context, vesselID string) (*models.VesselSchedule, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+scheduleColumns+` FROM vessel_schedules WHERE vessel_id = ?`, vesselID)
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
	return scanSchedule(rows)
}

// scanSchedule reads one schedule row. SQLite stores timestamps as RFC3339
// strings, so every instant goes through string pointers first.
func scanSchedule(rows *sql.Rows) (*models.VesselSchedule, error) {
	var sched models.VesselSchedule
	var vesselName, agency, terminal, berth, opType, observations, incidents sql.NullString
	var etaEst, etaReal, etaReg, etbEst, etbReal, etbReg, etdEst, etdReal, etdReg *string
	var ata, atb, atd *string
	var priority, status, createdAt, updatedAt string

	err := rows.Scan(
		&sched.VesselID, &sched.ID, &vesselName, &agency, &terminal, &berth,
		&etaEst, &etaReal, &etaReg,
		&etbEst, &etbReal, &etbReg,
		&etdEst, &etdReal, &etdReg,
		&ata, &atb, &atd,
		&priority, &status, &opType, &observations, &incidents,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan schedule row: %w", err)
	}

	sched.VesselName = vesselName.String
	sched.Agency = agency.String
	sched.Terminal = terminal.String
	sched.Berth = berth.String
	sched.OperationType = opType.String
	sched.Observations = observations.String
	sched.Incidents = incidents.String
	sched.Priority = models.RAPPriority(priority)
	sched.Status = models.OperationStatus(status)

	sched.ETA = models.TimestampInfo{Estimated: parseTimeString(etaEst), Real: parseTimeString(etaReal), Registered: parseTimeString(etaReg)}
	sched.ETB = models.TimestampInfo{Estimated: parseTimeString(etbEst), Real: parseTimeString(etbReal), Registered: parseTimeString(etbReg)}
	sched.ETD = models.TimestampInfo{Estimated: parseTimeString(etdEst), Real: parseTimeString(etdReal), Registered: parseTimeString(etdReg)}
	sched.ATA = parseTimeString(ata)
	sched.ATB = parseTimeString(atb)
	sched.ATD = parseTimeString(atd)

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		sched.CreatedAt = t.UTC()
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		sched.UpdatedAt = t.UTC()
	}
	return &sched, nil
}

// nullStr stores empty strings as NULL.
func nullStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
