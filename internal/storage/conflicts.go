package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aadedavid/PortoSantosHack2025/internal/models"
)

// UpsertConflicts inserts or updates conflict alerts. The detector emits a
// fresh id per pass, so the upsert keys on the derived identity
// (terminal, vessel pair, kind); a re-detected conflict keeps its original
// id and first-seen timestamp but is marked unresolved again.
func (s *SQLiteStore) UpsertConflicts(ctx context.Context, alerts []models.ConflictAlert) error {
	if len(alerts) == 0 {
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
		INSERT INTO conflict_alerts (
			conflict_id, terminal, vessel_a, vessel_b, kind,
			description, overlap_minutes, resolved, created_at, resolved_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, NULL)
		ON CONFLICT (terminal, vessel_a, vessel_b, kind) DO UPDATE SET
			description = excluded.description,
			overlap_minutes = excluded.overlap_minutes,
			resolved = 0,
			resolved_at = NULL
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare conflict statement: %w", err)
	}
	defer stmt.Close()

	for _, a := range alerts {
		if len(a.Vessels) != 2 {
			return fmt.Errorf("conflict %s: expected 2 vessels, got %d", a.ID, len(a.Vessels))
		}
		_, err := stmt.ExecContext(ctx,
			a.ID, a.Terminal, a.Vessels[0], a.Vessels[1], string(a.Kind),
			a.Description, a.OverlapMinutes, a.CreatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert conflict %s: %w", a.ID, err)
		}
	}

	return tx.Commit()
}

// ListConflicts returns conflict alerts, newest first. By default only
// unresolved alerts are returned.
func (s *SQLiteStore) ListConflicts(ctx context.Context, includeResolved bool) ([]models.ConflictAlert, error) {
	query := `
		SELECT conflict_id, terminal, vessel_a, vessel_b, kind,
			description, overlap_minutes, resolved, created_at
		FROM conflict_alerts`
	if !includeResolved {
		query += " WHERE resolved = 0"
	}
	query += " ORDER BY created_at DESC, conflict_id"

	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query conflicts: %w", err)
	}
	defer rows.Close()

	var alerts []models.ConflictAlert
	for rows.Next() {
		var a models.ConflictAlert
		var vesselA, vesselB, kind, createdAt string
		var resolved int
		err := rows.Scan(&a.ID, &a.Terminal, &vesselA, &vesselB, &kind,
			&a.Description, &a.OverlapMinutes, &resolved, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conflict row: %w", err)
		}
		a.Vessels = []string{vesselA, vesselB}
		a.Kind = models.ConflictKind(kind)
		a.Resolved = resolved != 0
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			a.CreatedAt = t.UTC()
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conflict rows: %w", err)
	}
	return alerts, nil
}

// ResolveConflict marks one alert as resolved. Returns ErrNotFound when the
// id matches no alert.
func (s *SQLiteStore) ResolveConflict(ctx context.Context, conflictID string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	result, err := s.conn.ExecContext(ctx,
		"UPDATE conflict_alerts SET resolved = 1, resolved_at = ? WHERE conflict_id = ?",
		now, conflictID,
	)
	if err != nil {
		return fmt.Errorf("failed to resolve conflict: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check resolve result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CleanupResolvedConflicts deletes resolved alerts older than the retention
// window and returns how many rows were removed.
func (s *SQLiteStore) CleanupResolvedConflicts(ctx context.Context, retention time.Duration) (int, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	hours := int(retention.Hours())
	if hours < 1 {
		hours = 1
	}

	result, err := s.conn.ExecContext(ctx, fmt.Sprintf(
		"DELETE FROM conflict_alerts WHERE resolved = 1 AND datetime(resolved_at) < datetime('now', '-%d hours')",
		hours,
	))
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup conflicts: %w", err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}
