// Package sync orchestrates one data synchronization pass: fetch the four
// upstream feeds, consolidate them into vessel schedules, persist the
// schedules, detect berth conflicts and persist those too.
package sync

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/aadedavid/PortoSantosHack2025/internal/conflicts"
	"github.com/aadedavid/PortoSantosHack2025/internal/consolidate"
	"github.com/aadedavid/PortoSantosHack2025/internal/feeds"
	"github.com/aadedavid/PortoSantosHack2025/internal/storage"
)

// Result summarizes one sync pass.
type Result struct {
	VesselsProcessed  int `json:"vesselsProcessed"`
	ConflictsDetected int `json:"conflictsDetected"`
}

// Service runs sync passes against a feed client and a store.
type Service struct {
	store             storage.Store
	client            *feeds.Client
	conflictRetention time.Duration
}

// NewService creates a sync service.
func NewService(store storage.Store, client *feeds.Client, conflictRetention time.Duration) *Service {
	return &Service{
		store:             store,
		client:            client,
		conflictRetention: conflictRetention,
	}
}

// Run executes one full pass. A feed that fails to fetch degrades to an
// empty record set with a log line; the pass continues with the remaining
// feeds. Consolidation or persistence errors abort the pass.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	startedAt := time.Now().UTC()

	agency, err := s.client.FetchAgency(ctx)
	if err != nil {
		log.Printf("Sync: agency feed unavailable (continuing): %v", err)
	}
	pilotage, err := s.client.FetchPilotage(ctx)
	if err != nil {
		log.Printf("Sync: pilotage feed unavailable (continuing): %v", err)
	}
	terminal, err := s.client.FetchTerminal(ctx)
	if err != nil {
		log.Printf("Sync: terminal feed unavailable (continuing): %v", err)
	}
	authority, err := s.client.FetchAuthority(ctx)
	if err != nil {
		log.Printf("Sync: authority feed unavailable (continuing): %v", err)
	}

	schedules, err := consolidate.Consolidate(agency, pilotage, terminal, authority)
	if err != nil {
		return nil, fmt.Errorf("consolidation failed: %w", err)
	}

	if err := s.store.UpsertSchedules(ctx, schedules); err != nil {
		return nil, fmt.Errorf("failed to persist schedules: %w", err)
	}

	alerts := conflicts.Detect(schedules)
	if err := s.store.UpsertConflicts(ctx, alerts); err != nil {
		return nil, fmt.Errorf("failed to persist conflicts: %w", err)
	}

	if deleted, err := s.store.CleanupResolvedConflicts(ctx, s.conflictRetention); err != nil {
		log.Printf("Sync: conflict cleanup failed: %v", err)
	} else if deleted > 0 {
		log.Printf("Sync: deleted %d resolved conflicts past retention", deleted)
	}

	run := storage.SyncRun{
		ID:                uuid.New().String(),
		StartedAt:         startedAt,
		VesselsProcessed:  len(schedules),
		ConflictsDetected: len(alerts),
	}
	if err := s.store.RecordSyncRun(ctx, run); err != nil {
		log.Printf("Sync: failed to record run: %v", err)
	}

	log.Printf("Sync: processed %d vessels, detected %d conflicts", len(schedules), len(alerts))
	return &Result{
		VesselsProcessed:  len(schedules),
		ConflictsDetected: len(alerts),
	}, nil
}
