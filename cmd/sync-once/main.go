// Command sync-once runs a single fetch-and-consolidate pass and exits.
// Useful for cron-style scheduling and for seeding a fresh database.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/aadedavid/PortoSantosHack2025/internal/config"
	"github.com/aadedavid/PortoSantosHack2025/internal/feeds"
	"github.com/aadedavid/PortoSantosHack2025/internal/storage"
	"github.com/aadedavid/PortoSantosHack2025/internal/sync"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	cfg := config.Load()

	var store storage.Store
	var err error
	if cfg.DatabaseURL != "" {
		store, err = storage.OpenPostgres(context.Background(), cfg.DatabaseURL)
	} else {
		store, err = storage.OpenSQLite(cfg.DatabasePath)
	}
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure database schema: %v", err)
	}

	syncer := sync.NewService(store, feeds.NewClient(cfg.FeedBaseURL), cfg.ConflictRetention)
	result, err := syncer.Run(ctx)
	if err != nil {
		log.Fatalf("Sync failed: %v", err)
	}

	log.Printf("Done: %d vessels, %d conflicts", result.VesselsProcessed, result.ConflictsDetected)
}
