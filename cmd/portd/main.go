package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/aadedavid/PortoSantosHack2025/internal/config"
	"github.com/aadedavid/PortoSantosHack2025/internal/feeds"
	"github.com/aadedavid/PortoSantosHack2025/internal/handlers"
	"github.com/aadedavid/PortoSantosHack2025/internal/storage"
	"github.com/aadedavid/PortoSantosHack2025/internal/sync"
)

func main() {
	log.Println("Starting berthing hub service...")

	// Load base .env first, then .env.local (which overrides for local development)
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	cfg := config.Load()

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("Failed to ensure database schema: %v", err)
	}
	log.Println("Database initialized")

	feedClient := feeds.NewClient(cfg.FeedBaseURL)
	syncer := sync.NewService(store, feedClient, cfg.ConflictRetention)

	vesselHandler := handlers.NewVesselHandler(store)
	conflictHandler := handlers.NewConflictHandler(store)
	kpiHandler := handlers.NewKPIHandler(store, cfg.KPIWindowDays)
	syncHandler := handlers.NewSyncHandler(syncer)
	mtHandler := handlers.NewMarineTrafficHandler()

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	// Health check with database connectivity test
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := store.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"error","database":"disconnected"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","database":"connected"}`))
	})
	r.Get("/api/ping", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("pong"))
	})

	r.Post("/api/sync-external-data", syncHandler.SyncExternalData)
	r.Get("/api/vessels", vesselHandler.GetVessels)
	r.Get("/api/vessels/{vesselID}", vesselHandler.GetVessel)
	r.Get("/api/berths/timeline", vesselHandler.GetBerthTimeline)
	r.Get("/api/conflicts", conflictHandler.GetConflicts)
	r.Post("/api/conflicts/{conflictID}/resolve", conflictHandler.ResolveConflict)
	r.Get("/api/kpis", kpiHandler.GetKPIs)
	r.Get("/api/marine-traffic/santos", mtHandler.GetSantosLinks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional background sync loop
	if cfg.SyncInterval > 0 {
		go func() {
			log.Printf("Background sync every %v", cfg.SyncInterval)
			if _, err := syncer.Run(ctx); err != nil {
				log.Printf("Initial sync error: %v", err)
			}

			ticker := time.NewTicker(cfg.SyncInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if _, err := syncer.Run(ctx); err != nil {
						log.Printf("Sync error: %v", err)
					}
				case <-ctx.Done():
					log.Println("Sync loop stopped")
					return
				}
			}
		}()
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("API server starting on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Goodbye!")
}

// openStore selects the Postgres backend when DATABASE_URL is set,
// otherwise SQLite.
func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.DatabaseURL != "" {
		log.Println("Using Postgres storage backend")
		return storage.OpenPostgres(context.Background(), cfg.DatabaseURL)
	}
	log.Printf("Using SQLite storage backend: %s", cfg.DatabasePath)
	return storage.OpenSQLite(cfg.DatabasePath)
}
