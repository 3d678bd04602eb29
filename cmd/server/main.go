// cmd/server/main.go
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Pieroprincipe22/tarea-completa-tc/internal/config"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/db"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/handlers"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/logging"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/middleware"
	"github.com/Pieroprincipe22/tarea-completa-tc/internal/repo"
)

func main() {
	// --- Load config (config.yaml + env overrides) ---
	cfg := config.Load()

	// --- Logger ---
	// Configure slog from config: logging.level, logging.format
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format == "json")

	// --- Migrations ---
	if err := db.Migrate(cfg.Database.URL); err != nil {
		slog.Error("migrate error", "err", err)
		os.Exit(1)
	}

	// --- Connect to Postgres ---
	ctx := context.Background()
	slog.Debug("connecting to database")
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		slog.Error("db connect error", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("db ping error", "err", err)
		os.Exit(1)
	}
	slog.Debug("database connection ready")

	r := repo.New(pool)

	// --- Router ---
	mux := chi.NewRouter()

	// Ensure request ID then log requests with slog
	mux.Use(middleware.RequestID(cfg.Security.RequestID.TrustHeader))
	mux.Use(middleware.SlogRequestLogger)
	if cfg.Security.RateLimit.Enabled {
		mux.Use(middleware.RateLimitWith(cfg.Security.RateLimit.RequestsPerMinute, cfg.Security.RateLimit.Burst, cfg.Security.RateLimit.TTL))
	}

	// --- CORS middleware ---
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "x-company-id", "x-user-id", "x-admin-key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	handlers.RegisterRoutes(mux, r, cfg)

	// --- Start server ---
	slog.Info("listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}
