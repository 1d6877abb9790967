// Package main is the entry point for the travel planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/joho/godotenv/autoload" // loads .env into the environment before config.Load

	"github.com/pkordes/travel-planner/backend/internal/catalog"
	"github.com/pkordes/travel-planner/backend/internal/config"
	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/handler"
	"github.com/pkordes/travel-planner/backend/internal/ledger"
	"github.com/pkordes/travel-planner/backend/internal/middleware"
	"github.com/pkordes/travel-planner/backend/internal/repo"
	"github.com/pkordes/travel-planner/backend/internal/service"
	"github.com/pkordes/travel-planner/backend/migrations"
	"github.com/pkordes/travel-planner/backend/spec"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Catalog ----------------------------------------------------------
	cat := catalog.Default()
	if cfg.CatalogFile != "" {
		if cat, err = catalog.Load(cfg.CatalogFile); err != nil {
			slog.Error("failed to load catalog", "path", cfg.CatalogFile, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("catalog loaded",
		"destinations", len(cat.Destinations()),
		"airlines", len(cat.Airlines()),
		"hotels", len(cat.Hotels()),
	)

	// --- Trip store -------------------------------------------------------
	store, closeStore, err := openStore(context.Background(), cfg, logger)
	if err != nil {
		slog.Error("failed to open trip store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	trips := repo.NewTripRepo(store)
	loaded, err := trips.LoadAll(context.Background())
	switch {
	case errors.Is(err, domain.ErrStorageUnavailable):
		// Start with no booked trips; the next successful save recreates the store.
		slog.Warn("booked trips could not be loaded, starting empty", "error", err)
	case err != nil:
		slog.Error("failed to load booked trips", "error", err)
		os.Exit(1)
	default:
		slog.Info("booked trips loaded", "count", len(loaded))
	}

	// --- Services ---------------------------------------------------------
	wallet, err := ledger.New(cfg.InitialBudget)
	if err != nil {
		slog.Error("invalid initial budget", "error", err)
		os.Exit(1)
	}

	presenter := handler.NewLogPresenter(logger)
	wizard := service.NewWizard(cat, wallet, trips, presenter)
	srvHandler := handler.NewServer(
		wizard,
		service.NewTripService(trips),
		service.NewExportService(trips),
		cat,
		presenter,
		spec.OpenAPI,
	)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS → MaxBodySize.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", srvHandler.Routes())

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openStore builds the trip store selected by cfg.StoreDriver. The returned
// func releases its resources.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (repo.Store, func(), error) {
	if cfg.StoreDriver != config.StorePostgres {
		return repo.NewFileStore(cfg.TripsFile, cfg.FallbackBudget, logger), func() {}, nil
	}

	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("create database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	slog.Info("database connection established")

	// goose needs database/sql; share the pool's connections through stdlib.
	db := stdlib.OpenDBFromPool(pool)
	applied, err := migrations.Up(ctx, db)
	if err != nil {
		_ = db.Close()
		pool.Close()
		return nil, nil, err
	}
	slog.Info("migrations applied", "count", applied)

	return repo.NewPostgresStore(pool, cfg.FallbackBudget), func() {
		_ = db.Close()
		pool.Close()
	}, nil
}
