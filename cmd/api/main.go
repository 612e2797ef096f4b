// Package main is the entry point for the EuroPlan API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
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
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agu27/EuroPlan/internal/config"
	"github.com/agu27/EuroPlan/internal/handler"
	"github.com/agu27/EuroPlan/internal/metrics"
	"github.com/agu27/EuroPlan/internal/middleware"
	"github.com/agu27/EuroPlan/internal/repo"
	"github.com/agu27/EuroPlan/internal/service"
	"github.com/agu27/EuroPlan/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
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

	// --- Storage ----------------------------------------------------------
	ctx := context.Background()
	kv, closeKV, err := openKV(ctx, cfg)
	if err != nil {
		slog.Error("failed to open storage", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	defer closeKV()
	slog.Info("storage ready", "backend", cfg.StorageBackend)

	// --- Trip store -------------------------------------------------------
	m := metrics.NewMetrics(prometheus.DefaultRegisterer)
	store, err := service.NewTripStore(ctx, repo.NewSegmentRepo(kv, logger),
		service.WithLogger(logger),
		service.WithRecorder(m),
		service.WithIntentTTL(cfg.IntentTTL),
	)
	if err != nil {
		slog.Error("failed to load trip", "error", err)
		os.Exit(1)
	}

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))

	srvHandler := handler.NewServer(store, store, store, store, handler.Options{
		MaxImportBytes: cfg.MaxImportBytes,
		Logger:         logger,
		Metrics:        promhttp.Handler(),
	})
	r.Mount("/", srvHandler.Routes())

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openKV builds the key-value backend named by cfg.StorageBackend.
// The returned func releases whatever the backend holds open.
func openKV(ctx context.Context, cfg config.Config) (repo.KVStore, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return repo.NewMemoryKV(), func() {}, nil

	case config.BackendPostgres:
		if err := migrate(ctx, cfg.DatabaseURL); err != nil {
			return nil, nil, err
		}
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("create database pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		return repo.NewPostgresKV(pool), pool.Close, nil

	default:
		kv, err := repo.NewFileKV(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return kv, func() {}, nil
	}
}

// migrate applies pending goose migrations over a short-lived database/sql
// connection; goose needs database/sql rather than a pgx pool.
func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	n, err := migrations.Up(ctx, db)
	if err != nil {
		return err
	}
	slog.Info("migrations applied", "count", n)
	return nil
}
