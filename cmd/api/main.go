// Package main is the entry point for the trip planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/pkordes/trip-planner/internal/advice"
	"github.com/pkordes/trip-planner/internal/auth"
	"github.com/pkordes/trip-planner/internal/blob"
	"github.com/pkordes/trip-planner/internal/config"
	"github.com/pkordes/trip-planner/internal/gear"
	"github.com/pkordes/trip-planner/internal/handler"
	"github.com/pkordes/trip-planner/internal/middleware"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/service"
	"github.com/pkordes/trip-planner/spec"
)

func main() {
	// --- Config -----------------------------------------------------------
	// A missing .env is normal in containers; real env vars still apply.
	_ = godotenv.Load()

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

	// --- Store ------------------------------------------------------------
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	trips, closeStore, err := repo.Open(startCtx, cfg.Store, logger)
	cancelStart()
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// --- Sessions ---------------------------------------------------------
	revoker, closeRevoker, err := newRevoker(cfg.RedisURL)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer closeRevoker()

	// --- Services ---------------------------------------------------------
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		slog.Error("failed to create upload directory", "dir", cfg.UploadDir, "error", err)
		os.Exit(1)
	}

	srvDeps := handler.Deps{
		Trips:     service.NewTripService(trips),
		Itinerary: service.NewItineraryService(trips),
		Gear:      service.NewGearService(trips, gear.DefaultCatalog()),
		Export:    service.NewExportService(trips),
		Roles: auth.NewResolver(auth.Secrets{
			Admin:       cfg.AdminSecret,
			Participant: cfg.ParticipantSecret,
			Viewer:      cfg.ViewerSecret,
		}),
		Tokens:   auth.NewTokenIssuer(cfg.SessionSecret, cfg.SessionTTL),
		Revoker:  revoker,
		Uploads:  blob.NewDiskStore(cfg.UploadDir, cfg.PublicBaseURL),
		FilesDir: cfg.UploadDir,
		Advice:   advice.NewMockPlanner(cfg.AdviceDelay),
		OpenAPI:  spec.OpenAPI,
		Log:      logger,
	}

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS → body cap.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", handler.NewServer(srvDeps).Routes())

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout leaves room for the simulated advice latency and uploads.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "store", cfg.Store.Driver)
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

// newRevoker returns the Redis-backed logout list when REDIS_URL is set and
// an in-memory one otherwise.
func newRevoker(redisURL string) (auth.Revoker, func(), error) {
	if redisURL == "" {
		slog.Info("REDIS_URL not set; logouts are kept in memory")
		return auth.NewMemoryRevoker(), func() {}, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return auth.NewRedisRevoker(client), func() { _ = client.Close() }, nil
}
