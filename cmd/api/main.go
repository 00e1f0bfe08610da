// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

// Command api is the entry point for the catalogue HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire services and HTTP handlers.
//  7. Warm the locality index in the background.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/setrini/inmobiliaria/internal/api"
	"github.com/setrini/inmobiliaria/internal/core/contact"
	"github.com/setrini/inmobiliaria/internal/core/locality"
	"github.com/setrini/inmobiliaria/internal/core/media"
	"github.com/setrini/inmobiliaria/internal/core/property"
	"github.com/setrini/inmobiliaria/internal/platform/config"
	"github.com/setrini/inmobiliaria/internal/platform/constants"
	"github.com/setrini/inmobiliaria/internal/platform/mailer"
	"github.com/setrini/inmobiliaria/internal/platform/metrics"
	"github.com/setrini/inmobiliaria/internal/platform/migration"
	pgstore "github.com/setrini/inmobiliaria/internal/platform/postgres"
	redisstore "github.com/setrini/inmobiliaria/internal/platform/redis"
	"github.com/setrini/inmobiliaria/internal/platform/sec"
	"github.com/setrini/inmobiliaria/internal/platform/storage"
	"github.com/setrini/inmobiliaria/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("storage_enabled", cfg.StorageEnabled()),
		slog.String("email_provider", cfg.EmailProvider),
	)

	// appCtx is cancelled on SIGINT/SIGTERM and stops background workers.
	appCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// A 30s startup deadline catches misconfiguration instead of hanging.
	startupCtx, startupCancel := context.WithTimeout(appCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	must(log, metrics.RegisterPoolStats(prometheus.DefaultRegisterer, pgstore.Stats(pool)), "register pool metrics")

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	authService := auth.NewService(auth.NewAdminRepository(pool), auth.NewSessionRepository(rdb), tokenService, log)

	propertyService := property.NewService(property.NewRepository(pool), log)

	localityService := locality.NewService(locality.NewSource(cfg.LocalityDataset), cfg.LocalityScope, log)

	var objectStore media.Storage
	if cfg.StorageEnabled() {
		client, err := storage.NewClient(storage.Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			CDNURL:    cfg.CDNURL,
		}, log)
		must(log, err, "initialize object storage")
		objectStore = client
	} else {
		log.Warn("object_storage_disabled")
	}

	contactService := contact.NewService(
		contact.NewRepository(pool),
		propertyService,
		mailer.New(cfg.EmailProvider, cfg.ResendAPIKey, cfg.EmailFrom, log),
		cfg.AdminEmail,
		log,
	)

	// ── 7. Locality warm-up ───────────────────────────────────────────────
	// Searches build the index lazily, so a failed preload is only logged.
	if cfg.LocalityPreload {
		go func() {
			if err := localityService.Preload(appCtx); err != nil {
				log.Warn("locality_preload_failed", slog.Any("error", err))
			}
		}()
	}

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		Checks: []api.Check{
			{Name: "postgres", Run: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }},
			{Name: "redis", Run: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }},
		},
		LocalityState: localityService.State,
	}, log)

	server := api.NewServer(appCtx, cfg, log, tokenService, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   metrics.Handler(),
		Auth:      auth.NewHandler(authService, !cfg.IsDevelopment()),
		Property:  property.NewHandler(propertyService, cfg.PublicBaseURL),
		Locality:  locality.NewHandler(localityService),
		Contact:   contact.NewHandler(contactService),
		Media:     media.NewHandler(media.NewService(objectStore, log)),
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	// Block until OS signal or server error.
	exitCode := 0
	select {
	case <-appCtx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
		exitCode = 1
	}
	stop()

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	// In-flight requests finish first, then the stores they use are closed.
	shutdownErr := server.Shutdown(constants.ShutdownTimeout)
	shutdownErr = multierr.Append(shutdownErr, rdb.Close())
	pool.Close()

	if shutdownErr != nil {
		for _, err := range multierr.Errors(shutdownErr) {
			log.Error("shutdown_error", slog.Any("error", err))
		}
		exitCode = 1
	}

	log.Info("server_stopped", slog.Int("exit_code", exitCode))
	os.Exit(exitCode)
}

// newLogger builds the JSON logger every entry of which carries the app name.
func newLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(logger)
	return logger
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
