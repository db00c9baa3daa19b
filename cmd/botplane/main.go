package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/botplane/botplane/internal/auth"
	"github.com/botplane/botplane/internal/authz"
	"github.com/botplane/botplane/internal/config"
	"github.com/botplane/botplane/internal/server"
	"github.com/botplane/botplane/internal/store/postgres"
	redisstore "github.com/botplane/botplane/internal/store/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	// Initialize structured logging from environment.
	logLevel := os.Getenv("BOTPLANE_LOG_LEVEL")
	level, parseErr := zerolog.ParseLevel(logLevel)
	if parseErr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logFormat := os.Getenv("BOTPLANE_LOG_FORMAT")
	if logFormat == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	ctx := context.Background()

	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Database.MaxConns < 0 || cfg.Database.MaxConns > math.MaxInt32 {
		return fmt.Errorf("database max_conns %d out of int32 range", cfg.Database.MaxConns)
	}

	// Connect to PostgreSQL and apply migrations.
	store, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns)) //nolint:gosec // bounds checked above
	if err != nil {
		return err
	}
	defer store.Close()

	if err = postgres.Migrate(cfg.Database.MigrateURL()); err != nil {
		return err
	}

	// Permission lookups go to PostgreSQL directly, through the Redis cache
	// when one is configured.
	var (
		permSource  authz.PermissionSource = store.Roles()
		invalidator authz.Invalidator      = authz.NoopInvalidator{}
	)
	if cfg.Redis.Addr != "" {
		cache, cacheErr := redisstore.NewPermissionCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, store.Roles(), cfg.Redis.PermTTL)
		if cacheErr != nil {
			return cacheErr
		}
		defer cache.Close()

		permSource = cache
		invalidator = cache
		log.Info().Str("addr", cfg.Redis.Addr).Msg("permission cache enabled")
	}

	// Create auth service and permission checker.
	authSvc := auth.NewService(store.Users(), store.Roles(), cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL, cfg.JWT.ResetTTL)
	checker := authz.NewChecker(permSource)

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create HTTP server with all routes wired.
	srv := server.New(cfg, store, authSvc, checker, invalidator)

	// Start server in background goroutine.
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if startErr := srv.Start(ctx); startErr != nil {
			log.Error().Err(startErr).Msg("server error")
		}
	}()

	// Block until shutdown signal.
	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		return shutdownErr
	}

	log.Info().Msg("stopped")
	return nil
}
