package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/JonMunkholm/issuecsv/internal/config"
	"github.com/JonMunkholm/issuecsv/internal/core"
	_ "github.com/JonMunkholm/issuecsv/internal/core/templates" // Register all templates
	"github.com/JonMunkholm/issuecsv/internal/logging"
	"github.com/JonMunkholm/issuecsv/internal/prefs"
	"github.com/JonMunkholm/issuecsv/internal/web"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"max_rows_per_file", cfg.Export.MaxRowsPerFile,
		"max_teams", cfg.Export.MaxTeams,
		"max_rows", cfg.Export.MaxRows,
		"work_max_concurrent", cfg.Export.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"preferences_db", cfg.Database.Enabled(),
	)

	ctx := context.Background()

	// Theme preferences live in Postgres when configured, in memory otherwise
	var store prefs.Store = prefs.NewMemoryStore()
	if cfg.Database.Enabled() {
		pool, err := connectDB(ctx, cfg.Database)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		pg := prefs.NewPostgresStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			slog.Error("failed to prepare preference table", "error", err)
			os.Exit(1)
		}
		store = pg
	}

	service := core.NewService(core.Options{
		MinPasteLength: cfg.Export.MinPasteLength,
		MaxRowsPerFile: cfg.Export.MaxRowsPerFile,
		MaxTeams:       cfg.Export.MaxTeams,
		MaxRows:        cfg.Export.MaxRows,
		SessionTTL:     cfg.Session.TTL,
	})

	slog.Info("templates registered", "count", len(core.Keys()), "keys", core.Keys())

	server := web.NewServer(cfg, service, store)

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())

	go service.StartJanitor(jobCtx, core.JanitorConfig{
		Interval: cfg.Session.SweepInterval,
	})

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		// Stop background jobs
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Let in-flight pastes finish (with timeout)
		limiter := server.Limiter()
		if active := limiter.Active(); active > 0 {
			slog.Info("waiting for pastes to complete", "active", active)
			if err := limiter.WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("pastes did not complete in time", "error", err)
			} else {
				slog.Info("all pastes completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}

// connectDB opens and verifies the preference database pool.
func connectDB(ctx context.Context, dbCfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dbCfg.URL)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = int32(dbCfg.MaxConns)
	poolConfig.MinConns = int32(dbCfg.MinConns)
	poolConfig.MaxConnLifetime = dbCfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = dbCfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	// Log which database we connected to
	if u, err := url.Parse(dbCfg.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}
	return pool, nil
}
