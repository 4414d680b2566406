package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tlv300/whois-lookup/config"
	"github.com/tlv300/whois-lookup/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "WARN: no .env file found, using environment variables from system if set.")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)

	store := buildStore(logger, cfg.Database)
	defer store.Close()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("shutting down server")
		store.Close()
		os.Exit(0)
	}()

	app, err := NewApp(logger, cfg, store)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("starting whois lookup server", "addr", addr)
	if err := app.Start(addr); err != nil {
		logger.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}

// buildStore selects the lookup sink once at startup: the SQL store when a
// database is configured and reachable, the no-op store otherwise. A dead
// database disables logging but never the service.
func buildStore(logger *slog.Logger, cfg config.DatabaseConfig) db.LookupStore {
	if cfg.URL == "" {
		logger.Info("lookup logging disabled - DATABASE_URL not set")
		return db.NoopStore{}
	}

	conn, err := db.Open(cfg.URL)
	if err != nil {
		logger.Error("failed to connect to lookup database", "error", err)
		return db.NoopStore{}
	}

	store := db.NewSQLStore(conn)
	if err := store.Init(context.Background()); err != nil {
		logger.Error("failed to initialize lookup database", "error", err)
	} else {
		logger.Info("lookup log table whois_lookups initialized")
	}
	return store
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
