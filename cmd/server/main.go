// Package main implements the scry-cardgen HTTP server, which generates
// flashcards with an LLM and stores them in Postgres.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/phrazzld/scry-cardgen/internal/config"
	"github.com/phrazzld/scry-cardgen/internal/platform/logger"
	"github.com/phrazzld/scry-cardgen/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status, version) and exit")
	flag.Parse()

	if err := run(context.Background(), *migrateCmd); err != nil {
		slog.Error("scry-cardgen exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, migrateCmd string) error {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"llm_provider", cfg.LLM.Provider)

	db, err := setupAppDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer closeDB(db, log)
		return postgres.Migrate(ctx, db, migrateCmd, log)
	}

	app, err := newApplication(ctx, cfg, log, db)
	if err != nil {
		closeDB(db, log)
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
