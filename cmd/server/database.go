package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/phrazzld/scry-cardgen/internal/config"
	"github.com/phrazzld/scry-cardgen/internal/redact"
)

// setupAppDatabase opens the pgx-backed pool and verifies it with a ping.
func setupAppDatabase(ctx context.Context, cfg *config.Config, log *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %s", redact.Error(err))
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		closeDB(db, log)
		return nil, fmt.Errorf("failed to ping database: %s", redact.Error(err))
	}

	log.Info("database connection established")
	return db, nil
}

func closeDB(db *sql.DB, log *slog.Logger) {
	if err := db.Close(); err != nil {
		log.Error("error closing database connection", "error", redact.Error(err))
	}
}
