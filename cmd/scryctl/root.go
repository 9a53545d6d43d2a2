package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/phrazzld/scry-cardgen/internal/config"
	"github.com/phrazzld/scry-cardgen/internal/platform/logger"
	"github.com/phrazzld/scry-cardgen/internal/redact"
)

// cliEnv carries what every subcommand needs. loadConfig and openDB are
// replaced in tests.
type cliEnv struct {
	out        io.Writer
	cfg        *config.Config
	log        *slog.Logger
	loadConfig func() (*config.Config, error)
	openDB     func(ctx context.Context, url string) (*sql.DB, error)
}

func newRootCmd(out io.Writer) *cobra.Command {
	return newRootCmdWithEnv(&cliEnv{
		out:        out,
		loadConfig: config.Load,
		openDB:     openDatabase,
	})
}

func newRootCmdWithEnv(env *cliEnv) *cobra.Command {
	root := &cobra.Command{
		Use:          "scryctl",
		Short:        "Operate a scry-cardgen deployment",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()

			cfg, err := env.loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			// stdout carries command output; logs go to stderr.
			log := logger.SetupWriter(cmd.ErrOrStderr(), cfg.Server)
			env.cfg = cfg
			env.log = log.With(slog.String("component", "scryctl"), slog.String("command", cmd.Name()))
			return nil
		},
	}
	root.SetOut(env.out)

	root.AddCommand(
		newTokenCmd(env),
		newMigrateCmd(env),
		newSetCmd(env),
	)
	return root
}

func openDatabase(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %s", redact.Error(err))
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %s", redact.Error(err))
	}
	return db, nil
}

// withDB opens the configured database for the duration of fn.
func (env *cliEnv) withDB(ctx context.Context, fn func(db *sql.DB) error) error {
	db, err := env.openDB(ctx, env.cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			env.log.Error("error closing database connection", "error", redact.Error(err))
		}
	}()
	return fn(db)
}
