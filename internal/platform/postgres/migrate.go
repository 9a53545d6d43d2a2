package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/phrazzld/scry-cardgen/internal/platform/postgres/migrations"
)

// Migration commands accepted by Migrate.
const (
	MigrateUp      = "up"
	MigrateDown    = "down"
	MigrateStatus  = "status"
	MigrateVersion = "version"
)

// gooseMu guards goose's package-level configuration.
var gooseMu sync.Mutex

// slogGooseLogger adapts goose.Logger to slog.
// Fatalf does not exit; the error is returned to the caller instead.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Migrate runs a goose command against db using the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, command string, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "migrations"), slog.String("command", command))

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(&slogGooseLogger{logger: log})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	start := time.Now()
	var err error
	switch command {
	case MigrateUp:
		err = goose.UpContext(ctx, db, ".")
	case MigrateDown:
		err = goose.DownContext(ctx, db, ".")
	case MigrateStatus:
		err = goose.StatusContext(ctx, db, ".")
	case MigrateVersion:
		var version int64
		version, err = goose.GetDBVersionContext(ctx, db)
		if err == nil {
			log.InfoContext(ctx, "current schema version", slog.Int64("version", version))
		}
	default:
		return fmt.Errorf("unknown migration command %q (want up, down, status or version)", command)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	log.InfoContext(ctx, "migration command completed", slog.Duration("elapsed", time.Since(start)))
	return nil
}
