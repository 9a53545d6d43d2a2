package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-cardgen/internal/redact"
)

// DatabaseURLEnv names the variable holding the test database URL.
const DatabaseURLEnv = "SCRY_TEST_DATABASE_URL"

// Timeout bounds connection checks and transaction setup.
const Timeout = 10 * time.Second

// DatabaseURL returns the configured test database URL, or "".
func DatabaseURL() string {
	return os.Getenv(DatabaseURLEnv)
}

// Open connects to the test database and closes it when t finishes.
// It skips t when no test database is configured.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := DatabaseURL()
	if url == "" {
		t.Skipf("%s not set; skipping database test", DatabaseURLEnv)
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close test database: %s", redact.Error(err))
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("test database unreachable at %s: %s", redact.String(url), redact.Error(err))
	}
	return db
}

// WithTx runs fn in a transaction that is always rolled back, including
// when fn panics.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err, "failed to begin test transaction")

	defer func() {
		p := recover()
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("failed to roll back test transaction: %s", redact.Error(err))
		}
		if p != nil {
			panic(p)
		}
	}()

	fn(t, tx)
}
