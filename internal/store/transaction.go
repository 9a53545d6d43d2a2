package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-cardgen/internal/platform/logger"
	"github.com/phrazzld/scry-cardgen/internal/redact"
)

// TxFn runs inside a transaction opened by RunInTransaction.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction runs fn in a new transaction on db.
//
// The transaction commits when fn returns nil and rolls back otherwise; a
// panic inside fn rolls back and is re-raised. Commit failures wrap
// ErrTransactionFailed. Errors returned by fn are returned unchanged unless
// the rollback also fails.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) (err error) {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.ErrorContext(ctx, "failed to begin transaction",
			slog.String("error", redact.Error(err)))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			log.ErrorContext(ctx, "failed to roll back transaction after panic",
				slog.String("error", redact.Error(rbErr)),
				slog.Any("panic", p))
		} else {
			log.ErrorContext(ctx, "rolled back transaction after panic", slog.Any("panic", p))
		}
		panic(p)
	}()

	if fnErr := fn(ctx, tx); fnErr != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.ErrorContext(ctx, "failed to roll back transaction",
				slog.String("rollback_error", redact.Error(rbErr)),
				slog.String("original_error", redact.Error(fnErr)))
			return fmt.Errorf("error rolling back transaction: %v (original error: %w)", rbErr, fnErr)
		}
		log.DebugContext(ctx, "rolled back transaction", slog.String("error", redact.Error(fnErr)))
		return fnErr
	}

	if err := tx.Commit(); err != nil {
		log.ErrorContext(ctx, "failed to commit transaction", slog.String("error", redact.Error(err)))
		return fmt.Errorf("%w: commit: %w", ErrTransactionFailed, err)
	}
	return nil
}
