package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/scry-cardgen/internal/store"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// MapError maps a database error to a store sentinel. Both the sentinel and
// the driver error stay in the chain.
// Errors without a specific mapping are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %w", store.ErrDuplicate, err)
		case foreignKeyViolationCode:
			return fmt.Errorf("%w: foreign key violation (%s): %w",
				store.ErrInvalidEntity, pgErr.ConstraintName, err)
		case checkViolationCode:
			return fmt.Errorf("%w: check constraint violation (%s): %w",
				store.ErrInvalidEntity, pgErr.ConstraintName, err)
		case notNullViolationCode:
			return fmt.Errorf("%w: not null violation (%s): %w",
				store.ErrInvalidEntity, pgErr.ColumnName, err)
		}
	}

	return err
}

// newStoreError builds a *store.StoreError for a failed write.
// The message is chosen from the Postgres error code and the PgError fields
// become the detail object. fallback is used for every other failure.
func newStoreError(entity, operation, fallback string, err error) *store.StoreError {
	mapped := MapError(err)

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return store.NewStoreError(entity, operation, fallback, mapped)
	}

	message := constraintMessage(entity, pgErr.Code)
	if message == "" {
		message = fallback
	}

	return store.NewStoreError(entity, operation, message, mapped).WithDetails(map[string]any{
		"code":       pgErr.Code,
		"detail":     pgErr.Detail,
		"hint":       pgErr.Hint,
		"constraint": pgErr.ConstraintName,
	})
}

// entityLabels names entities in client-facing messages.
var entityLabels = map[string]string{
	"flashcard":     "Flashcard",
	"flashcard_set": "Flashcard set",
}

// constraintMessage returns the client message for a constraint violation on
// entity, or "" when code is not a constraint violation.
func constraintMessage(entity, code string) string {
	label, ok := entityLabels[entity]
	if !ok {
		label = "Record"
	}

	switch code {
	case foreignKeyViolationCode:
		if entity == "flashcard" {
			return "Flashcard set does not exist"
		}
		return label + " references a record that does not exist"
	case uniqueViolationCode:
		return label + " already exists"
	case checkViolationCode, notNullViolationCode:
		return label + " data violates a database constraint"
	}
	return ""
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign key violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}
