package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/phrazzld/scry-cardgen/internal/platform/logger"
	"github.com/phrazzld/scry-cardgen/internal/redact"
	"github.com/phrazzld/scry-cardgen/internal/store"
)

// PostgresFlashcardSetStore implements store.FlashcardSetStore.
type PostgresFlashcardSetStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.FlashcardSetStore = (*PostgresFlashcardSetStore)(nil)

// NewPostgresFlashcardSetStore creates a set store on db.
func NewPostgresFlashcardSetStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardSetStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresFlashcardSetStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_set_store")),
	}
}

// WithTx implements store.FlashcardSetStore.
func (s *PostgresFlashcardSetStore) WithTx(tx *sql.Tx) store.FlashcardSetStore {
	return &PostgresFlashcardSetStore{db: tx, logger: s.logger}
}

// CreateSet implements store.FlashcardSetStore.
func (s *PostgresFlashcardSetStore) CreateSet(ctx context.Context, set *domain.FlashcardSet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if set == nil || set.ID == uuid.Nil {
		return fmt.Errorf("%w: flashcard set has no id", store.ErrInvalidEntity)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO flashcard_set (id, user_id, title, created_at)
		VALUES ($1, $2, $3, $4)
	`, set.ID, set.UserID, set.Title, set.CreatedAt)
	if err != nil {
		log.ErrorContext(ctx, "failed to create flashcard set",
			slog.String("set_id", set.ID.String()),
			slog.String("error", redact.Error(err)))
		return newStoreError("flashcard_set", "create", "Failed to create flashcard set", err)
	}

	log.InfoContext(ctx, "flashcard set created",
		slog.String("set_id", set.ID.String()),
		slog.String("user_id", set.UserID.String()))
	return nil
}

// GetSetOwner implements store.FlashcardSetStore.
func (s *PostgresFlashcardSetStore) GetSetOwner(ctx context.Context, setID uuid.UUID) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var owner uuid.UUID
	err := s.db.QueryRowContext(ctx, `SELECT user_id FROM flashcard_set WHERE id = $1`, setID).Scan(&owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.DebugContext(ctx, "flashcard set not found", slog.String("set_id", setID.String()))
			return uuid.Nil, store.ErrSetNotFound
		}
		log.ErrorContext(ctx, "failed to look up flashcard set owner",
			slog.String("set_id", setID.String()),
			slog.String("error", redact.Error(err)))
		return uuid.Nil, newStoreError("flashcard_set", "get", "Failed to look up flashcard set", err)
	}

	return owner, nil
}
