package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/phrazzld/scry-cardgen/internal/platform/logger"
	"github.com/phrazzld/scry-cardgen/internal/redact"
	"github.com/phrazzld/scry-cardgen/internal/store"
)

const flashcardColumns = 4

// PostgresFlashcardStore implements store.FlashcardStore.
type PostgresFlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.FlashcardStore = (*PostgresFlashcardStore)(nil)

// NewPostgresFlashcardStore creates a flashcard store on db, which may be a
// *sql.DB or a *sql.Tx. If logger is nil, slog.Default() is used.
func NewPostgresFlashcardStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresFlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

// WithTx implements store.FlashcardStore.
func (s *PostgresFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return &PostgresFlashcardStore{db: tx, logger: s.logger}
}

// CreateMultiple implements store.FlashcardStore.
// All cards are written by one INSERT statement, so the write is atomic
// without an explicit transaction.
func (s *PostgresFlashcardStore) CreateMultiple(
	ctx context.Context,
	cards []*domain.Flashcard,
) ([]*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(cards) == 0 {
		return []*domain.Flashcard{}, nil
	}

	for i, card := range cards {
		if card == nil {
			return nil, fmt.Errorf("%w: flashcard %d is nil", store.ErrInvalidEntity, i)
		}
		if err := card.Validate(); err != nil {
			log.WarnContext(ctx, "flashcard validation failed during bulk insert",
				slog.Int("index", i),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: flashcard %d: %w", store.ErrInvalidEntity, i, err)
		}
	}

	query, args := buildBulkInsert(cards)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.ErrorContext(ctx, "failed to insert flashcards",
			slog.Int("count", len(cards)),
			slog.Bool("unknown_set", IsForeignKeyViolation(err)),
			slog.String("error", redact.Error(err)))
		return nil, newStoreError("flashcard", "create", "Failed to save flashcards", err)
	}
	defer func() { _ = rows.Close() }()

	byID := make(map[uuid.UUID]*domain.Flashcard, len(cards))
	for rows.Next() {
		var card domain.Flashcard
		if err := rows.Scan(&card.ID, &card.SetID, &card.Question, &card.Answer, &card.CreatedAt); err != nil {
			return nil, newStoreError("flashcard", "create", "Failed to read saved flashcards", err)
		}
		byID[card.ID] = &card
	}
	if err := rows.Err(); err != nil {
		log.ErrorContext(ctx, "failed to insert flashcards",
			slog.Int("count", len(cards)),
			slog.Bool("unknown_set", IsForeignKeyViolation(err)),
			slog.String("error", redact.Error(err)))
		return nil, newStoreError("flashcard", "create", "Failed to save flashcards", err)
	}

	saved := make([]*domain.Flashcard, 0, len(cards))
	for _, card := range cards {
		row, ok := byID[card.ID]
		if !ok {
			return nil, store.NewStoreError("flashcard", "create", "Failed to read saved flashcards",
				fmt.Errorf("row for flashcard %s missing from RETURNING", card.ID))
		}
		saved = append(saved, row)
	}

	log.InfoContext(ctx, "flashcards created",
		slog.Int("count", len(saved)),
		slog.String("set_id", cards[0].SetID.String()))
	return saved, nil
}

// buildBulkInsert renders a multi-row INSERT ... RETURNING for cards.
func buildBulkInsert(cards []*domain.Flashcard) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(cards)*flashcardColumns)

	b.WriteString("INSERT INTO flashcard (id, set_id, question, answer) VALUES ")
	for i, card := range cards {
		if i > 0 {
			b.WriteString(", ")
		}
		n := i * flashcardColumns
		fmt.Fprintf(&b, "($%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4)
		args = append(args, card.ID, card.SetID, card.Question, card.Answer)
	}
	b.WriteString(" RETURNING id, set_id, question, answer, created_at")

	return b.String(), args
}
