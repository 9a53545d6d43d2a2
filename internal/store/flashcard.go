package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-cardgen/internal/domain"
)

// FlashcardStore persists generated flashcards.
type FlashcardStore interface {
	// CreateMultiple inserts all cards in a single statement and returns the
	// stored rows, including store-assigned fields, in input order.
	// Either every card is stored or none is.
	// Returns ErrInvalidEntity if any card fails domain validation and a
	// *StoreError for database failures.
	CreateMultiple(ctx context.Context, cards []*domain.Flashcard) ([]*domain.Flashcard, error)

	// WithTx returns a FlashcardStore that runs its statements on tx.
	WithTx(tx *sql.Tx) FlashcardStore
}

// FlashcardSetStore persists flashcard sets.
type FlashcardSetStore interface {
	// CreateSet inserts a new set.
	CreateSet(ctx context.Context, set *domain.FlashcardSet) error

	// GetSetOwner returns the user id owning the set.
	// Returns ErrSetNotFound if the set does not exist.
	GetSetOwner(ctx context.Context, setID uuid.UUID) (uuid.UUID, error)

	// WithTx returns a FlashcardSetStore that runs its statements on tx.
	WithTx(tx *sql.Tx) FlashcardSetStore
}
