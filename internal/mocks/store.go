package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/phrazzld/scry-cardgen/internal/store"
)

// MockFlashcardStore implements store.FlashcardStore for testing.
// Without CreateMultipleFn it echoes the input with CreatedAt set.
type MockFlashcardStore struct {
	CreateMultipleFn func(ctx context.Context, cards []*domain.Flashcard) ([]*domain.Flashcard, error)

	mu    sync.Mutex
	calls [][]*domain.Flashcard
}

var _ store.FlashcardStore = (*MockFlashcardStore)(nil)

// CreateMultiple implements store.FlashcardStore.
func (m *MockFlashcardStore) CreateMultiple(
	ctx context.Context,
	cards []*domain.Flashcard,
) ([]*domain.Flashcard, error) {
	m.mu.Lock()
	m.calls = append(m.calls, cards)
	m.mu.Unlock()

	if m.CreateMultipleFn != nil {
		return m.CreateMultipleFn(ctx, cards)
	}

	now := time.Now().UTC()
	saved := make([]*domain.Flashcard, len(cards))
	for i, card := range cards {
		c := *card
		c.CreatedAt = now
		saved[i] = &c
	}
	return saved, nil
}

// WithTx implements store.FlashcardStore.
func (m *MockFlashcardStore) WithTx(*sql.Tx) store.FlashcardStore {
	return m
}

// Calls returns the card batches passed to CreateMultiple.
func (m *MockFlashcardStore) Calls() [][]*domain.Flashcard {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]*domain.Flashcard(nil), m.calls...)
}

// MockFlashcardSetStore is a testify mock of store.FlashcardSetStore.
type MockFlashcardSetStore struct {
	mock.Mock
}

var _ store.FlashcardSetStore = (*MockFlashcardSetStore)(nil)

// CreateSet implements store.FlashcardSetStore.
func (m *MockFlashcardSetStore) CreateSet(ctx context.Context, set *domain.FlashcardSet) error {
	args := m.Called(ctx, set)
	return args.Error(0)
}

// GetSetOwner implements store.FlashcardSetStore.
func (m *MockFlashcardSetStore) GetSetOwner(ctx context.Context, setID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, setID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// WithTx implements store.FlashcardSetStore.
func (m *MockFlashcardSetStore) WithTx(*sql.Tx) store.FlashcardSetStore {
	return m
}
