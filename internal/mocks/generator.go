package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/phrazzld/scry-cardgen/internal/generation"
)

// MockGenerator implements generation.Generator for testing.
type MockGenerator struct {
	// ReadyErr is returned by Ready.
	ReadyErr error

	// GenerateFlashcardsFn overrides the default Cards/Err response.
	GenerateFlashcardsFn func(ctx context.Context, prompt string, count int) ([]domain.FlashcardContent, error)

	// Default response values
	Cards []domain.FlashcardContent
	Err   error

	mu      sync.Mutex
	prompts []string
	counts  []int
}

var _ generation.Generator = (*MockGenerator)(nil)

// Ready implements generation.Generator.
func (m *MockGenerator) Ready() error {
	return m.ReadyErr
}

// GenerateFlashcards implements generation.Generator.
func (m *MockGenerator) GenerateFlashcards(
	ctx context.Context,
	prompt string,
	count int,
) ([]domain.FlashcardContent, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.counts = append(m.counts, count)
	m.mu.Unlock()

	if m.GenerateFlashcardsFn != nil {
		return m.GenerateFlashcardsFn(ctx, prompt, count)
	}
	return m.Cards, m.Err
}

// Calls returns how many times GenerateFlashcards was called.
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// LastCount returns the count of the most recent call, or 0.
func (m *MockGenerator) LastCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.counts) == 0 {
		return 0
	}
	return m.counts[len(m.counts)-1]
}

// LastPrompt returns the prompt of the most recent call, or "".
func (m *MockGenerator) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}
