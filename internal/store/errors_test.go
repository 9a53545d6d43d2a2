package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some error"), false},
		{"ErrNotFound", ErrNotFound, true},
		{"ErrSetNotFound", ErrSetNotFound, true},
		{"wrapped ErrSetNotFound", fmt.Errorf("lookup: %w", ErrSetNotFound), true},
		{"ErrDuplicate", ErrDuplicate, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsNotFoundError(tc.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("duplicate key value")
	err := NewStoreError("flashcard", "create", "Failed to save flashcards", cause)

	assert.Equal(t, "create operation on flashcard failed: Failed to save flashcards: duplicate key value", err.Error())
	assert.ErrorIs(t, err, cause)

	var target *StoreError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &target))
	assert.Equal(t, "Failed to save flashcards", target.Message)

	noCause := NewStoreError("flashcard_set", "get", "Set lookup failed", nil)
	assert.Equal(t, "get operation on flashcard_set failed: Set lookup failed", noCause.Error())
}

func TestStoreErrorWithDetailsDropsEmptyStrings(t *testing.T) {
	err := NewStoreError("flashcard", "create", "Failed", nil).WithDetails(map[string]any{
		"code":       "23503",
		"detail":     `Key (set_id)=(x) is not present in table "flashcard_set".`,
		"hint":       "",
		"constraint": "flashcard_set_id_fkey",
	})

	assert.Equal(t, map[string]any{
		"code":       "23503",
		"detail":     `Key (set_id)=(x) is not present in table "flashcard_set".`,
		"constraint": "flashcard_set_id_fkey",
	}, err.Details)

	empty := NewStoreError("flashcard", "create", "Failed", nil).WithDetails(map[string]any{"hint": ""})
	assert.Nil(t, empty.Details)
}
