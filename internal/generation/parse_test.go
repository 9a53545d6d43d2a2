package generation

import (
	"testing"

	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoCards = `[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"}]`

func TestParseFlashcards(t *testing.T) {
	want := []domain.FlashcardContent{
		{Question: "Q1", Answer: "A1"},
		{Question: "Q2", Answer: "A2"},
	}

	tests := []struct {
		name    string
		content string
	}{
		{"plain array", twoCards},
		{"json fence", "```json\n" + twoCards + "\n```"},
		{"bare fence", "```\n" + twoCards + "\n```"},
		{"fence without newlines", "```" + twoCards + "```"},
		{"surrounding whitespace", "\n\n  " + twoCards + "  \n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cards, err := ParseFlashcards(tc.content)
			require.NoError(t, err)
			assert.Equal(t, want, cards)
		})
	}
}

func TestParseFlashcardsRejectsNonArrays(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"object", `{"foo":1}`},
		{"object wrapping array", `{"flashcards":[{"question":"Q","answer":"A"}]}`},
		{"not json", "Here are your flashcards: Q1 / A1"},
		{"empty", ""},
		{"null", "null"},
		{"string", `"[]"`},
		{"truncated", `[{"question":"Q1","answer":"A1"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cards, err := ParseFlashcards(tc.content)
			assert.ErrorIs(t, err, ErrInvalidResponse)
			assert.Nil(t, cards)
		})
	}
}

func TestParseFlashcardsFiltersInvalidEntries(t *testing.T) {
	content := `[
		{"question":"Q1","answer":"A1"},
		{"question":"","answer":"A2"},
		{"question":"Q3"},
		{"answer":"A4"},
		{"question":5,"answer":"A5"},
		{"question":"  Q6  ","answer":" A6 "},
		"just a string",
		null
	]`

	cards, err := ParseFlashcards(content)

	require.NoError(t, err)
	assert.Equal(t, []domain.FlashcardContent{
		{Question: "Q1", Answer: "A1"},
		{Question: "Q6", Answer: "A6"},
	}, cards)
}

func TestParseFlashcardsNoValidEntries(t *testing.T) {
	for _, content := range []string{
		`[]`,
		`[{"question":"Q1"},{"answer":"A2"}]`,
		`[{"front":"Q","back":"A"}]`,
	} {
		cards, err := ParseFlashcards(content)
		assert.ErrorIs(t, err, ErrNoValidFlashcards, content)
		assert.NotErrorIs(t, err, ErrInvalidResponse, content)
		assert.Nil(t, cards)
	}
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, "[1]", StripCodeFence("```json\n[1]\n```"))
	assert.Equal(t, "[1]", StripCodeFence("  [1]  "))
	assert.Equal(t, "```json\n[1]", StripCodeFence("```json\n[1]"), "unterminated fence is left alone")
}
