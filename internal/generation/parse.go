package generation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/phrazzld/scry-cardgen/internal/domain"
)

// codeFence matches content wrapped in ``` or ```json fences.
var codeFence = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*\\n?(.*?)\\s*```$")

// StripCodeFence removes an optional markdown code fence around content.
func StripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if m := codeFence.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}
	return trimmed
}

// ParseFlashcards parses model output into flashcards.
//
// The content must be a JSON array, optionally fenced. Entries without a
// non-empty string question and answer are dropped. Returns ErrInvalidResponse
// when the content is not a JSON array and ErrNoValidFlashcards when nothing
// survives filtering.
func ParseFlashcards(content string) ([]domain.FlashcardContent, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(StripCodeFence(content)), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	// "null" decodes into a nil slice without error.
	if entries == nil {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrInvalidResponse)
	}

	cards := make([]domain.FlashcardContent, 0, len(entries))
	for _, raw := range entries {
		var entry struct {
			Question any `json:"question"`
			Answer   any `json:"answer"`
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		question, qok := entry.Question.(string)
		answer, aok := entry.Answer.(string)
		if !qok || !aok {
			continue
		}
		card := domain.FlashcardContent{
			Question: strings.TrimSpace(question),
			Answer:   strings.TrimSpace(answer),
		}
		if card.Valid() {
			cards = append(cards, card)
		}
	}

	if len(cards) == 0 {
		return nil, ErrNoValidFlashcards
	}
	return cards, nil
}
