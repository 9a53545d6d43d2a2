package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package
var (
	// ErrMissingAPIKey is returned when no API key is configured for the LLM provider.
	// No outbound call is made when this error is returned.
	ErrMissingAPIKey = errors.New("LLM API key is not configured")

	// ErrEmptyPrompt is returned when the user prompt is blank.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrInvalidResponse is returned when the LLM content is not a JSON array.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrNoValidFlashcards is returned when no entry of the LLM output has
	// both a question and an answer.
	ErrNoValidFlashcards = errors.New("no valid flashcards in language model response")
)

// UpstreamError is returned when the LLM API answers with a non-success status.
// The status and body are kept verbatim so they can be relayed to the caller.
type UpstreamError struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("LLM API returned status %d", e.StatusCode)
}
