package api

import "github.com/phrazzld/scry-cardgen/internal/domain"

// GenerateFlashcardsRequest is the body of the generation endpoint.
type GenerateFlashcardsRequest struct {
	Prompt string `json:"prompt" validate:"required"`
	SetID  string `json:"setId"  validate:"required,uuid"`
	// Count is optional; absent or non-positive means the configured default.
	Count *int `json:"count,omitempty"`
}

// GenerateFlashcardsResponse is returned when flashcards were stored.
type GenerateFlashcardsResponse struct {
	Message    string              `json:"message"`
	Flashcards []*domain.Flashcard `json:"flashcards"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

var generateRequestMessages = map[string]string{
	"prompt":         MsgPromptRequired,
	"setId.required": MsgSetIDRequired,
	"setId.uuid":     MsgSetIDInvalid,
}
