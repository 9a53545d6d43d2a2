package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/scry-cardgen/internal/api/middleware"
	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/phrazzld/scry-cardgen/internal/generation"
	"github.com/phrazzld/scry-cardgen/internal/service/auth"
	"github.com/phrazzld/scry-cardgen/internal/store"
)

// Client-facing error messages.
const (
	MsgInvalidRequest    = "Invalid request format"
	MsgPromptRequired    = "Prompt is required"
	MsgSetIDRequired     = "setId is required"
	MsgSetIDInvalid      = "setId must be a valid UUID"
	MsgMissingAPIKey     = "Server configuration error: LLM API key is not configured"
	MsgUnparsableOutput  = "Failed to parse flashcards from LLM response. Please try again or refine your prompt."
	MsgNoValidFlashcards = "No valid flashcards were generated"
	MsgSetNotFound       = "Flashcard set not found"
	MsgSetNotOwned       = "You do not own this flashcard set"
	MsgSaveFailed        = "Failed to save flashcards"
	MsgUnauthorized      = "User ID not found in request context"
	MsgUnexpected        = middleware.GenericErrorMessage
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrSetNotOwned):
		return http.StatusForbidden

	case errors.Is(err, store.ErrSetNotFound):
		return http.StatusNotFound

	case errors.Is(err, generation.ErrEmptyPrompt),
		errors.Is(err, generation.ErrNoValidFlashcards),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client-facing message for err.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return MsgUnexpected
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"
	case errors.Is(err, domain.ErrUnauthorized):
		return MsgUnauthorized
	case errors.Is(err, domain.ErrSetNotOwned):
		return MsgSetNotOwned
	case errors.Is(err, store.ErrSetNotFound):
		return MsgSetNotFound
	case errors.Is(err, generation.ErrEmptyPrompt):
		return MsgPromptRequired
	case errors.Is(err, domain.ErrInvalidID):
		return MsgSetIDInvalid
	case errors.Is(err, generation.ErrMissingAPIKey):
		return MsgMissingAPIKey
	case errors.Is(err, generation.ErrInvalidResponse):
		return MsgUnparsableOutput
	case errors.Is(err, generation.ErrNoValidFlashcards):
		return MsgNoValidFlashcards
	default:
		return MsgUnexpected
	}
}
