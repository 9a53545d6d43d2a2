package generation

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/phrazzld/scry-cardgen/internal/platform/logger"
)

// CompletionRequest is the two-message instruction sent to the model.
type CompletionRequest struct {
	System string
	User   string
}

// ChatClient is the boundary to a chat-completion provider.
// Implementations make exactly one attempt per Complete call.
type ChatClient interface {
	// Ready returns ErrMissingAPIKey when the client has no credentials.
	Ready() error

	// Complete sends the request and returns the text content of the first choice.
	// A non-success HTTP status is reported as *UpstreamError.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Generator defines the interface for generating flashcards from a prompt.
// This interface serves as a boundary between the HTTP layer and the
// external AI/LLM services.
type Generator interface {
	// Ready reports whether the generator can make outbound calls.
	Ready() error

	// GenerateFlashcards asks the model for count flashcards about prompt and
	// returns the entries that have both a question and an answer.
	GenerateFlashcards(ctx context.Context, prompt string, count int) ([]domain.FlashcardContent, error)
}

// Service implements Generator on top of a ChatClient.
type Service struct {
	client ChatClient
	logger *slog.Logger
}

var _ Generator = (*Service)(nil)

// NewService creates a Service. If logger is nil, slog.Default() is used.
func NewService(client ChatClient, log *slog.Logger) (*Service, error) {
	if client == nil {
		return nil, errors.New("chat client cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		client: client,
		logger: log.With(slog.String("component", "flashcard_generator")),
	}, nil
}

// Ready implements Generator.
func (s *Service) Ready() error {
	return s.client.Ready()
}

// GenerateFlashcards implements Generator.
func (s *Service) GenerateFlashcards(
	ctx context.Context,
	prompt string,
	count int,
) ([]domain.FlashcardContent, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	if err := s.client.Ready(); err != nil {
		return nil, err
	}

	req, err := BuildCompletionRequest(prompt, count)
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "requesting flashcards from LLM",
		slog.Int("count", count),
		slog.Int("prompt_length", len(prompt)))

	content, err := s.client.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	cards, err := ParseFlashcards(content)
	if err != nil {
		log.WarnContext(ctx, "could not use LLM response",
			slog.String("error", err.Error()),
			slog.Int("content_length", len(content)))
		return nil, err
	}

	log.InfoContext(ctx, "flashcards generated",
		slog.Int("requested", count),
		slog.Int("valid", len(cards)))
	return cards, nil
}
