package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/phrazzld/scry-cardgen/internal/config"
	"github.com/phrazzld/scry-cardgen/internal/generation"
	"github.com/phrazzld/scry-cardgen/internal/platform/logger"
)

// Client sends flashcard prompts to the Gemini generateContent endpoint.
type Client struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
	logger      *slog.Logger
}

var _ generation.ChatClient = (*Client)(nil)

// NewClient creates a Client from LLM configuration.
//
// When no API key is configured the returned Client is valid but reports
// generation.ErrMissingAPIKey from Ready and Complete. httpClient may be nil.
func NewClient(
	ctx context.Context,
	cfg config.LLMConfig,
	httpClient *http.Client,
	log *slog.Logger,
) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	}

	c := &Client{
		model:       cfg.Model,
		maxTokens:   int32(cfg.MaxTokens),
		temperature: float32(cfg.Temperature),
		logger:      log.With(slog.String("component", "gemini_client")),
	}

	if cfg.APIKey == "" {
		return c, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.client = client

	return c, nil
}

// Ready implements generation.ChatClient.
func (c *Client) Ready() error {
	if c.client == nil {
		return generation.ErrMissingAPIKey
	}
	return nil
}

// Complete implements generation.ChatClient.
func (c *Client) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	if err := c.Ready(); err != nil {
		return "", err
	}
	log := logger.FromContextOrDefault(ctx, c.logger)

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		},
		MaxOutputTokens:  c.maxTokens,
		Temperature:      genai.Ptr(c.temperature),
		ResponseMIMEType: "application/json",
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.User), genConfig)
	if err != nil {
		if upstream := toUpstreamError(err); upstream != nil {
			log.WarnContext(ctx, "gemini request rejected",
				slog.Int("status_code", upstream.StatusCode),
				slog.Duration("elapsed", time.Since(start)))
			return "", upstream
		}
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no candidates in response", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrInvalidResponse)
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && !part.Thought {
			text.WriteString(part.Text)
		}
	}

	log.DebugContext(ctx, "gemini response received",
		slog.String("model", c.model),
		slog.Any("finish_reason", candidate.FinishReason),
		slog.Duration("elapsed", time.Since(start)))

	return text.String(), nil
}

// toUpstreamError converts a genai API error into *generation.UpstreamError.
// It returns nil for transport and other non-API errors.
func toUpstreamError(err error) *generation.UpstreamError {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		var apiErrPtr *genai.APIError
		if !errors.As(err, &apiErrPtr) || apiErrPtr == nil {
			return nil
		}
		apiErr = *apiErrPtr
	}
	if apiErr.Code == 0 {
		return nil
	}

	body, marshalErr := json.Marshal(map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
			"status":  apiErr.Status,
			"details": apiErr.Details,
		},
	})
	if marshalErr != nil {
		body = []byte(fmt.Sprintf(`{"error":{"code":%d}}`, apiErr.Code))
	}

	return &generation.UpstreamError{
		StatusCode:  apiErr.Code,
		ContentType: "application/json",
		Body:        body,
	}
}
