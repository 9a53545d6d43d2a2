// Package openai implements generation.ChatClient against any
// OpenAI-compatible chat-completions endpoint (OpenAI, Groq, local gateways).
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/phrazzld/scry-cardgen/internal/config"
	"github.com/phrazzld/scry-cardgen/internal/generation"
	"github.com/phrazzld/scry-cardgen/internal/platform/logger"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "https://api.openai.com/v1/"

// Client sends flashcard prompts to a chat-completions endpoint.
type Client struct {
	client      oai.Client
	configured  bool
	model       string
	maxTokens   int64
	temperature float64
	logger      *slog.Logger
}

var _ generation.ChatClient = (*Client)(nil)

// NewClient creates a Client from LLM configuration.
//
// httpClient may be nil, in which case a client with the configured timeout
// is used. Extra request options are appended last and win over defaults.
func NewClient(
	cfg config.LLMConfig,
	httpClient *http.Client,
	log *slog.Logger,
	opts ...option.RequestOption,
) *Client {
	if log == nil {
		log = slog.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	requestOpts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(httpClient),
		// Transient failures are reported, never retried.
		option.WithMaxRetries(0),
		option.WithMiddleware(captureUpstreamError),
	}
	requestOpts = append(requestOpts, opts...)

	return &Client{
		client:      oai.NewClient(requestOpts...),
		configured:  cfg.APIKey != "",
		model:       cfg.Model,
		maxTokens:   int64(cfg.MaxTokens),
		temperature: cfg.Temperature,
		logger:      log.With(slog.String("component", "openai_client")),
	}
}

// Ready implements generation.ChatClient.
func (c *Client) Ready() error {
	if !c.configured {
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

	params := oai.ChatCompletionNewParams{
		Model: oai.ChatModel(c.model),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.SystemMessage(req.System),
			oai.UserMessage(req.User),
		},
		MaxTokens:   oai.Int(c.maxTokens),
		Temperature: oai.Float(c.temperature),
		ResponseFormat: oai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}

	start := time.Now()
	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var upstream *generation.UpstreamError
		if errors.As(err, &upstream) {
			log.WarnContext(ctx, "chat completion rejected",
				slog.Int("status_code", upstream.StatusCode),
				slog.Duration("elapsed", time.Since(start)))
			return "", upstream
		}
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", generation.ErrInvalidResponse)
	}

	choice := completion.Choices[0]
	log.DebugContext(ctx, "chat completion received",
		slog.String("model", completion.Model),
		slog.Any("finish_reason", choice.FinishReason),
		slog.Int64("completion_tokens", completion.Usage.CompletionTokens),
		slog.Duration("elapsed", time.Since(start)))

	return choice.Message.Content, nil
}

// captureUpstreamError turns a non-2xx response into *generation.UpstreamError
// carrying the untouched status and body.
func captureUpstreamError(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
	res, err := next(req)
	if err != nil || res == nil {
		return res, err
	}
	if res.StatusCode >= http.StatusOK && res.StatusCode < http.StatusMultipleChoices {
		return res, nil
	}

	defer res.Body.Close()
	body, readErr := io.ReadAll(res.Body)
	if readErr != nil {
		return nil, fmt.Errorf("failed to read LLM error body (status %d): %w", res.StatusCode, readErr)
	}

	return nil, &generation.UpstreamError{
		StatusCode:  res.StatusCode,
		ContentType: res.Header.Get("Content-Type"),
		Body:        body,
	}
}
