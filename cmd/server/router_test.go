package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-cardgen/internal/config"
	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/phrazzld/scry-cardgen/internal/generation"
	"github.com/phrazzld/scry-cardgen/internal/mocks"
	"github.com/phrazzld/scry-cardgen/internal/service/auth"
)

const generatePath = "/api/llm/generate-flashcards-with-llm"

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:               8080,
			LogLevel:           "info",
			CORSAllowedOrigins: []string{"https://app.example.com"},
		},
		Auth: config.AuthConfig{
			JWTSecret:            strings.Repeat("s", 32),
			TokenLifetimeMinutes: 60,
		},
		LLM: config.LLMConfig{
			Provider:       "openai",
			Model:          "gpt-4o-mini",
			MaxTokens:      1000,
			Temperature:    0.7,
			TimeoutSeconds: 5,
		},
		Generation: config.GenerationConfig{DefaultCount: 5, MaxCount: 50},
	}
}

// testApp builds an application without a database, backed by mocks.
func testApp(t *testing.T, generator generation.Generator) (*application, *mocks.MockFlashcardStore) {
	t.Helper()
	cfg := testConfig()
	jwtService, err := auth.NewJWTService(cfg.Auth)
	require.NoError(t, err)

	cards := &mocks.MockFlashcardStore{}
	return &application{
		config:            cfg,
		logger:            slog.Default(),
		flashcardStore:    cards,
		flashcardSetStore: &mocks.MockFlashcardSetStore{},
		jwtService:        jwtService,
		generator:         generator,
	}, cards
}

func TestRouterHealth(t *testing.T) {
	app, _ := testApp(t, &mocks.MockGenerator{})

	w := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"not configured"}`, w.Body.String())
}

func TestRouterGenerateRequiresAuth(t *testing.T) {
	gen := &mocks.MockGenerator{}
	app, _ := testApp(t, gen)

	r := httptest.NewRequest(http.MethodPost, generatePath, strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, gen.Calls())
}

func TestRouterGenerateFlashcards(t *testing.T) {
	gen := &mocks.MockGenerator{Cards: []domain.FlashcardContent{
		{Question: "What is Go?", Answer: "A programming language"},
		{Question: "Who made Go?", Answer: "Google"},
	}}
	app, cards := testApp(t, gen)

	token, err := app.jwtService.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	setID := uuid.New()
	body := `{"prompt":"Go basics","setId":"` + setID.String() + `","count":2}`
	r := httptest.NewRequest(http.MethodPost, generatePath, strings.NewReader(body))
	r.Header.Set("Authorization", "Bearer "+token)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	app.setupRouter().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Message    string              `json:"message"`
		Flashcards []*domain.Flashcard `json:"flashcards"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Successfully generated and saved 2 flashcards", resp.Message)
	require.Len(t, resp.Flashcards, 2)
	assert.Equal(t, setID, resp.Flashcards[0].SetID)
	assert.Equal(t, 2, gen.LastCount())
	assert.Len(t, cards.Calls(), 1)
}

func TestRouterCORSPreflight(t *testing.T) {
	app, _ := testApp(t, &mocks.MockGenerator{})

	r := httptest.NewRequest(http.MethodOptions, generatePath, nil)
	r.Header.Set("Origin", "https://app.example.com")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	r.Header.Set("Access-Control-Request-Headers", "authorization,content-type")
	w := httptest.NewRecorder()

	app.setupRouter().ServeHTTP(w, r)

	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterTraceHeaderOnErrors(t *testing.T) {
	app, _ := testApp(t, &mocks.MockGenerator{})

	r := httptest.NewRequest(http.MethodPost, generatePath, strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(w, r)

	var resp struct {
		Error   string `json:"error"`
		TraceID string `json:"trace_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
	assert.NotEmpty(t, resp.TraceID)
}

func TestNewGenerator(t *testing.T) {
	ctx := context.Background()

	for _, provider := range []string{"openai", "gemini"} {
		t.Run(provider, func(t *testing.T) {
			cfg := testConfig().LLM
			cfg.Provider = provider

			gen, err := newGenerator(ctx, cfg, slog.Default())
			require.NoError(t, err)
			assert.ErrorIs(t, gen.Ready(), generation.ErrMissingAPIKey)
		})
	}

	t.Run("unknown provider", func(t *testing.T) {
		cfg := testConfig().LLM
		cfg.Provider = "other"
		_, err := newGenerator(ctx, cfg, slog.Default())
		assert.Error(t, err)
	})
}

func TestNewApplicationWithoutDatabase(t *testing.T) {
	app, err := newApplication(context.Background(), testConfig(), slog.Default(), nil)
	require.NoError(t, err)
	assert.NotNil(t, app.jwtService)
	assert.NotNil(t, app.generator)
	assert.Nil(t, app.flashcardStore)
}
