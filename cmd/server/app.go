package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-cardgen/internal/config"
	"github.com/phrazzld/scry-cardgen/internal/generation"
	"github.com/phrazzld/scry-cardgen/internal/platform/gemini"
	"github.com/phrazzld/scry-cardgen/internal/platform/openai"
	"github.com/phrazzld/scry-cardgen/internal/platform/postgres"
	"github.com/phrazzld/scry-cardgen/internal/service/auth"
	"github.com/phrazzld/scry-cardgen/internal/store"
)

// application holds the shared dependencies of the server and owns their cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	flashcardStore    store.FlashcardStore
	flashcardSetStore store.FlashcardSetStore

	jwtService auth.JWTService
	generator  generation.Generator
}

// newApplication wires stores, auth and the LLM generator around an open database.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: log,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	log.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	if db != nil {
		app.flashcardStore = postgres.NewPostgresFlashcardStore(db, log)
		app.flashcardSetStore = postgres.NewPostgresFlashcardSetStore(db, log)
	}

	app.generator, err = newGenerator(ctx, cfg.LLM, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	if cfg.LLM.APIKey == "" {
		log.Warn("no LLM API key configured; generation requests will fail until one is set",
			"provider", cfg.LLM.Provider)
	}

	log.Info("application initialized",
		"llm_provider", cfg.LLM.Provider,
		"llm_model", cfg.LLM.Model,
		"enforce_set_ownership", cfg.Generation.EnforceSetOwnership)
	return app, nil
}

// newGenerator picks the chat client for the configured provider.
func newGenerator(ctx context.Context, cfg config.LLMConfig, log *slog.Logger) (generation.Generator, error) {
	var client generation.ChatClient
	switch cfg.Provider {
	case "openai":
		client = openai.NewClient(cfg, nil, log)
	case "gemini":
		gc, err := gemini.NewClient(ctx, cfg, nil, log)
		if err != nil {
			return nil, err
		}
		client = gc
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.Provider)
	}
	return generation.NewService(client, log)
}

// Run serves HTTP until ctx is canceled or a shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (app *application) cleanup() {
	if app.db != nil {
		closeDB(app.db, app.logger)
	}
	app.logger.Info("application shutdown completed")
}
