package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/phrazzld/scry-cardgen/internal/api"
	apiMiddleware "github.com/phrazzld/scry-cardgen/internal/api/middleware"
)

// setupRouter creates the router with middleware and all routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: app.config.Server.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	generationHandler := api.NewGenerationHandler(
		app.generator,
		app.flashcardStore,
		app.flashcardSetStore,
		app.config.Generation,
		app.logger,
	)

	var pinger api.Pinger
	if app.db != nil {
		pinger = app.db
	}
	healthHandler := api.NewHealthHandler(pinger)

	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/llm/generate-flashcards-with-llm", generationHandler.GenerateFlashcards)
		})
	})

	return r
}
