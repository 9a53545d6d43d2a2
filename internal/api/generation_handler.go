package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-cardgen/internal/api/shared"
	"github.com/phrazzld/scry-cardgen/internal/config"
	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/phrazzld/scry-cardgen/internal/generation"
	"github.com/phrazzld/scry-cardgen/internal/platform/logger"
	"github.com/phrazzld/scry-cardgen/internal/store"
)

// GenerationHandler serves POST /api/llm/generate-flashcards-with-llm.
type GenerationHandler struct {
	generator generation.Generator
	cards     store.FlashcardStore
	sets      store.FlashcardSetStore
	cfg       config.GenerationConfig
	logger    *slog.Logger
}

// NewGenerationHandler creates a GenerationHandler.
// sets is only consulted when cfg.EnforceSetOwnership is true and may be nil otherwise.
func NewGenerationHandler(
	generator generation.Generator,
	cards store.FlashcardStore,
	sets store.FlashcardSetStore,
	cfg config.GenerationConfig,
	log *slog.Logger,
) *GenerationHandler {
	if log == nil {
		log = slog.Default()
	}
	return &GenerationHandler{
		generator: generator,
		cards:     cards,
		sets:      sets,
		cfg:       cfg,
		logger:    log.With(slog.String("component", "generation_handler")),
	}
}

// GenerateFlashcards asks the LLM for flashcards about the prompt, stores the
// valid ones in the requested set and returns the stored rows.
func (h *GenerationHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	userID, ok := shared.UserIDFromContext(ctx)
	if !ok {
		h.respondError(w, r, domain.ErrUnauthorized)
		return
	}

	var req GenerateFlashcardsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequest, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			shared.ValidationMessage(err, generateRequestMessages, MsgInvalidRequest))
		return
	}

	setID, err := uuid.Parse(req.SetID)
	if err != nil {
		h.respondError(w, r, fmt.Errorf("%w: %w", domain.ErrInvalidID, err))
		return
	}
	count := h.resolveCount(req.Count)

	if err := h.generator.Ready(); err != nil {
		h.respondError(w, r, err)
		return
	}

	if h.cfg.EnforceSetOwnership {
		if err := h.checkOwnership(r, setID, userID); err != nil {
			h.respondError(w, r, err)
			return
		}
	}

	contents, err := h.generator.GenerateFlashcards(ctx, req.Prompt, count)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	cards := make([]*domain.Flashcard, 0, len(contents))
	for _, content := range contents {
		card, err := domain.NewFlashcard(setID, content)
		if err != nil {
			h.respondError(w, r, fmt.Errorf("%w: %w", generation.ErrNoValidFlashcards, err))
			return
		}
		cards = append(cards, card)
	}

	saved, err := h.cards.CreateMultiple(ctx, cards)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	log.InfoContext(ctx, "flashcards generated and saved",
		slog.String("set_id", setID.String()),
		slog.Int("requested", count),
		slog.Int("saved", len(saved)))

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateFlashcardsResponse{
		Message:    fmt.Sprintf("Successfully generated and saved %d flashcards", len(saved)),
		Flashcards: saved,
	})
}

// resolveCount applies the configured default and upper bound.
func (h *GenerationHandler) resolveCount(requested *int) int {
	if requested == nil || *requested <= 0 {
		return h.cfg.DefaultCount
	}
	if h.cfg.MaxCount > 0 && *requested > h.cfg.MaxCount {
		return h.cfg.MaxCount
	}
	return *requested
}

func (h *GenerationHandler) checkOwnership(r *http.Request, setID, userID uuid.UUID) error {
	if h.sets == nil {
		return errors.New("set ownership enforced without a set store")
	}
	owner, err := h.sets.GetSetOwner(r.Context(), setID)
	if err != nil {
		return err
	}
	if owner != userID {
		return domain.ErrSetNotOwned
	}
	return nil
}

// respondError writes the response for any failure after request validation.
func (h *GenerationHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var upstream *generation.UpstreamError
	if errors.As(err, &upstream) {
		log.WarnContext(r.Context(), "relaying LLM API error",
			slog.Int("status_code", upstream.StatusCode),
			slog.Int("body_length", len(upstream.Body)))
		shared.RespondRaw(w, r, upstream.StatusCode, upstream.ContentType, upstream.Body)
		return
	}

	var storeErr *store.StoreError
	if errors.As(err, &storeErr) {
		log.ErrorContext(r.Context(), "store operation failed",
			slog.String("entity", storeErr.Entity),
			slog.String("operation", storeErr.Operation),
			slog.Any("details", storeErr.Details))
		var details any
		if len(storeErr.Details) > 0 {
			details = storeErr.Details
		}
		shared.RespondWithErrorDetails(w, r, http.StatusInternalServerError, storeErr.Message, details)
		return
	}

	if errors.Is(err, store.ErrInvalidEntity) {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, MsgSaveFailed, err)
		return
	}

	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
