package api

import (
	"context"
	"net/http"
	"time"

	"github.com/phrazzld/scry-cardgen/internal/api/shared"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports service and database liveness.
type HealthHandler struct {
	db      Pinger
	timeout time.Duration
}

// NewHealthHandler creates a HealthHandler. db may be nil.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, timeout: 2 * time.Second}
}

// Health responds 200 when the database answers a ping and 503 otherwise.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok", Database: "not configured"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Database: "unreachable"})
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok", Database: "ok"})
}
