package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-cardgen/internal/platform/logger"
	"github.com/phrazzld/scry-cardgen/internal/redact"
)

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).ErrorContext(r.Context(), "failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

// RespondWithError writes a JSON error body carrying the request trace ID.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithErrorDetails(w, r, status, message, nil)
}

// RespondWithErrorDetails writes a JSON error body with a details object.
func RespondWithErrorDetails(w http.ResponseWriter, r *http.Request, status int, message string, details any) {
	traceID := GetTraceID(r.Context())

	logger.FromContext(r.Context()).DebugContext(r.Context(), "sending error response",
		slog.Int("status_code", status),
		slog.String("message", message),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method))

	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   message,
		Details: details,
		TraceID: traceID,
	})
}

// RespondWithErrorAndLog writes userMessage to the client and logs the
// redacted err. 5xx responses log at ERROR, 429 at WARN, the rest at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	attrs := []slog.Attr{
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	level := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	case status == http.StatusTooManyRequests:
		level = slog.LevelWarn
	}
	logger.FromContext(r.Context()).LogAttrs(r.Context(), level, "API error response", attrs...)

	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   userMessage,
		TraceID: GetTraceID(r.Context()),
	})
}

// RespondRaw relays an already encoded body with its original content type.
// An empty contentType defaults to application/json.
func RespondRaw(w http.ResponseWriter, r *http.Request, status int, contentType string, body []byte) {
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logger.FromContext(r.Context()).ErrorContext(r.Context(), "failed to write response body",
			slog.String("error", err.Error()))
	}
}
