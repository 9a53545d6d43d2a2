package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/scry-cardgen/internal/api/shared"
	"github.com/phrazzld/scry-cardgen/internal/platform/logger"
)

// GenericErrorMessage is returned for panics and unmapped failures.
const GenericErrorMessage = "An unexpected error occurred"

// Recoverer turns a handler panic into a JSON 500 response.
// http.ErrAbortHandler is re-raised so the server can abort the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler { //nolint:errorlint
				panic(rec)
			}
			logger.FromContext(r.Context()).ErrorContext(r.Context(), "panic while handling request",
				slog.String("panic", fmt.Sprint(rec)),
				slog.String("stack", string(debug.Stack())))
			shared.RespondWithError(w, r, http.StatusInternalServerError, GenericErrorMessage)
		}()
		next.ServeHTTP(w, r)
	})
}
