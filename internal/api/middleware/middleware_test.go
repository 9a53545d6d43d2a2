package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-cardgen/internal/api/shared"
	"github.com/phrazzld/scry-cardgen/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJWTService struct {
	claims *auth.Claims
	err    error
	token  string
}

func (f *fakeJWTService) GenerateToken(context.Context, uuid.UUID) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeJWTService) ValidateToken(_ context.Context, token string) (*auth.Claims, error) {
	f.token = token
	return f.claims, f.err
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		svc        *fakeJWTService
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer good", &fakeJWTService{claims: &auth.Claims{UserID: userID}}, http.StatusOK, ""},
		{"lowercase scheme", "bearer good", &fakeJWTService{claims: &auth.Claims{UserID: userID}}, http.StatusOK, ""},
		{"missing header", "", &fakeJWTService{}, http.StatusUnauthorized, "Authorization header required"},
		{"wrong scheme", "Basic abc", &fakeJWTService{}, http.StatusUnauthorized, "Invalid authorization format"},
		{"empty token", "Bearer ", &fakeJWTService{}, http.StatusUnauthorized, "Invalid authorization format"},
		{"expired", "Bearer old", &fakeJWTService{err: auth.ErrExpiredToken}, http.StatusUnauthorized, "Token expired"},
		{"invalid", "Bearer bad", &fakeJWTService{err: auth.ErrInvalidToken}, http.StatusUnauthorized, "Invalid token"},
		{"wrong type", "Bearer refresh", &fakeJWTService{err: auth.ErrWrongTokenType}, http.StatusUnauthorized, "Invalid token"},
		{"unexpected", "Bearer x", &fakeJWTService{err: errors.New("boom")}, http.StatusInternalServerError, "Authentication error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var seen uuid.UUID
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = shared.UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			r := httptest.NewRequest(http.MethodPost, "/api/llm/generate-flashcards-with-llm", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			NewAuthMiddleware(tc.svc).Authenticate(next).ServeHTTP(w, r)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, userID, seen)
				assert.Equal(t, "good", tc.svc.token)
			} else {
				assert.Contains(t, w.Body.String(), tc.wantBody)
				assert.Equal(t, uuid.Nil, seen)
			}
		})
	}
}

func TestTraceMiddlewareReusesRequestID(t *testing.T) {
	var traceID string
	handler := chimiddleware.RequestID(TraceMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		assert.Equal(t, chimiddleware.GetReqID(r.Context()), traceID)
	})))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, traceID)
}

func TestTraceMiddlewareGeneratesID(t *testing.T) {
	var traceID string
	handler := TraceMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(traceID)
	require.NoError(t, err)
}

func TestRecoverer(t *testing.T) {
	handler := Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil map write")
	}))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"An unexpected error occurred"}`, w.Body.String())
}

func TestRecovererRepanicsAbort(t *testing.T) {
	handler := Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.Panics(t, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
