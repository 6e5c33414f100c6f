package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crimsondominion/crimson-go/internal/model"
	"github.com/crimsondominion/crimson-go/internal/repository"
	"github.com/crimsondominion/crimson-go/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFunc func(ctx context.Context, token string) (model.Identity, error)

func (f authFunc) Authenticate(ctx context.Context, token string) (model.Identity, error) {
	return f(ctx, token)
}

var alice = model.Identity{ID: "u1", Username: "alice", Email: "alice@example.com"}

func fakeAuth(ctx context.Context, token string) (model.Identity, error) {
	switch token {
	case "good":
		return alice, nil
	case "expired":
		return model.Identity{}, service.ErrTokenExpired
	case "ghost":
		return model.Identity{}, service.ErrUnknownUser
	case "down":
		return model.Identity{}, repository.ErrStoreUnavailable
	default:
		return model.Identity{}, service.ErrTokenInvalid
	}
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestAuthenticate(t *testing.T) {
	protected := Authenticate(authFunc(fakeAuth))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		w.Write([]byte(identity.Username))
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{"missing header", "", http.StatusUnauthorized, "missing authorization header"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "invalid authorization format"},
		{"no token", "Bearer ", http.StatusUnauthorized, "invalid authorization format"},
		{"no separator", "Bearer", http.StatusUnauthorized, "invalid authorization format"},
		{"expired", "Bearer expired", http.StatusUnauthorized, "token has expired"},
		{"invalid", "Bearer junk", http.StatusUnauthorized, "invalid token"},
		{"deleted user", "Bearer ghost", http.StatusUnauthorized, "user not found"},
		{"store down", "Bearer down", http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantError, errorBody(t, rec))
		})
	}

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "bearer good")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice", rec.Body.String())
	})
}

func TestIdentityFromContext_Missing(t *testing.T) {
	_, ok := IdentityFromContext(context.Background())
	assert.False(t, ok)

	got, ok := IdentityFromContext(WithIdentity(context.Background(), alice))
	assert.True(t, ok)
	assert.Equal(t, alice, got)
}

func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := RateLimit(ctx, 1, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	hit := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1:1000"))
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1:1002"))
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.2:1000"), "limits are per IP")
}

func TestRateLimiterSweep(t *testing.T) {
	rl := newIPRateLimiter(1, 1)
	start := time.Now()
	rl.getLimiter("10.0.0.1", start)
	rl.getLimiter("10.0.0.2", start.Add(visitorTTL))

	rl.sweep(start.Add(visitorTTL + 1))

	assert.NotContains(t, rl.visitors, "10.0.0.1")
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	h := chimw.RequestID(Logger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotSame(t, slog.Default(), LoggerFrom(r.Context()))
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/planets", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "http", line["msg"])
	assert.Equal(t, "/planets", line["path"])
	assert.Equal(t, float64(http.StatusTeapot), line["status"])
	assert.NotEmpty(t, line["request_id"])
}

func TestLoggerFrom_Default(t *testing.T) {
	assert.Same(t, slog.Default(), LoggerFrom(context.Background()))
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/planets/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/planets/"+id, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("/planets/{id}", http.MethodGet, "404")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("unmatched", http.MethodGet, "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestWriteJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSONError(rec, http.StatusTeapot, "short and stout")

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", errorBody(t, rec))
}
