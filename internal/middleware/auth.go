package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/crimsondominion/crimson-go/internal/model"
	"github.com/crimsondominion/crimson-go/internal/service"
)

type contextKey string

const identityKey contextKey = "identity"

// Authenticator resolves a bearer token to the caller's identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (model.Identity, error)
}

// Authenticate returns middleware that requires a valid Bearer access token
// and stores the caller's identity in the request context.
func Authenticate(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				writeJSONError(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}

			identity, err := auth.Authenticate(r.Context(), strings.TrimSpace(token))
			if err != nil {
				if errors.Is(err, service.ErrUnauthenticated) {
					writeJSONError(w, http.StatusUnauthorized, err.Error())
					return
				}
				LoggerFrom(r.Context()).Error("authenticating request", "error", err)
				writeJSONError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext extracts the authenticated caller from the request context.
func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(model.Identity)
	return identity, ok
}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
