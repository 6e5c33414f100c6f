package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/crimsondominion/crimson-go/internal/middleware"
	"github.com/crimsondominion/crimson-go/internal/model"
	"github.com/crimsondominion/crimson-go/internal/service"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20 // 1MB

type validationResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// decodeJSON reads the request body into dst. It writes the error response
// itself and reports false when the body is unusable.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}
	return true
}

// pathID returns the {id} URL parameter, writing 400 when it cannot be a record id.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if id == "" || len(id) > 36 {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid id"))
		return "", false
	}
	return id, true
}

// writeError maps service errors to status codes. Storage and unexpected
// failures are logged and reported as a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, validationResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, service.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse(service.ErrForbidden.Error()))
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	default:
		middleware.LoggerFrom(r.Context()).Error("request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}

// callerOrFail returns the authenticated identity, writing 401 when absent.
func callerOrFail(w http.ResponseWriter, r *http.Request) (model.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return model.Identity{}, false
	}
	return identity, true
}
