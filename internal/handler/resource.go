package handler

import (
	"net/http"

	"github.com/crimsondominion/crimson-go/internal/model"
	"github.com/crimsondominion/crimson-go/internal/service"
	"github.com/go-chi/chi/v5"
)

// ResourceHandler serves owner-scoped CRUD for one resource collection.
type ResourceHandler[T model.Owned, In service.Input[T]] struct {
	service *service.ResourceService[T, In]
}

// NewResourceHandler creates a new ResourceHandler.
func NewResourceHandler[T model.Owned, In service.Input[T]](svc *service.ResourceService[T, In]) *ResourceHandler[T, In] {
	return &ResourceHandler[T, In]{service: svc}
}

// Routes returns the collection routes, to be mounted under the collection path.
func (h *ResourceHandler[T, In]) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	return r
}

// HandleCreate handles POST / requests.
func (h *ResourceHandler[T, In]) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}

	var in In
	if !decodeJSON(w, r, &in) {
		return
	}

	item, err := h.service.Create(r.Context(), caller, in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// HandleList handles GET / requests.
func (h *ResourceHandler[T, In]) HandleList(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}

	items, err := h.service.List(r.Context(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// HandleGet handles GET /{id} requests.
func (h *ResourceHandler[T, In]) HandleGet(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := h.service.Get(r.Context(), caller, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// HandleUpdate handles PUT /{id} requests.
func (h *ResourceHandler[T, In]) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in In
	if !decodeJSON(w, r, &in) {
		return
	}

	item, err := h.service.Update(r.Context(), caller, id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// HandleDelete handles DELETE /{id} requests.
func (h *ResourceHandler[T, In]) HandleDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), caller, id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
