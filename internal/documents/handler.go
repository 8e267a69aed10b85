package documents

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/schedease/pkg/handlers"
	"github.com/JaimeStill/schedease/pkg/identity"
	"github.com/JaimeStill/schedease/pkg/middleware"
	"github.com/JaimeStill/schedease/pkg/routes"
)

// CreateResponse is the body returned after a document is created.
type CreateResponse struct {
	ID string `json:"id"`
}

// Handler provides HTTP endpoints for generic document access. Every route
// requires a verified bearer token.
type Handler struct {
	sys      System
	verifier identity.Verifier
	logger   *slog.Logger
}

// NewHandler creates a Handler with the given system, token verifier, and logger.
func NewHandler(sys System, verifier identity.Verifier, logger *slog.Logger) *Handler {
	return &Handler{
		sys:      sys,
		verifier: verifier,
		logger:   logger.With("handler", "documents"),
	}
}

// Routes returns the route group definition for document endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:     "/documents",
		Middleware: []routes.Middleware{middleware.Authenticate(h.verifier, h.logger)},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{collection}", Handler: h.List},
			{Method: "GET", Pattern: "/{collection}/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "/{collection}", Handler: h.Create},
			{Method: "PATCH", Pattern: "/{collection}/{id}", Handler: h.Update},
			{Method: "DELETE", Pattern: "/{collection}/{id}", Handler: h.Delete},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.sys.List(r.Context(), r.PathValue("collection"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, docs)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	doc, err := h.sys.Find(r.Context(), r.PathValue("collection"), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, doc)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	id, err := h.sys.Create(r.Context(), r.PathValue("collection"), fields)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, CreateResponse{ID: id})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Update(r.Context(), r.PathValue("collection"), r.PathValue("id"), fields); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Delete(r.Context(), r.PathValue("collection"), r.PathValue("id")); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeFields reads a JSON object body. Numbers keep their literal form.
func decodeFields(r *http.Request) (Fields, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var f Fields
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if f == nil {
		return nil, fmt.Errorf("%w: body must be a JSON object", ErrInvalidDocument)
	}
	return f, nil
}
