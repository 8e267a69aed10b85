package courses

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

// Handler provides HTTP endpoints for course operations. Reads are public;
// writes require a verified bearer token.
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
		logger:   logger.With("handler", "courses"),
	}
}

// Routes returns the route group definition for course endpoints.
func (h *Handler) Routes() routes.Group {
	auth := []routes.Middleware{middleware.Authenticate(h.verifier, h.logger)}

	return routes.Group{
		Prefix: "/courses",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "", Handler: h.Create, Middleware: auth},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update, Middleware: auth},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, Middleware: auth},
		},
	}
}

// List returns every course.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// Find returns a single course by id.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	c, err := h.sys.Find(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, c)
}

// Create stores the request body as a new course and returns its id as a
// JSON string. Any id in the body is replaced.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	c, err := decodeCourse(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	id, err := h.sys.Create(r.Context(), c)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, id)
}

// Update replaces the course at the path id with the request body.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	c, err := decodeCourse(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Update(r.Context(), r.PathValue("id"), c); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Delete removes the course at the path id.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Delete(r.Context(), r.PathValue("id")); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func decodeCourse(r *http.Request) (Course, error) {
	var c Course
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		return c, fmt.Errorf("%w: %v", ErrInvalidCourse, err)
	}
	return c, nil
}
