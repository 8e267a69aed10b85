package faculty

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/schedease/pkg/handlers"
	"github.com/JaimeStill/schedease/pkg/identity"
	"github.com/JaimeStill/schedease/pkg/middleware"
	"github.com/JaimeStill/schedease/pkg/routes"
)

// Response bodies for faculty endpoints.
const (
	MsgFacultyDeleted     = "Faculty member deleted successfully"
	MsgTeacherDeleted     = "Teacher record deleted successfully"
	MsgFacultyNotFound    = "Faculty member not found"
	MsgTeacherNotFound    = "Teacher record not found"
	MsgFacultyErrorPrefix = "Error deleting faculty member: "
	MsgTeacherErrorPrefix = "Error deleting teacher record: "
)

// Handler provides HTTP endpoints for faculty deletion. Every route requires
// a verified bearer token, checked before the store is touched.
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
		logger:   logger.With("handler", "faculty"),
	}
}

// Routes returns the route group definition for faculty endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:     "/faculty",
		Middleware: []routes.Middleware{middleware.Authenticate(h.verifier, h.logger)},
		Routes: []routes.Route{
			{Method: "DELETE", Pattern: "/{id}", Handler: h.DeleteFaculty},
			{Method: "DELETE", Pattern: "/teacher/{id}", Handler: h.DeleteTeacher},
		},
	}
}

// DeleteFaculty runs the cascading deletion for the path id.
func (h *Handler) DeleteFaculty(w http.ResponseWriter, r *http.Request) {
	if _, err := h.sys.DeleteFaculty(r.Context(), r.PathValue("id")); err != nil {
		status := MapHTTPStatus(err)
		msg := MsgFacultyNotFound
		if status != http.StatusNotFound {
			msg = MsgFacultyErrorPrefix + err.Error()
		}
		handlers.RespondTextError(w, h.logger, status, err, msg)
		return
	}

	handlers.RespondText(w, http.StatusOK, MsgFacultyDeleted)
}

// DeleteTeacher removes the teacher record at the path id.
func (h *Handler) DeleteTeacher(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.DeleteTeacher(r.Context(), r.PathValue("id")); err != nil {
		status := MapHTTPStatus(err)
		msg := MsgTeacherNotFound
		if status != http.StatusNotFound {
			msg = MsgTeacherErrorPrefix + err.Error()
		}
		handlers.RespondTextError(w, h.logger, status, err, msg)
		return
	}

	handlers.RespondText(w, http.StatusOK, MsgTeacherDeleted)
}
