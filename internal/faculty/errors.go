package faculty

import (
	"errors"
	"net/http"
)

// Domain errors for faculty operations.
var (
	ErrNotFound        = errors.New("faculty member not found")
	ErrTeacherNotFound = errors.New("teacher record not found")
	ErrStore           = errors.New("document store failure")
	ErrInvalidUID      = errors.New("faculty uid is not a string")
)

// MapHTTPStatus maps faculty domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrTeacherNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
