package courses

import (
	"errors"
	"net/http"
)

// Domain errors for course operations.
var (
	ErrNotFound      = errors.New("course not found")
	ErrInvalidCourse = errors.New("invalid course")
)

// MapHTTPStatus maps course domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidCourse):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
