package documents

import (
	"errors"
	"net/http"
)

// Domain errors for generic document operations.
var (
	ErrNotFound          = errors.New("document not found")
	ErrUnknownCollection = errors.New("unknown collection")
	ErrInvalidDocument   = errors.New("invalid document")
	ErrCascadeRequired   = errors.New("collection requires cascading delete")
)

// MapHTTPStatus maps document domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnknownCollection), errors.Is(err, ErrInvalidDocument):
		return http.StatusBadRequest
	case errors.Is(err, ErrCascadeRequired):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
