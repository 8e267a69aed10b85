// Package routes declares HTTP route tables and registers them on a ServeMux.
package routes

import "net/http"

// Middleware wraps a handler.
type Middleware = func(http.Handler) http.Handler

// Route binds an HTTP method and pattern to a handler. Middleware wraps the
// handler for this route only, outermost first.
type Route struct {
	Method     string
	Pattern    string
	Handler    http.HandlerFunc
	Middleware []Middleware
}

func (r Route) handler(inherited []Middleware) http.Handler {
	var h http.Handler = r.Handler
	for i := len(r.Middleware) - 1; i >= 0; i-- {
		h = r.Middleware[i](h)
	}
	for i := len(inherited) - 1; i >= 0; i-- {
		h = inherited[i](h)
	}
	return h
}
