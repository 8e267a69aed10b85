package routes

import (
	"net/http"
	"slices"
)

// Group organizes routes under a common prefix. Group middleware applies to
// every route in the group and its children.
type Group struct {
	Prefix     string
	Middleware []Middleware
	Routes     []Route
	Children   []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", nil, group)
	}
}

// Patterns returns the ServeMux patterns the groups would register, in order.
func Patterns(groups ...Group) []string {
	var out []string
	var walk func(prefix string, g Group)
	walk = func(prefix string, g Group) {
		full := prefix + g.Prefix
		for _, r := range g.Routes {
			out = append(out, r.Method+" "+full+r.Pattern)
		}
		for _, c := range g.Children {
			walk(full, c)
		}
	}
	for _, g := range groups {
		walk("", g)
	}
	return out
}

func registerGroup(mux *http.ServeMux, parentPrefix string, parentMw []Middleware, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	mw := append(slices.Clone(parentMw), group.Middleware...)

	for _, route := range group.Routes {
		pattern := route.Method + " " + fullPrefix + route.Pattern
		mux.Handle(pattern, route.handler(mw))
	}
	for _, child := range group.Children {
		registerGroup(mux, fullPrefix, mw, child)
	}
}
