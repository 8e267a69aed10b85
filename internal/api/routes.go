package api

import (
	"net/http"

	"github.com/JaimeStill/schedease/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, runtime *Runtime) {
	routes.Register(
		mux,
		domain.Courses.Handler(runtime.Verifier).Routes(),
		domain.Faculty.Handler(runtime.Verifier).Routes(),
		domain.Documents.Handler(runtime.Verifier).Routes(),
	)
}
