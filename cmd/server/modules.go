package main

import (
	"net/http"

	"github.com/JaimeStill/schedease/internal/api"
	"github.com/JaimeStill/schedease/internal/config"
	"github.com/JaimeStill/schedease/internal/infrastructure"
	"github.com/JaimeStill/schedease/pkg/handlers"
	"github.com/JaimeStill/schedease/pkg/module"
)

// Modules holds every prefix-mounted module served by the process.
type Modules struct {
	API *module.Module
}

// NewModules builds the API module.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{API: apiModule}, nil
}

// Mount attaches the modules to router.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	return router
}
