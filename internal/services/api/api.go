// Package api provides the HTTP API for the application
package api

import (
	"deskscope/internal/platform/config"
	"deskscope/internal/platform/logger"
	phttp "deskscope/internal/platform/net/http"
	"deskscope/internal/platform/store"

	"deskscope/internal/modkit"
	"deskscope/internal/modkit/httpkit"
	"deskscope/internal/modkit/module"
	"deskscope/internal/modkit/swaggerkit"

	insightsmod "deskscope/internal/services/api/insights/module"
	metamod "deskscope/internal/services/api/meta/module"
	ticketsmod "deskscope/internal/services/api/tickets/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	mods := []module.Module{
		metamod.New(deps),
		ticketsmod.New(deps),
		insightsmod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
