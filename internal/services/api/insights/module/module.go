// Package module wires insights into the API using modkit
package module

import (
	"net/http"

	modkit "deskscope/internal/modkit"
	"deskscope/internal/modkit/httpkit"
	str "deskscope/internal/platform/strings"
	insightshttp "deskscope/internal/services/api/insights/http"
	insightsrepo "deskscope/internal/services/api/insights/repo"
	insightssvc "deskscope/internal/services/api/insights/service"

	openai "github.com/sashabaranov/go-openai"
)

// Module implements the insights module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc insightssvc.Service
}

// New constructs the insights module. Without an API key the endpoint stays
// mounted but answers unavailable
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("insights"), modkit.WithPrefix("/insights")}, opts...)...)

	o := FromConfig(deps.Cfg)
	var llm insightssvc.Completer
	if o.APIKey != "" {
		llm = openai.NewClient(o.APIKey)
	}
	repo := insightsrepo.NewPG()
	svc := insightssvc.New(deps.PG, repo, llm, insightssvc.Config{
		Model:      o.Model,
		MaxTickets: o.MaxTickets,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptInsightsPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		insightshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
