// Package module wires tickets into the API using modkit
package module

import (
	"net/http"

	modkit "deskscope/internal/modkit"
	"deskscope/internal/modkit/httpkit"
	str "deskscope/internal/platform/strings"
	tickethttp "deskscope/internal/services/api/tickets/http"
	ticketrepo "deskscope/internal/services/api/tickets/repo"
	ticketsvc "deskscope/internal/services/api/tickets/service"
)

// Module implements the tickets module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc ticketsvc.Service
}

// New constructs the tickets module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("tickets"), modkit.WithPrefix("/tickets")}, opts...)...)

	cfg := FromConfig(deps.Cfg)
	repo := ticketrepo.NewPG()
	svc := ticketsvc.New(deps.PG, repo, cfg)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptTicketsPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		tickethttp.Register(r, m.svc)
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
