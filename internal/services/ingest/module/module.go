// Package module provides the ingest module implementation
package module

import (
	"deskscope/internal/modkit"
	"deskscope/internal/modkit/repokit"
	"deskscope/internal/platform/logger"

	"deskscope/internal/services/ingest/categories"
	"deskscope/internal/services/ingest/derive"
	"deskscope/internal/services/ingest/domain"
	"deskscope/internal/services/ingest/extract"
	"deskscope/internal/services/ingest/feed"
	"deskscope/internal/services/ingest/guardrails"
	"deskscope/internal/services/ingest/repo"
	"deskscope/internal/services/ingest/service"
)

// Ports defines the ingest module ports
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements the ingest module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the ingest module.
// It wires up all the adapters and the service using config from deps.Cfg
// and does not mount any routes
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	// DB binder (no deps passed into repo)
	storeBinder := repo.NewPG()

	// category mapping is a startup asset; a missing file is a config error
	cats, err := categories.Load(opts.CategoriesPath)
	if err != nil {
		logger.Get().Panic().Err(err).Str("path", opts.CategoriesPath).Msg("ingest: category mapping load failed")
	}

	// Non-DB adapters
	sources := make([]feed.Source, 0, len(opts.Tenants))
	tenants := make([]service.Tenant, 0, len(opts.Tenants))
	for _, t := range opts.Tenants {
		sources = append(sources, feed.Source{
			Project:  t.Project,
			BaseURL:  t.JiraURL,
			Email:    t.JiraEmail,
			APIToken: t.JiraToken,
		})
		tenants = append(tenants, service.Tenant{
			Name:       t.Name,
			Project:    t.Project,
			CompanyTag: t.CompanyTag,
		})
	}
	fetch := feed.NewFetcher(sources, opts.MaxIssues)
	ex := extract.New()
	en := derive.New(cats)

	lease := guardrails.MakeTableLease(deps, "tickets")

	var mirror domain.Mirror
	if opts.MirrorEnabled && deps.CH != nil {
		mirror = repo.NewMirror(deps.CH)
	}

	svc := service.New(
		repokit.TxRunner(deps.PG), storeBinder,
		fetch, ex, en,
		service.Config{
			Tenants:      tenants,
			DryRun:       opts.DryRun,
			RunTimeout:   opts.RunTimeout,
			FetchTimeout: opts.FetchTimeout,
			DBTimeout:    opts.DBTimeout,
		},
		lease,
		mirror,
	)

	m := &Module{deps: deps}
	m.ports = Ports{Runner: svc}
	return m
}

// Name returns the module name
func (m *Module) Name() string { return "ingest" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Prefix returns the module prefix (none)
func (m *Module) Prefix() string { return "" }

// MountRoutes is a no-op as ingest has no routes
func (m *Module) MountRoutes(_ interface{}) {}
