// Package feed adapts the Jira client to the ingest fetcher port
package feed

import (
	"context"
	"time"

	"deskscope/internal/adapters/jira"
	perr "deskscope/internal/platform/errors"
	"deskscope/internal/services/ingest/domain"
)

// Source is one Jira site/project pair a fetcher can serve
type Source struct {
	Project  string
	BaseURL  string
	Email    string
	APIToken string
}

// Fetcher routes window fetches to the right site client by project key.
// Tenants can live on different Jira sites, so one client per source
type Fetcher struct {
	clients   map[string]*jira.Client
	maxIssues int
}

// NewFetcher builds one client per source. maxIssues caps each window fetch
// (0 means unlimited)
func NewFetcher(sources []Source, maxIssues int) *Fetcher {
	clients := make(map[string]*jira.Client, len(sources))
	for _, src := range sources {
		clients[src.Project] = jira.NewClient(jira.Options{
			BaseURL:  src.BaseURL,
			Email:    src.Email,
			APIToken: src.APIToken,
		})
	}
	return &Fetcher{clients: clients, maxIssues: maxIssues}
}

// FetchCreatedBetween implements domain.Fetcher
func (f *Fetcher) FetchCreatedBetween(
	ctx context.Context, project string, start, end time.Time,
) ([]domain.RawTicket, error) {
	c, ok := f.clients[project]
	if !ok {
		return nil, perr.InvalidArgf("no jira source configured for project %s", project)
	}
	return c.SearchCreatedBetween(ctx, project, start, end, f.maxIssues)
}
