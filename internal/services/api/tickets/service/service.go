// Package service contains tickets read workflows
package service

import (
	"context"

	"deskscope/internal/modkit/repokit"
	"deskscope/internal/services/api/tickets/domain"
	"deskscope/internal/services/api/tickets/repo"
)

// Service defines the tickets service contract
type Service interface {
	domain.ServicePort
}

// Config tunes the read queries
type Config struct {
	// DoneCategory is the Jira status category that marks a ticket closed
	DoneCategory string

	// DefaultLimit bounds /tickets/query when the caller sends none
	DefaultLimit int
}

// Svc implements the tickets service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	cfg    Config
}

// New constructs a tickets service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], cfg Config) *Svc {
	if db == nil {
		panic("tickets.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("tickets.Service requires a non nil Repo binder")
	}
	if cfg.DoneCategory == "" {
		cfg.DoneCategory = "Done"
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 200
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, cfg: cfg}
}

// Query returns enriched rows in the window, newest first
func (s *Svc) Query(ctx context.Context, in domain.QueryInput) ([]domain.TicketDTO, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	rows, err := s.Repo.Query(ctx, in.Range.Start, in.Range.End, in.CompanyTag, in.Source, in.Status, in.MainCategory, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TicketDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.TicketDTO{
			Key:              r.Key,
			CompanyTag:       r.CompanyTag,
			Summary:          r.Summary,
			Status:           r.Status,
			StatusCategory:   r.StatusCategory,
			Priority:         r.Priority,
			Created:          r.Created,
			Updated:          r.Updated,
			Source:           r.Source,
			RequestType:      r.RequestType,
			MainCategory:     r.MainCategory,
			SubCategory:      r.SubCategory,
			OrgUnit1:         r.OrgUnit1,
			OrgUnit2:         r.OrgUnit2,
			WeekLabel:        r.WeekLabel,
			BusinessDaysOpen: r.BusinessDaysOpen,
			ResolutionHours:  r.ResolutionHours,
			ResolutionClass:  r.ResolutionClass,
			ResolutionBucket: r.ResolutionBucket,
			Link:             r.Link,
		})
	}
	return out, nil
}

// Weekly returns ticket counts per ISO week label
func (s *Svc) Weekly(ctx context.Context, in domain.WeeklyInput) ([]domain.WeeklyRow, error) {
	rows, err := s.Repo.Weekly(ctx, in.Range.Start, in.Range.End, in.CompanyTag)
	if err != nil {
		return nil, err
	}
	out := make([]domain.WeeklyRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.WeeklyRow{WeekLabel: r.WeekLabel, Tickets: r.Tickets})
	}
	return out, nil
}

// Categories returns counts by main and sub category
func (s *Svc) Categories(ctx context.Context, in domain.CategoriesInput) ([]domain.CategoryRow, error) {
	rows, err := s.Repo.Categories(ctx, in.Range.Start, in.Range.End, in.CompanyTag)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CategoryRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.CategoryRow{Main: r.Main, Sub: r.Sub, Tickets: r.Tickets})
	}
	return out, nil
}

// Sources returns counts by intake channel
func (s *Svc) Sources(ctx context.Context, in domain.SourcesInput) ([]domain.SourceRow, error) {
	rows, err := s.Repo.Sources(ctx, in.Range.Start, in.Range.End, in.CompanyTag)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SourceRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.SourceRow{Source: r.Source, Tickets: r.Tickets})
	}
	return out, nil
}

// OpenByStatus returns still-open tickets bucketed by status
func (s *Svc) OpenByStatus(ctx context.Context, in domain.StatusInput) ([]domain.StatusRow, error) {
	rows, err := s.Repo.OpenByStatus(ctx, in.Range.Start, in.Range.End, in.CompanyTag, s.cfg.DoneCategory)
	if err != nil {
		return nil, err
	}
	out := make([]domain.StatusRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.StatusRow{StatusCategory: r.StatusCategory, Status: r.Status, Tickets: r.Tickets})
	}
	return out, nil
}

// Resolution returns the same-day share per week
func (s *Svc) Resolution(ctx context.Context, in domain.ResolutionInput) ([]domain.ResolutionRow, error) {
	rows, err := s.Repo.Resolution(ctx, in.Range.Start, in.Range.End, in.CompanyTag)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ResolutionRow, 0, len(rows))
	for _, r := range rows {
		share := 0.0
		if r.Total > 0 {
			share = float64(r.SameDay) / float64(r.Total)
		}
		out = append(out, domain.ResolutionRow{
			WeekLabel: r.WeekLabel,
			SameDay:   r.SameDay,
			Total:     r.Total,
			Share:     share,
		})
	}
	return out, nil
}

// Orgs returns counts per org unit at the requested level
func (s *Svc) Orgs(ctx context.Context, in domain.OrgsInput) ([]domain.OrgRow, error) {
	level := in.Level
	if level == 0 {
		level = 1
	}
	rows, err := s.Repo.Orgs(ctx, in.Range.Start, in.Range.End, in.CompanyTag, level)
	if err != nil {
		return nil, err
	}
	out := make([]domain.OrgRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.OrgRow{OrgUnit: r.OrgUnit, Tickets: r.Tickets})
	}
	return out, nil
}
