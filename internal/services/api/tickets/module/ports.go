package module

import (
	"context"

	"deskscope/internal/services/api/tickets/domain"
	ticketsvc "deskscope/internal/services/api/tickets/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptTicketsPort struct{ svc ticketsvc.Service }

// Query returns enriched ticket rows in the window
func (a adaptTicketsPort) Query(ctx context.Context, in domain.QueryInput) ([]domain.TicketDTO, error) {
	return a.svc.Query(ctx, in)
}

// Weekly returns ticket counts per ISO week
func (a adaptTicketsPort) Weekly(ctx context.Context, in domain.WeeklyInput) ([]domain.WeeklyRow, error) {
	return a.svc.Weekly(ctx, in)
}

// Categories returns counts by main and sub category
func (a adaptTicketsPort) Categories(ctx context.Context, in domain.CategoriesInput) ([]domain.CategoryRow, error) {
	return a.svc.Categories(ctx, in)
}

// Sources returns counts by intake channel
func (a adaptTicketsPort) Sources(ctx context.Context, in domain.SourcesInput) ([]domain.SourceRow, error) {
	return a.svc.Sources(ctx, in)
}

// OpenByStatus returns still-open tickets bucketed by status
func (a adaptTicketsPort) OpenByStatus(ctx context.Context, in domain.StatusInput) ([]domain.StatusRow, error) {
	return a.svc.OpenByStatus(ctx, in)
}

// Resolution returns the same-day share per week
func (a adaptTicketsPort) Resolution(ctx context.Context, in domain.ResolutionInput) ([]domain.ResolutionRow, error) {
	return a.svc.Resolution(ctx, in)
}

// Orgs returns counts per org unit
func (a adaptTicketsPort) Orgs(ctx context.Context, in domain.OrgsInput) ([]domain.OrgRow, error) {
	return a.svc.Orgs(ctx, in)
}
