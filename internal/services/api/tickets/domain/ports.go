package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Query(ctx context.Context, in QueryInput) ([]TicketDTO, error)
	Weekly(ctx context.Context, in WeeklyInput) ([]WeeklyRow, error)
	Categories(ctx context.Context, in CategoriesInput) ([]CategoryRow, error)
	Sources(ctx context.Context, in SourcesInput) ([]SourceRow, error)
	OpenByStatus(ctx context.Context, in StatusInput) ([]StatusRow, error)
	Resolution(ctx context.Context, in ResolutionInput) ([]ResolutionRow, error)
	Orgs(ctx context.Context, in OrgsInput) ([]OrgRow, error)
}
