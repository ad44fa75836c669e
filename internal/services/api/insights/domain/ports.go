package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Summarize(ctx context.Context, in SummaryInput) (SummaryOutput, error)
}
