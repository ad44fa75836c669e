package module

import (
	"context"

	"deskscope/internal/services/api/insights/domain"
	insightssvc "deskscope/internal/services/api/insights/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptInsightsPort struct{ svc insightssvc.Service }

// Summarize returns a themed summary for one main category
func (a adaptInsightsPort) Summarize(ctx context.Context, in domain.SummaryInput) (domain.SummaryOutput, error) {
	return a.svc.Summarize(ctx, in)
}
