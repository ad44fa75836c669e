// Package http provides http transport for insights
package http

import (
	stdhttp "net/http"

	"deskscope/internal/modkit/httpkit"
	"deskscope/internal/services/api/insights/domain"
	svc "deskscope/internal/services/api/insights/service"
)

// Register mounts insights endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// themed summary of one main category
	httpkit.PostJSON[domain.SummaryInput](r, "/summary", h.summary)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /insights/summary Insights insightsSummary
// @Summary Themed summary of a main category's tickets
// @Tags Insights
// @Accept json
// @Produce json
// @Param payload body domain.SummaryInput true "Query"
// @Success 200 {object} domain.SummaryOutput "ok"
// @Router /insights/summary [post]
func (h *handlers) summary(r *stdhttp.Request, in domain.SummaryInput) (any, error) {
	return h.svc.Summarize(r.Context(), in)
}
