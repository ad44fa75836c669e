// Package http provides http transport for tickets
package http

import (
	stdhttp "net/http"

	"deskscope/internal/modkit/httpkit"
	"deskscope/internal/services/api/tickets/domain"
	svc "deskscope/internal/services/api/tickets/service"
)

// Register mounts tickets endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// enriched rows in window
	httpkit.PostJSON[domain.QueryInput](r, "/query", h.query)

	// counts per ISO week
	httpkit.PostJSON[domain.WeeklyInput](r, "/weekly", h.weekly)

	// counts by main and sub category
	httpkit.PostJSON[domain.CategoriesInput](r, "/categories", h.categories)

	// counts by intake channel
	httpkit.PostJSON[domain.SourcesInput](r, "/sources", h.sources)

	// open tickets by status
	httpkit.PostJSON[domain.StatusInput](r, "/status", h.status)

	// same-day share per week
	httpkit.PostJSON[domain.ResolutionInput](r, "/resolution", h.resolution)

	// counts per org unit
	httpkit.PostJSON[domain.OrgsInput](r, "/orgs", h.orgs)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /tickets/query Tickets ticketsQuery
// @Summary Enriched ticket rows in window
// @Tags Tickets
// @Accept json
// @Produce json
// @Param payload body domain.QueryInput true "Query"
// @Success 200 {array} domain.TicketDTO "ok"
// @Router /tickets/query [post]
func (h *handlers) query(r *stdhttp.Request, in domain.QueryInput) (any, error) {
	return h.svc.Query(r.Context(), in)
}

// swagger:route POST /tickets/weekly Tickets ticketsWeekly
// @Summary Ticket counts per ISO week
// @Tags Tickets
// @Accept json
// @Produce json
// @Param payload body domain.WeeklyInput true "Query"
// @Success 200 {array} domain.WeeklyRow "ok"
// @Router /tickets/weekly [post]
func (h *handlers) weekly(r *stdhttp.Request, in domain.WeeklyInput) (any, error) {
	return h.svc.Weekly(r.Context(), in)
}

// swagger:route POST /tickets/categories Tickets ticketsCategories
// @Summary Ticket counts by main and sub category
// @Tags Tickets
// @Accept json
// @Produce json
// @Param payload body domain.CategoriesInput true "Query"
// @Success 200 {array} domain.CategoryRow "ok"
// @Router /tickets/categories [post]
func (h *handlers) categories(r *stdhttp.Request, in domain.CategoriesInput) (any, error) {
	return h.svc.Categories(r.Context(), in)
}

// swagger:route POST /tickets/sources Tickets ticketsSources
// @Summary Ticket counts by intake channel
// @Tags Tickets
// @Accept json
// @Produce json
// @Param payload body domain.SourcesInput true "Query"
// @Success 200 {array} domain.SourceRow "ok"
// @Router /tickets/sources [post]
func (h *handlers) sources(r *stdhttp.Request, in domain.SourcesInput) (any, error) {
	return h.svc.Sources(r.Context(), in)
}

// swagger:route POST /tickets/status Tickets ticketsStatus
// @Summary Open tickets by status
// @Tags Tickets
// @Accept json
// @Produce json
// @Param payload body domain.StatusInput true "Query"
// @Success 200 {array} domain.StatusRow "ok"
// @Router /tickets/status [post]
func (h *handlers) status(r *stdhttp.Request, in domain.StatusInput) (any, error) {
	return h.svc.OpenByStatus(r.Context(), in)
}

// swagger:route POST /tickets/resolution Tickets ticketsResolution
// @Summary Same-day resolution share per week
// @Tags Tickets
// @Accept json
// @Produce json
// @Param payload body domain.ResolutionInput true "Query"
// @Success 200 {array} domain.ResolutionRow "ok"
// @Router /tickets/resolution [post]
func (h *handlers) resolution(r *stdhttp.Request, in domain.ResolutionInput) (any, error) {
	return h.svc.Resolution(r.Context(), in)
}

// swagger:route POST /tickets/orgs Tickets ticketsOrgs
// @Summary Ticket counts per org unit
// @Tags Tickets
// @Accept json
// @Produce json
// @Param payload body domain.OrgsInput true "Query"
// @Success 200 {array} domain.OrgRow "ok"
// @Router /tickets/orgs [post]
func (h *handlers) orgs(r *stdhttp.Request, in domain.OrgsInput) (any, error) {
	return h.svc.Orgs(r.Context(), in)
}
