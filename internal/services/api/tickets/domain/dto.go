// Package domain holds DTOs for tickets http and service contracts
package domain

import "time"

// TimeRange filters on the ticket creation date, both days inclusive (UTC)
type TimeRange struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02" example:"2025-08-01"`
	End   string `json:"end" validate:"required,datetime=2006-01-02" example:"2025-08-31"`
}

// QueryInput selects enriched rows in a window
type QueryInput struct {
	Range TimeRange `json:"range"`
	// optional filters
	CompanyTag   string `json:"company_tag,omitempty" validate:"omitempty,min=1,max=100" example:"acme"`
	Source       string `json:"source,omitempty" validate:"omitempty,min=1,max=100" example:"Portal"`
	Status       string `json:"status,omitempty" validate:"omitempty,min=1,max=100" example:"Open"`
	MainCategory string `json:"main_category,omitempty" validate:"omitempty,min=1,max=200" example:"Hardware"`
	Limit        int    `json:"limit,omitempty" validate:"omitempty,min=1,max=1000" example:"200"`
}

// TicketDTO is one enriched row as served to dashboards
type TicketDTO struct {
	Key              string     `json:"key" example:"SD-101"`
	CompanyTag       string     `json:"company_tag" example:"acme"`
	Summary          string     `json:"summary" example:"Printer on fire"`
	Status           string     `json:"status" example:"Open"`
	StatusCategory   string     `json:"status_category" example:"To Do"`
	Priority         string     `json:"priority" example:"High"`
	Created          *time.Time `json:"created,omitempty"`
	Updated          *time.Time `json:"updated,omitempty"`
	Source           string     `json:"source,omitempty" example:"Portal"`
	RequestType      string     `json:"request_type,omitempty" example:"Report an incident"`
	MainCategory     *string    `json:"main_category,omitempty" example:"Hardware"`
	SubCategory      string     `json:"sub_category,omitempty" example:"Printers"`
	OrgUnit1         string     `json:"org_unit_1,omitempty" example:"ID_5"`
	OrgUnit2         string     `json:"org_unit_2,omitempty" example:"ID_12"`
	WeekLabel        string     `json:"week_label" example:"2025-W32"`
	BusinessDaysOpen int        `json:"business_days_open" example:"3"`
	ResolutionHours  *float64   `json:"resolution_hours,omitempty" example:"5.5"`
	ResolutionClass  string     `json:"resolution_class" example:"Same day"`
	ResolutionBucket string     `json:"resolution_bucket,omitempty" example:"4–8"`
	Link             string     `json:"link,omitempty"`
}

// WeeklyInput buckets tickets per ISO week
type WeeklyInput struct {
	Range      TimeRange `json:"range"`
	CompanyTag string    `json:"company_tag,omitempty" validate:"omitempty,min=1,max=100" example:"acme"`
}

// WeeklyRow is one ISO week bucket
type WeeklyRow struct {
	WeekLabel string `json:"week_label" example:"2025-W32"`
	Tickets   int64  `json:"tickets" example:"42"`
}

// CategoriesInput buckets tickets by main and sub category
type CategoriesInput struct {
	Range      TimeRange `json:"range"`
	CompanyTag string    `json:"company_tag,omitempty" validate:"omitempty,min=1,max=100" example:"acme"`
}

// CategoryRow is one main/sub category bucket. Main is null for tickets
// whose category id had no mapping
type CategoryRow struct {
	Main    *string `json:"main" example:"Hardware"`
	Sub     string  `json:"sub" example:"Printers"`
	Tickets int64   `json:"tickets" example:"9"`
}

// SourcesInput buckets tickets by intake channel
type SourcesInput struct {
	Range      TimeRange `json:"range"`
	CompanyTag string    `json:"company_tag,omitempty" validate:"omitempty,min=1,max=100" example:"acme"`
}

// SourceRow is one intake channel bucket
type SourceRow struct {
	Source  string `json:"source" example:"Portal"`
	Tickets int64  `json:"tickets" example:"17"`
}

// StatusInput buckets open tickets by status
type StatusInput struct {
	Range      TimeRange `json:"range"`
	CompanyTag string    `json:"company_tag,omitempty" validate:"omitempty,min=1,max=100" example:"acme"`
}

// StatusRow is one open-status bucket
type StatusRow struct {
	StatusCategory string `json:"status_category" example:"In Progress"`
	Status         string `json:"status" example:"Waiting for support"`
	Tickets        int64  `json:"tickets" example:"4"`
}

// ResolutionInput computes the same-day share per week
type ResolutionInput struct {
	Range      TimeRange `json:"range"`
	CompanyTag string    `json:"company_tag,omitempty" validate:"omitempty,min=1,max=100" example:"acme"`
}

// ResolutionRow is one week of resolution performance
type ResolutionRow struct {
	WeekLabel string  `json:"week_label" example:"2025-W32"`
	SameDay   int64   `json:"same_day" example:"30"`
	Total     int64   `json:"total" example:"42"`
	Share     float64 `json:"share" example:"0.714"`
}

// OrgsInput buckets tickets per org unit. Level picks the first or second
// unit column
type OrgsInput struct {
	Range      TimeRange `json:"range"`
	CompanyTag string    `json:"company_tag,omitempty" validate:"omitempty,min=1,max=100" example:"acme"`
	Level      int       `json:"level,omitempty" validate:"omitempty,oneof=1 2" example:"1"`
}

// OrgRow is one org unit bucket
type OrgRow struct {
	OrgUnit string `json:"org_unit" example:"ID_5"`
	Tickets int64  `json:"tickets" example:"11"`
}
