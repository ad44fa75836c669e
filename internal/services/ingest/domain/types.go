// Package domain holds the core data structures for ticket ingestion
package domain

import (
	"time"

	"deskscope/internal/adapters/jira"
)

// RawTicket re-exports the issue shape produced by the fetcher and consumed
// by the extractor
type RawTicket = jira.Issue

// TicketRow is one extracted ticket, flat and typed.
// Missing text degrades to "", missing timestamps to nil, missing labels to
// an empty slice; only a missing key is an error (see extract)
type TicketRow struct {
	Key         string
	CompanyTag  string
	Summary     string
	Description string

	Status         string
	StatusCategory string
	Issuetype      string
	Priority       string

	Created *time.Time
	Updated *time.Time

	Labels []string
	Source string

	MainCategoryID string
	SubCategoryID  string

	CurrentSubstatus     string
	CurrentSubstatusDate *time.Time

	Comments    string
	RequestType string

	CloneOf  string
	ClonedBy string

	OrgUnit1 string
	OrgUnit2 string

	Link string
}

// EnrichedRow is a TicketRow plus every derived column.
// Float fields use NaN for "undefined" so comparisons behave like the
// columnar math that produces them
type EnrichedRow struct {
	TicketRow

	WeekNumber  int
	WeekLabel   string
	CreatedDate string
	UpdatedDate string
	Year        int
	Month       int

	BusinessDaysOpen int

	ResolutionHours  float64
	ResolutionDays   float64
	ResolutionClass  string
	ResolutionBucket string

	MainCategoryName *string
	SubCategoryName  string

	// Extra carries columns this build does not model, round-tripped through
	// the store so older rows survive schema drift
	Extra map[string]any
}

// Table is the persisted ticket table: rows unique by Key plus the set of
// extra column names observed across them
type Table struct {
	Rows         []EnrichedRow
	ExtraColumns []string
}

// RunStats summarizes one ingestion cycle for callers and the run ledger
type RunStats struct {
	RunID     string
	Fetched   int
	Extracted int
	Merged    int
	Saved     int
	DryRun    bool
}

// RunFinish closes out a ledger entry for a completed or failed cycle
type RunFinish struct {
	Status    string
	Fetched   int
	Extracted int
	Merged    int
	Saved     int
	FetchMS   int
	DeriveMS  int
	DBMS      int
	ElapsedMS int
	ErrText   string
}
