package domain

import (
	"context"
	"time"
)

// RunnerPort is the public port exposed by the module (what the CLI calls)
type RunnerPort interface {
	RunWindow(ctx context.Context, start, end time.Time) (RunStats, error)
}

// StorageRepo is the storage repository interface
type StorageRepo interface {
	// LoadTable returns the persisted table; ok is false when nothing was
	// ever saved (first run), which is not an error
	LoadTable(ctx context.Context) (t Table, ok bool, err error)

	// ReplaceTable atomically swaps the persisted table for t
	ReplaceTable(ctx context.Context, t Table) error

	// StartRun opens a run ledger entry
	StartRun(ctx context.Context, runID string, windowStart, windowEnd time.Time) error

	// FinishRun closes a run ledger entry
	FinishRun(ctx context.Context, runID string, fin RunFinish) error
}

// Fetcher pulls the raw tickets of one project created inside the window
type Fetcher interface {
	FetchCreatedBetween(ctx context.Context, project string, start, end time.Time) ([]RawTicket, error)
}

// Extractor turns one raw ticket into a TicketRow
type Extractor interface {
	Extract(raw RawTicket, companyTag string) (TicketRow, error)
}

// Enricher computes every derived column for a batch
type Enricher interface {
	Enrich(rows []TicketRow) []EnrichedRow
}

// CategoryResolver maps category object ids to display names
type CategoryResolver interface {
	// MainName resolves a main category id; ok is false for unknown ids
	MainName(id string) (name string, ok bool)

	// SubName resolves a sub category id, returning "NA" for unknown ids
	SubName(id string) string
}

// Mirror appends enriched rows to the analytics sink; optional, best effort
type Mirror interface {
	MirrorRows(ctx context.Context, runID string, rows []EnrichedRow) error
}
