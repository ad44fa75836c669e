package repo

import (
	"context"
	"time"

	"deskscope/internal/platform/store"
	"deskscope/internal/services/ingest/domain"
)

// Mirror appends enriched rows to ClickHouse for ad-hoc analytics.
// The mirror is append-only and keyed by run, so every cycle leaves a
// queryable snapshot; the Postgres table stays the source of truth
type Mirror struct {
	ch store.Clickhouse
}

// NewMirror wraps the ClickHouse seam; returns nil when ch is nil so callers
// can treat an unconfigured mirror as absent
func NewMirror(ch store.Clickhouse) *Mirror {
	if ch == nil {
		return nil
	}
	return &Mirror{ch: ch}
}

// mirrorTable is the CH target table
const mirrorTable = "ticket_rows"

// MirrorRows appends the batch under runID
func (m *Mirror) MirrorRows(ctx context.Context, runID string, rows []domain.EnrichedRow) error {
	if len(rows) == 0 {
		return nil
	}
	now := time.Now().UTC()
	batch := make([][]any, 0, len(rows))
	for i := range rows {
		er := &rows[i]
		batch = append(batch, []any{
			runID, now,
			er.Key, er.CompanyTag, er.Status, er.StatusCategory, er.Issuetype,
			er.Priority, er.Source, er.WeekLabel, er.CreatedDate,
			nullableString(er.MainCategoryName), er.SubCategoryName,
			er.ResolutionClass, er.ResolutionBucket,
			nullableFloat(er.ResolutionHours), nullableFloat(er.ResolutionDays),
			int32(er.BusinessDaysOpen), er.OrgUnit1, er.OrgUnit2,
		})
	}
	return m.ch.Insert(ctx, mirrorTable, batch)
}

func nullableString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
