// Package repo provides postgres access for the persisted ticket table and
// the ingest run ledger
package repo

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"time"

	"deskscope/internal/modkit/repokit"
	"deskscope/internal/platform/store"
	"deskscope/internal/services/ingest/domain"
)

type (
	// PG is a Postgres binder for domain.StorageRepo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a Postgres binder for domain.StorageRepo
func NewPG() repokit.Binder[domain.StorageRepo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.StorageRepo { return &queries{q: q} }

// ticketColumns is the full persisted column list in insert order
const ticketColumns = `
	key, company_tag, summary, description, status, status_category,
	issuetype, priority, created_at, updated_at, labels, source,
	category_main_id, category_sub_id, category_main_name, category_sub_name,
	current_substatus, current_substatus_at, comments, request_type,
	clone_of, cloned_by, org_unit_1, org_unit_2, link,
	week_number, week_label, created_date, updated_date, year, month,
	business_days_open, resolution_hours, resolution_days,
	resolution_class, resolution_bucket, extras`

// LoadTable reads the whole persisted table. ok reports whether a table was
// ever saved; an empty but saved table still returns ok
func (r *queries) LoadTable(ctx context.Context) (domain.Table, bool, error) {
	saved, err := store.Scalar[bool](ctx, r.q, `select exists (select 1 from ticket_table_meta)`)
	if err != nil {
		return domain.Table{}, false, err
	}
	if !saved {
		return domain.Table{}, false, nil
	}

	rows, err := r.q.Query(ctx, `select`+ticketColumns+` from tickets order by created_at nulls last, key`)
	if err != nil {
		return domain.Table{}, false, err
	}
	defer rows.Close()

	t := domain.Table{}
	colSet := map[string]struct{}{}
	for rows.Next() {
		er, err := scanTicket(rows)
		if err != nil {
			return domain.Table{}, false, err
		}
		for c := range er.Extra {
			colSet[c] = struct{}{}
		}
		t.Rows = append(t.Rows, er)
	}
	if err := rows.Err(); err != nil {
		return domain.Table{}, false, err
	}
	for c := range colSet {
		t.ExtraColumns = append(t.ExtraColumns, c)
	}
	sort.Strings(t.ExtraColumns)
	return t, true, nil
}

// ReplaceTable swaps the persisted table for t. The caller is expected to run
// this inside one transaction (the service does, under the table lease) so
// readers never observe the gap between delete and insert
func (r *queries) ReplaceTable(ctx context.Context, t domain.Table) error {
	if _, err := r.q.Exec(ctx, `delete from tickets`); err != nil {
		return err
	}
	const insertSQL = `insert into tickets (` + ticketColumns + `) values (
		$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,
		$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34,$35,$36,$37)`
	for i := range t.Rows {
		args, err := ticketArgs(&t.Rows[i])
		if err != nil {
			return err
		}
		if _, err := r.q.Exec(ctx, insertSQL, args...); err != nil {
			return err
		}
	}
	_, err := r.q.Exec(ctx, `
		insert into ticket_table_meta (id, saved_at, row_count)
		values (1, now(), $1)
		on conflict (id) do update set saved_at = now(), row_count = $1
	`, len(t.Rows))
	return err
}

// StartRun opens a run ledger entry (idempotent on rerun of the same id)
func (r *queries) StartRun(ctx context.Context, runID string, windowStart, windowEnd time.Time) error {
	_, err := r.q.Exec(ctx, `
		insert into ingest_runs (run_id, window_start, window_end, started_at, status)
		values ($1, $2, $3, now(), 'running')
		on conflict (run_id) do update
		set started_at = now(), status = 'running', error = null, finished_at = null
	`, runID, windowStart.UTC(), windowEnd.UTC())
	return err
}

// FinishRun closes a run ledger entry
func (r *queries) FinishRun(ctx context.Context, runID string, fin domain.RunFinish) error {
	_, err := r.q.Exec(ctx, `
		update ingest_runs set
			finished_at = now(),
			status = $2,
			fetched = $3,
			extracted = $4,
			merged = $5,
			saved = $6,
			fetch_ms = $7,
			derive_ms = $8,
			db_ms = $9,
			elapsed_ms = $10,
			error = nullif($11, '')
		where run_id = $1
	`,
		runID, fin.Status, fin.Fetched, fin.Extracted, fin.Merged, fin.Saved,
		fin.FetchMS, fin.DeriveMS, fin.DBMS, fin.ElapsedMS, fin.ErrText,
	)
	return err
}

// ticketArgs flattens a row into the insert argument list.
// NaN floats persist as SQL null so the database never sees NaN
func ticketArgs(er *domain.EnrichedRow) ([]any, error) {
	extras, err := marshalExtras(er.Extra)
	if err != nil {
		return nil, err
	}
	return []any{
		er.Key, er.CompanyTag, er.Summary, er.Description, er.Status, er.StatusCategory,
		er.Issuetype, er.Priority, er.Created, er.Updated, er.Labels, er.Source,
		er.MainCategoryID, er.SubCategoryID, er.MainCategoryName, er.SubCategoryName,
		er.CurrentSubstatus, er.CurrentSubstatusDate, er.Comments, er.RequestType,
		er.CloneOf, er.ClonedBy, er.OrgUnit1, er.OrgUnit2, er.Link,
		er.WeekNumber, er.WeekLabel, er.CreatedDate, er.UpdatedDate, er.Year, er.Month,
		er.BusinessDaysOpen, nullableFloat(er.ResolutionHours), nullableFloat(er.ResolutionDays),
		er.ResolutionClass, er.ResolutionBucket, extras,
	}, nil
}

func scanTicket(rows interface{ Scan(dest ...any) error }) (domain.EnrichedRow, error) {
	var er domain.EnrichedRow
	var hours, days *float64
	var extras []byte
	err := rows.Scan(
		&er.Key, &er.CompanyTag, &er.Summary, &er.Description, &er.Status, &er.StatusCategory,
		&er.Issuetype, &er.Priority, &er.Created, &er.Updated, &er.Labels, &er.Source,
		&er.MainCategoryID, &er.SubCategoryID, &er.MainCategoryName, &er.SubCategoryName,
		&er.CurrentSubstatus, &er.CurrentSubstatusDate, &er.Comments, &er.RequestType,
		&er.CloneOf, &er.ClonedBy, &er.OrgUnit1, &er.OrgUnit2, &er.Link,
		&er.WeekNumber, &er.WeekLabel, &er.CreatedDate, &er.UpdatedDate, &er.Year, &er.Month,
		&er.BusinessDaysOpen, &hours, &days,
		&er.ResolutionClass, &er.ResolutionBucket, &extras,
	)
	if err != nil {
		return domain.EnrichedRow{}, err
	}
	er.ResolutionHours = floatOrNaN(hours)
	er.ResolutionDays = floatOrNaN(days)
	if len(extras) > 0 {
		if err := json.Unmarshal(extras, &er.Extra); err != nil {
			return domain.EnrichedRow{}, err
		}
	}
	if er.Labels == nil {
		er.Labels = []string{}
	}
	return er, nil
}

func marshalExtras(m map[string]any) ([]byte, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

func nullableFloat(f float64) *float64 {
	if math.IsNaN(f) {
		return nil
	}
	return &f
}

func floatOrNaN(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}
