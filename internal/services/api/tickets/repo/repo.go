// Package repo provides postgres access for the tickets read API
package repo

import (
	"context"
	"time"

	"deskscope/internal/modkit/repokit"
)

// Repo is the minimal persistence surface for ticket reads.
// All windows are [start, end] in whole days UTC on the creation timestamp
type Repo interface {
	Query(ctx context.Context, start, end, tag, source, status, mainCat string, limit int) ([]RowTicket, error)
	Weekly(ctx context.Context, start, end, tag string) ([]RowWeekly, error)
	Categories(ctx context.Context, start, end, tag string) ([]RowCategory, error)
	Sources(ctx context.Context, start, end, tag string) ([]RowSource, error)
	OpenByStatus(ctx context.Context, start, end, tag, doneCategory string) ([]RowStatus, error)
	Resolution(ctx context.Context, start, end, tag string) ([]RowResolution, error)
	Orgs(ctx context.Context, start, end, tag string, level int) ([]RowOrg, error)
}

// RowTicket is one enriched ticket row
type RowTicket struct {
	Key              string
	CompanyTag       string
	Summary          string
	Status           string
	StatusCategory   string
	Priority         string
	Created          *time.Time
	Updated          *time.Time
	Source           string
	RequestType      string
	MainCategory     *string
	SubCategory      string
	OrgUnit1         string
	OrgUnit2         string
	WeekLabel        string
	BusinessDaysOpen int
	ResolutionHours  *float64
	ResolutionClass  string
	ResolutionBucket string
	Link             string
}

// RowWeekly is one ISO week bucket
type RowWeekly struct {
	WeekLabel string
	Tickets   int64
}

// RowCategory is one main/sub category bucket
type RowCategory struct {
	Main    *string
	Sub     string
	Tickets int64
}

// RowSource is one intake channel bucket
type RowSource struct {
	Source  string
	Tickets int64
}

// RowStatus is one open-status bucket
type RowStatus struct {
	StatusCategory string
	Status         string
	Tickets        int64
}

// RowResolution is one week of same-day counts
type RowResolution struct {
	WeekLabel string
	SameDay   int64
	Total     int64
}

// RowOrg is one org unit bucket
type RowOrg struct {
	OrgUnit string
	Tickets int64
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// windowClause keeps both days inclusive without casting created_at per row
const windowClause = `created_at >= $1::date and created_at < $2::date + 1`

func (r *queries) Query(
	ctx context.Context, start, end, tag, source, status, mainCat string, limit int,
) ([]RowTicket, error) {
	const sql = `
select key, company_tag, summary, status, status_category, priority,
	created_at, updated_at, source, request_type,
	category_main_name, category_sub_name, org_unit_1, org_unit_2,
	week_label, business_days_open, resolution_hours,
	resolution_class, resolution_bucket, link
from tickets
where ` + windowClause + `
and ($3 = '' or company_tag = $3)
and ($4 = '' or source = $4)
and ($5 = '' or status = $5)
and ($6 = '' or category_main_name = $6)
order by created_at desc, key
limit $7
`
	rows, err := r.q.Query(ctx, sql, start, end, tag, source, status, mainCat, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RowTicket
	for rows.Next() {
		var rr RowTicket
		if err := rows.Scan(
			&rr.Key, &rr.CompanyTag, &rr.Summary, &rr.Status, &rr.StatusCategory, &rr.Priority,
			&rr.Created, &rr.Updated, &rr.Source, &rr.RequestType,
			&rr.MainCategory, &rr.SubCategory, &rr.OrgUnit1, &rr.OrgUnit2,
			&rr.WeekLabel, &rr.BusinessDaysOpen, &rr.ResolutionHours,
			&rr.ResolutionClass, &rr.ResolutionBucket, &rr.Link,
		); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *queries) Weekly(ctx context.Context, start, end, tag string) ([]RowWeekly, error) {
	const sql = `
select week_label, count(1) as tickets
from tickets
where ` + windowClause + `
and ($3 = '' or company_tag = $3)
and week_label <> ''
group by week_label
order by week_label asc
`
	rows, err := r.q.Query(ctx, sql, start, end, tag)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RowWeekly
	for rows.Next() {
		var rr RowWeekly
		if err := rows.Scan(&rr.WeekLabel, &rr.Tickets); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *queries) Categories(ctx context.Context, start, end, tag string) ([]RowCategory, error) {
	const sql = `
select category_main_name, category_sub_name, count(1) as tickets
from tickets
where ` + windowClause + `
and ($3 = '' or company_tag = $3)
group by category_main_name, category_sub_name
order by tickets desc, category_sub_name asc
`
	rows, err := r.q.Query(ctx, sql, start, end, tag)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RowCategory
	for rows.Next() {
		var rr RowCategory
		if err := rows.Scan(&rr.Main, &rr.Sub, &rr.Tickets); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *queries) Sources(ctx context.Context, start, end, tag string) ([]RowSource, error) {
	const sql = `
select source, count(1) as tickets
from tickets
where ` + windowClause + `
and ($3 = '' or company_tag = $3)
group by source
order by tickets desc, source asc
`
	rows, err := r.q.Query(ctx, sql, start, end, tag)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RowSource
	for rows.Next() {
		var rr RowSource
		if err := rows.Scan(&rr.Source, &rr.Tickets); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *queries) OpenByStatus(ctx context.Context, start, end, tag, doneCategory string) ([]RowStatus, error) {
	const sql = `
select status_category, status, count(1) as tickets
from tickets
where ` + windowClause + `
and ($3 = '' or company_tag = $3)
and status_category <> $4
group by status_category, status
order by tickets desc, status asc
`
	rows, err := r.q.Query(ctx, sql, start, end, tag, doneCategory)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RowStatus
	for rows.Next() {
		var rr RowStatus
		if err := rows.Scan(&rr.StatusCategory, &rr.Status, &rr.Tickets); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *queries) Resolution(ctx context.Context, start, end, tag string) ([]RowResolution, error) {
	const sql = `
select week_label,
	count(1) filter (where resolution_class = 'Same day') as same_day,
	count(1) as total
from tickets
where ` + windowClause + `
and ($3 = '' or company_tag = $3)
and week_label <> ''
group by week_label
order by week_label asc
`
	rows, err := r.q.Query(ctx, sql, start, end, tag)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RowResolution
	for rows.Next() {
		var rr RowResolution
		if err := rows.Scan(&rr.WeekLabel, &rr.SameDay, &rr.Total); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *queries) Orgs(ctx context.Context, start, end, tag string, level int) ([]RowOrg, error) {
	col := "org_unit_1"
	if level == 2 {
		col = "org_unit_2"
	}
	sql := `
select ` + col + ` as org_unit, count(1) as tickets
from tickets
where ` + windowClause + `
and ($3 = '' or company_tag = $3)
and ` + col + ` <> ''
group by ` + col + `
order by tickets desc, org_unit asc
`
	rows, err := r.q.Query(ctx, sql, start, end, tag)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RowOrg
	for rows.Next() {
		var rr RowOrg
		if err := rows.Scan(&rr.OrgUnit, &rr.Tickets); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}
