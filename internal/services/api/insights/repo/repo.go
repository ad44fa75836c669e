// Package repo provides postgres access for insights prompts
package repo

import (
	"context"

	"deskscope/internal/modkit/repokit"
)

// Repo is the minimal persistence surface for insights
type Repo interface {
	Descriptions(ctx context.Context, start, end, tag, mainCat string, limit int) ([]string, error)
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

func (r *queries) Descriptions(
	ctx context.Context, start, end, tag, mainCat string, limit int,
) ([]string, error) {
	const sql = `
select description
from tickets
where created_at >= $1::date and created_at < $2::date + 1
and ($3 = '' or company_tag = $3)
and category_main_name = $4
and description <> ''
order by created_at desc
limit $5
`
	rows, err := r.q.Query(ctx, sql, start, end, tag, mainCat, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
