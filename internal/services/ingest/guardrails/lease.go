package guardrails

import (
	"context"
	"hash/fnv"

	"deskscope/internal/modkit"
	"deskscope/internal/platform/store"
)

// TableLease serializes the merge-and-save step against the same table.
// do runs inside the transaction that holds the lock, so the table swap
// commits before the lock is released
type TableLease func(ctx context.Context, do func(ctx context.Context, q store.RowQuerier) error) error

// MakeTableLease returns a lease built on a transaction-scoped Postgres
// advisory lock keyed by table name. Concurrent cycles queue up instead of
// clobbering each other's replace; the lock disappears with the transaction
// so crashes never leave it stuck
func MakeTableLease(deps modkit.Deps, table string) TableLease {
	key := leaseKey(table)
	return func(ctx context.Context, do func(ctx context.Context, q store.RowQuerier) error) error {
		return deps.PG.Tx(ctx, func(q store.RowQuerier) error {
			if _, err := q.Exec(ctx, `select pg_advisory_xact_lock($1)`, key); err != nil {
				return err
			}
			return do(ctx, q)
		})
	}
}

func leaseKey(table string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("deskscope:" + table))
	return int64(h.Sum64())
}
