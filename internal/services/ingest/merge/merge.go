// Package merge implements the keyed upsert between the persisted ticket
// table and a freshly ingested batch
package merge

import (
	"sort"

	perr "deskscope/internal/platform/errors"
	"deskscope/internal/services/ingest/domain"
)

// Merge aligns both tables to the union of their extra columns, then upserts
// cur into old by ticket key: keys in both take cur's row wholesale (last
// write wins per field, including fields cur left empty), keys only in cur
// are appended, keys only in old are kept.
//
// Duplicate keys inside a single input are a caller bug and abort the merge
// before anything is combined
func Merge(old, cur domain.Table) (domain.Table, error) {
	oldIdx, err := indexByKey("existing table", old.Rows)
	if err != nil {
		return domain.Table{}, err
	}
	curIdx, err := indexByKey("incoming batch", cur.Rows)
	if err != nil {
		return domain.Table{}, err
	}

	out := domain.Table{
		Rows:         make([]domain.EnrichedRow, 0, len(old.Rows)+len(cur.Rows)),
		ExtraColumns: unionColumns(old.ExtraColumns, cur.ExtraColumns),
	}

	// old order first, replaced in place where the batch has the key
	for _, row := range old.Rows {
		if j, ok := curIdx[row.Key]; ok {
			out.Rows = append(out.Rows, cur.Rows[j])
			continue
		}
		out.Rows = append(out.Rows, row)
	}

	// then batch-only keys in batch order
	for _, row := range cur.Rows {
		if _, ok := oldIdx[row.Key]; ok {
			continue
		}
		out.Rows = append(out.Rows, row)
	}

	return out, nil
}

// indexByKey builds key -> position and rejects duplicates
func indexByKey(which string, rows []domain.EnrichedRow) (map[string]int, error) {
	idx := make(map[string]int, len(rows))
	for i, r := range rows {
		if _, dup := idx[r.Key]; dup {
			return nil, perr.Invariantf("duplicate key %q in %s", r.Key, which)
		}
		idx[r.Key] = i
	}
	return idx, nil
}

// unionColumns merges two sorted-or-not column name sets into a sorted union
func unionColumns(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(a)+len(b))
	var out []string
	for _, lists := range [][]string{a, b} {
		for _, c := range lists {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}
