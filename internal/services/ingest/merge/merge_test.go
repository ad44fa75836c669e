package merge

import (
	"reflect"
	"testing"

	perr "deskscope/internal/platform/errors"
	"deskscope/internal/services/ingest/domain"
)

func row(key, summary string) domain.EnrichedRow {
	return domain.EnrichedRow{TicketRow: domain.TicketRow{Key: key, Summary: summary}}
}

func keys(t domain.Table) []string {
	out := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, r.Key)
	}
	return out
}

func TestMerge_UpsertSemantics(t *testing.T) {
	t.Parallel()

	old := domain.Table{Rows: []domain.EnrichedRow{
		row("SD-1", "old one"),
		row("SD-2", "old two"),
	}}
	cur := domain.Table{Rows: []domain.EnrichedRow{
		row("SD-2", "new two"),
		row("SD-3", "new three"),
	}}

	got, err := Merge(old, cur)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	if want := []string{"SD-1", "SD-2", "SD-3"}; !reflect.DeepEqual(keys(got), want) {
		t.Fatalf("keys = %v, want %v", keys(got), want)
	}
	if got.Rows[1].Summary != "new two" {
		t.Fatalf("SD-2 not overwritten: %q", got.Rows[1].Summary)
	}
	if got.Rows[0].Summary != "old one" {
		t.Fatalf("SD-1 mutated: %q", got.Rows[0].Summary)
	}
}

func TestMerge_OverwriteWithMissingWins(t *testing.T) {
	t.Parallel()

	oldRow := row("SD-1", "had a summary")
	oldRow.Priority = "High"
	curRow := row("SD-1", "") // batch row with the fields cleared

	got, err := Merge(
		domain.Table{Rows: []domain.EnrichedRow{oldRow}},
		domain.Table{Rows: []domain.EnrichedRow{curRow}},
	)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if got.Rows[0].Summary != "" || got.Rows[0].Priority != "" {
		t.Fatalf("missing fields did not overwrite: %+v", got.Rows[0].TicketRow)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	t.Parallel()

	old := domain.Table{Rows: []domain.EnrichedRow{row("SD-1", "one"), row("SD-2", "two")}}
	batch := domain.Table{Rows: []domain.EnrichedRow{row("SD-2", "two v2")}}

	once, err := Merge(old, batch)
	if err != nil {
		t.Fatalf("first merge: %v", err)
	}
	twice, err := Merge(once, batch)
	if err != nil {
		t.Fatalf("second merge: %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("merge not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestMerge_EmptyInputs(t *testing.T) {
	t.Parallel()

	batch := domain.Table{Rows: []domain.EnrichedRow{row("SD-1", "one")}}

	fromEmpty, err := Merge(domain.Table{}, batch)
	if err != nil {
		t.Fatalf("Merge(empty, batch): %v", err)
	}
	if len(fromEmpty.Rows) != 1 || fromEmpty.Rows[0].Key != "SD-1" {
		t.Fatalf("empty old: %v", keys(fromEmpty))
	}

	intoEmpty, err := Merge(batch, domain.Table{})
	if err != nil {
		t.Fatalf("Merge(batch, empty): %v", err)
	}
	if len(intoEmpty.Rows) != 1 {
		t.Fatalf("empty batch changed table: %v", keys(intoEmpty))
	}
}

func TestMerge_DuplicateKeysRejected(t *testing.T) {
	t.Parallel()

	dup := domain.Table{Rows: []domain.EnrichedRow{row("SD-1", "a"), row("SD-1", "b")}}
	clean := domain.Table{Rows: []domain.EnrichedRow{row("SD-2", "c")}}

	for name, pair := range map[string][2]domain.Table{
		"dup in old":   {dup, clean},
		"dup in batch": {clean, dup},
	} {
		_, err := Merge(pair[0], pair[1])
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if perr.CodeOf(err) != perr.ErrorCodeInvariant {
			t.Fatalf("%s: code = %v, want invariant", name, perr.CodeOf(err))
		}
	}
}

func TestMerge_ExtraColumnUnion(t *testing.T) {
	t.Parallel()

	oldRow := row("SD-1", "one")
	oldRow.Extra = map[string]any{"legacy_flag": true}
	curRow := row("SD-2", "two")
	curRow.Extra = map[string]any{"new_field": "x"}

	got, err := Merge(
		domain.Table{Rows: []domain.EnrichedRow{oldRow}, ExtraColumns: []string{"legacy_flag"}},
		domain.Table{Rows: []domain.EnrichedRow{curRow}, ExtraColumns: []string{"new_field"}},
	)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if want := []string{"legacy_flag", "new_field"}; !reflect.DeepEqual(got.ExtraColumns, want) {
		t.Fatalf("columns = %v, want %v", got.ExtraColumns, want)
	}
	// rows keep their own sparse extras; absent keys mean missing values
	if got.Rows[0].Extra["legacy_flag"] != true || got.Rows[1].Extra["new_field"] != "x" {
		t.Fatalf("extras lost: %+v", got.Rows)
	}
}
