package roles

import (
	"context"
	"testing"

	"stmtforge/internal/model"
)

func TestAnnotate_CaseInsensitiveLinking(t *testing.T) {
	dict := NewMemoryDictionary("Operator", "Inspector")
	snapshot := []model.Statement{
		{ID: "stm-1", Role: "operator"},
		{ID: "stm-2", Role: "OPERATOR"},
		{ID: "stm-3", Role: "Welder"},
		{ID: "stm-4"}, // no role, no annotation
	}
	anns, err := Annotate(context.Background(), snapshot, dict)
	if err != nil {
		t.Fatalf("Annotate error: %v", err)
	}
	if len(anns) != 3 {
		t.Fatalf("expected 3 annotations; got %d", len(anns))
	}
	if anns[0].Status != Linked || anns[1].Status != Linked {
		t.Fatalf("expected case-insensitive link: %+v", anns)
	}
	if anns[2].Status != Unlinked {
		t.Fatalf("expected Welder unlinked")
	}
}

func TestMergeByID_DropsDeletedStatements(t *testing.T) {
	anns := []Annotation{
		{StatementID: "stm-1", Role: "Operator", Status: Linked},
		{StatementID: "stm-2", Role: "Welder", Status: Unlinked},
	}
	// stm-2 was deleted while the dictionary call was in flight.
	live := []model.Statement{{ID: "stm-1"}, {ID: "stm-9"}}
	got := MergeByID(live, anns)
	if len(got) != 1 {
		t.Fatalf("expected stale annotation dropped; got %v", got)
	}
	if got["stm-1"] != Linked {
		t.Fatalf("expected stm-1 linked; got %v", got)
	}
}

func TestSyncBack_AdditiveWithEvidence(t *testing.T) {
	ctx := context.Background()
	dict := NewMemoryDictionary("Operator")
	snapshot := []model.Statement{
		{ID: "stm-1", Role: "Welder"},
		{ID: "stm-2", Role: "welder"}, // duplicate under case folding
		{ID: "stm-3", Role: "Operator"},
	}
	added, err := SyncBack(ctx, snapshot, dict)
	if err != nil {
		t.Fatalf("SyncBack error: %v", err)
	}
	if len(added) != 1 || added[0] != "Welder" {
		t.Fatalf("expected [Welder]; got %v", added)
	}
	entries, err := dict.Roles(ctx)
	if err != nil {
		t.Fatalf("Roles error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries; got %v", entries)
	}
	// Evidence points at the first statement that used the role.
	for _, e := range entries {
		if e.Name == "Welder" && e.Evidence != "stm-1" {
			t.Fatalf("expected evidence stm-1; got %q", e.Evidence)
		}
	}
	// Idempotent: a second sync adds nothing.
	added, err = SyncBack(ctx, snapshot, dict)
	if err != nil || len(added) != 0 {
		t.Fatalf("expected idempotent sync; got %v %v", added, err)
	}
}

func TestSQLiteDictionary(t *testing.T) {
	ctx := context.Background()
	dict, err := OpenSQLite(ctx, t.TempDir()+"/roles.sqlite")
	if err != nil {
		t.Fatalf("OpenSQLite error: %v", err)
	}
	defer dict.Close()

	if err := dict.AddRole(ctx, "Operator", "stm-1"); err != nil {
		t.Fatalf("AddRole error: %v", err)
	}
	// Re-adding under different casing is a no-op, not an overwrite.
	if err := dict.AddRole(ctx, "OPERATOR", "stm-2"); err != nil {
		t.Fatalf("AddRole dup error: %v", err)
	}
	ok, err := dict.Contains(ctx, "operator")
	if err != nil || !ok {
		t.Fatalf("expected case-insensitive contains; got %v %v", ok, err)
	}
	ok, err = dict.Contains(ctx, "Ghost")
	if err != nil || ok {
		t.Fatalf("expected Ghost absent; got %v %v", ok, err)
	}
	entries, err := dict.Roles(ctx)
	if err != nil {
		t.Fatalf("Roles error: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Operator" || entries[0].Evidence != "stm-1" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}
