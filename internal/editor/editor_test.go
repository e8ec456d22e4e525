package editor

import (
	"reflect"
	"testing"

	"stmtforge/internal/model"
	"stmtforge/internal/mutate"
	"stmtforge/internal/numbering"
	"stmtforge/internal/store"
)

func newTestEditor() *Editor {
	return New([]model.Statement{
		{ID: "stm-1", Level: 1, Description: "A"},
		{ID: "stm-2", Level: 4, Description: "B shall X", Directive: model.DirectiveShall},
		{ID: "stm-3", Level: 4, Description: "C shall Y", Directive: model.DirectiveShall},
	}, store.EditorConfig{MergeSeparator: "; "})
}

func currentIDs(e *Editor) []string {
	out := make([]string, 0, len(e.Statements()))
	for _, s := range e.Statements() {
		out = append(out, s.ID)
	}
	return out
}

func TestMergeScenario(t *testing.T) {
	e := newTestEditor()
	e.Selection().Add("stm-2", "stm-3")

	survivor, err := e.MergeSelected()
	if err != nil {
		t.Fatalf("MergeSelected error: %v", err)
	}
	if survivor != "stm-2" {
		t.Fatalf("expected survivor stm-2; got %s", survivor)
	}
	stmts := e.Statements()
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements; got %d", len(stmts))
	}
	if stmts[1].Description != "B shall X; C shall Y" || !stmts[1].Modified {
		t.Fatalf("unexpected survivor state: %+v", stmts[1])
	}
	if got := e.Selection().Active(stmts); len(got) != 1 || got[0] != "stm-2" {
		t.Fatalf("selection should collapse to survivor; got %v", got)
	}
}

func TestUndoRedoCancellation(t *testing.T) {
	e := newTestEditor()
	e.Selection().Add("stm-2", "stm-3")
	if _, err := e.MergeSelected(); err != nil {
		t.Fatalf("merge: %v", err)
	}
	after := model.CloneStatements(e.Statements())

	if !e.Undo() {
		t.Fatalf("expected undo")
	}
	if len(e.Statements()) != 3 {
		t.Fatalf("undo did not restore; got %d statements", len(e.Statements()))
	}
	if !e.Redo() {
		t.Fatalf("expected redo")
	}
	if !reflect.DeepEqual(after, e.Statements()) {
		t.Fatalf("undo();redo() must restore the post-op state\nwant %+v\ngot  %+v", after, e.Statements())
	}
}

func TestRedoInvalidatedByNewMutation(t *testing.T) {
	e := newTestEditor()
	e.Selection().Add("stm-3")
	if !e.IndentSelected() { // 4 -> 5
		t.Fatalf("expected indent change")
	}
	if !e.Undo() {
		t.Fatalf("expected undo")
	}
	if _, err := e.Add("new one", "", 4); err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.Redo() {
		t.Fatalf("redo after a new mutation must be a no-op")
	}
}

func TestNoSnapshotForNoOps(t *testing.T) {
	e := newTestEditor()

	// Outdent at the minimum level changes nothing and pushes nothing.
	e.Selection().Add("stm-1")
	if e.OutdentSelected() {
		t.Fatalf("outdent at level 1 must be a no-op")
	}
	if e.UndoDepth() != 0 {
		t.Fatalf("no-op pushed a snapshot")
	}

	// Failed merge leaves collection and history untouched.
	e.Selection().Clear()
	e.Selection().Add("stm-2")
	if _, err := e.MergeSelected(); err != mutate.ErrMergeTooFew {
		t.Fatalf("expected ErrMergeTooFew; got %v", err)
	}
	if e.UndoDepth() != 0 || len(e.Statements()) != 3 {
		t.Fatalf("failed merge mutated state")
	}

	// Split with no delimiter match: named failure, nothing pushed.
	if _, err := e.SplitSelected(); err != mutate.ErrNoSplit {
		t.Fatalf("expected ErrNoSplit; got %v", err)
	}
	if e.UndoDepth() != 0 {
		t.Fatalf("failed split pushed a snapshot")
	}

	// Move at the boundary.
	e.Selection().Clear()
	e.Selection().Add("stm-1")
	if e.MoveSelectedUp() {
		t.Fatalf("move up at top must be a no-op")
	}
	if e.UndoDepth() != 0 {
		t.Fatalf("boundary move pushed a snapshot")
	}
}

func TestSplitRequiresExactlyOneSelected(t *testing.T) {
	e := newTestEditor()
	if _, err := e.SplitSelected(); err != mutate.ErrSplitSelection {
		t.Fatalf("expected ErrSplitSelection with empty selection; got %v", err)
	}
	e.Selection().Add("stm-2", "stm-3")
	if _, err := e.SplitSelected(); err != mutate.ErrSplitSelection {
		t.Fatalf("expected ErrSplitSelection with two selected; got %v", err)
	}
}

func TestIDUniquenessAcrossUndoRedo(t *testing.T) {
	e := New([]model.Statement{
		{ID: "stm-1", Description: "a; b", Number: "1"},
	}, store.EditorConfig{SplitDelimiter: ";"})

	e.Selection().Add("stm-1")
	newIDs, err := e.SplitSelected()
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if !e.Undo() {
		t.Fatalf("expected undo")
	}
	// After undo the split ids are historical; a fresh add must not reuse
	// them, and the whole collection stays pairwise distinct.
	added, err := e.Add("fresh", "", 4)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	for _, old := range newIDs {
		if added.ID == old {
			t.Fatalf("historical id reused: %s", old)
		}
	}
	seen := map[string]bool{}
	for _, id := range currentIDs(e) {
		if seen[id] {
			t.Fatalf("duplicate id in collection: %s", id)
		}
		seen[id] = true
	}
}

func TestSelectionSurvivesFilterChanges(t *testing.T) {
	e := newTestEditor()
	// Select everything visible under the "shall" filter, then change the
	// filter: previously selected ids outside the new filter must stay
	// selected in the full collection.
	visible := e.Display("shall", "")
	if len(visible) != 2 {
		t.Fatalf("shall filter rows: %v", visible)
	}
	e.Selection().SelectAllVisible(visible)
	got := e.Selection().Active(e.Statements())
	if len(got) != 2 {
		t.Fatalf("expected 2 selected; got %v", got)
	}
	_ = e.Display("process", "")
	got = e.Selection().Active(e.Statements())
	if len(got) != 2 {
		t.Fatalf("filter change dropped selection: %v", got)
	}
}

func TestRenumberSelectedScope(t *testing.T) {
	e := newTestEditor()
	e.Selection().Add("stm-2", "stm-3")
	if !e.Renumber(true, "1", numbering.StrategySequential) {
		t.Fatalf("expected renumber change")
	}
	stmts := e.Statements()
	if stmts[0].Number != "" {
		t.Fatalf("out-of-scope statement renumbered: %q", stmts[0].Number)
	}
	if stmts[1].Number != "1.1" || stmts[2].Number != "1.2" {
		t.Fatalf("unexpected numbers: %q %q", stmts[1].Number, stmts[2].Number)
	}
	// Renumbering to identical numbers is a no-op with no snapshot.
	depth := e.UndoDepth()
	if e.Renumber(true, "1", numbering.StrategySequential) {
		t.Fatalf("identical renumber must report no change")
	}
	if e.UndoDepth() != depth {
		t.Fatalf("identical renumber pushed a snapshot")
	}
}

func TestAddAfterSingleSelection(t *testing.T) {
	e := newTestEditor()
	e.Selection().Add("stm-1")
	added, err := e.Add("inserted", "Operator", 5)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := currentIDs(e)[1]; got != added.ID {
		t.Fatalf("expected insert after stm-1; order %v", currentIDs(e))
	}
	// With no single selection, add appends.
	e.Selection().Clear()
	tail, err := e.Add("appended", "", 4)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	ids := currentIDs(e)
	if ids[len(ids)-1] != tail.ID {
		t.Fatalf("expected append; order %v", ids)
	}
	if tail.Source != model.SourceManual {
		t.Fatalf("expected manual source; got %q", tail.Source)
	}
}

func TestDeleteSelectedPrunesSelection(t *testing.T) {
	e := newTestEditor()
	e.Selection().Add("stm-2")
	if n := e.DeleteSelected(); n != 1 {
		t.Fatalf("expected 1 removed; got %d", n)
	}
	if e.Selection().Has("stm-2") {
		t.Fatalf("deleted id left in selection")
	}
	if len(e.Statements()) != 2 {
		t.Fatalf("expected 2 statements")
	}
	// Undo restores both the statement and the selection it had.
	if !e.Undo() {
		t.Fatalf("expected undo")
	}
	if len(e.Statements()) != 3 || !e.Selection().Has("stm-2") {
		t.Fatalf("undo did not restore selection")
	}
}
