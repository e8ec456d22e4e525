// Package editor owns one editing session: the ordered statement collection,
// the selection, and the undo/redo history. All state lives on the Editor
// instance (no package-level variables), so multiple independent editors can
// coexist and tests need no global reset.
package editor

import (
	"strings"
	"time"

	"stmtforge/internal/history"
	"stmtforge/internal/model"
	"stmtforge/internal/mutate"
	"stmtforge/internal/numbering"
	"stmtforge/internal/selection"
	"stmtforge/internal/store"
	"stmtforge/internal/view"
)

type Editor struct {
	stmts []model.Statement
	sel   *selection.Set
	hist  history.Stack
	cfg   store.EditorConfig

	// minted tracks every id seen this session, including ids that undo has
	// removed from the collection: fresh ids must not collide with
	// historical ones either.
	minted map[string]bool
}

func New(stmts []model.Statement, cfg store.EditorConfig) *Editor {
	e := &Editor{
		stmts:  model.CloneStatements(stmts),
		sel:    selection.New(),
		cfg:    cfg,
		minted: map[string]bool{},
	}
	for _, s := range e.stmts {
		e.minted[s.ID] = true
	}
	return e
}

func (e *Editor) Statements() []model.Statement { return e.stmts }
func (e *Editor) Selection() *selection.Set     { return e.sel }
func (e *Editor) Config() store.EditorConfig    { return e.cfg }

// Display projects the current collection through the view filter.
func (e *Editor) Display(filterTag, searchText string) []model.Statement {
	return view.Display(e.stmts, filterTag, searchText)
}

func (e *Editor) UndoDepth() int { return e.hist.UndoDepth() }
func (e *Editor) RedoDepth() int { return e.hist.RedoDepth() }

func (e *Editor) mintID() (string, error) {
	for i := 0; i < 10; i++ {
		id, err := store.NewID()
		if err != nil {
			return "", err
		}
		if !e.minted[id] {
			e.minted[id] = true
			return id, nil
		}
	}
	return "", errIDSpace
}

// snapshot captures the pre-mutation state; commit pushes it only when the
// operation actually changed something, so no-op operations never produce an
// empty undo point.
func (e *Editor) snapshot(description string) history.Snapshot {
	return history.Capture(e.stmts, e.sel.Snapshot(), description)
}

func (e *Editor) commit(pre history.Snapshot, next []model.Statement) {
	e.hist.Push(pre)
	e.stmts = next
}

// Add inserts a new manual statement. When exactly one statement is selected
// it goes immediately after it; otherwise it is appended at the end.
func (e *Editor) Add(description, role string, level int) (model.Statement, error) {
	id, err := e.mintID()
	if err != nil {
		return model.Statement{}, err
	}
	afterID := ""
	if active := e.sel.Active(e.stmts); len(active) == 1 {
		afterID = active[0]
	}
	now := time.Now().UTC()
	stmt := model.Statement{
		ID:          id,
		Description: description,
		Directive:   model.DetectDirective(description),
		Role:        strings.TrimSpace(role),
		Level:       model.ClampLevel(level),
		Source:      model.SourceManual,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	pre := e.snapshot("add statement")
	res := mutate.Add(e.stmts, afterID, stmt)
	e.commit(pre, res.Statements)
	return res.Added, nil
}

// DeleteSelected removes every selected statement and drops their ids from
// the selection.
func (e *Editor) DeleteSelected() int {
	ids := e.sel.Active(e.stmts)
	pre := e.snapshot("delete statements")
	res := mutate.Delete(e.stmts, ids)
	if !res.Changed {
		return 0
	}
	e.commit(pre, res.Statements)
	e.sel.Remove(ids...)
	return res.Removed
}

// MergeSelected joins the selected statements using the configured separator.
// Selection collapses to the surviving statement.
func (e *Editor) MergeSelected() (string, error) {
	ids := e.sel.Active(e.stmts)
	pre := e.snapshot("merge statements")
	res, err := mutate.Merge(e.stmts, ids, e.cfg.Separator())
	if err != nil {
		return "", err
	}
	e.commit(pre, res.Statements)
	e.sel.Clear()
	e.sel.Add(res.SurvivorID)
	return res.SurvivorID, nil
}

// SplitSelected splits the single selected statement on the configured
// delimiter. Selection is cleared afterwards.
func (e *Editor) SplitSelected() ([]string, error) {
	ids := e.sel.Active(e.stmts)
	if len(ids) != 1 {
		return nil, mutate.ErrSplitSelection
	}
	pre := e.snapshot("split statement")
	var mintErr error
	mint := func() string {
		id, err := e.mintID()
		if err != nil {
			mintErr = err
		}
		return id
	}
	res, err := mutate.Split(e.stmts, ids[0], e.cfg.Delimiter(), mint)
	if err != nil {
		return nil, err
	}
	if mintErr != nil {
		return nil, mintErr
	}
	e.commit(pre, res.Statements)
	e.sel.Clear()
	return res.NewIDs, nil
}

func (e *Editor) IndentSelected() bool {
	return e.shiftSelected("indent statements", mutate.Indent)
}

func (e *Editor) OutdentSelected() bool {
	return e.shiftSelected("outdent statements", mutate.Outdent)
}

func (e *Editor) shiftSelected(desc string, op func([]model.Statement, []string) mutate.IndentResult) bool {
	pre := e.snapshot(desc)
	res := op(e.stmts, e.sel.Active(e.stmts))
	if !res.Changed {
		return false
	}
	e.commit(pre, res.Statements)
	return true
}

func (e *Editor) MoveSelectedUp() bool {
	return e.moveSelected("move statements up", mutate.MoveUp)
}

func (e *Editor) MoveSelectedDown() bool {
	return e.moveSelected("move statements down", mutate.MoveDown)
}

func (e *Editor) moveSelected(desc string, op func([]model.Statement, []string) mutate.MoveResult) bool {
	pre := e.snapshot(desc)
	res := op(e.stmts, e.sel.Active(e.stmts))
	if !res.Changed {
		return false
	}
	e.commit(pre, res.Statements)
	return true
}

// Reorder applies an (oldIndex, newIndex) pair from an external drag
// collaborator.
func (e *Editor) Reorder(oldIndex, newIndex int) bool {
	pre := e.snapshot("reorder statement")
	res := mutate.Reorder(e.stmts, oldIndex, newIndex)
	if !res.Changed {
		return false
	}
	e.commit(pre, res.Statements)
	return true
}

// Renumber assigns new numbers to all statements, or to the selection only.
func (e *Editor) Renumber(selectedOnly bool, base string, strategy numbering.Strategy) bool {
	var scope map[string]bool
	if selectedOnly {
		scope = map[string]bool{}
		for _, id := range e.sel.Active(e.stmts) {
			scope[id] = true
		}
	}
	pre := e.snapshot("renumber statements")
	next := numbering.Renumber(e.stmts, scope, base, strategy)
	if !numbersDiffer(e.stmts, next) {
		return false
	}
	e.commit(pre, next)
	return true
}

func numbersDiffer(a, b []model.Statement) bool {
	for i := range a {
		if a[i].Number != b[i].Number {
			return true
		}
	}
	return false
}

// SetDescription edits a statement's body, re-deriving its directive.
func (e *Editor) SetDescription(id, text string) error {
	pre := e.snapshot("edit description")
	res, err := mutate.SetDescription(e.stmts, id, text)
	if err != nil {
		return err
	}
	if res.Changed {
		e.commit(pre, res.Statements)
	}
	return nil
}

func (e *Editor) SetRole(id, role string) error {
	pre := e.snapshot("set role")
	res, err := mutate.SetRole(e.stmts, id, role)
	if err != nil {
		return err
	}
	if res.Changed {
		e.commit(pre, res.Statements)
	}
	return nil
}

// Undo restores the most recent undo point; reports false when there is
// nothing to undo.
func (e *Editor) Undo() bool {
	snap, ok := e.hist.Undo(e.snapshot("current"))
	if !ok {
		return false
	}
	e.restore(snap)
	return true
}

func (e *Editor) Redo() bool {
	snap, ok := e.hist.Redo(e.snapshot("current"))
	if !ok {
		return false
	}
	e.restore(snap)
	return true
}

func (e *Editor) restore(snap history.Snapshot) {
	e.stmts = model.CloneStatements(snap.Statements)
	e.sel.Replace(snap.Selection)
}

// LastOperation names the operation Undo would revert, for status lines.
func (e *Editor) LastOperation() (string, bool) {
	return e.hist.PeekUndoDescription()
}
