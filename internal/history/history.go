// Package history implements the snapshot-based undo/redo stacks. Snapshots
// are full deep copies of the collection plus the selection at the time they
// were taken; they must never alias live statements, or a later in-place edit
// would corrupt history.
package history

import (
	"time"

	"stmtforge/internal/model"
)

// MaxDepth caps the undo stack; the oldest snapshot is dropped on overflow.
const MaxDepth = 100

type Snapshot struct {
	Statements  []model.Statement
	Selection   map[string]bool
	Description string
	Timestamp   time.Time
}

// Capture deep-copies the given state into a snapshot.
func Capture(stmts []model.Statement, selection map[string]bool, description string) Snapshot {
	sel := make(map[string]bool, len(selection))
	for id, ok := range selection {
		if ok {
			sel[id] = true
		}
	}
	return Snapshot{
		Statements:  model.CloneStatements(stmts),
		Selection:   sel,
		Description: description,
		Timestamp:   time.Now().UTC(),
	}
}

// Stack is a linear-history undo/redo pair. Any push discards the redo stack;
// there is no branching timeline. The zero value is ready to use.
type Stack struct {
	undo []Snapshot
	redo []Snapshot
}

// Push records a pre-mutation snapshot as the new undo point and clears redo.
func (h *Stack) Push(snap Snapshot) {
	h.undo = append(h.undo, snap)
	if len(h.undo) > MaxDepth {
		h.undo = append(h.undo[:0], h.undo[len(h.undo)-MaxDepth:]...)
	}
	h.redo = h.redo[:0]
}

// Undo exchanges the current state for the most recent undo point. The
// returned snapshot is what the caller should restore. ok is false on an
// empty stack (a no-op, not an error).
func (h *Stack) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.undo) == 0 {
		return Snapshot{}, false
	}
	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)
	return top, true
}

// Redo is symmetric to Undo.
func (h *Stack) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.redo) == 0 {
		return Snapshot{}, false
	}
	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current)
	return top, true
}

func (h *Stack) UndoDepth() int { return len(h.undo) }
func (h *Stack) RedoDepth() int { return len(h.redo) }

// PeekUndoDescription reports the label of the operation that Undo would
// revert, for status lines.
func (h *Stack) PeekUndoDescription() (string, bool) {
	if len(h.undo) == 0 {
		return "", false
	}
	return h.undo[len(h.undo)-1].Description, true
}
