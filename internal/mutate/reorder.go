package mutate

import (
	"stmtforge/internal/model"
)

type ReorderResult struct {
	Statements []model.Statement
	Changed    bool
}

// Reorder removes the statement at oldIndex and reinserts it at newIndex
// (splice-move semantics). This is the entry point for external drag-and-drop
// collaborators; the core has no gesture logic of its own. Out-of-range
// indices are clamped; a same-position move is a no-op.
func Reorder(stmts []model.Statement, oldIndex, newIndex int) ReorderResult {
	if len(stmts) == 0 || oldIndex < 0 || oldIndex >= len(stmts) {
		return ReorderResult{Statements: model.CloneStatements(stmts)}
	}
	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex >= len(stmts) {
		newIndex = len(stmts) - 1
	}
	if oldIndex == newIndex {
		return ReorderResult{Statements: model.CloneStatements(stmts)}
	}

	out := model.CloneStatements(stmts)
	moved := out[oldIndex]
	out = append(out[:oldIndex], out[oldIndex+1:]...)
	out = append(out, model.Statement{})
	copy(out[newIndex+1:], out[newIndex:])
	out[newIndex] = moved
	return ReorderResult{Statements: out, Changed: true}
}
