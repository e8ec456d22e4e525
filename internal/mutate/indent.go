package mutate

import (
	"time"

	"stmtforge/internal/model"
)

type IndentResult struct {
	Statements []model.Statement
	Changed    bool
}

// Indent deepens each selected statement by one level, clamped at MaxLevel.
// Clamping is a silent per-statement no-op, not an error.
func Indent(stmts []model.Statement, ids []string) IndentResult {
	return shiftLevels(stmts, ids, +1)
}

// Outdent raises each selected statement by one level, clamped at MinLevel.
func Outdent(stmts []model.Statement, ids []string) IndentResult {
	return shiftLevels(stmts, ids, -1)
}

func shiftLevels(stmts []model.Statement, ids []string, delta int) IndentResult {
	out := model.CloneStatements(stmts)
	changed := false
	for _, i := range selectedIndices(out, ids) {
		next := model.ClampLevel(out[i].Level + delta)
		if next == out[i].Level {
			continue
		}
		out[i].Level = next
		out[i].Modified = true
		out[i].UpdatedAt = time.Now().UTC()
		changed = true
	}
	return IndentResult{Statements: out, Changed: changed}
}
