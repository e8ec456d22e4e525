package mutate

import (
	"sort"

	"stmtforge/internal/model"
)

type MoveResult struct {
	Statements []model.Statement
	Changed    bool
}

// MoveUp swaps each selected statement one position toward the front,
// processing indices in ascending order so a contiguous selected block moves
// together without internal reordering. If the earliest selected statement is
// already first, the whole operation is a no-op.
func MoveUp(stmts []model.Statement, ids []string) MoveResult {
	sel := selectedIndices(stmts, ids)
	if len(sel) == 0 || sel[0] == 0 {
		return MoveResult{Statements: model.CloneStatements(stmts)}
	}
	out := model.CloneStatements(stmts)
	for _, i := range sel {
		out[i-1], out[i] = out[i], out[i-1]
	}
	return MoveResult{Statements: out, Changed: true}
}

// MoveDown is the mirror of MoveUp: descending order, boundary at the end.
func MoveDown(stmts []model.Statement, ids []string) MoveResult {
	sel := selectedIndices(stmts, ids)
	if len(sel) == 0 || sel[len(sel)-1] == len(stmts)-1 {
		return MoveResult{Statements: model.CloneStatements(stmts)}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sel)))
	out := model.CloneStatements(stmts)
	for _, i := range sel {
		out[i], out[i+1] = out[i+1], out[i]
	}
	return MoveResult{Statements: out, Changed: true}
}
