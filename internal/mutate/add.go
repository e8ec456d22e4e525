package mutate

import (
	"stmtforge/internal/model"
)

type AddResult struct {
	Statements []model.Statement
	Added      model.Statement
}

// Add inserts stmt immediately after the statement identified by afterID.
// When afterID is empty or does not resolve, stmt is appended at the end.
// The caller mints stmt.ID before calling.
func Add(stmts []model.Statement, afterID string, stmt model.Statement) AddResult {
	out := model.CloneStatements(stmts)
	at := len(out)
	if i := indexByID(out, afterID); i >= 0 {
		at = i + 1
	}
	out = append(out, model.Statement{})
	copy(out[at+1:], out[at:])
	out[at] = stmt
	return AddResult{Statements: out, Added: stmt}
}
