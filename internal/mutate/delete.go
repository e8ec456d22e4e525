package mutate

import (
	"stmtforge/internal/model"
)

type DeleteResult struct {
	Statements []model.Statement
	Removed    int
	Changed    bool
}

// Delete removes every statement whose id is in ids. Unknown ids are ignored.
// Deleted statements have no further existence; there is no tombstone.
func Delete(stmts []model.Statement, ids []string) DeleteResult {
	set := idSet(ids)
	if len(set) == 0 {
		return DeleteResult{Statements: model.CloneStatements(stmts)}
	}
	out := make([]model.Statement, 0, len(stmts))
	removed := 0
	for i := range stmts {
		if set[stmts[i].ID] {
			removed++
			continue
		}
		out = append(out, stmts[i])
	}
	return DeleteResult{Statements: out, Removed: removed, Changed: removed > 0}
}
