// Package mutate holds the pure statement-collection operations. Every
// function returns a new slice and never modifies its input; callers own the
// undo-snapshot discipline (push the pre-mutation state only when the
// operation reports a change).
package mutate

import (
	"strings"

	"stmtforge/internal/model"
)

func indexByID(stmts []model.Statement, id string) int {
	id = strings.TrimSpace(id)
	for i := range stmts {
		if stmts[i].ID == id {
			return i
		}
	}
	return -1
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" {
			set[id] = true
		}
	}
	return set
}

// selectedIndices returns the sequence positions of the selected statements,
// ascending. Operations act in sequence order regardless of selection order.
func selectedIndices(stmts []model.Statement, ids []string) []int {
	set := idSet(ids)
	var out []int
	for i := range stmts {
		if set[stmts[i].ID] {
			out = append(out, i)
		}
	}
	return out
}
