package mutate

import (
	"strings"
	"time"

	"stmtforge/internal/model"
)

type MergeResult struct {
	Statements []model.Statement
	SurvivorID string
	Absorbed   int
}

// Merge joins the selected statements into the earliest one in sequence
// order. The survivor's description becomes every selected description joined
// with separator; its number, level and role are left untouched. The other
// selected statements are removed.
//
// Fewer than two resolvable ids is a named failure: the input collection is
// returned unchanged so callers do not push an empty undo snapshot.
func Merge(stmts []model.Statement, ids []string, separator string) (MergeResult, error) {
	sel := selectedIndices(stmts, ids)
	if len(sel) < 2 {
		return MergeResult{Statements: stmts}, ErrMergeTooFew
	}

	parts := make([]string, 0, len(sel))
	for _, i := range sel {
		parts = append(parts, stmts[i].Description)
	}

	selSet := make(map[int]bool, len(sel))
	for _, i := range sel[1:] {
		selSet[i] = true
	}

	out := make([]model.Statement, 0, len(stmts)-len(sel)+1)
	survivorIdx := sel[0]
	survivorID := ""
	for i := range stmts {
		if selSet[i] {
			continue
		}
		s := stmts[i]
		if i == survivorIdx {
			s.Description = strings.Join(parts, separator)
			s.Directive = model.DetectDirective(s.Description)
			s.Modified = true
			s.UpdatedAt = time.Now().UTC()
			survivorID = s.ID
		}
		out = append(out, s)
	}
	return MergeResult{Statements: out, SurvivorID: survivorID, Absorbed: len(sel) - 1}, nil
}
