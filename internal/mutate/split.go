package mutate

import (
	"fmt"
	"strings"
	"time"

	"stmtforge/internal/model"
)

type SplitResult struct {
	Statements []model.Statement
	NewIDs     []string
}

// Split replaces the statement identified by id with one statement per
// non-empty delimiter-separated fragment of its description, in place.
// Fragments inherit level and role; only the first keeps the directive.
// Derived numbers are "<original>.<i+1>" when the original was numbered.
//
// Fewer than two usable fragments is the named "no split possible" failure:
// the input collection is returned unchanged.
func Split(stmts []model.Statement, id, delimiter string, mint func() string) (SplitResult, error) {
	idx := indexByID(stmts, id)
	if idx < 0 {
		return SplitResult{Statements: stmts}, NotFoundError{ID: id}
	}
	orig := stmts[idx]

	var frags []string
	for _, f := range strings.Split(orig.Description, delimiter) {
		if f = strings.TrimSpace(f); f != "" {
			frags = append(frags, f)
		}
	}
	if len(frags) < 2 {
		return SplitResult{Statements: stmts}, ErrNoSplit
	}

	now := time.Now().UTC()
	pieces := make([]model.Statement, len(frags))
	newIDs := make([]string, len(frags))
	for i, f := range frags {
		s := model.Statement{
			ID:          mint(),
			Description: f,
			Level:       orig.Level,
			Role:        orig.Role,
			Source:      model.SourceSplit,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if i == 0 {
			s.Directive = orig.Directive
		}
		if orig.Number != "" {
			s.Number = fmt.Sprintf("%s.%d", orig.Number, i+1)
		}
		pieces[i] = s
		newIDs[i] = s.ID
	}

	out := make([]model.Statement, 0, len(stmts)-1+len(pieces))
	out = append(out, stmts[:idx]...)
	out = append(out, pieces...)
	out = append(out, stmts[idx+1:]...)
	return SplitResult{Statements: out, NewIDs: newIDs}, nil
}
