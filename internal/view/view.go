// Package view derives the displayed subset of a statement collection.
// Display is a pure projection: selection and history keep operating on ids
// from the full collection, so operations stay consistent even when applied
// to a statement the current filter hides.
package view

import (
	"strings"

	"stmtforge/internal/model"
)

// FilterAll disables directive filtering; FilterProcess matches statements
// with no directive (process text). Any other tag matches the directive
// case-insensitively.
const (
	FilterAll     = "all"
	FilterProcess = "process"
)

// Display returns the ordered subsequence of stmts passing both the directive
// filter and the search text. Both predicates are ANDed; search is a
// case-insensitive substring match over description, number and role.
func Display(stmts []model.Statement, filterTag, searchText string) []model.Statement {
	filterTag = strings.ToLower(strings.TrimSpace(filterTag))
	searchText = strings.ToLower(strings.TrimSpace(searchText))

	out := make([]model.Statement, 0, len(stmts))
	for _, s := range stmts {
		if !matchesFilter(s, filterTag) {
			continue
		}
		if searchText != "" && !matchesSearch(s, searchText) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func matchesFilter(s model.Statement, tag string) bool {
	switch tag {
	case "", FilterAll:
		return true
	case FilterProcess:
		return s.Directive == model.DirectiveNone
	default:
		return strings.EqualFold(string(s.Directive), tag)
	}
}

func matchesSearch(s model.Statement, needle string) bool {
	return strings.Contains(strings.ToLower(s.Description), needle) ||
		strings.Contains(strings.ToLower(s.Number), needle) ||
		strings.Contains(strings.ToLower(s.Role), needle)
}
