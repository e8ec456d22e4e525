// Package selection tracks the editor's multi-selection as a set of
// statement ids. Ids that no longer resolve in the collection are treated as
// absent on every read instead of being eagerly pruned; deletes and history
// restores stay cheap and the set self-heals on the next render.
package selection

import (
	"stmtforge/internal/model"
)

type Set struct {
	ids map[string]bool
}

func New() *Set {
	return &Set{ids: map[string]bool{}}
}

func (s *Set) Toggle(id string) {
	if id == "" {
		return
	}
	if s.ids[id] {
		delete(s.ids, id)
		return
	}
	s.ids[id] = true
}

func (s *Set) Add(ids ...string) {
	for _, id := range ids {
		if id != "" {
			s.ids[id] = true
		}
	}
}

func (s *Set) Remove(ids ...string) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}

func (s *Set) Clear() {
	s.ids = map[string]bool{}
}

func (s *Set) Has(id string) bool { return s.ids[id] }

// Replace swaps the whole selection, e.g. when a history snapshot restores.
func (s *Set) Replace(ids map[string]bool) {
	s.ids = map[string]bool{}
	for id, ok := range ids {
		if ok {
			s.ids[id] = true
		}
	}
}

// SelectRange selects the inclusive span between two positions of the
// currently displayed rows. It recomputes against the visible sequence, so
// its meaning changes if the filter changed between selections; that is
// expected behavior, not a bug.
func (s *Set) SelectRange(visible []model.Statement, from, to int) {
	if len(visible) == 0 {
		return
	}
	if from > to {
		from, to = to, from
	}
	if from < 0 {
		from = 0
	}
	if to >= len(visible) {
		to = len(visible) - 1
	}
	for i := from; i <= to; i++ {
		s.ids[visible[i].ID] = true
	}
}

// SelectAllVisible adds every currently displayed statement.
func (s *Set) SelectAllVisible(visible []model.Statement) {
	for _, st := range visible {
		s.ids[st.ID] = true
	}
}

// Active resolves the selection against the live collection, in sequence
// order. Ids not present in the collection are skipped.
func (s *Set) Active(stmts []model.Statement) []string {
	out := make([]string, 0, len(s.ids))
	for _, st := range stmts {
		if s.ids[st.ID] {
			out = append(out, st.ID)
		}
	}
	return out
}

// Snapshot copies the raw id set (including ids that may be stale) for
// history capture.
func (s *Set) Snapshot() map[string]bool {
	out := make(map[string]bool, len(s.ids))
	for id := range s.ids {
		out[id] = true
	}
	return out
}

// Count reports how many selected ids resolve in the live collection.
func (s *Set) Count(stmts []model.Statement) int {
	n := 0
	for _, st := range stmts {
		if s.ids[st.ID] {
			n++
		}
	}
	return n
}
