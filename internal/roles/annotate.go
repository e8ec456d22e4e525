// Package roles cross-references statement role names against an external,
// shared role dictionary. Annotation is read-mostly with respect to statement
// data and idempotent; it may run at any time against a snapshot of the
// collection, with results merged back by id so that edits racing ahead of a
// slow dictionary never corrupt state.
package roles

import (
	"context"
	"strings"

	"stmtforge/internal/model"
)

type LinkStatus string

const (
	Linked   LinkStatus = "linked"
	Unlinked LinkStatus = "unlinked"
)

// Annotation marks one statement's role-link status.
type Annotation struct {
	StatementID string
	Role        string
	Status      LinkStatus
}

// Annotate computes link statuses for every statement in the snapshot that
// carries a non-empty role. The snapshot should be a copy captured at call
// time; pair the result with MergeByID against the live collection.
func Annotate(ctx context.Context, snapshot []model.Statement, dict Dictionary) ([]Annotation, error) {
	var out []Annotation
	// Dictionary lookups are cached per distinct role name within one pass.
	seen := map[string]bool{}
	for _, s := range snapshot {
		role := strings.TrimSpace(s.Role)
		if role == "" {
			continue
		}
		key := strings.ToLower(role)
		linked, ok := seen[key]
		if !ok {
			var err error
			linked, err = dict.Contains(ctx, role)
			if err != nil {
				return nil, err
			}
			seen[key] = linked
		}
		status := Unlinked
		if linked {
			status = Linked
		}
		out = append(out, Annotation{StatementID: s.ID, Role: role, Status: status})
	}
	return out, nil
}

// MergeByID folds annotations into a status map keyed by statement id,
// keeping only ids that still exist in the live collection. Annotations for
// statements deleted while the dictionary call was in flight are silently
// dropped; there is no cancellation model, stale responses are simply safe.
func MergeByID(live []model.Statement, anns []Annotation) map[string]LinkStatus {
	alive := make(map[string]bool, len(live))
	for _, s := range live {
		alive[s.ID] = true
	}
	out := make(map[string]LinkStatus, len(anns))
	for _, a := range anns {
		if alive[a.StatementID] {
			out[a.StatementID] = a.Status
		}
	}
	return out
}

// ProposeNew returns the distinct role names that appear in the snapshot but
// not in the dictionary, preserving first-seen casing and order.
func ProposeNew(ctx context.Context, snapshot []model.Statement, dict Dictionary) ([]Annotation, error) {
	anns, err := Annotate(ctx, snapshot, dict)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var out []Annotation
	for _, a := range anns {
		key := strings.ToLower(a.Role)
		if a.Status != Unlinked || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, a)
	}
	return out, nil
}

// SyncBack writes every proposed role into the dictionary, using the first
// statement id that used it as evidence. Returns the names added. Writes are
// additive only.
func SyncBack(ctx context.Context, snapshot []model.Statement, dict Dictionary) ([]string, error) {
	proposed, err := ProposeNew(ctx, snapshot, dict)
	if err != nil {
		return nil, err
	}
	added := make([]string, 0, len(proposed))
	for _, p := range proposed {
		if err := dict.AddRole(ctx, p.Role, p.StatementID); err != nil {
			return added, err
		}
		added = append(added, p.Role)
	}
	return added, nil
}
