package roles

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// Entry is one role-dictionary record. Evidence is free text describing where
// the role was seen (typically a statement id for proposed write-backs).
type Entry struct {
	Name      string    `json:"name"`
	Evidence  string    `json:"evidence,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Dictionary is the external role-dictionary collaborator. Lookups are
// case-insensitive; writes are additive only — the editor proposes new
// entries, it never removes or rewrites existing ones.
type Dictionary interface {
	Contains(ctx context.Context, name string) (bool, error)
	AddRole(ctx context.Context, name, evidence string) error
	Roles(ctx context.Context) ([]Entry, error)
}

// MemoryDictionary is an in-process Dictionary, used by tests and as a
// fallback when no workspace dictionary exists.
type MemoryDictionary struct {
	mu      sync.Mutex
	entries map[string]Entry // keyed by lowercase name
}

func NewMemoryDictionary(names ...string) *MemoryDictionary {
	d := &MemoryDictionary{entries: map[string]Entry{}}
	for _, n := range names {
		_ = d.AddRole(context.Background(), n, "")
	}
	return d
}

func (d *MemoryDictionary) Contains(_ context.Context, name string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.entries[strings.ToLower(strings.TrimSpace(name))]
	return ok, nil
}

func (d *MemoryDictionary) AddRole(_ context.Context, name, evidence string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	key := strings.ToLower(name)
	if _, ok := d.entries[key]; ok {
		return nil
	}
	d.entries[key] = Entry{Name: name, Evidence: evidence, CreatedAt: time.Now().UTC()}
	return nil
}

func (d *MemoryDictionary) Roles(_ context.Context) ([]Entry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Entry, 0, len(d.entries))
	for _, e := range d.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}
