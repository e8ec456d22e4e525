package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"stmtforge/internal/model"
)

const (
	dbFileName    = "db.json"
	rolesFileName = "roles.sqlite"
)

type DB struct {
	Version    int               `json:"version"`
	Statements []model.Statement `json:"statements"`
}

type Store struct {
	Dir string
}

// DiscoverDir walks upward from start looking for a .stmtforge directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".stmtforge")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir resolves the workspace dir: STMTFORGE_DIR, then upward
// discovery, then ./.stmtforge.
func DefaultDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("STMTFORGE_DIR")); v != "" {
		return v, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".stmtforge"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(filepath.Clean(s.Dir), 0o755)
}

func (s Store) dbPath() string { return filepath.Join(filepath.Clean(s.Dir), dbFileName) }

// RolesDBPath is where the workspace role dictionary lives.
func (s Store) RolesDBPath() string { return filepath.Join(filepath.Clean(s.Dir), rolesFileName) }

func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.dbPath())
	if os.IsNotExist(err) {
		return &DB{Version: 1}, nil
	}
	if err != nil {
		return nil, err
	}
	var db DB
	if err := json.Unmarshal(b, &db); err != nil {
		return nil, err
	}
	if db.Version == 0 {
		db.Version = 1
	}
	return &db, nil
}

// Save writes db.json atomically (temp file + rename) so a crash mid-write
// never truncates the workspace.
func (s Store) Save(db *DB) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.dbPath() + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.dbPath())
}

// FindStatement resolves an id against the collection.
func (db *DB) FindStatement(id string) (*model.Statement, bool) {
	id = strings.TrimSpace(id)
	for i := range db.Statements {
		if db.Statements[i].ID == id {
			return &db.Statements[i], true
		}
	}
	return nil, false
}

// AppendRaw converts extraction records into statements with fresh ids and
// defaults (level 4 when absent, directive detected from the text when the
// record carries none) and appends them in order.
func (db *DB) AppendRaw(raws []model.Raw, source model.Source) ([]model.Statement, error) {
	now := time.Now().UTC()
	added := make([]model.Statement, 0, len(raws))
	for _, r := range raws {
		id, err := db.MintID()
		if err != nil {
			return added, err
		}
		level := r.Level
		if level == 0 {
			level = model.DefaultLevel
		}
		directive := model.ParseDirective(r.Directive)
		if directive == model.DirectiveNone {
			directive = model.DetectDirective(r.Description)
		}
		s := model.Statement{
			ID:          id,
			Number:      strings.TrimSpace(r.Number),
			Title:       strings.TrimSpace(r.Title),
			Description: r.Description,
			Level:       model.ClampLevel(level),
			Directive:   directive,
			Role:        strings.TrimSpace(r.Role),
			Source:      source,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		db.Statements = append(db.Statements, s)
		added = append(added, s)
	}
	return added, nil
}
