package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

const configFileName = "config.json"

// EditorConfig holds the free-text configuration strings the editor core
// consumes. The literal two-character sequence `\n` expands to a real newline
// before use; that is the only escaping rule applied.
type EditorConfig struct {
	// MergeSeparator joins descriptions when merging statements.
	MergeSeparator string `json:"mergeSeparator,omitempty"`
	// SplitDelimiter splits a description into fragments.
	SplitDelimiter string `json:"splitDelimiter,omitempty"`
}

const (
	DefaultMergeSeparator = `\n\n`
	DefaultSplitDelimiter = `\n`
)

// ExpandEscapes rewrites literal `\n` tokens to newlines.
func ExpandEscapes(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

// Separator returns the merge separator ready for use.
func (c EditorConfig) Separator() string {
	sep := c.MergeSeparator
	if sep == "" {
		sep = DefaultMergeSeparator
	}
	return ExpandEscapes(sep)
}

// Delimiter returns the split delimiter ready for use.
func (c EditorConfig) Delimiter() string {
	d := c.SplitDelimiter
	if d == "" {
		d = DefaultSplitDelimiter
	}
	return ExpandEscapes(d)
}

func (s Store) configPath() string { return filepath.Join(filepath.Clean(s.Dir), configFileName) }

func (s Store) LoadConfig() (EditorConfig, error) {
	b, err := os.ReadFile(s.configPath())
	if os.IsNotExist(err) {
		return EditorConfig{}, nil
	}
	if err != nil {
		return EditorConfig{}, err
	}
	var cfg EditorConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return EditorConfig{}, err
	}
	return cfg, nil
}

func (s Store) SaveConfig(cfg EditorConfig) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.configPath(), append(b, '\n'), 0o644)
}
