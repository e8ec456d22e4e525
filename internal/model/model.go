package model

import (
	"strings"
	"time"
)

type Directive string

const (
	DirectiveShall  Directive = "shall"
	DirectiveMust   Directive = "must"
	DirectiveShould Directive = "should"
	DirectiveMay    Directive = "may"
	DirectiveWill   Directive = "will"
	DirectiveNone   Directive = ""
)

// detectionOrder is the precedence when a description contains more than one
// obligation keyword: the strongest match wins.
var detectionOrder = []Directive{
	DirectiveShall,
	DirectiveMust,
	DirectiveShould,
	DirectiveMay,
	DirectiveWill,
}

type Source string

const (
	SourceExtracted Source = "extracted"
	SourceManual    Source = "manual"
	SourceSplit     Source = "split"
	SourceMerge     Source = "merge"
	SourceImport    Source = "import"
)

const (
	MinLevel = 1
	MaxLevel = 6

	// DefaultLevel applies when an extraction record carries no level.
	// Levels 1-2 conventionally denote section headers, 3-6 leaf statements.
	DefaultLevel = 4
)

type Statement struct {
	ID          string    `json:"id"`
	Number      string    `json:"number,omitempty"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description"`
	Level       int       `json:"level"`
	Directive   Directive `json:"directive,omitempty"`
	Role        string    `json:"role,omitempty"`
	Source      Source    `json:"source,omitempty"`
	Modified    bool      `json:"modified,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Raw is a statement record as supplied by an external extraction service,
// before ids and defaults have been assigned.
type Raw struct {
	Number      string `json:"number,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description"`
	Level       int    `json:"level,omitempty"`
	Directive   string `json:"directive,omitempty"`
	Role        string `json:"role,omitempty"`
}

// DetectDirective scans text for obligation keywords and returns the strongest
// one present (shall > must > should > may > will), or DirectiveNone.
// Matching is whole-word and case-insensitive.
func DetectDirective(text string) Directive {
	fields := strings.Fields(strings.ToLower(text))
	words := make(map[string]bool, len(fields))
	for _, f := range fields {
		words[strings.Trim(f, ".,;:!?()[]{}\"'")] = true
	}
	for _, d := range detectionOrder {
		if words[string(d)] {
			return d
		}
	}
	return DirectiveNone
}

// ParseDirective normalizes a free-text directive value. Unknown values map to
// DirectiveNone rather than erroring; extraction feeds are messy.
func ParseDirective(s string) Directive {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shall":
		return DirectiveShall
	case "must":
		return DirectiveMust
	case "should":
		return DirectiveShould
	case "may":
		return DirectiveMay
	case "will":
		return DirectiveWill
	default:
		return DirectiveNone
	}
}

func ClampLevel(l int) int {
	if l < MinLevel {
		return MinLevel
	}
	if l > MaxLevel {
		return MaxLevel
	}
	return l
}

// CloneStatements deep-copies a collection. Statement has no reference fields,
// so a value copy of the slice is a full copy; callers that add reference
// fields later must revisit this.
func CloneStatements(stmts []Statement) []Statement {
	if stmts == nil {
		return nil
	}
	out := make([]Statement, len(stmts))
	copy(out, stmts)
	return out
}
