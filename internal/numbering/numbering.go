// Package numbering computes display numbers for statement collections.
// Numbers are never re-derived automatically on reorder; renumbering is an
// explicit operation so users can restructure freely before committing to a
// numbering pass.
package numbering

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"stmtforge/internal/model"
)

type Strategy int

const (
	StrategySequential Strategy = iota
	StrategyHierarchical
	// StrategyContinue is documented for appending to an existing document
	// ("continue from existing numbering") but is deliberately identical to
	// StrategySequential in behavior. The distinct case is kept so the two
	// can diverge later without an API change.
	StrategyContinue
)

var ErrUnknownStrategy = errors.New("unknown numbering strategy")

func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sequential":
		return StrategySequential, nil
	case "hierarchical":
		return StrategyHierarchical, nil
	case "continue":
		return StrategyContinue, nil
	default:
		return StrategySequential, ErrUnknownStrategy
	}
}

func (s Strategy) String() string {
	switch s {
	case StrategyHierarchical:
		return "hierarchical"
	case StrategyContinue:
		return "continue"
	default:
		return "sequential"
	}
}

// Renumber returns a copy of stmts with new numbers assigned to the scoped
// statements, visited in sequence order. scope is a set of statement ids; a
// nil scope means all. Malformed base strings are accepted verbatim; this
// function never fails.
func Renumber(stmts []model.Statement, scope map[string]bool, base string, strategy Strategy) []model.Statement {
	out := model.CloneStatements(stmts)
	now := time.Now().UTC()

	switch strategy {
	case StrategyHierarchical:
		var counters [model.MaxLevel]int
		for i := range out {
			if scope != nil && !scope[out[i].ID] {
				continue
			}
			l := model.ClampLevel(out[i].Level)
			counters[l-1]++
			for j := l; j < model.MaxLevel; j++ {
				counters[j] = 0
			}
			parts := make([]string, 0, l+1)
			if base != "" {
				parts = append(parts, base)
			}
			for j := 0; j < l; j++ {
				if counters[j] != 0 {
					parts = append(parts, strconv.Itoa(counters[j]))
				}
			}
			setNumber(&out[i], strings.Join(parts, "."), now)
		}
	default: // sequential and continue share one formula
		n := 0
		for i := range out {
			if scope != nil && !scope[out[i].ID] {
				continue
			}
			n++
			num := strconv.Itoa(n)
			if base != "" {
				num = base + "." + num
			}
			setNumber(&out[i], num, now)
		}
	}
	return out
}

func setNumber(s *model.Statement, num string, now time.Time) {
	if s.Number == num {
		return
	}
	s.Number = num
	s.Modified = true
	s.UpdatedAt = now
}
