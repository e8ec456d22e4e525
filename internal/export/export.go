// Package export serializes statement collections for external consumers.
// The editor core hands over plain data; this package owns the formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"stmtforge/internal/model"
)

// CSV writes one row per statement with a fixed header.
func CSV(w io.Writer, stmts []model.Statement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "number", "title", "description", "level", "directive", "role", "source", "modified"}); err != nil {
		return err
	}
	for _, s := range stmts {
		rec := []string{
			s.ID,
			s.Number,
			s.Title,
			s.Description,
			strconv.Itoa(s.Level),
			string(s.Directive),
			s.Role,
			string(s.Source),
			strconv.FormatBool(s.Modified),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSON writes the collection as a pretty-printed array.
func JSON(w io.Writer, stmts []model.Statement) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(stmts)
}

// Subset filters the collection down to the given ids in sequence order;
// a nil or empty id list means the full collection.
func Subset(stmts []model.Statement, ids []string) []model.Statement {
	if len(ids) == 0 {
		return stmts
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	out := make([]model.Statement, 0, len(ids))
	for _, s := range stmts {
		if set[s.ID] {
			out = append(out, s)
		}
	}
	return out
}
