package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"stmtforge/internal/model"
	"stmtforge/internal/store"
)

func run(t *testing.T, dir, stdin string, args ...string) string {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--dir", dir))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v (stderr: %s)", args, err, errOut.String())
	}
	return out.String()
}

func runExpectError(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--dir", dir))
	if err := cmd.Execute(); err == nil {
		t.Fatalf("command %v unexpectedly succeeded", args)
	}
}

func loadStatements(t *testing.T, dir string) []model.Statement {
	t.Helper()
	db, err := (store.Store{Dir: dir}).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return db.Statements
}

func TestImportListMergeSplitRenumberFlow(t *testing.T) {
	dir := t.TempDir()

	run(t, dir, "", "init")
	run(t, dir, `[
		{"description":"The pump shall start","level":3},
		{"description":"The pump shall stop","level":3},
		{"description":"General procedure notes","level":2}
	]`, "import", "-")

	stmts := loadStatements(t, dir)
	if len(stmts) != 3 {
		t.Fatalf("expected 3 imported; got %d", len(stmts))
	}
	if stmts[0].Directive != model.DirectiveShall {
		t.Fatalf("directive not detected on import: %+v", stmts[0])
	}

	// Filtered list returns only shall statements.
	var listed []model.Statement
	if err := json.Unmarshal([]byte(run(t, dir, "", "statements", "list", "--filter", "shall")), &listed); err != nil {
		t.Fatalf("list output: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 shall statements; got %d", len(listed))
	}

	// Merge the two pump statements.
	run(t, dir, "", "statements", "merge", stmts[0].ID, stmts[1].ID, "--separator", "; ")
	stmts = loadStatements(t, dir)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 after merge; got %d", len(stmts))
	}
	if stmts[0].Description != "The pump shall start; The pump shall stop" {
		t.Fatalf("merge result: %q", stmts[0].Description)
	}

	// Split it back apart.
	run(t, dir, "", "statements", "split", stmts[0].ID, "--delimiter", "; ")
	stmts = loadStatements(t, dir)
	if len(stmts) != 3 {
		t.Fatalf("expected 3 after split; got %d", len(stmts))
	}

	// Hierarchical renumber.
	run(t, dir, "", "statements", "renumber", "--base", "1", "--strategy", "hierarchical")
	stmts = loadStatements(t, dir)
	for _, s := range stmts {
		if s.Number == "" {
			t.Fatalf("statement left unnumbered: %+v", s)
		}
	}

	// CSV export includes a header plus one row per statement.
	csvOut := run(t, dir, "", "export", "--format", "csv")
	if got := len(strings.Split(strings.TrimSpace(csvOut), "\n")); got != 4 {
		t.Fatalf("expected 4 csv lines; got %d:\n%s", got, csvOut)
	}
}

func TestMergeTooFewFailsWithoutWrite(t *testing.T) {
	dir := t.TempDir()
	run(t, dir, `[{"description":"only one"}]`, "import", "-")
	stmts := loadStatements(t, dir)
	runExpectError(t, dir, "statements", "merge", stmts[0].ID, "stm-missing")
	if got := loadStatements(t, dir); len(got) != 1 || got[0].Description != "only one" {
		t.Fatalf("failed merge must not modify the store")
	}
}

func TestRolesSyncFlow(t *testing.T) {
	dir := t.TempDir()
	run(t, dir, `[
		{"description":"Operator shall sign","role":"Operator"},
		{"description":"Welder shall weld","role":"Welder"}
	]`, "import", "-")

	run(t, dir, "", "roles", "add", "Operator")
	out := run(t, dir, "", "roles", "sync")
	if !strings.Contains(out, "Welder") || strings.Contains(out, "Operator") {
		t.Fatalf("expected only Welder proposed: %s", out)
	}

	statusOut := run(t, dir, "", "roles", "status")
	if !strings.Contains(statusOut, `"linked"`) || !strings.Contains(statusOut, "Welder") {
		t.Fatalf("unexpected status output: %s", statusOut)
	}
}

func TestDirectStatementLookupRewrite(t *testing.T) {
	argv := []string{"stmtforge", "--dir", "/tmp/ws", "stm-ab3k9q2f"}
	got := RewriteDirectLookupArgs(argv)
	want := []string{"stmtforge", "--dir", "/tmp/ws", "statements", "show", "stm-ab3k9q2f"}
	if len(got) != len(want) {
		t.Fatalf("rewrite %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rewrite %v; want %v", got, want)
		}
	}
	// Non-id positionals are left alone.
	argv = []string{"stmtforge", "statements", "list"}
	if got := RewriteDirectLookupArgs(argv); len(got) != 3 {
		t.Fatalf("unexpected rewrite: %v", got)
	}
}

func TestDocsCommand(t *testing.T) {
	dir := t.TempDir()
	run(t, dir, "", "init")

	out := run(t, dir, "", "docs")
	if !strings.Contains(out, "numbering") || !strings.Contains(out, "roles") {
		t.Fatalf("topic list missing expected topics: %s", out)
	}

	raw := run(t, dir, "", "docs", "numbering", "--raw")
	if !strings.Contains(raw, "hierarchical") {
		t.Fatalf("numbering topic body unexpected: %s", raw)
	}

	runExpectError(t, dir, "docs", "no-such-topic")
}
