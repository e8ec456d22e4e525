package mutate

import (
	"testing"

	"stmtforge/internal/model"
)

func fixture() []model.Statement {
	return []model.Statement{
		{ID: "stm-1", Level: 1, Description: "A"},
		{ID: "stm-2", Level: 4, Description: "B shall X"},
		{ID: "stm-3", Level: 4, Description: "C shall Y"},
	}
}

func TestMerge_SequenceOrderSurvivor(t *testing.T) {
	in := fixture()
	// Selection order is reversed on purpose: merge must operate in
	// sequence order, not selection order.
	res, err := Merge(in, []string{"stm-3", "stm-2"}, "; ")
	if err != nil {
		t.Fatalf("Merge error: %v", err)
	}
	if len(res.Statements) != 2 {
		t.Fatalf("expected 2 statements; got %d", len(res.Statements))
	}
	if res.SurvivorID != "stm-2" {
		t.Fatalf("expected survivor stm-2; got %s", res.SurvivorID)
	}
	got := res.Statements[1]
	if got.ID != "stm-2" || got.Description != "B shall X; C shall Y" {
		t.Fatalf("unexpected survivor: %+v", got)
	}
	if !got.Modified {
		t.Fatalf("expected survivor marked modified")
	}
	if got.Level != 4 {
		t.Fatalf("merge must not touch level; got %d", got.Level)
	}
	if res.Absorbed != 1 {
		t.Fatalf("expected 1 absorbed; got %d", res.Absorbed)
	}
	// Input untouched.
	if in[1].Description != "B shall X" {
		t.Fatalf("merge mutated its input")
	}
}

func TestMerge_TooFewIsNamedFailure(t *testing.T) {
	in := fixture()
	if _, err := Merge(in, []string{"stm-2"}, "; "); err != ErrMergeTooFew {
		t.Fatalf("expected ErrMergeTooFew; got %v", err)
	}
	// Unresolvable ids do not count toward the minimum.
	if _, err := Merge(in, []string{"stm-2", "stm-nope"}, "; "); err != ErrMergeTooFew {
		t.Fatalf("expected ErrMergeTooFew with stale id; got %v", err)
	}
}

func TestMergeSplit_RoundTripDescriptions(t *testing.T) {
	in := fixture()
	res, err := Merge(in, []string{"stm-2", "stm-3"}, "; ")
	if err != nil {
		t.Fatalf("Merge error: %v", err)
	}
	n := 0
	mint := func() string { n++; return "stm-new-" + string(rune('a'+n)) }
	sp, err := Split(res.Statements, res.SurvivorID, "; ", mint)
	if err != nil {
		t.Fatalf("Split error: %v", err)
	}
	if len(sp.NewIDs) != 2 {
		t.Fatalf("expected 2 fragments; got %d", len(sp.NewIDs))
	}
	rejoined := sp.Statements[1].Description + "; " + sp.Statements[2].Description
	if rejoined != "B shall X; C shall Y" {
		t.Fatalf("round trip lost text: %q", rejoined)
	}
}
