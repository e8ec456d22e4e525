package mutate

import (
	"fmt"
	"testing"

	"stmtforge/internal/model"
)

func mintSeq() func() string {
	n := 0
	return func() string { n++; return fmt.Sprintf("stm-n%d", n) }
}

func TestSplit_InheritanceAndNumbers(t *testing.T) {
	in := []model.Statement{
		{ID: "stm-1", Number: "2.1", Level: 3, Role: "Operator", Directive: model.DirectiveShall,
			Description: "Open the valve. Check the gauge. Log the reading."},
	}
	res, err := Split(in, "stm-1", ". ", mintSeq())
	if err != nil {
		t.Fatalf("Split error: %v", err)
	}
	if len(res.Statements) != 3 {
		t.Fatalf("expected 3 fragments; got %d", len(res.Statements))
	}
	for i, s := range res.Statements {
		if s.Level != 3 || s.Role != "Operator" {
			t.Fatalf("fragment %d lost level/role: %+v", i, s)
		}
		if want := fmt.Sprintf("2.1.%d", i+1); s.Number != want {
			t.Fatalf("fragment %d number %q; want %q", i, s.Number, want)
		}
		if s.Source != model.SourceSplit {
			t.Fatalf("fragment %d source %q", i, s.Source)
		}
	}
	if res.Statements[0].Directive != model.DirectiveShall {
		t.Fatalf("first fragment must inherit directive")
	}
	if res.Statements[1].Directive != model.DirectiveNone {
		t.Fatalf("later fragments must not inherit directive")
	}
	// Original is gone; fragment ids are fresh.
	for _, s := range res.Statements {
		if s.ID == "stm-1" {
			t.Fatalf("original id survived split")
		}
	}
}

func TestSplit_UnnumberedOriginalYieldsEmptyNumbers(t *testing.T) {
	in := []model.Statement{{ID: "stm-1", Description: "a;b"}}
	res, err := Split(in, "stm-1", ";", mintSeq())
	if err != nil {
		t.Fatalf("Split error: %v", err)
	}
	for _, s := range res.Statements {
		if s.Number != "" {
			t.Fatalf("expected empty derived number; got %q", s.Number)
		}
	}
}

func TestSplit_NoSplitPossible(t *testing.T) {
	in := []model.Statement{{ID: "stm-1", Description: "no delimiter here"}}
	if _, err := Split(in, "stm-1", "|", mintSeq()); err != ErrNoSplit {
		t.Fatalf("expected ErrNoSplit; got %v", err)
	}
	// Delimiter present but every fragment empty after trimming.
	in[0].Description = " ; ; "
	if _, err := Split(in, "stm-1", ";", mintSeq()); err != ErrNoSplit {
		t.Fatalf("expected ErrNoSplit for empty fragments; got %v", err)
	}
	if _, err := Split(in, "stm-missing", ";", mintSeq()); err == nil {
		t.Fatalf("expected not-found error")
	}
}
