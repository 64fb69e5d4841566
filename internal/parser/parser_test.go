package parser_test

import (
	"testing"

	"github.com/hakurei-ql/hakurei/internal/parser"
)

func TestParseSimpleCall(t *testing.T) {
	cmd, err := parser.Parse(`title:contains("abc")`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cmd.And.Operands) != 1 || len(cmd.And.Operands[0].Operands) != 1 {
		t.Fatalf("expected single case, got %#v", cmd)
	}
	fn := cmd.And.Operands[0].Operands[0].Func
	if fn == nil || fn.Name != "title:contains" || fn.IsUse {
		t.Fatalf("unexpected func node: %#v", fn)
	}
	if len(fn.Args) != 1 || fn.Args[0].Literal == nil || *fn.Args[0].Literal != "abc" {
		t.Fatalf("unexpected args: %#v", fn.Args)
	}
}

func TestParseUseReference(t *testing.T) {
	cmd, err := parser.Parse(`map(title:contains("x"), category)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := cmd.And.Operands[0].Operands[0].Func
	if fn.Name != "map" || len(fn.Args) != 2 {
		t.Fatalf("unexpected: %#v", fn)
	}
	second := fn.Args[1].Expr.Operands[0].Operands[0].Func
	if second.Name != "category" || !second.IsUse {
		t.Fatalf("expected bare use reference, got %#v", second)
	}
}

func TestParseEmptyArgList(t *testing.T) {
	cmd, err := parser.Parse(`foo()`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := cmd.And.Operands[0].Operands[0].Func
	if fn.IsUse || len(fn.Args) != 0 {
		t.Fatalf("unexpected: %#v", fn)
	}
}

func TestParseNAryAnd(t *testing.T) {
	cmd, err := parser.Parse(`a() & b() & c()`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cmd.And.Operands) != 3 {
		t.Fatalf("expected 3 and-operands, got %d", len(cmd.And.Operands))
	}
}

func TestParseNAryOr(t *testing.T) {
	cmd, err := parser.Parse(`a() | b() | c()`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cmd.And.Operands[0].Operands) != 3 {
		t.Fatalf("expected 3 or-operands, got %d", len(cmd.And.Operands[0].Operands))
	}
}

func TestParseParenthesizedNesting(t *testing.T) {
	cmd, err := parser.Parse(`(a() & b()) | c()`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	orExpr := cmd.And.Operands[0]
	if len(orExpr.Operands) != 2 {
		t.Fatalf("expected 2 or-operands, got %d", len(orExpr.Operands))
	}
	sub := orExpr.Operands[0].Sub
	if sub == nil || len(sub.Operands) != 2 {
		t.Fatalf("expected parenthesized and with 2 operands, got %#v", sub)
	}
}

func TestParseMissingCloseParen(t *testing.T) {
	if _, err := parser.Parse(`(a()`); err == nil {
		t.Fatal("expected error for missing )")
	}
}

func TestParseTrailingGarbage(t *testing.T) {
	if _, err := parser.Parse(`a() b()`); err == nil {
		t.Fatal("expected error for trailing tokens")
	}
}

func TestParseDeterminism(t *testing.T) {
	input := `count(set(flatten(map(title:contains("a"), category))))`
	a, errA := parser.Parse(input)
	b, errB := parser.Parse(input)
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v %v", errA, errB)
	}
	if a.String() != b.String() {
		t.Fatalf("parse is not deterministic: %q vs %q", a.String(), b.String())
	}
}
