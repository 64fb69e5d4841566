package types_test

import (
	"testing"

	. "github.com/hakurei-ql/hakurei/internal/types"
)

func mustConcat(t *testing.T, l, r SemanticType) SemanticType {
	t.Helper()
	out, err := Concat(l, r)
	if err != nil {
		t.Fatalf("Concat(%s, %s): %v", l, r, err)
	}
	return out
}

func TestConcatIdentity(t *testing.T) {
	ty := Array{Elem: Prim{Kind: Article}}
	if got := mustConcat(t, ty, None{}); !got.Equal(ty) {
		t.Fatalf("T concat None = %s, want %s", got, ty)
	}
	if got := mustConcat(t, None{}, ty); !got.Equal(ty) {
		t.Fatalf("None concat T = %s, want %s", got, ty)
	}
}

func TestConcatPrimitives(t *testing.T) {
	if got := mustConcat(t, Prim{Kind: Integer}, Prim{Kind: Integer}); !got.Equal(Prim{Kind: Integer}) {
		t.Fatalf("got %s", got)
	}
	if _, err := Concat(Prim{Kind: Integer}, Prim{Kind: String}); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestConcatPrimWithEmptyAndMatchingContainer(t *testing.T) {
	empty := Array{Elem: None{}}
	got := mustConcat(t, Prim{Kind: Article}, empty)
	want := Array{Elem: Prim{Kind: Article}}
	if !got.Equal(want) {
		t.Fatalf("got %s want %s", got, want)
	}

	got2 := mustConcat(t, Array{Elem: Prim{Kind: Article}}, Prim{Kind: Article})
	if !got2.Equal(want) {
		t.Fatalf("got %s want %s", got2, want)
	}
}

func TestConcatArraySameElem(t *testing.T) {
	a := Array{Elem: Prim{Kind: Category}}
	b := Array{Elem: Prim{Kind: Category}}
	got := mustConcat(t, a, b)
	if !got.Equal(a) {
		t.Fatalf("got %s", got)
	}
}

func TestConcatArrayMismatch(t *testing.T) {
	a := Array{Elem: Prim{Kind: Category}}
	b := Array{Elem: Prim{Kind: Integer}}
	if _, err := Concat(a, b); err == nil {
		t.Fatal("expected error")
	}
}

func TestConcatTupleArrayWrap(t *testing.T) {
	tup := Tuple{Elems: []SemanticType{Prim{Kind: Category}, Prim{Kind: Integer}}}
	got := mustConcat(t, tup, tup)
	want := Array{Elem: tup}
	if !got.Equal(want) {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestConcatTupleMismatchedArity(t *testing.T) {
	a := Tuple{Elems: []SemanticType{Prim{Kind: Integer}}}
	b := Tuple{Elems: []SemanticType{Prim{Kind: Integer}, Prim{Kind: Integer}}}
	if _, err := Concat(a, b); err == nil {
		t.Fatal("expected error")
	}
}

func TestConcatSetAndTupleNeverMix(t *testing.T) {
	if _, err := Concat(Set{Elem: Prim{Kind: Integer}}, Tuple{Elems: []SemanticType{Prim{Kind: Integer}}}); err == nil {
		t.Fatal("expected error")
	}
}

func TestIntercrossArrayIdentity(t *testing.T) {
	a := Array{Elem: Prim{Kind: Article}}
	got, err := Intercross(a, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(a) {
		t.Fatalf("got %s want %s", got, a)
	}
}

func TestIntercrossSetIdentity(t *testing.T) {
	s := Set{Elem: Prim{Kind: Category}}
	got, err := Intercross(s, s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(s) {
		t.Fatalf("got %s want %s", got, s)
	}
}

func TestIntercrossRejectsNonContainers(t *testing.T) {
	cases := []struct{ l, r SemanticType }{
		{Prim{Kind: Integer}, Prim{Kind: Integer}},
		{Tuple{Elems: []SemanticType{Prim{Kind: Integer}}}, Tuple{Elems: []SemanticType{Prim{Kind: Integer}}}},
		{Function{Tag: FnRedirect}, Function{Tag: FnRedirect}},
		{Array{Elem: Prim{Kind: Integer}}, Set{Elem: Prim{Kind: Integer}}},
	}
	for _, c := range cases {
		if _, err := Intercross(c.l, c.r); err == nil {
			t.Fatalf("expected error for %s & %s", c.l, c.r)
		}
	}
}

func TestIntercrossMismatchedElemTypes(t *testing.T) {
	a := Array{Elem: Prim{Kind: Article}}
	b := Array{Elem: Prim{Kind: Category}}
	if _, err := Intercross(a, b); err == nil {
		t.Fatal("expected error")
	}
}
