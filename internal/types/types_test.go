package types_test

import (
	"testing"

	. "github.com/hakurei-ql/hakurei/internal/types"
)

func TestEqualityReflexiveSymmetricTransitive(t *testing.T) {
	values := []SemanticType{
		None{},
		Prim{Kind: Integer},
		Prim{Kind: String},
		Array{Elem: Prim{Kind: Article}},
		Set{Elem: Prim{Kind: Category}},
		Tuple{Elems: []SemanticType{Prim{Kind: Category}, Prim{Kind: Integer}}},
		Function{Tag: FnRedirect},
	}
	for _, a := range values {
		if !a.Equal(a) {
			t.Fatalf("%s not reflexive", a)
		}
	}
	for _, a := range values {
		for _, b := range values {
			if a.Equal(b) != b.Equal(a) {
				t.Fatalf("%s vs %s not symmetric", a, b)
			}
		}
	}
	a := Array{Elem: Prim{Kind: Integer}}
	b := Array{Elem: Prim{Kind: Integer}}
	c := Array{Elem: Prim{Kind: Integer}}
	if !(a.Equal(b) && b.Equal(c) && a.Equal(c)) {
		t.Fatal("not transitive")
	}
}

func TestFunctionNeverEqualsNonFunction(t *testing.T) {
	f := Function{Tag: FnCategory}
	if f.Equal(Prim{Kind: Article}) {
		t.Fatal("Function should never equal a primitive")
	}
	if (Prim{Kind: Article}).Equal(f) {
		t.Fatal("primitive should never equal a Function")
	}
}

func TestNoneEqualsOnlyNone(t *testing.T) {
	if !(None{}).Equal(None{}) {
		t.Fatal("None should equal None")
	}
	if (None{}).Equal(Prim{Kind: Integer}) {
		t.Fatal("None should not equal a primitive")
	}
}
