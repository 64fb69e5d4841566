package runtime_test

import (
	"testing"

	"github.com/hakurei-ql/hakurei/internal/runtime"
)

func TestArrayEqualOrderSensitive(t *testing.T) {
	a := runtime.Array{Elems: []runtime.Value{runtime.Integer{Value: 1}, runtime.Integer{Value: 2}}}
	b := runtime.Array{Elems: []runtime.Value{runtime.Integer{Value: 2}, runtime.Integer{Value: 1}}}
	if a.Equal(b) {
		t.Fatal("Array equality should be order-sensitive")
	}
}

func TestSetEqualOrderInsensitive(t *testing.T) {
	a := runtime.Set{Elems: []runtime.Value{runtime.Integer{Value: 1}, runtime.Integer{Value: 2}}}
	b := runtime.Set{Elems: []runtime.Value{runtime.Integer{Value: 2}, runtime.Integer{Value: 1}}}
	if !a.Equal(b) {
		t.Fatal("Set equality should be order-insensitive")
	}
}

func TestTupleEqualPointwise(t *testing.T) {
	a := runtime.Tuple{Elems: []runtime.Value{runtime.String{Value: "x"}, runtime.Integer{Value: 1}}}
	b := runtime.Tuple{Elems: []runtime.Value{runtime.String{Value: "x"}, runtime.Integer{Value: 1}}}
	c := runtime.Tuple{Elems: []runtime.Value{runtime.String{Value: "x"}, runtime.Integer{Value: 2}}}
	if !a.Equal(b) {
		t.Fatal("expected equal tuples to compare equal")
	}
	if a.Equal(c) {
		t.Fatal("expected differing tuples to compare unequal")
	}
}

func TestHashConsistentWithEqual(t *testing.T) {
	a := runtime.Article{Title: "Go"}
	b := runtime.Article{Title: "Go"}
	if !a.Equal(b) {
		t.Fatal("expected equal articles")
	}
	if a.Hash() != b.Hash() {
		t.Fatal("equal values must hash equal")
	}
}

func TestArticleNeverEqualsCategory(t *testing.T) {
	a := runtime.Article{Title: "x"}
	c := runtime.Category{Name: "x"}
	if a.Equal(c) {
		t.Fatal("different variants with the same payload must not compare equal")
	}
}
