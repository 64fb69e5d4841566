// Package types implements the algebraic type lattice used by the
// semantic analyzer: a closed, non-polymorphic set of kinds plus the
// two inference operators that combine them under union (Concat) and
// intersection (Intercross).
//
// Unlike a general-purpose language's type system, there is no
// unification and no type variables: every node's type is computed
// bottom-up from its children by one of these two combinators, or
// assigned directly by a builtin's fixed signature.
package types

import (
	"fmt"
	"strings"
)

// Primitive enumerates the scalar kinds.
type Primitive string

const (
	Article  Primitive = "Article"
	Category Primitive = "Category"
	Integer  Primitive = "Integer"
	String   Primitive = "String"
	Boolean  Primitive = "Boolean"
)

// FunctionTag enumerates the named first-class function references.
type FunctionTag string

const (
	FnCategory      FunctionTag = "category"
	FnSelect        FunctionTag = "select"
	FnRedirect      FunctionTag = "redirect"
	FnUnwrapTuple1  FunctionTag = "unwrap_tuple1"
	FnUnwrapTuple2  FunctionTag = "unwrap_tuple2"
	FnCmpArray      FunctionTag = "cmp_array"
	FnCmpTuple1     FunctionTag = "cmp_tuple1"
	FnCmpTuple2     FunctionTag = "cmp_tuple2"
)

// SemanticType is the closed interface implemented by every type kind.
type SemanticType interface {
	String() string
	// Equal reports structural equality, per the rules in §4.3.1:
	// None equals only None, primitives compare by tag, containers
	// compare element-wise, tuples compare pointwise by arity, and
	// Function types never equal a non-Function type.
	Equal(other SemanticType) bool
	sealed()
}

// None is the bottom type: the type of an empty generic container and
// the identity element for Concat.
type None struct{}

func (None) String() string { return "None" }
func (None) sealed()        {}
func (None) Equal(other SemanticType) bool {
	_, ok := other.(None)
	return ok
}

// Prim wraps a Primitive as a SemanticType.
type Prim struct {
	Kind Primitive
}

func (p Prim) String() string { return string(p.Kind) }
func (Prim) sealed()          {}
func (p Prim) Equal(other SemanticType) bool {
	o, ok := other.(Prim)
	return ok && o.Kind == p.Kind
}

// Array is an ordered container type; duplicates allowed.
type Array struct {
	Elem SemanticType
}

func (a Array) String() string { return fmt.Sprintf("Array(%s)", a.Elem.String()) }
func (Array) sealed()          {}
func (a Array) Equal(other SemanticType) bool {
	o, ok := other.(Array)
	return ok && a.Elem.Equal(o.Elem)
}

// Set is a deduplicated container type.
type Set struct {
	Elem SemanticType
}

func (s Set) String() string { return fmt.Sprintf("Set(%s)", s.Elem.String()) }
func (Set) sealed()          {}
func (s Set) Equal(other SemanticType) bool {
	o, ok := other.(Set)
	return ok && s.Elem.Equal(o.Elem)
}

// Tuple is a fixed-arity heterogeneous container type.
type Tuple struct {
	Elems []SemanticType
}

func (t Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return fmt.Sprintf("Tuple(%s)", strings.Join(parts, ", "))
}
func (Tuple) sealed() {}
func (t Tuple) Equal(other SemanticType) bool {
	o, ok := other.(Tuple)
	if !ok || len(o.Elems) != len(t.Elems) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].Equal(o.Elems[i]) {
			return false
		}
	}
	return true
}

// Function is a named first-class function reference. Function types
// never participate in structural equality against non-Function types,
// and two Function types are equal only when they carry the same tag.
type Function struct {
	Tag FunctionTag
}

func (f Function) String() string { return fmt.Sprintf("Function(%s)", f.Tag) }
func (Function) sealed()          {}
func (f Function) Equal(other SemanticType) bool {
	o, ok := other.(Function)
	return ok && o.Tag == f.Tag
}
