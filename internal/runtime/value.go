// Package runtime implements the VM (§4.5): the dispatch loop over a
// flattened instruction list, the builtin table, and the RuntimeValue
// shapes those builtins produce.
package runtime

import (
	"fmt"
	"hash/fnv"
)

// Value is the closed set of runtime value shapes a query can produce
// or pass between instructions (§4.5.2): every variant supports
// structural equality and a hash compatible with that equality, so
// set/group_sum/Intercross can deduplicate through a hash container.
//
// types.None has no Value counterpart here: it is the static type of
// an empty generic container, never a value a builtin constructs — an
// empty Array or Set is represented by Array{Elems: nil}/Set{Elems:
// nil} with whatever element type the analyzer already inferred, not
// by a distinct untyped-empty value.
type Value interface {
	Hash() uint32
	Equal(other Value) bool
	sealed()
}

func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

// combineHash folds elem's hash into the running hash h, mirroring the
// `31*h + elem.Hash()` list-hash idiom.
func combineHash(h uint32, elem Value) uint32 {
	return 31*h + elem.Hash()
}

// Article is a RuntimePrimitiveObject::Article(title) — a reference to
// an article by title, not the article body itself.
type Article struct {
	Title string
}

func (Article) sealed()          {}
func (a Article) Hash() uint32   { return hashString(a.Title) }
func (a Article) Equal(o Value) bool {
	other, ok := o.(Article)
	return ok && other.Title == a.Title
}

// Category is a single category name.
type Category struct {
	Name string
}

func (Category) sealed()        {}
func (c Category) Hash() uint32 { return hashString(c.Name) }
func (c Category) Equal(o Value) bool {
	other, ok := o.(Category)
	return ok && other.Name == c.Name
}

// Integer is a signed integer value.
type Integer struct {
	Value int64
}

func (Integer) sealed()        {}
func (i Integer) Hash() uint32 { return uint32(i.Value ^ (i.Value >> 32)) }
func (i Integer) Equal(o Value) bool {
	other, ok := o.(Integer)
	return ok && other.Value == i.Value
}

// String is a text value.
type String struct {
	Value string
}

func (String) sealed()        {}
func (s String) Hash() uint32 { return hashString(s.Value) }
func (s String) Equal(o Value) bool {
	other, ok := o.(String)
	return ok && other.Value == s.Value
}

// Array is an ordered container; duplicates allowed.
type Array struct {
	Elems []Value
}

func (Array) sealed() {}
func (a Array) Hash() uint32 {
	h := uint32(2166136261)
	for _, e := range a.Elems {
		h = combineHash(h, e)
	}
	return h
}
func (a Array) Equal(o Value) bool {
	other, ok := o.(Array)
	if !ok || len(other.Elems) != len(a.Elems) {
		return false
	}
	for i := range a.Elems {
		if !a.Elems[i].Equal(other.Elems[i]) {
			return false
		}
	}
	return true
}

// Set is a deduplicated container, preserving first-occurrence order.
type Set struct {
	Elems []Value
}

func (Set) sealed() {}
func (s Set) Hash() uint32 {
	h := uint32(2166136261)
	for _, e := range s.Elems {
		h ^= e.Hash()
	}
	return h
}
func (s Set) Equal(o Value) bool {
	other, ok := o.(Set)
	if !ok || len(other.Elems) != len(s.Elems) {
		return false
	}
	for _, e := range s.Elems {
		if !containsValue(other.Elems, e) {
			return false
		}
	}
	return true
}

func containsValue(haystack []Value, needle Value) bool {
	for _, v := range haystack {
		if v.Equal(needle) {
			return true
		}
	}
	return false
}

// Tuple is a fixed-arity heterogeneous container.
type Tuple struct {
	Elems []Value
}

func (Tuple) sealed() {}
func (t Tuple) Hash() uint32 {
	h := uint32(2166136261)
	for _, e := range t.Elems {
		h = combineHash(h, e)
	}
	return h
}
func (t Tuple) Equal(o Value) bool {
	other, ok := o.(Tuple)
	if !ok || len(other.Elems) != len(t.Elems) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].Equal(other.Elems[i]) {
			return false
		}
	}
	return true
}

// FuncRef carries a first-class function reference's name between an
// instruction and the higher-order builtin that consumes it (map,
// sort). It is never a query's final result.
type FuncRef struct {
	Name string
}

func (FuncRef) sealed()        {}
func (f FuncRef) Hash() uint32 { return hashString(f.Name) }
func (f FuncRef) Equal(o Value) bool {
	other, ok := o.(FuncRef)
	return ok && other.Name == f.Name
}

func (a Article) String() string  { return fmt.Sprintf("Article(%s)", a.Title) }
func (c Category) String() string { return fmt.Sprintf("Category(%s)", c.Name) }
