package analyzer

import (
	"github.com/hakurei-ql/hakurei/internal/ast"
	"github.com/hakurei-ql/hakurei/internal/config"
	"github.com/hakurei-ql/hakurei/internal/diagnostics"
	"github.com/hakurei-ql/hakurei/internal/types"
)

var stringArticles = types.Array{Elem: types.Prim{Kind: types.Article}}

// checkSignature validates the plain-call builtin table of §4.3.4 and
// returns the result type of f given its already-analyzed argTypes.
func checkSignature(f *ast.FuncExpr, argTypes []types.SemanticType) (types.SemanticType, error) {
	switch f.Name {
	case config.FnTitleExact, config.FnTitleContains, config.FnTitleStartswith, config.FnTitleEndswith:
		return checkStringToArticles(f, argTypes)

	// title(s) performs an exact single-article lookup (§4.5.1's
	// find_one_by), unlike title:exact which yields a match set; the
	// table in §4.3.4 does not list it, so this shape follows the VM
	// section's "fails if not found" wording.
	case config.FnTitle:
		if err := arity(f, argTypes, 1); err != nil {
			return nil, err
		}
		if err := argIs(f, argTypes, 0, types.Prim{Kind: types.String}); err != nil {
			return nil, err
		}
		return types.Prim{Kind: types.Article}, nil

	case config.FnBodyContains, config.FnBodyMenuExists:
		return checkStringToArticles(f, argTypes)

	case config.FnCount:
		return checkCount(f, argTypes)

	case config.FnSet:
		return checkSet(f, argTypes)

	case config.FnGroupSum:
		return checkGroupSum(f, argTypes)

	case config.FnMap:
		return checkMap(f, argTypes)

	case config.FnFlatten:
		if err := arity(f, argTypes, 1); err != nil {
			return nil, err
		}
		outer, ok := argTypes[0].(types.Array)
		if !ok {
			return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrArgTypeMismatch, f.Name, "Array(Array(T))", argTypes[0].String())
		}
		inner, ok := outer.Elem.(types.Array)
		if !ok {
			return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrArgTypeMismatch, f.Name, "Array(Array(T))", argTypes[0].String())
		}
		return inner, nil

	case config.FnSort:
		return checkSort(f, argTypes)

	case config.FnFilter, config.FnBind, config.FnReduce:
		return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrNotImplemented, f.Name)

	default:
		return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrUnknownFunction, f.Name)
	}
}

func checkStringToArticles(f *ast.FuncExpr, argTypes []types.SemanticType) (types.SemanticType, error) {
	if err := arity(f, argTypes, 1); err != nil {
		return nil, err
	}
	if err := argIs(f, argTypes, 0, types.Prim{Kind: types.String}); err != nil {
		return nil, err
	}
	return stringArticles, nil
}

// checkCount implements §4.3.5's overload-by-retry rule: try Array(T),
// and only on failure fall back to Set(T); if both fail, surface the
// Array attempt's error since it is tried first.
func checkCount(f *ast.FuncExpr, argTypes []types.SemanticType) (types.SemanticType, error) {
	if err := arity(f, argTypes, 1); err != nil {
		return nil, err
	}
	if _, ok := argTypes[0].(types.Array); ok {
		return types.Prim{Kind: types.Integer}, nil
	}
	if _, ok := argTypes[0].(types.Set); ok {
		return types.Prim{Kind: types.Integer}, nil
	}
	return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrArgTypeMismatch, f.Name, "Array(T)", argTypes[0].String())
}

// checkSet mirrors checkCount's overload-by-retry rule: set() normally
// takes Array(T), but set(set(a)) must also type-check so that set's
// idempotence (§8) holds, so a Set(T) argument is accepted unchanged.
func checkSet(f *ast.FuncExpr, argTypes []types.SemanticType) (types.SemanticType, error) {
	if err := arity(f, argTypes, 1); err != nil {
		return nil, err
	}
	if arr, ok := argTypes[0].(types.Array); ok {
		return types.Set{Elem: arr.Elem}, nil
	}
	if s, ok := argTypes[0].(types.Set); ok {
		return s, nil
	}
	return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrArgTypeMismatch, f.Name, "Array(T)", argTypes[0].String())
}

func checkGroupSum(f *ast.FuncExpr, argTypes []types.SemanticType) (types.SemanticType, error) {
	if err := arity(f, argTypes, 1); err != nil {
		return nil, err
	}
	arr, ok := argTypes[0].(types.Array)
	if !ok {
		return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrArgTypeMismatch, f.Name, "Array(T) with T primitive", argTypes[0].String())
	}
	if _, ok := arr.Elem.(types.Prim); !ok {
		return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrArgTypeMismatch, f.Name, "Array(T) with T primitive", argTypes[0].String())
	}
	return types.Array{Elem: types.Tuple{Elems: []types.SemanticType{arr.Elem, types.Prim{Kind: types.Integer}}}}, nil
}

// checkMap validates map(array, func_ref) and computes the elementwise
// result type by applying the referenced function's unary signature to
// the array's element type.
func checkMap(f *ast.FuncExpr, argTypes []types.SemanticType) (types.SemanticType, error) {
	if err := arity(f, argTypes, 2); err != nil {
		return nil, err
	}
	arr, ok := argTypes[0].(types.Array)
	if !ok {
		return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrArgTypeMismatch, f.Name, "Array(T)", argTypes[0].String())
	}
	fn, ok := argTypes[1].(types.Function)
	if !ok {
		return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrArgTypeMismatch, f.Name, "a function reference", argTypes[1].String())
	}
	result, err := applyUnary(fn.Tag, arr.Elem)
	if err != nil {
		return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrHigherOrderShape, err.Error())
	}
	return types.Array{Elem: result}, nil
}

// checkSort validates sort(array, func_ref): the reference must be one
// of the binary comparators, which accept any T and always yield
// Integer, so only its tag and the array's shape are checked.
func checkSort(f *ast.FuncExpr, argTypes []types.SemanticType) (types.SemanticType, error) {
	if err := arity(f, argTypes, 2); err != nil {
		return nil, err
	}
	if _, ok := argTypes[0].(types.Array); !ok {
		return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrArgTypeMismatch, f.Name, "Array(T)", argTypes[0].String())
	}
	fn, ok := argTypes[1].(types.Function)
	if !ok {
		return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrArgTypeMismatch, f.Name, "a function reference", argTypes[1].String())
	}
	switch fn.Tag {
	case types.FnCmpArray, types.FnCmpTuple1, types.FnCmpTuple2:
		// The arguments are valid, but sort has no VM implementation, so
		// analysis stops here with a not-implemented error.
		return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrNotImplemented, f.Name)
	default:
		return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrHigherOrderShape, "sort requires a cmp_* comparator reference")
	}
}

// applyUnary computes the result type of applying a unary first-class
// reference to an input of type in, per §4.3.4's higher-order table.
func applyUnary(tag types.FunctionTag, in types.SemanticType) (types.SemanticType, error) {
	switch tag {
	case types.FnCategory:
		if !in.Equal(types.Prim{Kind: types.Article}) {
			return nil, &shapeError{tag, in, "Article"}
		}
		return types.Array{Elem: types.Prim{Kind: types.Category}}, nil
	case types.FnRedirect:
		if !in.Equal(types.Prim{Kind: types.Article}) {
			return nil, &shapeError{tag, in, "Article"}
		}
		return types.Prim{Kind: types.Article}, nil
	case types.FnUnwrapTuple1:
		t, ok := in.(types.Tuple)
		if !ok || len(t.Elems) != 2 {
			return nil, &shapeError{tag, in, "Tuple(T1, T2)"}
		}
		return t.Elems[0], nil
	case types.FnUnwrapTuple2:
		t, ok := in.(types.Tuple)
		if !ok || len(t.Elems) != 2 {
			return nil, &shapeError{tag, in, "Tuple(T1, T2)"}
		}
		return t.Elems[1], nil
	case types.FnSelect:
		switch c := in.(type) {
		case types.Array:
			return c.Elem, nil
		case types.Set:
			return c.Elem, nil
		}
		return nil, &shapeError{tag, in, "Array(T) or Set(T)"}
	default:
		return nil, &shapeError{tag, in, "a unary-applicable reference"}
	}
}

type shapeError struct {
	tag  types.FunctionTag
	in   types.SemanticType
	want string
}

func (e *shapeError) Error() string {
	return string(e.tag) + ": expected " + e.want + ", got " + e.in.String()
}

func arity(f *ast.FuncExpr, argTypes []types.SemanticType, n int) error {
	if len(argTypes) != n {
		return diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrArityMismatch, f.Name, n, len(argTypes))
	}
	return nil
}

func argIs(f *ast.FuncExpr, argTypes []types.SemanticType, i int, want types.SemanticType) error {
	if !argTypes[i].Equal(want) {
		return diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrArgTypeMismatch, f.Name, want.String(), argTypes[i].String())
	}
	return nil
}
