// Package analyzer implements the semantic analyzer (§4.3): a
// post-order walk over the AST that infers and attaches a SemanticType
// to every node, validates function arities and argument types, and
// resolves the count and set overloads (Array(T), then Set(T)) and the
// higher-order signatures.
package analyzer

import (
	"github.com/hakurei-ql/hakurei/internal/ast"
	"github.com/hakurei-ql/hakurei/internal/config"
	"github.com/hakurei-ql/hakurei/internal/diagnostics"
	"github.com/hakurei-ql/hakurei/internal/types"
)

// Analyze walks cmd in post-order, annotating every node's Type field,
// and returns the type of the whole command (the type of its And-expr).
func Analyze(cmd *ast.Command) (types.SemanticType, error) {
	return analyzeAnd(cmd.And)
}

func analyzeAnd(a *ast.AndExpr) (types.SemanticType, error) {
	acc, err := analyzeOr(a.Operands[0])
	if err != nil {
		return nil, err
	}
	for _, operand := range a.Operands[1:] {
		next, err := analyzeOr(operand)
		if err != nil {
			return nil, err
		}
		acc, err = types.Intercross(acc, next)
		if err != nil {
			return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrCombineFailed, err.Error())
		}
	}
	a.Type = acc
	return acc, nil
}

func analyzeOr(o *ast.OrExpr) (types.SemanticType, error) {
	acc, err := analyzeCase(o.Operands[0])
	if err != nil {
		return nil, err
	}
	for _, operand := range o.Operands[1:] {
		next, err := analyzeCase(operand)
		if err != nil {
			return nil, err
		}
		acc, err = types.Concat(acc, next)
		if err != nil {
			return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrCombineFailed, err.Error())
		}
	}
	o.Type = acc
	return acc, nil
}

func analyzeCase(c *ast.Case) (types.SemanticType, error) {
	var (
		t   types.SemanticType
		err error
	)
	if c.Sub != nil {
		t, err = analyzeAnd(c.Sub)
	} else {
		t, err = analyzeFunc(c.Func)
	}
	if err != nil {
		return nil, err
	}
	c.Type = t
	return t, nil
}

func analyzeFunc(f *ast.FuncExpr) (types.SemanticType, error) {
	if f.IsUse {
		tag, err := referenceTag(f.Name)
		if err != nil {
			return nil, err
		}
		f.Type = types.Function{Tag: tag}
		return f.Type, nil
	}

	argTypes := make([]types.SemanticType, len(f.Args))
	for i, arg := range f.Args {
		t, err := analyzeArg(arg)
		if err != nil {
			return nil, err
		}
		argTypes[i] = t
	}

	t, err := checkSignature(f, argTypes)
	if err != nil {
		return nil, err
	}
	f.Type = t
	return t, nil
}

func analyzeArg(a *ast.Arg) (types.SemanticType, error) {
	if a.Literal != nil {
		if !a.Quoted && isDigits(*a.Literal) {
			a.Type = types.Prim{Kind: types.Integer}
		} else {
			a.Type = types.Prim{Kind: types.String}
		}
		return a.Type, nil
	}
	t, err := analyzeAnd(a.Expr)
	if err != nil {
		return nil, err
	}
	a.Type = t
	return t, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// referenceTag maps a bare function name (is_use=true) to its
// Function(tag) carrier, per §4.3.4's "First-class references" table.
func referenceTag(name string) (types.FunctionTag, error) {
	switch name {
	case config.FnRefCategory:
		return types.FnCategory, nil
	case config.FnRefSelectMinLen, config.FnRefSelectMaxLen:
		return types.FnSelect, nil
	case config.FnRefRedirect:
		return types.FnRedirect, nil
	case config.FnRefUnwrapTuple1:
		return types.FnUnwrapTuple1, nil
	case config.FnRefUnwrapTuple2:
		return types.FnUnwrapTuple2, nil
	case config.FnRefCmpArray:
		return types.FnCmpArray, nil
	case config.FnRefCmpTuple1:
		return types.FnCmpTuple1, nil
	case config.FnRefCmpTuple2:
		return types.FnCmpTuple2, nil
	default:
		return "", diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrUnknownFunction, name)
	}
}
