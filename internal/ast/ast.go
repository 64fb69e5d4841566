// Package ast defines the abstract syntax tree produced by the parser:
// a flat, n-ary operator grammar with intersection (&) and union (|).
//
// Nodes are immutable after parsing except for their Type field, which
// the semantic analyzer fills in during its post-order walk.
package ast

import (
	"strings"

	"github.com/hakurei-ql/hakurei/internal/types"
)

// Node is the marker interface implemented by every AST node.
type Node interface {
	String() string
	node()
}

// Command is the root of a parsed query: a single And-expression.
type Command struct {
	And *AndExpr
}

func (c *Command) node() {}
func (c *Command) String() string {
	return c.And.String()
}

// AndExpr is an ordered, non-empty sequence of Or-expression operands
// combined by intersection (&).
type AndExpr struct {
	Operands []*OrExpr
	Type     types.SemanticType
}

func (a *AndExpr) node() {}
func (a *AndExpr) String() string {
	parts := make([]string, len(a.Operands))
	for i, o := range a.Operands {
		parts[i] = o.String()
	}
	return strings.Join(parts, " & ")
}

// OrExpr is an ordered, non-empty sequence of Case operands combined by
// union (|).
type OrExpr struct {
	Operands []*Case
	Type     types.SemanticType
}

func (o *OrExpr) node() {}
func (o *OrExpr) String() string {
	parts := make([]string, len(o.Operands))
	for i, c := range o.Operands {
		parts[i] = c.String()
	}
	return strings.Join(parts, " | ")
}

// Case is either a parenthesized And-expression or a function call/use.
// Exactly one of Sub or Func is non-nil.
type Case struct {
	Sub  *AndExpr
	Func *FuncExpr
	Type types.SemanticType
}

func (c *Case) node() {}
func (c *Case) String() string {
	if c.Sub != nil {
		return "(" + c.Sub.String() + ")"
	}
	return c.Func.String()
}

// FuncExpr is a named function reference: a call (with an argument list,
// possibly empty) or a bare "use" reference when IsUse is true.
type FuncExpr struct {
	Name  string
	IsUse bool
	Args  []*Arg
	Type  types.SemanticType
}

func (f *FuncExpr) node() {}
func (f *FuncExpr) String() string {
	if f.IsUse {
		return f.Name
	}
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return f.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Arg is a single function argument: either a literal (string or
// integer payload, kept in its source textual form) or a nested
// And-expression. Quoted records whether a Literal came from a quoted
// string token rather than a bare digit sequence, so the analyzer can
// tell "123" (String) from 123 (Integer).
type Arg struct {
	Literal *string
	Quoted  bool
	Expr    *AndExpr
	Type    types.SemanticType
}

func (a *Arg) node() {}
func (a *Arg) String() string {
	if a.Literal != nil {
		return *a.Literal
	}
	return a.Expr.String()
}
