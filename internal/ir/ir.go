// Package ir lowers an annotated AST into a flat, id-referenced
// instruction list (§4.4): a post-order build pass assigns each node an
// id, and a breadth-first flatten pass linearizes the tree into
// execution order while inlining leaf UseFunction/Constant nodes into
// their parent's parameter list rather than scheduling them on their
// own.
package ir

import (
	"fmt"
	"strings"

	"github.com/hakurei-ql/hakurei/internal/ast"
	"github.com/hakurei-ql/hakurei/internal/types"
)

// Kind identifies the shape of an Instruction.
type Kind string

const (
	FunctionCall Kind = "FunctionCall"
	UseFunction  Kind = "UseFunction"
	Intercross   Kind = "Intercross"
	Concat       Kind = "Concat"
	Constant     Kind = "Constant"
)

// Instruction is one node of the lowered program: either a function
// call/combinator with sub-instructions as Params, or a leaf carrying a
// literal or reference name in Data.
type Instruction struct {
	ID     int
	Kind   Kind
	Type   types.SemanticType
	Data   string
	Params []*Instruction // nil for UseFunction/Constant, non-nil (possibly empty) otherwise
}

// String renders the instruction's own textual form. UseFunction and
// Constant are never rendered this way in practice — they only ever
// appear inlined inside a parent's paramsString — but still return
// something readable rather than panicking.
func (i *Instruction) String() string {
	switch i.Kind {
	case FunctionCall:
		return fmt.Sprintf("%s(%s)", i.Data, i.paramsString())
	case Intercross:
		return fmt.Sprintf("&(%s)", i.paramsString())
	case Concat:
		return fmt.Sprintf("|(%s)", i.paramsString())
	case UseFunction:
		return fmt.Sprintf("ref(%q)", i.Data)
	default: // Constant
		return fmt.Sprintf("%q", i.Data)
	}
}

func (i *Instruction) paramsString() string {
	if i.Params == nil {
		return "{}"
	}
	parts := make([]string, len(i.Params))
	for idx, p := range i.Params {
		switch p.Kind {
		case UseFunction:
			parts[idx] = fmt.Sprintf("ref(%q)", p.Data)
		case Constant:
			parts[idx] = fmt.Sprintf("%q", p.Data)
		default:
			parts[idx] = fmt.Sprintf("v%d", p.ID)
		}
	}
	return strings.Join(parts, ", ")
}

// Build lowers an analyzed command into its head instruction. cmd must
// already carry a Type on every node (i.e. have passed through the
// analyzer).
func Build(cmd *ast.Command) *Instruction {
	id := 0
	return visitAnd(&id, cmd.And)
}

// visitAnd collapses a single-operand And down to its operand, per
// §4.3.2's identity law, rather than emitting a degenerate Intercross
// node over one input.
func visitAnd(id *int, a *ast.AndExpr) *Instruction {
	if len(a.Operands) == 1 {
		return visitOr(id, a.Operands[0])
	}
	params := make([]*Instruction, len(a.Operands))
	for i, o := range a.Operands {
		params[i] = visitOr(id, o)
	}
	*id++
	return &Instruction{ID: *id, Kind: Intercross, Type: a.Type, Params: params}
}

func visitOr(id *int, o *ast.OrExpr) *Instruction {
	if len(o.Operands) == 1 {
		return visitCase(id, o.Operands[0])
	}
	params := make([]*Instruction, len(o.Operands))
	for i, c := range o.Operands {
		params[i] = visitCase(id, c)
	}
	*id++
	return &Instruction{ID: *id, Kind: Concat, Type: o.Type, Params: params}
}

func visitCase(id *int, c *ast.Case) *Instruction {
	if c.Sub != nil {
		return visitAnd(id, c.Sub)
	}
	return visitFunc(id, c.Func)
}

func visitFunc(id *int, f *ast.FuncExpr) *Instruction {
	if f.IsUse {
		*id++
		return &Instruction{ID: *id, Kind: UseFunction, Type: f.Type, Data: f.Name}
	}
	params := make([]*Instruction, len(f.Args))
	for i, a := range f.Args {
		params[i] = visitArg(id, a)
	}
	*id++
	return &Instruction{ID: *id, Kind: FunctionCall, Type: f.Type, Data: f.Name, Params: params}
}

func visitArg(id *int, a *ast.Arg) *Instruction {
	if a.Literal != nil {
		*id++
		return &Instruction{ID: *id, Kind: Constant, Type: a.Type, Data: *a.Literal}
	}
	return visitAnd(id, a.Expr)
}

// Flatten linearizes head into execution order: a breadth-first walk
// that prepends each visited instruction to the front of the result
// (so dependencies precede their dependents), skipping UseFunction and
// Constant children since those are rendered inline by their parent
// rather than scheduled as their own step.
func Flatten(head *Instruction) []*Instruction {
	var insts []*Instruction
	queue := []*Instruction{head}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		insts = append([]*Instruction{p}, insts...)

		if p.Params == nil {
			continue
		}
		var scheduled []*Instruction
		for _, x := range p.Params {
			if x.Kind != UseFunction && x.Kind != Constant {
				scheduled = append(scheduled, x)
			}
		}
		for i := len(scheduled) - 1; i >= 0; i-- {
			queue = append(queue, scheduled[i])
		}
	}
	return insts
}

// RenderLine formats a single flattened instruction as one trace line,
// e.g. `v3 = title:contains("fox")`, for the CLI's -v IR dump.
func RenderLine(i *Instruction) string {
	return fmt.Sprintf("v%d = %s", i.ID, i.String())
}
