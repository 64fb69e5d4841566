package runtime

import (
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/hakurei-ql/hakurei/internal/analyzer"
	"github.com/hakurei-ql/hakurei/internal/corpus"
	"github.com/hakurei-ql/hakurei/internal/diagnostics"
	"github.com/hakurei-ql/hakurei/internal/index"
	"github.com/hakurei-ql/hakurei/internal/ir"
	"github.com/hakurei-ql/hakurei/internal/parser"
	"github.com/hakurei-ql/hakurei/internal/types"
)

// VM is the runtime reference of §6.2: the two required collaborators
// plus an optional loaded-article table, bundled with the machinery to
// compile and run one query against them.
type VM struct {
	Titles     index.TitleIndex
	Categories index.CategoryIndex
	// Articles is present only when the caller has materialized the
	// full body table; required by the body:* builtins.
	Articles map[string]*corpus.Article
}

// New builds a VM over the given collaborators. articles may be nil.
func New(titles index.TitleIndex, categories index.CategoryIndex, articles map[string]*corpus.Article) *VM {
	return &VM{Titles: titles, Categories: categories, Articles: articles}
}

// Run compiles and executes query, returning its result value or the
// first lex, parse, type, or runtime error encountered. Every error is
// stamped with a fresh query id (SPEC_FULL.md §3) for correlation in
// logs, even though one query never reuses it across retries.
func (vm *VM) Run(query string) (Value, error) {
	queryID := uuid.NewString()

	cmd, err := parser.Parse(query)
	if err != nil {
		return nil, stampQueryID(err, queryID)
	}
	if _, err := analyzer.Analyze(cmd); err != nil {
		return nil, stampQueryID(err, queryID)
	}

	head := ir.Build(cmd)
	insts := ir.Flatten(head)
	// Flatten's BFS order respects dependencies but is not globally
	// ascending; §4.5 requires execution in strict id order. Since ids
	// are assigned bottom-up during Build, sorting ascending is always a
	// valid topological order too.
	sort.Slice(insts, func(i, j int) bool { return insts[i].ID < insts[j].ID })

	values := make(map[int]Value, len(insts))
	for _, inst := range insts {
		v, err := vm.exec(inst, values)
		if err != nil {
			return nil, stampQueryID(err, queryID)
		}
		values[inst.ID] = v
	}
	return values[head.ID], nil
}

func stampQueryID(err error, queryID string) error {
	if qe, ok := err.(*diagnostics.Error); ok {
		qe.QueryID = queryID
		return qe
	}
	return err
}

func (vm *VM) exec(inst *ir.Instruction, values map[int]Value) (Value, error) {
	switch inst.Kind {
	case ir.Intercross:
		return vm.execIntercross(inst, values)
	case ir.Concat:
		return vm.execConcat(inst, values)
	case ir.FunctionCall:
		return vm.dispatch(inst, values)
	default:
		return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeNotImplemented, string(inst.Kind))
	}
}

func (vm *VM) execIntercross(inst *ir.Instruction, values map[int]Value) (Value, error) {
	operands := make([]Array, len(inst.Params))
	for i, p := range inst.Params {
		arr, ok := values[p.ID].(Array)
		if !ok {
			return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeNotImplemented, "intercross over non-array operand")
		}
		operands[i] = arr
	}
	if len(operands) == 0 {
		return Array{}, nil
	}

	var kept []Value
	for _, el := range operands[0].Elems {
		present := true
		for _, other := range operands[1:] {
			if !containsValue(other.Elems, el) {
				present = false
				break
			}
		}
		if present {
			kept = append(kept, el)
		}
	}
	return Array{Elems: kept}, nil
}

func (vm *VM) execConcat(inst *ir.Instruction, values map[int]Value) (Value, error) {
	var elems []Value
	for _, p := range inst.Params {
		arr, ok := values[p.ID].(Array)
		if !ok {
			return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeNotImplemented, "concat over non-array operand")
		}
		elems = append(elems, arr.Elems...)
	}
	return Array{Elems: elems}, nil
}

// paramValue resolves one instruction param to a Value: inlined
// UseFunction/Constant leaves are built in place, everything else was
// already computed (it has a strictly lower id, per the IR ordering
// invariant) and is looked up in values.
func paramValue(p *ir.Instruction, values map[int]Value) Value {
	switch p.Kind {
	case ir.UseFunction:
		return FuncRef{Name: p.Data}
	case ir.Constant:
		if prim, ok := p.Type.(types.Prim); ok && prim.Kind == types.Integer {
			n, _ := strconv.ParseInt(p.Data, 10, 64)
			return Integer{Value: n}
		}
		return String{Value: p.Data}
	default:
		return values[p.ID]
	}
}
