package runtime

import (
	"sort"
	"strings"

	"github.com/hakurei-ql/hakurei/internal/config"
	"github.com/hakurei-ql/hakurei/internal/diagnostics"
	"github.com/hakurei-ql/hakurei/internal/index"
	"github.com/hakurei-ql/hakurei/internal/ir"
)

// dispatch routes a FunctionCall instruction to its builtin
// implementation, per the table in §4.5.1.
func (vm *VM) dispatch(inst *ir.Instruction, values map[int]Value) (Value, error) {
	switch inst.Data {
	case config.FnTitleExact:
		return vm.titleSearch(inst, values, index.Exact)
	case config.FnTitleContains:
		return vm.titleSearch(inst, values, index.Contains)
	case config.FnTitleStartswith:
		return vm.titleSearch(inst, values, index.StartsWith)
	case config.FnTitleEndswith:
		return vm.titleSearch(inst, values, index.EndsWith)
	case config.FnTitle:
		return vm.titleLookup(inst, values)
	case config.FnBodyContains:
		return vm.bodyContains(inst, values)
	case config.FnBodyMenuExists:
		return vm.bodyMenuExists(inst, values)
	case config.FnCount:
		return vm.count(inst, values)
	case config.FnSet:
		return vm.set(inst, values)
	case config.FnGroupSum:
		return vm.groupSum(inst, values)
	case config.FnMap:
		return vm.mapBuiltin(inst, values)
	case config.FnFlatten:
		return vm.flatten(inst, values)
	default:
		return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeNotImplemented, inst.Data)
	}
}

func (vm *VM) titleSearch(inst *ir.Instruction, values map[int]Value, option index.MatchOption) (Value, error) {
	pattern := paramValue(inst.Params[0], values).(String).Value

	matches := vm.Titles.FindBy(pattern, option)
	if len(matches) == 0 {
		return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrEmptyMatchSet, inst.Data)
	}

	elems := make([]Value, 0, len(matches))
	for _, title := range matches {
		if _, ok := vm.Titles.GetNoRedirect(title); ok {
			elems = append(elems, Article{Title: title})
		}
	}
	if len(elems) == 0 {
		return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrEmptyMatchSet, inst.Data)
	}
	return Array{Elems: elems}, nil
}

func (vm *VM) titleLookup(inst *ir.Instruction, values map[int]Value) (Value, error) {
	title := paramValue(inst.Params[0], values).(String).Value
	found, ok := vm.Titles.FindOneBy(title)
	if !ok {
		return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrArticleMissing, title)
	}
	return Article{Title: found}, nil
}

func (vm *VM) bodyContains(inst *ir.Instruction, values map[int]Value) (Value, error) {
	if vm.Articles == nil {
		return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrBodyUnavailable, inst.Data)
	}
	needle := paramValue(inst.Params[0], values).(String).Value

	var elems []Value
	for title, a := range vm.Articles {
		if strings.Contains(a.Text, needle) {
			elems = append(elems, Article{Title: title})
		}
	}
	if len(elems) == 0 {
		return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrEmptyMatchSet, inst.Data)
	}
	sortArticlesByTitle(elems)
	return Array{Elems: elems}, nil
}

// bodyMenuExists is reserved: §4.5.1 gates it on the article corpus
// being loaded but never defines the menu-marker grammar it would
// search for, since the original implementation never built past the
// loader stage. Loaded or not, it reports not-implemented.
func (vm *VM) bodyMenuExists(inst *ir.Instruction, values map[int]Value) (Value, error) {
	if vm.Articles == nil {
		return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrBodyUnavailable, inst.Data)
	}
	return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeNotImplemented, inst.Data)
}

func sortArticlesByTitle(elems []Value) {
	sort.Slice(elems, func(i, j int) bool {
		return elems[i].(Article).Title < elems[j].(Article).Title
	})
}

func (vm *VM) count(inst *ir.Instruction, values map[int]Value) (Value, error) {
	switch v := values[inst.Params[0].ID].(type) {
	case Array:
		return Integer{Value: int64(len(v.Elems))}, nil
	case Set:
		return Integer{Value: int64(len(v.Elems))}, nil
	default:
		return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeNotImplemented, "count over non-container")
	}
}

// set dedupes its input into a Set. Its argument is already a Set when
// the source query nests set(set(...)); that case is passed through
// unchanged rather than re-deduped, satisfying set's idempotence.
func (vm *VM) set(inst *ir.Instruction, values map[int]Value) (Value, error) {
	switch v := values[inst.Params[0].ID].(type) {
	case Set:
		return v, nil
	case Array:
		var deduped []Value
		for _, el := range v.Elems {
			if !containsValue(deduped, el) {
				deduped = append(deduped, el)
			}
		}
		return Set{Elems: deduped}, nil
	default:
		return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeNotImplemented, "set over non-container")
	}
}

type groupEntry struct {
	value Value
	count int
}

func (vm *VM) groupSum(inst *ir.Instruction, values map[int]Value) (Value, error) {
	arr := values[inst.Params[0].ID].(Array)

	var entries []groupEntry
	for _, el := range arr.Elems {
		found := false
		for i := range entries {
			if entries[i].value.Equal(el) {
				entries[i].count++
				found = true
				break
			}
		}
		if !found {
			entries = append(entries, groupEntry{value: el, count: 1})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].count > entries[j].count })

	elems := make([]Value, len(entries))
	for i, e := range entries {
		elems[i] = Tuple{Elems: []Value{e.value, Integer{Value: int64(e.count)}}}
	}
	return Array{Elems: elems}, nil
}

func (vm *VM) flatten(inst *ir.Instruction, values map[int]Value) (Value, error) {
	outer := values[inst.Params[0].ID].(Array)
	var elems []Value
	for _, el := range outer.Elems {
		inner, ok := el.(Array)
		if !ok {
			return nil, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeNotImplemented, "flatten over non-array element")
		}
		elems = append(elems, inner.Elems...)
	}
	return Array{Elems: elems}, nil
}

func (vm *VM) mapBuiltin(inst *ir.Instruction, values map[int]Value) (Value, error) {
	arr := values[inst.Params[0].ID].(Array)
	ref := paramValue(inst.Params[1], values).(FuncRef)

	var result []Value
	for _, el := range arr.Elems {
		mapped, keep, err := vm.applyRef(ref.Name, el)
		if err != nil {
			return nil, err
		}
		if keep {
			result = append(result, mapped)
		}
	}
	return Array{Elems: result}, nil
}

// applyRef applies the named first-class reference to el, returning
// (result, keep, error). keep is false only for category's "no
// categories" drop rule.
func (vm *VM) applyRef(name string, el Value) (Value, bool, error) {
	switch name {
	case config.FnRefCategory:
		article, ok := el.(Article)
		if !ok {
			return nil, false, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeNotImplemented, "category applied to non-Article element")
		}
		names, ok := vm.Categories.Get(article.Title)
		if !ok || len(names) == 0 {
			return nil, false, nil
		}
		elems := make([]Value, len(names))
		for i, n := range names {
			elems[i] = Category{Name: n}
		}
		return Array{Elems: elems}, true, nil

	case config.FnRefRedirect:
		article, ok := el.(Article)
		if !ok {
			return nil, false, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeNotImplemented, "redirect applied to non-Article element")
		}
		raw, ok := vm.Titles.GetNoRedirect(article.Title)
		if ok && raw.IsRedirect() {
			return Article{Title: raw.RedirectTarget()}, true, nil
		}
		return article, true, nil

	case config.FnRefUnwrapTuple1:
		t, ok := el.(Tuple)
		if !ok || len(t.Elems) != 2 {
			return nil, false, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeNotImplemented, "unwrap_tuple1 applied to non-pair element")
		}
		return t.Elems[0], true, nil

	case config.FnRefUnwrapTuple2:
		t, ok := el.(Tuple)
		if !ok || len(t.Elems) != 2 {
			return nil, false, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeNotImplemented, "unwrap_tuple2 applied to non-pair element")
		}
		return t.Elems[1], true, nil

	default:
		// select_min_len/select_max_len and the cmp_* comparators
		// type-check as references (§4.3.4) but have no map/sort
		// runtime dispatch yet — reserved alongside sort itself.
		return nil, false, diagnostics.New(diagnostics.PhaseRuntime, diagnostics.ErrRuntimeNotImplemented, name)
	}
}
