// Package config collects the named string constants shared by the
// analyzer and the VM, so builtin names live in one place instead of
// being scattered as string literals across packages.
package config

// Plain call builtin names (§4.3.4).
const (
	FnTitleExact      = "title:exact"
	FnTitleContains   = "title:contains"
	FnTitleStartswith = "title:startswith"
	FnTitleEndswith   = "title:endswith"
	FnTitle           = "title"
	FnBodyContains    = "body:contains"
	FnBodyMenuExists  = "body:menu_exists"
	FnCount           = "count"
	FnSet             = "set"
	FnGroupSum        = "group_sum"
	FnMap             = "map"
	FnFlatten         = "flatten"
	FnSort            = "sort"
	FnFilter          = "filter"
	FnBind            = "bind"
	FnReduce          = "reduce"
)

// First-class reference names (§4.3.4, "Higher-order inference rules").
const (
	FnRefCategory      = "category"
	FnRefSelectMinLen  = "select_min_len"
	FnRefSelectMaxLen  = "select_max_len"
	FnRefRedirect      = "redirect"
	FnRefUnwrapTuple1  = "unwrap_tuple1"
	FnRefUnwrapTuple2  = "unwrap_tuple2"
	FnRefCmpArray      = "cmp_array"
	FnRefCmpTuple1     = "cmp_tuple1"
	FnRefCmpTuple2     = "cmp_tuple2"
)

// Default file names for the JSON-backed index backend (§6.2).
const (
	DefaultDumpFile       = "dump.json"
	DefaultTitleIndexFile = "title-index.json"
	DefaultCategoryFile   = "article-with-categories.json"
)

// StrftimeLayout formats the optional dump-stamp metadata in verbose
// diagnostic output (SPEC_FULL.md §3).
const StrftimeLayout = "%Y-%m-%d %H:%M:%S"
