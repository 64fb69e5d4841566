// Command hakurei runs a single query (§6.3) against a loaded title and
// category index, printing the result value to standard output.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/ncruces/go-strftime"

	"github.com/hakurei-ql/hakurei/internal/analyzer"
	"github.com/hakurei-ql/hakurei/internal/config"
	"github.com/hakurei-ql/hakurei/internal/corpus"
	"github.com/hakurei-ql/hakurei/internal/index"
	"github.com/hakurei-ql/hakurei/internal/ir"
	"github.com/hakurei-ql/hakurei/internal/parser"
	"github.com/hakurei-ql/hakurei/internal/printer"
	"github.com/hakurei-ql/hakurei/internal/runtime"
)

func main() {
	var (
		dumpPath     = flag.String("dump", config.DefaultDumpFile, "article dump file (JSON backend)")
		indexPath    = flag.String("title-index", config.DefaultTitleIndexFile, "title offset index file (JSON backend)")
		catPath      = flag.String("category-index", config.DefaultCategoryFile, "category list file (JSON backend)")
		sqlitePath   = flag.String("sqlite", "", "use a SQLite index database instead of the JSON backend")
		articlesPath = flag.String("articles", "", "optional full article body table (JSON list), required for body:* builtins")
		verbose      = flag.Bool("v", false, "trace IR construction to stderr")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] \"<query>\"\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	query := flag.Arg(0)

	vm, dumpStamp, closeFn, err := buildVM(*sqlitePath, *dumpPath, *indexPath, *catPath, *articlesPath)
	if err != nil {
		die("hakurei: %s\n", err)
	}
	if closeFn != nil {
		defer closeFn()
	}

	if *verbose {
		traceQuery(query, dumpStamp)
	}

	result, err := vm.Run(query)
	if err != nil {
		die("hakurei: %s\n", err)
	}

	fmt.Print(printer.Print(result))
}

func buildVM(sqlitePath, dumpPath, indexPath, catPath, articlesPath string) (*runtime.VM, string, func() error, error) {
	articleMap, err := loadArticles(articlesPath)
	if err != nil {
		return nil, "", nil, err
	}

	if sqlitePath != "" {
		t, err := index.OpenSQLiteTitleIndex(sqlitePath)
		if err != nil {
			return nil, "", nil, err
		}
		c, err := index.OpenSQLiteCategoryIndex(sqlitePath)
		if err != nil {
			return nil, "", nil, err
		}
		return runtime.New(t, c, articleMap), "", t.Close, nil
	}

	t, err := index.LoadJSONTitleIndex(dumpPath, indexPath)
	if err != nil {
		return nil, "", nil, err
	}
	c, err := index.LoadJSONCategoryIndex(catPath)
	if err != nil {
		return nil, "", nil, err
	}
	dumpStamp, _ := t.DumpStamp()
	return runtime.New(t, c, articleMap), dumpStamp, t.Close, nil
}

func loadArticles(path string) (map[string]*corpus.Article, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list []*corpus.Article
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	articles := make(map[string]*corpus.Article, len(list))
	for _, a := range list {
		articles[a.Title] = a
	}
	return articles, nil
}

// traceQuery writes a best-effort IR dump to stderr ahead of execution.
// Parse/analyze failures here are swallowed; the real run reports them
// properly, this is purely diagnostic.
func traceQuery(query, dumpStamp string) {
	if dumpStamp != "" {
		if t, err := time.Parse(time.RFC3339, dumpStamp); err == nil {
			fmt.Fprintf(os.Stderr, "dump generated: %s\n", strftime.Format(config.StrftimeLayout, t))
		}
	}

	cmd, err := parser.Parse(query)
	if err != nil {
		return
	}
	if _, err := analyzer.Analyze(cmd); err != nil {
		return
	}
	head := ir.Build(cmd)
	for _, inst := range ir.Flatten(head) {
		fmt.Fprintln(os.Stderr, ir.RenderLine(inst))
	}
}

// die prints the error and exits non-zero, coloring it red when stderr
// is a terminal.
func die(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if isatty.IsTerminal(os.Stderr.Fd()) {
		msg = "\x1b[31m" + msg + "\x1b[0m"
	}
	fmt.Fprint(os.Stderr, msg)
	os.Exit(1)
}
