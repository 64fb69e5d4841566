package index

import (
	"encoding/json"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/hakurei-ql/hakurei/internal/corpus"
)

// offsetPair is a [start, end) byte range into the dump file, per
// §6.2's "inclusive-exclusive" contract.
type offsetPair [2]int64

// JSONTitleIndex is the default TitleIndex backend: a JSON map of title
// to byte-offset pairs, with on-demand reads of a companion dump file.
// Grounded on original_source/src/index/title.rs, with the original's
// unsafe SIMD JSON parse replaced by encoding/json plus a buffered
// io.ReaderAt seek — there is only one reader and no concurrent
// mutation, so no unsafe is needed for this read path.
type JSONTitleIndex struct {
	offsets   map[string]offsetPair
	titles    []string // sorted, for deterministic FindBy iteration
	dump      *os.File
	dumpStamp string
}

// wrappedIndexFile is the newer index layout, carrying an optional
// generation timestamp alongside the offsets. The legacy layout is a
// bare offsets map with no wrapper.
type wrappedIndexFile struct {
	GeneratedAt string                `json:"generated_at"`
	Offsets     map[string]offsetPair `json:"offsets"`
}

// LoadJSONTitleIndex reads the offset index at indexPath and opens
// dumpPath for on-demand article reads. indexPath may be either a bare
// `{title: [start, end]}` map or a `{generated_at, offsets}` wrapper
// carrying a dump-stamp timestamp for diagnostic output.
func LoadJSONTitleIndex(dumpPath, indexPath string) (*JSONTitleIndex, error) {
	raw, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, err
	}

	var offsets map[string]offsetPair
	var dumpStamp string
	if err := json.Unmarshal(raw, &offsets); err != nil {
		var wrapped wrappedIndexFile
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, err
		}
		offsets = wrapped.Offsets
		dumpStamp = wrapped.GeneratedAt
	}

	dump, err := os.Open(dumpPath)
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(offsets))
	for t := range offsets {
		titles = append(titles, t)
	}
	sort.Strings(titles)
	return &JSONTitleIndex{offsets: offsets, titles: titles, dump: dump, dumpStamp: dumpStamp}, nil
}

// DumpStamp returns the index file's recorded generation timestamp, if
// the index was built with one.
func (idx *JSONTitleIndex) DumpStamp() (string, bool) {
	return idx.dumpStamp, idx.dumpStamp != ""
}

// Close releases the dump file handle.
func (idx *JSONTitleIndex) Close() error {
	return idx.dump.Close()
}

func (idx *JSONTitleIndex) GetNoRedirect(title string) (*corpus.Article, bool) {
	off, ok := idx.offsets[title]
	if !ok {
		return nil, false
	}
	length := off[1] - off[0]
	if length <= 0 {
		return nil, false
	}
	buf := make([]byte, length)
	n, err := idx.dump.ReadAt(buf, off[0])
	if err != nil && err != io.EOF {
		return nil, false
	}
	var a corpus.Article
	if err := json.Unmarshal(buf[:n], &a); err != nil {
		return nil, false
	}
	return &a, true
}

func (idx *JSONTitleIndex) Get(title string) (*corpus.Article, bool) {
	a, ok := idx.GetNoRedirect(title)
	if !ok {
		return nil, false
	}
	if a.IsRedirect() {
		return idx.Get(a.RedirectTarget())
	}
	return a, true
}

func (idx *JSONTitleIndex) FindOneBy(title string) (string, bool) {
	_, ok := idx.offsets[title]
	return title, ok
}

func (idx *JSONTitleIndex) FindBy(pattern string, option MatchOption) []string {
	var result []string
	for _, t := range idx.titles {
		if matchTitle(t, pattern, option) {
			result = append(result, t)
		}
	}
	return result
}

func matchTitle(title, pattern string, option MatchOption) bool {
	switch option {
	case Exact:
		return title == pattern
	case Contains:
		return strings.Contains(title, pattern)
	case StartsWith:
		return strings.HasPrefix(title, pattern)
	case EndsWith:
		return strings.HasSuffix(title, pattern)
	default:
		return false
	}
}

// JSONCategoryIndex is the default CategoryIndex backend: a flat JSON
// array of {title, categories}, loaded entirely into memory.
// Grounded on original_source/src/index/category.rs.
type JSONCategoryIndex struct {
	byTitle map[string][]string
}

// LoadJSONCategoryIndex reads the category list at path.
func LoadJSONCategoryIndex(path string) (*JSONCategoryIndex, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []corpus.WithCategories
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	byTitle := make(map[string][]string, len(entries))
	for _, e := range entries {
		byTitle[e.Title] = e.Categories
	}
	return &JSONCategoryIndex{byTitle: byTitle}, nil
}

func (idx *JSONCategoryIndex) Get(title string) ([]string, bool) {
	categories, ok := idx.byTitle[title]
	return categories, ok
}
