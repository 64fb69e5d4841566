package index

import (
	"sort"

	"github.com/hakurei-ql/hakurei/internal/corpus"
)

// MemoryTitleIndex and MemoryCategoryIndex are an in-memory TitleIndex
// and CategoryIndex, built directly from a slice of articles, used by
// the end-to-end scenario fixtures of §8 rather than a dump file.
type MemoryTitleIndex struct {
	byTitle map[string]*corpus.Article
	titles  []string
}

// NewMemoryTitleIndex indexes articles by title.
func NewMemoryTitleIndex(articles []*corpus.Article) *MemoryTitleIndex {
	byTitle := make(map[string]*corpus.Article, len(articles))
	titles := make([]string, 0, len(articles))
	for _, a := range articles {
		byTitle[a.Title] = a
		titles = append(titles, a.Title)
	}
	sort.Strings(titles)
	return &MemoryTitleIndex{byTitle: byTitle, titles: titles}
}

func (idx *MemoryTitleIndex) GetNoRedirect(title string) (*corpus.Article, bool) {
	a, ok := idx.byTitle[title]
	return a, ok
}

func (idx *MemoryTitleIndex) Get(title string) (*corpus.Article, bool) {
	a, ok := idx.byTitle[title]
	if !ok {
		return nil, false
	}
	if a.IsRedirect() {
		return idx.Get(a.RedirectTarget())
	}
	return a, true
}

func (idx *MemoryTitleIndex) FindOneBy(title string) (string, bool) {
	_, ok := idx.byTitle[title]
	return title, ok
}

func (idx *MemoryTitleIndex) FindBy(pattern string, option MatchOption) []string {
	var result []string
	for _, t := range idx.titles {
		if matchTitle(t, pattern, option) {
			result = append(result, t)
		}
	}
	return result
}

// MemoryCategoryIndex is the CategoryIndex companion to
// MemoryTitleIndex, derived from the same articles.
type MemoryCategoryIndex struct {
	byTitle map[string][]string
}

// NewMemoryCategoryIndex derives category lists from articles.
func NewMemoryCategoryIndex(articles []*corpus.Article) *MemoryCategoryIndex {
	byTitle := make(map[string][]string, len(articles))
	for _, a := range articles {
		byTitle[a.Title] = a.Categories()
	}
	return &MemoryCategoryIndex{byTitle: byTitle}
}

func (idx *MemoryCategoryIndex) Get(title string) ([]string, bool) {
	categories, ok := idx.byTitle[title]
	return categories, ok
}
