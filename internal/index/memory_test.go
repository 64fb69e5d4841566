package index_test

import (
	"testing"

	"github.com/hakurei-ql/hakurei/internal/corpus"
	"github.com/hakurei-ql/hakurei/internal/index"
)

func fixtureArticles() []*corpus.Article {
	return []*corpus.Article{
		{Title: "abcdef", Text: "[[분류:Letters]] some text"},
		{Title: "abcxyz", Text: "other text"},
		{Title: "Old", Text: "#redirect abcdef"},
	}
}

func TestMemoryTitleIndexFindByContains(t *testing.T) {
	idx := index.NewMemoryTitleIndex(fixtureArticles())
	matches := idx.FindBy("bcd", index.Contains)
	if len(matches) != 1 || matches[0] != "abcdef" {
		t.Fatalf("unexpected matches: %v", matches)
	}
}

func TestMemoryTitleIndexRedirect(t *testing.T) {
	idx := index.NewMemoryTitleIndex(fixtureArticles())
	a, ok := idx.Get("Old")
	if !ok || a.Title != "abcdef" {
		t.Fatalf("expected redirect to resolve to abcdef, got %+v %v", a, ok)
	}
}

func TestMemoryCategoryIndex(t *testing.T) {
	idx := index.NewMemoryCategoryIndex(fixtureArticles())
	categories, ok := idx.Get("abcdef")
	if !ok || len(categories) != 1 || categories[0] != "Letters" {
		t.Fatalf("unexpected categories: %v %v", categories, ok)
	}
}
