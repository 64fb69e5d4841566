// Package index declares the two runtime-reference collaborators of
// §6.2 — TitleIndex and CategoryIndex — as interfaces, plus the
// concrete backends that implement them. The core VM never depends on
// a specific backend, only on these contracts; the on-disk format is
// entirely a backend concern.
package index

import "github.com/hakurei-ql/hakurei/internal/corpus"

// MatchOption selects how FindBy matches a title against pattern.
type MatchOption string

const (
	Exact      MatchOption = "Exact"
	Contains   MatchOption = "Contains"
	StartsWith MatchOption = "StartsWith"
	EndsWith   MatchOption = "EndsWith"
)

// TitleIndex maps article titles to their records.
type TitleIndex interface {
	// Get resolves title to its Article, following redirects
	// transitively. Returns false if no article is ultimately found.
	Get(title string) (*corpus.Article, bool)

	// GetNoRedirect returns the raw record stored under title, without
	// following a redirect it may contain.
	GetNoRedirect(title string) (*corpus.Article, bool)

	// FindOneBy returns title itself iff an exact match exists.
	FindOneBy(title string) (string, bool)

	// FindBy returns every title matching pattern under option.
	FindBy(pattern string, option MatchOption) []string
}

// CategoryIndex maps article titles to their ordered category lists.
type CategoryIndex interface {
	Get(title string) ([]string, bool)
}
