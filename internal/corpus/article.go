// Package corpus defines the article record shape backing the title and
// category indices (§6.2): a title, a raw text body, and the two
// properties derived from that body — whether the article is a
// redirect, and which categories it declares.
package corpus

import (
	"regexp"
	"strings"
)

var categoryPattern = regexp.MustCompile(`\[\[분류:(.*?)\]\]`)

const redirectPrefix = "#redirect"

// Article is a single wiki record as stored in the dump file.
type Article struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Categories returns the ordered list of category names declared in the
// article's text via `[[분류:NAME]]` markup, duplicates included.
func (a *Article) Categories() []string {
	matches := categoryPattern.FindAllStringSubmatch(a.Text, -1)
	categories := make([]string, 0, len(matches))
	for _, m := range matches {
		categories = append(categories, m[1])
	}
	return categories
}

// IsRedirect reports whether the article's text is a redirect marker
// rather than real content.
func (a *Article) IsRedirect() bool {
	return strings.HasPrefix(a.Text, redirectPrefix)
}

// RedirectTarget returns the title this article redirects to. Callers
// must check IsRedirect first; the result is meaningless otherwise.
func (a *Article) RedirectTarget() string {
	if len(a.Text) <= len(redirectPrefix)+1 {
		return ""
	}
	return strings.TrimSpace(a.Text[len(redirectPrefix)+1:])
}

// WithCategories is the title+categories projection serialized by the
// JSON category index backend.
type WithCategories struct {
	Title      string   `json:"title"`
	Categories []string `json:"categories"`
}

// ToWithCategories projects a into its title+categories form.
func (a *Article) ToWithCategories() WithCategories {
	return WithCategories{Title: a.Title, Categories: a.Categories()}
}
