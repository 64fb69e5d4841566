package index

import (
	"database/sql"
	"strings"

	"github.com/hakurei-ql/hakurei/internal/corpus"
	_ "modernc.org/sqlite"
)

// SQLiteTitleIndex and SQLiteCategoryIndex are an alternative backend
// for the two runtime-reference collaborators of §6.2, reading from a
// SQLite database instead of the JSON + offset-dump format. The core
// package never imports this one — it only ever sees the TitleIndex and
// CategoryIndex interfaces — so either backend plugs in transparently.
//
// Expected schema:
//
//	CREATE TABLE articles (title TEXT PRIMARY KEY, body TEXT);
//	CREATE TABLE categories (title TEXT, category TEXT);
//
// categories rows are read back in rowid order, which SQLite assigns by
// insertion order on an ordinary rowid table; callers populating the
// database must insert each title's categories in their intended order.
type SQLiteTitleIndex struct {
	db *sql.DB
}

// OpenSQLiteTitleIndex opens the SQLite database at path. LIKE is set
// case-sensitive so title matching agrees with the JSON backend's
// strings.Contains/HasPrefix/HasSuffix, which never fold case.
func OpenSQLiteTitleIndex(path string) (*SQLiteTitleIndex, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA case_sensitive_like = ON`); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteTitleIndex{db: db}, nil
}

// Close closes the underlying database handle.
func (idx *SQLiteTitleIndex) Close() error {
	return idx.db.Close()
}

func (idx *SQLiteTitleIndex) GetNoRedirect(title string) (*corpus.Article, bool) {
	var body string
	err := idx.db.QueryRow(`SELECT body FROM articles WHERE title = ?`, title).Scan(&body)
	if err != nil {
		return nil, false
	}
	return &corpus.Article{Title: title, Text: body}, true
}

func (idx *SQLiteTitleIndex) Get(title string) (*corpus.Article, bool) {
	a, ok := idx.GetNoRedirect(title)
	if !ok {
		return nil, false
	}
	if a.IsRedirect() {
		return idx.Get(a.RedirectTarget())
	}
	return a, true
}

func (idx *SQLiteTitleIndex) FindOneBy(title string) (string, bool) {
	var found string
	err := idx.db.QueryRow(`SELECT title FROM articles WHERE title = ?`, title).Scan(&found)
	if err != nil {
		return "", false
	}
	return found, true
}

func (idx *SQLiteTitleIndex) FindBy(pattern string, option MatchOption) []string {
	like, ok := likeClause(pattern, option)
	if !ok {
		return nil
	}
	rows, err := idx.db.Query(`SELECT title FROM articles WHERE title LIKE ? ESCAPE '\' ORDER BY rowid`, like)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return result
		}
		result = append(result, title)
	}
	return result
}

// likeClause builds a SQL LIKE pattern for option, escaping pattern's
// own literal % and _ characters so they are matched verbatim.
func likeClause(pattern string, option MatchOption) (string, bool) {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(pattern)
	switch option {
	case Exact:
		return escaped, true
	case Contains:
		return "%" + escaped + "%", true
	case StartsWith:
		return escaped + "%", true
	case EndsWith:
		return "%" + escaped, true
	default:
		return "", false
	}
}

// SQLiteCategoryIndex reads category lists from the categories table.
type SQLiteCategoryIndex struct {
	db *sql.DB
}

// OpenSQLiteCategoryIndex opens the SQLite database at path.
func OpenSQLiteCategoryIndex(path string) (*SQLiteCategoryIndex, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &SQLiteCategoryIndex{db: db}, nil
}

// Close closes the underlying database handle.
func (idx *SQLiteCategoryIndex) Close() error {
	return idx.db.Close()
}

func (idx *SQLiteCategoryIndex) Get(title string) ([]string, bool) {
	rows, err := idx.db.Query(`SELECT category FROM categories WHERE title = ? ORDER BY rowid`, title)
	if err != nil {
		return nil, false
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, false
		}
		categories = append(categories, category)
	}
	if len(categories) == 0 {
		return nil, false
	}
	return categories, true
}
