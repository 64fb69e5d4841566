// Package token defines the lexical token vocabulary for the query
// language: a closed set of punctuation, names, and constants.
package token

import "fmt"

// Type identifies which of the closed set of token kinds a Token carries.
type Type string

const (
	And    Type = "AND"    // &
	Or     Type = "OR"     // |
	LParen Type = "LPAREN" // (
	RParen Type = "RPAREN" // )
	Comma  Type = "COMMA"  // ,
	Name   Type = "NAME"   // title:contains, map, $x, _foo, ...
	Const  Type = "CONST"  // 123, "quoted string"
	Eof    Type = "EOF"
	Error  Type = "ERROR"
)

// Token is a single lexical unit with its source position and, for Name
// and Const, the literal text it carries.
//
// Quoted distinguishes a Const that came from a quoted string literal
// ("123") from one that came from a bare digit sequence (123); both
// carry Type == Const, since the grammar treats them as one kind, but
// the analyzer needs to know which so that a quoted numeral is typed
// as String rather than Integer.
type Token struct {
	Type    Type
	Literal string
	Quoted  bool
	Line    int
	Column  int
}

func (t Token) String() string {
	if t.Literal == "" {
		return fmt.Sprintf("%s@%d:%d", t.Type, t.Line, t.Column)
	}
	return fmt.Sprintf("%s(%q)@%d:%d", t.Type, t.Literal, t.Line, t.Column)
}
