// Package diagnostics implements the three error kinds of the query
// pipeline (lex/parse, type, runtime) as a single structured error type
// carrying a phase, a code, and the offending fragment.
package diagnostics

import (
	"fmt"

	"github.com/hakurei-ql/hakurei/internal/token"
)

// Phase identifies which pipeline stage raised an error.
type Phase string

const (
	PhaseLexer    Phase = "lexer"
	PhaseParser   Phase = "parser"
	PhaseAnalyzer Phase = "analyzer"
	PhaseRuntime  Phase = "runtime"
)

// Code is a closed error code, grouped by phase.
type Code string

const (
	// Lexer.
	ErrInvalidCharacter  Code = "L001"
	ErrUnterminatedString Code = "L002"

	// Parser.
	ErrUnexpectedToken Code = "P001"
	ErrMissingParen    Code = "P002"

	// Analyzer.
	ErrUnknownFunction  Code = "A001"
	ErrArityMismatch    Code = "A002"
	ErrArgTypeMismatch  Code = "A003"
	ErrCombineFailed    Code = "A004"
	ErrHigherOrderShape Code = "A005"
	ErrNotImplemented   Code = "A006"

	// Runtime.
	ErrEmptyMatchSet  Code = "R001"
	ErrArticleMissing Code = "R002"
	ErrBodyUnavailable Code = "R003"
	ErrRuntimeNotImplemented Code = "R004"
)

var templates = map[Code]string{
	ErrInvalidCharacter:      "invalid character %q",
	ErrUnterminatedString:    "unterminated string literal",
	ErrUnexpectedToken:       "unexpected token: expected %s, got %s",
	ErrMissingParen:          "missing closing ')'",
	ErrUnknownFunction:       "unknown function %q",
	ErrArityMismatch:         "%q expects %d argument(s), got %d",
	ErrArgTypeMismatch:       "%q: expected %s, got %s",
	ErrCombineFailed:         "%s",
	ErrHigherOrderShape:      "%s",
	ErrNotImplemented:        "%q is reserved and not implemented",
	ErrEmptyMatchSet:         "%q matched no titles",
	ErrArticleMissing:        "no article found for title %q",
	ErrBodyUnavailable:       "%q requires the article corpus to be loaded",
	ErrRuntimeNotImplemented: "%q is reserved and not implemented",
}

// Error is the single error type surfaced by the lexer, parser,
// analyzer, and VM. The pipeline never recovers from one internally —
// it propagates to the top of Run, per §7.
type Error struct {
	Phase Phase
	Code  Code
	Args  []interface{}
	Token token.Token
	// QueryID correlates this error with the query run that produced
	// it (SPEC_FULL.md §3); empty outside internal/runtime.
	QueryID string
}

func (e *Error) Error() string {
	template, ok := templates[e.Code]
	if !ok {
		template = string(e.Code)
	}
	message := fmt.Sprintf(template, e.Args...)
	if e.Token.Line > 0 {
		return fmt.Sprintf("[%s %s] %d:%d: %s", e.Phase, e.Code, e.Token.Line, e.Token.Column, message)
	}
	return fmt.Sprintf("[%s %s] %s", e.Phase, e.Code, message)
}

// New builds an Error with no associated token.
func New(phase Phase, code Code, args ...interface{}) *Error {
	return &Error{Phase: phase, Code: code, Args: args}
}

// NewAt builds an Error anchored to a source token.
func NewAt(phase Phase, code Code, tok token.Token, args ...interface{}) *Error {
	return &Error{Phase: phase, Code: code, Token: tok, Args: args}
}
