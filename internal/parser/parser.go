// Package parser implements the recursive-descent parser for the query
// grammar (§4.2): flat n-ary And/Or sequences, parenthesized
// sub-expressions, and function calls or bare function references.
package parser

import (
	"github.com/hakurei-ql/hakurei/internal/ast"
	"github.com/hakurei-ql/hakurei/internal/diagnostics"
	"github.com/hakurei-ql/hakurei/internal/lexer"
	"github.com/hakurei-ql/hakurei/internal/token"
)

// Parser consumes a token stream from the lexer and builds an AST.
type Parser struct {
	l   *lexer.Lexer
	cur token.Token
}

// New creates a Parser reading from l, primed with the first token.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.l.Next()
}

func (p *Parser) expect(tt token.Type) (token.Token, error) {
	if p.cur.Type != tt {
		return token.Token{}, diagnostics.NewAt(diagnostics.PhaseParser, diagnostics.ErrUnexpectedToken, p.cur, tt, p.cur.Type)
	}
	tok := p.cur
	p.advance()
	return tok, nil
}

// Parse parses a full command: an And-expression followed by EOF.
func Parse(input string) (*ast.Command, error) {
	p := New(lexer.New(input))
	and, err := p.parseAndExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != token.Eof {
		return nil, diagnostics.NewAt(diagnostics.PhaseParser, diagnostics.ErrUnexpectedToken, p.cur, token.Eof, p.cur.Type)
	}
	return &ast.Command{And: and}, nil
}

// expr_and := expr_or ("&" expr_or)*
func (p *Parser) parseAndExpr() (*ast.AndExpr, error) {
	first, err := p.parseOrExpr()
	if err != nil {
		return nil, err
	}
	operands := []*ast.OrExpr{first}
	for p.cur.Type == token.And {
		p.advance()
		next, err := p.parseOrExpr()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	return &ast.AndExpr{Operands: operands}, nil
}

// expr_or := expr_case ("|" expr_case)*
func (p *Parser) parseOrExpr() (*ast.OrExpr, error) {
	first, err := p.parseCase()
	if err != nil {
		return nil, err
	}
	operands := []*ast.Case{first}
	for p.cur.Type == token.Or {
		p.advance()
		next, err := p.parseCase()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	return &ast.OrExpr{Operands: operands}, nil
}

// expr_case := "(" expr_and ")" | func
func (p *Parser) parseCase() (*ast.Case, error) {
	if p.cur.Type == token.LParen {
		p.advance()
		and, err := p.parseAndExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, diagnostics.NewAt(diagnostics.PhaseParser, diagnostics.ErrMissingParen, p.cur)
		}
		return &ast.Case{Sub: and}, nil
	}
	fn, err := p.parseFunc()
	if err != nil {
		return nil, err
	}
	return &ast.Case{Func: fn}, nil
}

// func := NAME ("(" arg_list? ")")?
func (p *Parser) parseFunc() (*ast.FuncExpr, error) {
	nameTok, err := p.expect(token.Name)
	if err != nil {
		return nil, err
	}
	if p.cur.Type != token.LParen {
		return &ast.FuncExpr{Name: nameTok.Literal, IsUse: true}, nil
	}
	p.advance() // consume '('

	var args []*ast.Arg
	if p.cur.Type != token.RParen {
		args, err = p.parseArgList()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, diagnostics.NewAt(diagnostics.PhaseParser, diagnostics.ErrMissingParen, p.cur)
	}
	return &ast.FuncExpr{Name: nameTok.Literal, IsUse: false, Args: args}, nil
}

// arg_list := arg ("," arg)*
func (p *Parser) parseArgList() ([]*ast.Arg, error) {
	first, err := p.parseArg()
	if err != nil {
		return nil, err
	}
	args := []*ast.Arg{first}
	for p.cur.Type == token.Comma {
		p.advance()
		next, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		args = append(args, next)
	}
	return args, nil
}

// arg := CONST | expr_and
func (p *Parser) parseArg() (*ast.Arg, error) {
	if p.cur.Type == token.Const {
		lit := p.cur.Literal
		quoted := p.cur.Quoted
		p.advance()
		return &ast.Arg{Literal: &lit, Quoted: quoted}, nil
	}
	and, err := p.parseAndExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Arg{Expr: and}, nil
}
