package lexer_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/hakurei-ql/hakurei/internal/lexer"
	"github.com/hakurei-ql/hakurei/internal/token"
)

func allTypes(input string) []token.Type {
	l := lexer.New(input)
	var types []token.Type
	for {
		tok := l.Next()
		types = append(types, tok.Type)
		if tok.Type == token.Eof || tok.Type == token.Error {
			break
		}
	}
	return types
}

func TestNextTokenPunctuation(t *testing.T) {
	tests := []struct {
		input string
		want  []token.Type
	}{
		{"", []token.Type{token.Eof}},
		{"()", []token.Type{token.LParen, token.RParen, token.Eof}},
		{"&|,", []token.Type{token.And, token.Or, token.Comma, token.Eof}},
		{"123", []token.Type{token.Const, token.Eof}},
		{"abc_$1", []token.Type{token.Name, token.Eof}},
		{`"zxcjklv\"zxbxcvb"`, []token.Type{token.Const, token.Eof}},
	}
	for _, tt := range tests {
		got := allTypes(tt.input)
		if len(got) != len(tt.want) {
			t.Fatalf("input %q: got %v, want %v", tt.input, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("input %q: token %d got %s want %s", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestTitleStartswithCall(t *testing.T) {
	l := lexer.New(`title:startswith("abcd")`)
	want := []token.Type{token.Name, token.LParen, token.Const, token.RParen, token.Eof}
	for i, w := range want {
		tok := l.Next()
		if tok.Type != w {
			t.Fatalf("token %d: got %s want %s", i, tok.Type, w)
		}
	}
}

func TestNameWithColon(t *testing.T) {
	l := lexer.New("title:contains")
	tok := l.Next()
	if tok.Type != token.Name || tok.Literal != "title:contains" {
		t.Fatalf("got %#v", tok)
	}
}

func TestStringEscapes(t *testing.T) {
	l := lexer.New(`"a\nb\tc\\d"`)
	tok := l.Next()
	if tok.Type != token.Const {
		t.Fatalf("got %s", tok.Type)
	}
	want := "a\nb\tc\\d"
	if tok.Literal != want {
		t.Fatalf("got %q want %q", tok.Literal, want)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := lexer.New(`"abc`)
	tok := l.Next()
	if tok.Type != token.Error {
		t.Fatalf("got %s, want Error", tok.Type)
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := lexer.New("@")
	tok := l.Next()
	if tok.Type != token.Error {
		t.Fatalf("got %s, want Error", tok.Type)
	}
}

func TestPeekDoesNotAdvance(t *testing.T) {
	l := lexer.New("abc(1)")
	if p := l.Peek(); p != token.Name {
		t.Fatalf("peek got %s want Name", p)
	}
	tok := l.Next()
	if tok.Type != token.Name || tok.Literal != "abc" {
		t.Fatalf("next got %#v", tok)
	}
}

func TestWhitespaceSkipped(t *testing.T) {
	got := allTypes("  a   &   b  ")
	want := []token.Type{token.Name, token.And, token.Name, token.Eof}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

// scan collects every non-Eof, non-Error token the lexer produces.
func scan(t *testing.T, input string) []token.Token {
	t.Helper()
	l := lexer.New(input)
	var toks []token.Token
	for {
		tok := l.Next()
		if tok.Type == token.Eof || tok.Type == token.Error {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

// render re-serializes a token stream with canonical spacing: no space
// around parens/commas, a single space around & and |, string consts
// re-quoted, everything else emitted as its literal text.
func render(toks []token.Token) string {
	var b strings.Builder
	for _, tok := range toks {
		switch tok.Type {
		case token.LParen:
			b.WriteString("(")
		case token.RParen:
			b.WriteString(")")
		case token.Comma:
			b.WriteString(",")
		case token.And:
			b.WriteString(" & ")
		case token.Or:
			b.WriteString(" | ")
		case token.Const:
			if tok.Quoted {
				b.WriteString(strconv.Quote(tok.Literal))
			} else {
				b.WriteString(tok.Literal)
			}
		default:
			b.WriteString(tok.Literal)
		}
	}
	return b.String()
}

func sameTypesAndLiterals(a, b []token.Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Type != b[i].Type || a[i].Literal != b[i].Literal || a[i].Quoted != b[i].Quoted {
			return false
		}
	}
	return true
}

func TestRoundTripCanonicalSpacing(t *testing.T) {
	inputs := []string{
		`title:contains("fox")`,
		`title:contains("a")&title:startswith("b")`,
		`map(title:contains("a"),category)`,
		`count(set(flatten(map(title:contains("동방"),redirect))))`,
		`"a\nb\tc\\d"`,
		`123`,
	}
	for _, input := range inputs {
		first := scan(t, input)
		rendered := render(first)
		second := scan(t, rendered)
		if !sameTypesAndLiterals(first, second) {
			t.Fatalf("round trip mismatch for %q: rendered %q, got %v, want %v", input, rendered, second, first)
		}
	}
}
