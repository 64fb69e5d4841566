// Package printer renders a runtime.Value to the indented, multi-line
// text form a terminal user sees: brackets for Array, parens for Set,
// inline tuples, comma-grouped integers everywhere else.
package printer

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/hakurei-ql/hakurei/internal/runtime"
)

const indentStep = 4

// Printer accumulates output across one Print call. It is not safe for
// concurrent use, but a fresh Printer is cheap, so callers should build
// one per render rather than share one.
type Printer struct {
	buf    bytes.Buffer
	indent int
}

// New returns a ready-to-use Printer.
func New() *Printer {
	return &Printer{}
}

// Print renders v and returns the accumulated text.
func Print(v runtime.Value) string {
	p := New()
	p.print(v)
	return p.buf.String()
}

func (p *Printer) write(s string) {
	p.buf.WriteString(s)
}

func (p *Printer) writeIndent(n int) {
	p.buf.WriteString(strings.Repeat(" ", n))
}

func (p *Printer) print(v runtime.Value) {
	indent := p.indent

	switch e := v.(type) {
	case runtime.Article:
		p.write(e.Title)
	case runtime.Category:
		p.write(e.Name)
	case runtime.Integer:
		p.write(humanize.Comma(e.Value))
	case runtime.String:
		p.write(e.Value)

	case runtime.Array:
		p.writeIndent(indent)
		p.write("[\n")
		p.indent += indentStep
		for _, el := range e.Elems {
			p.writeIndent(p.indent)
			p.print(el)
			p.write(",\n")
		}
		p.indent -= indentStep
		p.writeIndent(indent)
		p.write("]\n")

	case runtime.Set:
		p.writeIndent(indent)
		p.write("(\n")
		p.indent += indentStep
		for _, el := range e.Elems {
			p.writeIndent(p.indent)
			p.print(el)
			p.write(",\n")
		}
		p.indent -= indentStep
		p.writeIndent(indent)
		p.write(")\n")

	case runtime.Tuple:
		p.write("(")
		for i, el := range e.Elems {
			p.print(el)
			if i != len(e.Elems)-1 {
				p.write(", ")
			}
		}
		p.write(")")

	default:
		// Only reachable for runtime.FuncRef, which a well-formed
		// query never surfaces as a final result; there is no
		// runtime.Value for types.None — see value.go.
		p.write(strconv.Quote("<unprintable>"))
	}
}
