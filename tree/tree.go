// Package tree defines the parse-tree node types produced by a parse and
// a printer for rendering them.
package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/Warfley/gold-parser-tools/lexer"
	"github.com/Warfley/gold-parser-tools/table"
)

// Node is either a Leaf wrapping a single token or an Internal node
// wrapping a symbol and its ordered children. The tree is built
// bottom-up during parsing; ownership of a subtree is linear, exactly
// one path leads to each node, which is why nodes hold slices rather
// than parent back-pointers.
type Node interface {
	// Symbol is the terminal a Leaf's token belongs to, or the
	// non-terminal an Internal node was reduced to.
	Symbol() *table.Symbol

	// IsLeaf reports whether this node wraps a single token.
	IsLeaf() bool
}

// Leaf wraps a single token consumed by a shift.
type Leaf struct {
	Token *lexer.Token
}

func (l *Leaf) Symbol() *table.Symbol { return l.Token.Symbol }
func (l *Leaf) IsLeaf() bool          { return true }

// Internal wraps a non-terminal and its children, left to right in the
// order they were consumed by the rule that produced this node.
type Internal struct {
	Sym      *table.Symbol
	Children []Node
}

func (n *Internal) Symbol() *table.Symbol { return n.Sym }
func (n *Internal) IsLeaf() bool          { return false }

// Leaves returns every Leaf reachable from n, left to right.
func Leaves(n Node) []*Leaf {
	var out []*Leaf
	var walk func(Node)
	walk = func(n Node) {
		if n == nil {
			return
		}
		if l, ok := n.(*Leaf); ok {
			out = append(out, l)
			return
		}
		for _, c := range n.(*Internal).Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// String renders n the way Fprint does, returning the result as a
// string.
func String(n Node) string {
	var b strings.Builder
	Fprint(&b, n, 2, 100)
	return b.String()
}

// Fprint renders a parse tree in an indented, brace-delimited form,
// collapsing single-child chains onto one line. indentSize controls
// indentation width; maxLineWidth bounds the line width: a piece that
// would overrun it starts a new line, and a leaf literal longer than it
// is truncated and marked with "...".
func Fprint(w io.Writer, n Node, indentSize, maxLineWidth int) {
	p := &printer{indentSize: indentSize, maxCol: maxLineWidth - 1, w: w}
	printNode(n, p)
	p.newline()
}

func printNode(n Node, p *printer) {
	if n == nil {
		return
	}
	if leaf, ok := n.(*Leaf); ok {
		printLeaf(leaf, p)
		return
	}

	in := n.(*Internal)
	label := in.Sym.Name
	children := in.Children
	for len(children) == 1 {
		if next, ok := children[0].(*Internal); ok {
			label = label + ":" + next.Sym.Name
			children = next.Children
			continue
		}
		break
	}

	p.print(label).print("{").newline().indent()
	for _, c := range children {
		printNode(c, p)
	}
	p.newline().dedent().print("}")
}

func printLeaf(l *Leaf, p *printer) {
	text := l.Token.Text
	name := l.Token.Symbol.Name
	if len(text) <= p.maxCol {
		p.print(fmt.Sprintf("%s(%q)", name, text))
	} else {
		p.print(fmt.Sprintf("%s(%q...)", name, text[:p.maxCol]))
	}
}

// printer is a minimal line-wrapping indent tracker used to render a
// tree as nested, indented braces.
type printer struct {
	w                  io.Writer
	indentSize, maxCol int
	indentLevel, col   int
	indentStr, space   string
	printed            bool
}

func (p *printer) print(s string) *printer {
	if len(s)+p.col+1 > p.maxCol {
		p.newline()
	}
	fmt.Fprint(p.w, p.space, s)
	p.col += len(p.space) + len(s)
	p.space = " "
	p.printed = true
	return p
}

func (p *printer) newline() *printer {
	if !p.printed {
		return p
	}
	fmt.Fprintln(p.w)
	p.space = p.indentStr
	p.printed = false
	p.col = len(p.space)
	return p
}

func (p *printer) indent() *printer {
	p.indentLevel++
	p.indentStr = strings.Repeat(" ", p.indentLevel*p.indentSize)
	if !p.printed {
		p.space = p.indentStr
	}
	return p
}

func (p *printer) dedent() *printer {
	p.indentLevel--
	p.indentStr = strings.Repeat(" ", p.indentLevel*p.indentSize)
	if !p.printed {
		p.space = p.indentStr
	}
	return p
}
