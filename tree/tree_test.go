package tree_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Warfley/gold-parser-tools/lexer"
	"github.com/Warfley/gold-parser-tools/table"
	"github.com/Warfley/gold-parser-tools/tree"
)

func sym(name string, kind table.SymbolKind) *table.Symbol {
	return &table.Symbol{Name: name, Kind: kind}
}

func leaf(symName, text string) *tree.Leaf {
	return &tree.Leaf{Token: &lexer.Token{Symbol: sym(symName, table.Terminal), Text: text}}
}

func TestLeavesReturnsLeftToRight(t *testing.T) {
	root := &tree.Internal{
		Sym: sym("Expression", table.NonTerminal),
		Children: []tree.Node{
			leaf("Identifier", "a"),
			leaf("Operator", "+"),
			&tree.Internal{
				Sym:      sym("Value", table.NonTerminal),
				Children: []tree.Node{leaf("Constant", "3")},
			},
		},
	}

	leaves := tree.Leaves(root)
	require.Len(t, leaves, 3)
	assert.Equal(t, "a", leaves[0].Token.Text)
	assert.Equal(t, "+", leaves[1].Token.Text)
	assert.Equal(t, "3", leaves[2].Token.Text)
}

func TestLeavesOnBareLeaf(t *testing.T) {
	l := leaf("Identifier", "x")
	leaves := tree.Leaves(l)
	require.Len(t, leaves, 1)
	assert.Same(t, l, leaves[0])
}

func TestStringCollapsesSingleChildChains(t *testing.T) {
	root := &tree.Internal{
		Sym: sym("Expression", table.NonTerminal),
		Children: []tree.Node{
			&tree.Internal{
				Sym:      sym("Value", table.NonTerminal),
				Children: []tree.Node{leaf("Identifier", "a")},
			},
		},
	}

	s := tree.String(root)
	assert.True(t, strings.Contains(s, "Expression:Value {"))
	assert.True(t, strings.Contains(s, `Identifier("a")`))
}

func TestStringTruncatesLongLiterals(t *testing.T) {
	long := strings.Repeat("x", 200)
	root := leaf("Identifier", long)

	s := tree.String(root)
	assert.True(t, strings.Contains(s, "..."))
	assert.False(t, strings.Contains(s, long))
}
