package cyk

import (
	"fmt"
	"strings"

	"github.com/npillmayer/chomsky"
	"github.com/npillmayer/chomsky/cfg"
)

// Node is a node of a derivation tree. Internal nodes carry a non-terminal
// and their children match a production of the original grammar for that
// symbol; leaves carry a matched terminal. A node covering no input (a
// nullable non-terminal re-inserted by reconstruction, or the start symbol
// of an ε-parse) has neither children nor a terminal.
//
// Trees are owned exclusively by the caller that requested the parse and
// are immutable once built.
type Node struct {
	Symbol   cfg.Symbol
	Extent   chomsky.Span
	Children []*Node
}

// IsLeaf is true for nodes carrying a matched terminal.
func (node *Node) IsLeaf() bool {
	return node.Symbol.IsTerminal()
}

// Yield returns the concatenation of leaf terminals left-to-right. For any
// accepted input the yield of the reconstructed tree equals that input.
func (node *Node) Yield() []string {
	var leaves []string
	node.collectLeaves(&leaves)
	return leaves
}

func (node *Node) collectLeaves(leaves *[]string) {
	if node.IsLeaf() {
		*leaves = append(*leaves, node.Symbol.Name)
		return
	}
	for _, ch := range node.Children {
		ch.collectLeaves(leaves)
	}
}

// String renders the tree indented, one node per line.
func (node *Node) String() string {
	var b strings.Builder
	node.repr(&b, 0)
	return b.String()
}

func (node *Node) repr(b *strings.Builder, level int) {
	if level > 0 {
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("  ", level))
	if node.IsLeaf() {
		fmt.Fprintf(b, "'%s'", node.Symbol.Name)
		return
	}
	b.WriteString(node.Symbol.Name)
	for _, ch := range node.Children {
		ch.repr(b, level+1)
	}
}
