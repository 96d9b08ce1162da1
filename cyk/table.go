package cyk

import (
	"strings"

	"github.com/npillmayer/chomsky/cnf"
)

// A backpointer records how a non-terminal came to cover a span: either by
// matching a single terminal (Leaf, span length 1), or by a production
// A → B C with B covering the first k tokens of the span and C the rest
// (Split). Per cell and non-terminal only the best backpointer is kept:
// smallest split point first, ties broken by smallest production serial.
// The choice does not affect acceptance, only which tree is reconstructed,
// and makes reconstruction deterministic.
type backpointer struct {
	prod  *cnf.Production
	split int    // k of a Split; 0 for a Leaf
	leaf  string // matched terminal of a Leaf
}

func (bp *backpointer) isLeaf() bool {
	return bp.split == 0
}

// beatenBy reports whether a candidate (split, serial) beats this
// backpointer.
func (bp *backpointer) beatenBy(split, serial int) bool {
	if split != bp.split {
		return split < bp.split
	}
	return serial < bp.prod.Serial
}

// table is the triangular CYK table. cells[l-1][i] covers the input span
// starting at offset i with length l, and maps non-terminal names to their
// backpointer.
type table struct {
	n     int
	cells [][]map[string]*backpointer
}

func newTable(n int) *table {
	t := &table{n: n, cells: make([][]map[string]*backpointer, n)}
	for l := 1; l <= n; l++ {
		t.cells[l-1] = make([]map[string]*backpointer, n-l+1)
		for i := range t.cells[l-1] {
			t.cells[l-1][i] = make(map[string]*backpointer)
		}
	}
	return t
}

func (t *table) cell(i, l int) map[string]*backpointer {
	return t.cells[l-1][i]
}

// insert offers a backpointer candidate for non-terminal A over span (i,l),
// keeping only the best one per A.
func (t *table) insert(i, l int, A string, bp *backpointer) {
	cell := t.cell(i, l)
	if prev, ok := cell[A]; ok && !prev.beatenBy(bp.split, bp.prod.Serial) {
		return
	}
	cell[A] = bp
}

// dump writes one table row to the trace, for debugging purposes.
func (t *table) dump(l int) {
	for i, cell := range t.cells[l-1] {
		var names []string
		for name := range cell {
			names = append(names, name)
		}
		tracer().Debugf("cell(%d,%d) = {%s}", i, l, strings.Join(names, " "))
	}
}
