package cyk

import (
	"github.com/npillmayer/chomsky"
	"github.com/npillmayer/chomsky/cfg"
	"github.com/npillmayer/chomsky/cnf"
)

// Result is the outcome of a parse call. Tree is present iff the input was
// accepted. Rejection is a normal, non-error outcome.
type Result struct {
	Accepted bool
	Tree     *Node
}

// Parse decides membership of a token sequence in the language of a CNF
// grammar and, on acceptance, reconstructs one derivation tree shaped like
// the original grammar. Every token is checked against the terminal
// alphabet first; a token outside T yields an *UnknownSymbolError.
//
// The empty input is accepted iff the (possibly promoted) start symbol is
// nullable; its tree is the start symbol's ε-derivation, a zero-width
// subtree.
func Parse(g *cnf.Grammar, tokens []string) (Result, error) {
	for i, tok := range tokens {
		if !g.HasTerminal(tok) {
			return Result{}, &UnknownSymbolError{Token: tok, Position: i}
		}
	}
	n := len(tokens)
	if n == 0 {
		if !g.AcceptsEmpty() {
			return Result{}, nil
		}
		r := &rebuilder{g: g, eps: epsilonChoice(g.Original())}
		return Result{Accepted: true, Tree: r.epsTree(g.Original().Start(), 0)}, nil
	}
	tbl := fill(g, tokens)
	start := g.Start()
	if _, ok := tbl.cell(0, n)[start.Name]; !ok {
		tracer().Debugf("start symbol %s does not cover the input", start.Name)
		return Result{}, nil
	}
	r := &rebuilder{g: g, tbl: tbl, eps: epsilonChoice(g.Original())}
	nodes := r.rebuild(start, 0, n)
	if len(nodes) != 1 {
		// cannot happen: the start symbol is never spliced into a parent
		panic("CYK reconstruction did not produce a unique root")
	}
	return Result{Accepted: true, Tree: nodes[0]}, nil
}

// Recognize is a convenience wrapper for membership tests without tree
// reconstruction cost beyond table filling.
func Recognize(g *cnf.Grammar, tokens []string) (bool, error) {
	r, err := Parse(g, tokens)
	return r.Accepted, err
}

// fill populates the CYK table bottom-up, by increasing span length.
func fill(g *cnf.Grammar, tokens []string) *table {
	n := len(tokens)
	tbl := newTable(n)
	for i, tok := range tokens {
		for _, p := range g.TerminalProductions(tok) {
			tbl.insert(i, 1, p.LHS.Name, &backpointer{prod: p, leaf: tok})
		}
	}
	tbl.dump(1)
	for l := 2; l <= n; l++ {
		for i := 0; i+l <= n; i++ {
			for k := 1; k < l; k++ {
				left := tbl.cell(i, k)
				right := tbl.cell(i+k, l-k)
				if len(left) == 0 || len(right) == 0 {
					continue
				}
				for B := range left {
					for C := range right {
						for _, p := range g.BinaryProductions(cfg.N(B), cfg.N(C)) {
							tbl.insert(i, l, p.LHS.Name, &backpointer{prod: p, split: k})
						}
					}
				}
			}
		}
		tbl.dump(l)
	}
	return tbl
}

// --- Derivation tree reconstruction ------------------------------------------

// rebuilder expands backpointers recursively (recursion depth is bounded by
// the input length) and splices away normalization artifacts while doing
// so, consulting the grammar's provenance records. eps fixes one
// ε-derivation per nullable non-terminal of the original grammar, for
// re-inserting deleted nullables as complete subtrees.
type rebuilder struct {
	g   *cnf.Grammar
	tbl *table
	eps map[string]*cfg.Production
}

// epsilonChoice picks, for every nullable non-terminal, the production its
// canonical ε-derivation starts with: the first production (in serial
// order) whose RHS symbols all have their choice fixed already. A choice's
// RHS symbols were therefore always fixed strictly earlier, so expanding
// choices terminates.
func epsilonChoice(g *cfg.Grammar) map[string]*cfg.Production {
	choice := make(map[string]*cfg.Production)
	for changed := true; changed; {
		changed = false
		for _, p := range g.Productions() {
			if _, ok := choice[p.LHS.Name]; ok {
				continue
			}
			all := true
			for _, sym := range p.RHS {
				if sym.IsTerminal() {
					all = false
					break
				}
				if _, ok := choice[sym.Name]; !ok {
					all = false
					break
				}
			}
			if all {
				choice[p.LHS.Name] = p
				changed = true
			}
		}
	}
	return choice
}

// rebuild reconstructs the tree fragment for non-terminal A over span
// (i,l). It returns a node list rather than a single node: synthetic
// helpers (binarization segments, terminal proxies, the promoted start)
// dissolve into the nodes they stand in for and are represented by their
// children.
func (r *rebuilder) rebuild(A cfg.Symbol, i, l int) []*Node {
	bp := r.tbl.cell(i, l)[A.Name]
	if bp == nil {
		// cannot happen: backpointers are only followed downwards from the
		// accepting start cell
		panic("CYK backpointer chain is broken")
	}
	var kids []*Node
	if bp.isLeaf() {
		kids = []*Node{{
			Symbol: cfg.T(bp.leaf),
			Extent: chomsky.Span{uint64(i), uint64(i + 1)},
		}}
	} else {
		B, C := bp.prod.RHS[0], bp.prod.RHS[1]
		kids = r.rebuild(B, i, bp.split)
		kids = append(kids, r.rebuild(C, i+bp.split, l-bp.split)...)
	}
	if syn := r.g.Synthetic(A); syn != nil && syn.Kind != cnf.SyntheticStart {
		return kids // helper node dissolves into its children
	}
	return r.emit(A, bp.prod, kids)
}

// emit wraps reconstructed children into the node(s) a CNF production
// stands for: the collapsed unit chain is re-inserted as unary links, and
// nullable symbols deleted during epsilon elimination reappear as
// ε-derivation subtrees at their original RHS positions. A synthetic
// promoted start is elided, leaving the original start symbol as the
// outermost node.
func (r *rebuilder) emit(A cfg.Symbol, p *cnf.Production, kids []*Node) []*Node {
	span := kids[0].Extent
	for _, kid := range kids[1:] {
		span = span.Extend(kid.Extent)
	}
	node := &Node{
		Symbol:   chainFoot(A, p),
		Extent:   span,
		Children: r.reinsert(p.Deleted, kids, span),
	}
	for step := len(p.Chain) - 1; step >= 0; step-- {
		parent := A
		if step > 0 {
			parent = p.Chain[step-1].Via
		}
		node = &Node{
			Symbol:   parent,
			Extent:   span,
			Children: r.reinsert(p.Chain[step].Deleted, []*Node{node}, span),
		}
	}
	if syn := r.g.Synthetic(A); syn != nil {
		// promoted start: splice the original start symbol up
		return node.Children
	}
	return []*Node{node}
}

// chainFoot is the symbol of the innermost node of a collapsed unit chain,
// i.e. the LHS of the production the chain finally derives through.
func chainFoot(A cfg.Symbol, p *cnf.Production) cfg.Symbol {
	if len(p.Chain) == 0 {
		return A
	}
	return p.Chain[len(p.Chain)-1].Via
}

// reinsert merges ε-derivation subtrees for deleted nullable symbols back
// into a children list, at the RHS positions recorded during epsilon
// elimination.
func (r *rebuilder) reinsert(deleted []cnf.DeletedSym, kids []*Node, span chomsky.Span) []*Node {
	if len(deleted) == 0 {
		return kids
	}
	out := make([]*Node, 0, len(kids)+len(deleted))
	cursor := span.From()
	d, k := 0, 0
	for pos := 0; pos < len(kids)+len(deleted); pos++ {
		if d < len(deleted) && deleted[d].Pos == pos {
			out = append(out, r.epsTree(deleted[d].Sym, cursor))
			d++
			continue
		}
		out = append(out, kids[k])
		cursor = kids[k].Extent.To()
		k++
	}
	return out
}

// epsTree expands the canonical ε-derivation of a nullable symbol into a
// zero-width subtree at input position at. A symbol with a production
// A -> ε becomes a childless node; an indirectly nullable symbol carries
// the subtrees of its RHS symbols.
func (r *rebuilder) epsTree(sym cfg.Symbol, at uint64) *Node {
	node := &Node{
		Symbol: sym,
		Extent: chomsky.Span{at, at},
	}
	if p := r.eps[sym.Name]; p != nil {
		for _, rhs := range p.RHS {
			node.Children = append(node.Children, r.epsTree(rhs, at))
		}
	}
	return node
}
