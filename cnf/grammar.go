package cnf

import (
	"strings"

	"github.com/npillmayer/chomsky/cfg"
)

// SyntheticKind tags the kinds of helper non-terminals a normalization run
// may introduce.
type SyntheticKind int8

// Helper non-terminals are introduced for start isolation, for proxying a
// terminal out of a mixed RHS, and for binarizing long RHS segments.
const (
	SyntheticStart SyntheticKind = iota + 1
	SyntheticTermProxy
	SyntheticBinHelper
)

// Synthetic is the provenance record of a helper non-terminal. It names the
// original construct the helper stands in for, sufficient to collapse the
// helper away when reconstructing a derivation tree.
type Synthetic struct {
	Kind     SyntheticKind
	Origin   int    // serial of the original production (binarization helpers), -1 otherwise
	Segment  int    // RHS offset the helper covers (binarization helpers)
	Terminal string // proxied terminal name (terminal proxies)
}

// DeletedSym records a nullable symbol removed from a production's RHS
// during epsilon elimination, together with its position in the original
// RHS. Reconstruction re-inserts the symbol together with a zero-width
// ε-derivation subtree below it.
type DeletedSym struct {
	Pos int
	Sym cfg.Symbol
}

// ChainStep records one collapsed unit-production step. A production with
// chain [s₁ … sₙ] stands for the derivation
//
//    LHS → s₁.Via → … → sₙ.Via → RHS
//
// where every step is transparent: reconstruction re-inserts the Via
// non-terminals as unary tree links.
type ChainStep struct {
	Via     cfg.Symbol
	Origin  int // original production serial of the collapsed unit production
	Deleted []DeletedSym
}

// Production is a CNF production. RHS is a single terminal, two
// non-terminals, or empty (start epsilon only). Origin, Chain and Deleted
// are the provenance linking it back to the original grammar.
type Production struct {
	LHS     cfg.Symbol
	RHS     []cfg.Symbol
	Serial  int          // assigned per normalization call, deterministic
	Origin  int          // serial of the original production, -1 for synthetic rules
	Chain   []ChainStep  // collapsed unit-chain, outermost first
	Deleted []DeletedSym // nullable symbols removed from the origin's RHS
}

// IsUnit is true for productions of the form A -> B with B a non-terminal.
func (p *Production) IsUnit() bool {
	return len(p.RHS) == 1 && !p.RHS[0].IsTerminal()
}

func (p *Production) String() string {
	var b strings.Builder
	b.WriteString(p.LHS.Name)
	b.WriteString(" ::= [")
	for i, sym := range p.RHS {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(sym.Name)
	}
	b.WriteString("]")
	return b.String()
}

// Grammar is a grammar in Chomsky Normal Form, derived from a cfg.Grammar
// by Normalize. It retains a reference to the original grammar and the
// provenance map for all helper symbols.
type Grammar struct {
	orig         *cfg.Grammar
	start        cfg.Symbol
	acceptsEmpty bool
	productions  []*Production
	synthetics   map[string]*Synthetic        // helper name → provenance
	terminal     map[string][]*Production     // terminal name → A → a
	binary       map[[2]string][]*Production  // (B, C) names → A → B C
}

// Original returns the grammar this CNF grammar was normalized from.
func (g *Grammar) Original() *cfg.Grammar {
	return g.orig
}

// Start returns the (possibly promoted) start symbol.
func (g *Grammar) Start() cfg.Symbol {
	return g.start
}

// AcceptsEmpty is true iff ε is in the language, i.e. the start symbol
// carries an epsilon production.
func (g *Grammar) AcceptsEmpty() bool {
	return g.acceptsEmpty
}

// Productions returns the CNF production sequence. Callers must not modify
// the returned slice.
func (g *Grammar) Productions() []*Production {
	return g.productions
}

// HasTerminal checks membership of a token name in the original T.
func (g *Grammar) HasTerminal(name string) bool {
	return g.orig.IsTerminal(name)
}

// TerminalProductions returns all productions A → a for the given terminal,
// in serial order.
func (g *Grammar) TerminalProductions(terminal string) []*Production {
	return g.terminal[terminal]
}

// BinaryProductions returns all productions A → B C for the pair (B, C),
// in serial order.
func (g *Grammar) BinaryProductions(B, C cfg.Symbol) []*Production {
	return g.binary[[2]string{B.Name, C.Name}]
}

// Synthetic returns the provenance record for a helper non-terminal, or
// nil if the symbol stems from the original grammar.
func (g *Grammar) Synthetic(sym cfg.Symbol) *Synthetic {
	return g.synthetics[sym.Name]
}

// index (re)builds the terminal- and binary-production lookup maps and
// assigns final serials.
func (g *Grammar) index() {
	g.terminal = make(map[string][]*Production)
	g.binary = make(map[[2]string][]*Production)
	for serial, p := range g.productions {
		p.Serial = serial
		switch {
		case len(p.RHS) == 1:
			t := p.RHS[0].Name
			g.terminal[t] = append(g.terminal[t], p)
		case len(p.RHS) == 2:
			key := [2]string{p.RHS[0].Name, p.RHS[1].Name}
			g.binary[key] = append(g.binary[key], p)
		}
	}
}

// checkShape verifies the CNF invariant on every production.
func (g *Grammar) checkShape() error {
	for _, p := range g.productions {
		switch len(p.RHS) {
		case 0:
			if p.LHS != g.start {
				return conversionError("epsilon production survived for non-start %s", p.LHS.Name)
			}
		case 1:
			if !p.RHS[0].IsTerminal() {
				return conversionError("unit production survived: %s", p)
			}
		case 2:
			if p.RHS[0].IsTerminal() || p.RHS[1].IsTerminal() {
				return conversionError("terminal in binary production: %s", p)
			}
		default:
			return conversionError("overlong production survived: %s", p)
		}
	}
	return nil
}

// Dump writes the CNF grammar to the trace, for debugging purposes.
func (g *Grammar) Dump() {
	tracer().Debugf("CNF grammar for %q, start = %s, ε-accepting = %v",
		g.orig.Name, g.start.Name, g.acceptsEmpty)
	for _, p := range g.productions {
		tracer().Debugf("%3d: %s  (origin %d)", p.Serial, p, p.Origin)
	}
}
