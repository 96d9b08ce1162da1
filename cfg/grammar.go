package cfg

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Grammar represents a validated context-free grammar G = (N, T, P, S).
// Clients construct one with New or with a GrammarBuilder; there are no
// mutation operations.
type Grammar struct {
	Name         string // a grammar identifier, used for tracing
	nonterminals *treeset.Set
	terminals    *treeset.Set
	productions  []*Production
	start        Symbol
}

// ProductionSpec is the construction shape for a single production, as it
// appears in the interchange format: symbol names, disambiguated by
// membership in N or T. An empty RHS denotes epsilon.
type ProductionSpec struct {
	LHS string
	RHS []string
}

// New constructs a grammar from the tuple (N, T, P, S) and validates it.
// Production serials are assigned in declaration order. New returns an
// *InvalidGrammarError if the tuple is malformed (see Validate).
func New(name string, nonterminals, terminals []string, prods []ProductionSpec, start string) (*Grammar, error) {
	g := &Grammar{
		Name:         name,
		nonterminals: treeset.NewWith(utils.StringComparator),
		terminals:    treeset.NewWith(utils.StringComparator),
		start:        N(start),
	}
	for _, nt := range nonterminals {
		g.nonterminals.Add(nt)
	}
	for _, t := range terminals {
		g.terminals.Add(t)
	}
	for serial, spec := range prods {
		p := &Production{
			LHS:    N(spec.LHS),
			RHS:    make([]Symbol, 0, len(spec.RHS)),
			Serial: serial,
		}
		for _, name := range spec.RHS {
			if g.terminals.Contains(name) {
				p.RHS = append(p.RHS, T(name))
			} else {
				p.RHS = append(p.RHS, N(name)) // flagged by Validate if undefined
			}
		}
		g.productions = append(g.productions, p)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	tracer().Infof("grammar %q with %d productions", name, len(g.productions))
	return g, nil
}

// Validate checks the grammar tuple. It is idempotent and side-effect-free.
// The following conditions are rejected:
//
//   ▪ start symbol not a member of N
//   ▪ N and T not disjoint
//   ▪ a production whose LHS is not in N
//   ▪ a RHS symbol that is neither in N nor in T
//   ▪ a non-terminal without any production (unreachable productions are
//     legal, a non-terminal with zero productions is not)
//
func (g *Grammar) Validate() error {
	if !g.nonterminals.Contains(g.start.Name) {
		return invalid("start symbol %q is not a non-terminal", g.start.Name)
	}
	var overlap []string
	g.terminals.Each(func(_ int, v interface{}) {
		if g.nonterminals.Contains(v.(string)) {
			overlap = append(overlap, v.(string))
		}
	})
	if len(overlap) > 0 {
		return invalid("N and T are not disjoint: %v", overlap)
	}
	hasProduction := make(map[string]bool, g.nonterminals.Size())
	for _, p := range g.productions {
		if !g.nonterminals.Contains(p.LHS.Name) {
			return invalid("production %d: LHS %q is not a non-terminal", p.Serial, p.LHS.Name)
		}
		hasProduction[p.LHS.Name] = true
		for _, sym := range p.RHS {
			if !g.nonterminals.Contains(sym.Name) && !g.terminals.Contains(sym.Name) {
				return invalid("production %d references undefined symbol %q", p.Serial, sym.Name)
			}
		}
	}
	var missing string
	g.nonterminals.Each(func(_ int, v interface{}) {
		if missing == "" && !hasProduction[v.(string)] {
			missing = v.(string)
		}
	})
	if missing != "" {
		return invalid("non-terminal %q has no production", missing)
	}
	return nil
}

// Start returns the start symbol S.
func (g *Grammar) Start() Symbol {
	return g.start
}

// Productions returns the ordered production sequence P. Callers must not
// modify the returned slice.
func (g *Grammar) Productions() []*Production {
	return g.productions
}

// ProductionsOf returns all productions with the given non-terminal as
// their LHS, in declaration order.
func (g *Grammar) ProductionsOf(A Symbol) []*Production {
	var prods []*Production
	for _, p := range g.productions {
		if p.LHS == A {
			prods = append(prods, p)
		}
	}
	return prods
}

// IsNonterminal checks membership of a name in N.
func (g *Grammar) IsNonterminal(name string) bool {
	return g.nonterminals.Contains(name)
}

// IsTerminal checks membership of a name in T.
func (g *Grammar) IsTerminal(name string) bool {
	return g.terminals.Contains(name)
}

// EachNonterminal iterates over N in lexicographic order, applying a mapper
// function to every non-terminal. Iteration stops as soon as the mapper
// returns non-nil, and that value is returned.
func (g *Grammar) EachNonterminal(mapper func(A Symbol) interface{}) interface{} {
	it := g.nonterminals.Iterator()
	for it.Next() {
		if v := mapper(N(it.Value().(string))); v != nil {
			return v
		}
	}
	return nil
}

// EachTerminal iterates over T in lexicographic order, applying a mapper
// function to every terminal. Iteration stops as soon as the mapper returns
// non-nil, and that value is returned.
func (g *Grammar) EachTerminal(mapper func(t Symbol) interface{}) interface{} {
	it := g.terminals.Iterator()
	for it.Next() {
		if v := mapper(T(it.Value().(string))); v != nil {
			return v
		}
	}
	return nil
}

// Nonterminals returns the names in N in lexicographic order.
func (g *Grammar) Nonterminals() []string {
	names := make([]string, 0, g.nonterminals.Size())
	it := g.nonterminals.Iterator()
	for it.Next() {
		names = append(names, it.Value().(string))
	}
	return names
}

// Terminals returns the names in T in lexicographic order.
func (g *Grammar) Terminals() []string {
	names := make([]string, 0, g.terminals.Size())
	it := g.terminals.Iterator()
	for it.Next() {
		names = append(names, it.Value().(string))
	}
	return names
}

// Dump writes the grammar to the trace, for debugging purposes.
func (g *Grammar) Dump() {
	tracer().Debugf("grammar %q, start = %s", g.Name, g.start.Name)
	tracer().Debugf("N = %v", g.Nonterminals())
	tracer().Debugf("T = %v", g.Terminals())
	for _, p := range g.productions {
		tracer().Debugf("%3d: %s", p.Serial, p)
	}
}
