package cnf

import (
	"fmt"
	"strings"

	"github.com/npillmayer/chomsky/cfg"
)

// Normalize converts a validated grammar into Chomsky Normal Form. The
// transformation is deterministic: repeated calls on the same grammar yield
// identical CNF grammars, including helper names. It preserves the
// generated language, with ε retained iff ε is in the original language.
//
// Normalize never mutates its argument. The only error it can return is a
// *ConversionError, indicating a violated internal invariant (which should
// not occur on a validated grammar).
func Normalize(g *cfg.Grammar) (*Grammar, error) {
	n := newNormalizer(g)
	prods := make([]*Production, 0, len(g.Productions()))
	for _, p := range g.Productions() {
		rhs := append([]cfg.Symbol(nil), p.RHS...)
		prods = append(prods, &Production{LHS: p.LHS, RHS: rhs, Origin: p.Serial})
	}
	start := n.isolateStart(g.Start(), &prods)
	nullable := nullableSet(prods)
	tracer().Debugf("nullable set has %d members", len(nullable))
	prods = n.eliminateEpsilon(prods, nullable)
	prods = n.collapseUnitChains(prods)
	prods = n.reduce(prods)
	if nullable[start.Name] {
		prods = append(prods, &Production{LHS: start, RHS: nil, Origin: -1})
	}
	cnfg := &Grammar{
		orig:         g,
		start:        start,
		acceptsEmpty: nullable[start.Name],
		productions:  prods,
		synthetics:   n.synthetics,
	}
	cnfg.index()
	if err := cnfg.checkShape(); err != nil {
		return nil, err
	}
	tracer().Infof("normalized %q: %d productions, %d helpers",
		g.Name, len(prods), len(n.synthetics))
	return cnfg, nil
}

// normalizer holds the per-call state of one normalization run: the name
// pool for fresh helpers and the provenance map under construction.
type normalizer struct {
	orig       *cfg.Grammar
	taken      map[string]bool // names unavailable for helpers
	termProxy  map[string]cfg.Symbol
	synthetics map[string]*Synthetic
	proxyCnt   int
	helperCnt  int
}

func newNormalizer(g *cfg.Grammar) *normalizer {
	n := &normalizer{
		orig:       g,
		taken:      make(map[string]bool),
		termProxy:  make(map[string]cfg.Symbol),
		synthetics: make(map[string]*Synthetic),
	}
	g.EachNonterminal(func(A cfg.Symbol) interface{} {
		n.taken[A.Name] = true
		return nil
	})
	g.EachTerminal(func(t cfg.Symbol) interface{} {
		n.taken[t.Name] = true
		return nil
	})
	return n
}

func (n *normalizer) claim(name string) string {
	n.taken[name] = true
	return name
}

// --- Stage 1: start isolation ----------------------------------------------

// isolateStart promotes a fresh start symbol S₀ with S₀ → S whenever S
// occurs on any production's RHS, so that the start symbol never appears on
// a right-hand side.
func (n *normalizer) isolateStart(start cfg.Symbol, prods *[]*Production) cfg.Symbol {
	occurs := false
	for _, p := range *prods {
		for _, sym := range p.RHS {
			if sym == start {
				occurs = true
			}
		}
	}
	if !occurs {
		return start
	}
	name := start.Name + "0"
	for n.taken[name] {
		name += "0"
	}
	s0 := cfg.N(n.claim(name))
	n.synthetics[name] = &Synthetic{Kind: SyntheticStart, Origin: -1}
	tracer().Debugf("start symbol %s occurs on a RHS, promoting %s", start.Name, name)
	*prods = append([]*Production{{LHS: s0, RHS: []cfg.Symbol{start}, Origin: -1}}, *prods...)
	return s0
}

// --- Stage 2: epsilon elimination -------------------------------------------

// nullableSet computes the set of non-terminals that can derive ε, by
// fixed-point closure.
func nullableSet(prods []*Production) map[string]bool {
	nullable := make(map[string]bool)
	for changed := true; changed; {
		changed = false
		for _, p := range prods {
			if nullable[p.LHS.Name] {
				continue
			}
			all := true
			for _, sym := range p.RHS {
				if sym.IsTerminal() || !nullable[sym.Name] {
					all = false
					break
				}
			}
			if all {
				nullable[p.LHS.Name] = true
				changed = true
			}
		}
	}
	return nullable
}

func rhsKey(lhs cfg.Symbol, rhs []cfg.Symbol) string {
	var b strings.Builder
	b.WriteString(lhs.Name)
	for _, sym := range rhs {
		b.WriteString("\x1f")
		if sym.IsTerminal() {
			b.WriteString("'")
		}
		b.WriteString(sym.Name)
	}
	return b.String()
}

// eliminateEpsilon replaces every production containing nullable symbols by
// the variants obtained by deleting each subset of those symbols, then
// drops all ε-productions. Deleted symbols are recorded as provenance so
// that reconstruction can re-insert them. The start ε-production, if the
// language contains ε, is re-attached by Normalize after all stages.
func (n *normalizer) eliminateEpsilon(prods []*Production, nullable map[string]bool) []*Production {
	out := make([]*Production, 0, len(prods))
	seen := make(map[string]bool)
	for _, p := range prods {
		var positions []int
		for i, sym := range p.RHS {
			if !sym.IsTerminal() && nullable[sym.Name] {
				positions = append(positions, i)
			}
		}
		for mask := 0; mask < 1<<uint(len(positions)); mask++ {
			drop := make(map[int]bool, len(positions))
			var deleted []DeletedSym
			for i, pos := range positions {
				if mask>>uint(i)&1 == 1 {
					drop[pos] = true
					deleted = append(deleted, DeletedSym{Pos: pos, Sym: p.RHS[pos]})
				}
			}
			var rhs []cfg.Symbol
			for i, sym := range p.RHS {
				if !drop[i] {
					rhs = append(rhs, sym)
				}
			}
			if len(rhs) == 0 {
				continue // ε-productions are dropped; nullability is already accounted for
			}
			key := rhsKey(p.LHS, rhs)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, &Production{
				LHS:     p.LHS,
				RHS:     rhs,
				Origin:  p.Origin,
				Deleted: deleted,
			})
		}
	}
	return out
}

// --- Stage 3: unit-chain elimination -----------------------------------------

// collapseUnitChains removes productions of the form A → B by copying, for
// every B reachable from A over unit productions, B's non-unit productions
// up to A. The traversed chain is recorded on each copy: the derivation of
// A through the chain is transparent and will be re-inserted into
// reconstructed trees.
func (n *normalizer) collapseUnitChains(prods []*Production) []*Production {
	unit := make(map[string][]*Production)
	nonUnit := make(map[string][]*Production)
	var order []string // LHS names in first-appearance order
	for _, p := range prods {
		if _, ok := unit[p.LHS.Name]; !ok {
			if _, ok := nonUnit[p.LHS.Name]; !ok {
				order = append(order, p.LHS.Name)
			}
		}
		if p.IsUnit() {
			unit[p.LHS.Name] = append(unit[p.LHS.Name], p)
		} else {
			nonUnit[p.LHS.Name] = append(nonUnit[p.LHS.Name], p)
		}
	}
	out := make([]*Production, 0, len(prods))
	for _, A := range order {
		seen := make(map[string]bool)
		for _, p := range nonUnit[A] {
			seen[rhsKey(p.LHS, p.RHS)] = true
			out = append(out, p)
		}
		// breadth-first closure over unit productions of A
		visited := map[string]bool{A: true}
		type entry struct {
			sym   string
			chain []ChainStep
		}
		var queue []entry
		for _, u := range unit[A] {
			B := u.RHS[0]
			if !visited[B.Name] {
				visited[B.Name] = true
				queue = append(queue, entry{B.Name, []ChainStep{{Via: B, Origin: u.Origin, Deleted: u.Deleted}}})
			}
		}
		lhs := cfg.N(A)
		for len(queue) > 0 {
			e := queue[0]
			queue = queue[1:]
			for _, q := range nonUnit[e.sym] {
				key := rhsKey(lhs, q.RHS)
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, &Production{
					LHS:     lhs,
					RHS:     q.RHS,
					Origin:  q.Origin,
					Chain:   e.chain,
					Deleted: q.Deleted,
				})
			}
			for _, u := range unit[e.sym] {
				B := u.RHS[0]
				if visited[B.Name] {
					continue
				}
				visited[B.Name] = true
				step := ChainStep{Via: B, Origin: u.Origin, Deleted: u.Deleted}
				chain := append(append([]ChainStep(nil), e.chain...), step)
				queue = append(queue, entry{B.Name, chain})
			}
		}
	}
	return out
}

// --- Stage 4: terminal proxies and binarization -------------------------------

// proxyFor returns the proxy non-terminal deriving just the given terminal,
// creating it on first use. One proxy is reused per distinct terminal.
func (n *normalizer) proxyFor(t cfg.Symbol) (cfg.Symbol, *Production) {
	if proxy, ok := n.termProxy[t.Name]; ok {
		return proxy, nil
	}
	name := fmt.Sprintf("T_%d", n.proxyCnt)
	n.proxyCnt++
	for n.taken[name] {
		name = fmt.Sprintf("T_%d", n.proxyCnt)
		n.proxyCnt++
	}
	proxy := cfg.N(n.claim(name))
	n.termProxy[t.Name] = proxy
	n.synthetics[name] = &Synthetic{Kind: SyntheticTermProxy, Origin: -1, Terminal: t.Name}
	return proxy, &Production{LHS: proxy, RHS: []cfg.Symbol{t}, Origin: -1}
}

func (n *normalizer) binHelper(origin, segment int) cfg.Symbol {
	name := fmt.Sprintf("X_%d", n.helperCnt)
	n.helperCnt++
	for n.taken[name] {
		name = fmt.Sprintf("X_%d", n.helperCnt)
		n.helperCnt++
	}
	n.synthetics[name] = &Synthetic{Kind: SyntheticBinHelper, Origin: origin, Segment: segment}
	return cfg.N(n.claim(name))
}

// reduce brings every production into CNF shape: terminals inside a RHS of
// length ≥ 2 are replaced by terminal proxies, and RHS of length > 2 are
// split into a right-branching chain of binary helper productions.
// Provenance (origin, chain, deletions) stays on the topmost production of
// a binarized chain; the helpers themselves are recorded as synthetic.
func (n *normalizer) reduce(prods []*Production) []*Production {
	out := make([]*Production, 0, len(prods))
	var proxyProds []*Production
	for _, p := range prods {
		if len(p.RHS) < 2 {
			out = append(out, p)
			continue
		}
		rhs := append([]cfg.Symbol(nil), p.RHS...)
		for i, sym := range rhs {
			if sym.IsTerminal() {
				proxy, prod := n.proxyFor(sym)
				if prod != nil {
					proxyProds = append(proxyProds, prod)
				}
				rhs[i] = proxy
			}
		}
		if len(rhs) == 2 {
			out = append(out, &Production{
				LHS: p.LHS, RHS: rhs,
				Origin: p.Origin, Chain: p.Chain, Deleted: p.Deleted,
			})
			continue
		}
		// right-branching binarization: A → X₁ H₁, H₁ → X₂ H₂, …
		lhs := p.LHS
		top := true
		for offset := 0; len(rhs)-offset > 2; offset++ {
			h := n.binHelper(p.Origin, offset+1)
			bin := &Production{LHS: lhs, RHS: []cfg.Symbol{rhs[offset], h}, Origin: p.Origin}
			if top {
				bin.Chain, bin.Deleted = p.Chain, p.Deleted
				top = false
			}
			out = append(out, bin)
			lhs = h
		}
		out = append(out, &Production{
			LHS:    lhs,
			RHS:    []cfg.Symbol{rhs[len(rhs)-2], rhs[len(rhs)-1]},
			Origin: p.Origin,
		})
	}
	return append(out, proxyProds...)
}
