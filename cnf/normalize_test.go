package cnf

import (
	"testing"

	"github.com/npillmayer/chomsky/cfg"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func balancedGrammar(t *testing.T) *cfg.Grammar {
	b := cfg.NewGrammarBuilder("balanced")
	b.LHS("S").T("a").N("S").T("b").End()
	b.LHS("S").T("a").T("b").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar builder returned error: %v", err)
	}
	return g
}

func TestNormalizeAlreadyCNF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cnf")
	defer teardown()
	//
	b := cfg.NewGrammarBuilder("G")
	b.LHS("S").N("A").N("B").End()
	b.LHS("A").T("a").End()
	b.LHS("B").T("b").End()
	g, _ := b.Grammar()
	n, err := Normalize(g)
	if err != nil {
		t.Fatalf("normalization returned error: %v", err)
	}
	if n.Start() != cfg.N("S") {
		t.Errorf("expected start symbol S to survive, got %v", n.Start())
	}
	if n.AcceptsEmpty() {
		t.Errorf("language does not contain the empty string")
	}
	if len(n.Productions()) != 3 {
		t.Errorf("expected 3 CNF productions, got %d", len(n.Productions()))
	}
	for i, p := range n.Productions() {
		if p.Origin != i {
			t.Errorf("expected production %d to keep origin %d, got %d", i, i, p.Origin)
		}
	}
}

func TestNormalizeStartIsolation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cnf")
	defer teardown()
	//
	n, err := Normalize(balancedGrammar(t))
	if err != nil {
		t.Fatalf("normalization returned error: %v", err)
	}
	if n.Start().Name != "S0" {
		t.Errorf("expected promoted start symbol S0, got %s", n.Start().Name)
	}
	syn := n.Synthetic(n.Start())
	if syn == nil || syn.Kind != SyntheticStart {
		t.Errorf("expected start symbol to be recorded as synthetic")
	}
	if n.Synthetic(cfg.N("S")) != nil {
		t.Errorf("original start symbol must not be synthetic")
	}
	n.Dump()
}

func TestNormalizeTerminalProxies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cnf")
	defer teardown()
	//
	n, err := Normalize(balancedGrammar(t))
	if err != nil {
		t.Fatalf("normalization returned error: %v", err)
	}
	// 'a' and 'b' each occur in two long RHS; one proxy per distinct terminal
	proxies := make(map[string]string)
	for _, p := range n.Productions() {
		if len(p.RHS) == 1 {
			syn := n.Synthetic(p.LHS)
			if syn == nil || syn.Kind != SyntheticTermProxy {
				continue
			}
			if prev, ok := proxies[syn.Terminal]; ok && prev != p.LHS.Name {
				t.Errorf("terminal %q has two proxies: %s and %s", syn.Terminal, prev, p.LHS.Name)
			}
			proxies[syn.Terminal] = p.LHS.Name
		}
	}
	if len(proxies) != 2 {
		t.Errorf("expected proxies for exactly {a b}, got %v", proxies)
	}
}

func TestNormalizeShape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cnf")
	defer teardown()
	//
	n, err := Normalize(balancedGrammar(t))
	if err != nil {
		t.Fatalf("normalization returned error: %v", err)
	}
	for _, p := range n.Productions() {
		switch len(p.RHS) {
		case 1:
			if !p.RHS[0].IsTerminal() {
				t.Errorf("unit production survived normalization: %s", p)
			}
		case 2:
			if p.RHS[0].IsTerminal() || p.RHS[1].IsTerminal() {
				t.Errorf("terminal inside binary production: %s", p)
			}
		default:
			t.Errorf("production with illegal RHS length %d: %s", len(p.RHS), p)
		}
	}
}

func TestNormalizeEpsilonElimination(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cnf")
	defer teardown()
	//
	b := cfg.NewGrammarBuilder("G")
	b.LHS("S").N("A").N("B").End()
	b.LHS("A").T("a").End()
	b.LHS("A").Epsilon()
	b.LHS("B").T("b").End()
	g, _ := b.Grammar()
	n, err := Normalize(g)
	if err != nil {
		t.Fatalf("normalization returned error: %v", err)
	}
	if n.AcceptsEmpty() {
		t.Errorf("S is not nullable, language must not contain the empty string")
	}
	for _, p := range n.Productions() {
		if len(p.RHS) == 0 {
			t.Errorf("epsilon production survived: %s", p)
		}
	}
	// the A-less variant of S -> A B derives b directly, through unit chain S -> B
	var collapsed *Production
	for _, p := range n.TerminalProductions("b") {
		if p.LHS.Name == "S" {
			collapsed = p
		}
	}
	if collapsed == nil {
		t.Fatalf("expected a production S -> b from the nullable variant")
	}
	if len(collapsed.Chain) != 1 || collapsed.Chain[0].Via.Name != "B" {
		t.Errorf("expected unit chain through B, got %v", collapsed.Chain)
	}
	del := collapsed.Chain[0].Deleted
	if len(del) != 1 || del[0].Pos != 0 || del[0].Sym.Name != "A" {
		t.Errorf("expected deletion record for A at position 0, got %v", del)
	}
}

func TestNormalizeNullableStart(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cnf")
	defer teardown()
	//
	b := cfg.NewGrammarBuilder("G")
	b.LHS("S").T("a").End()
	b.LHS("S").Epsilon()
	g, _ := b.Grammar()
	n, err := Normalize(g)
	if err != nil {
		t.Fatalf("normalization returned error: %v", err)
	}
	if !n.AcceptsEmpty() {
		t.Errorf("expected the empty string in the language")
	}
	eps := 0
	for _, p := range n.Productions() {
		if len(p.RHS) == 0 {
			eps++
			if p.LHS != n.Start() {
				t.Errorf("epsilon production for non-start symbol: %s", p)
			}
		}
	}
	if eps != 1 {
		t.Errorf("expected exactly one start epsilon production, got %d", eps)
	}
}

func TestNormalizeUnitChains(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cnf")
	defer teardown()
	//
	b := cfg.NewGrammarBuilder("G")
	b.LHS("S").N("A").End()
	b.LHS("A").N("B").End()
	b.LHS("B").T("b").End()
	g, _ := b.Grammar()
	n, err := Normalize(g)
	if err != nil {
		t.Fatalf("normalization returned error: %v", err)
	}
	prods := n.TerminalProductions("b")
	if len(prods) != 3 {
		t.Fatalf("expected S, A and B to derive b, got %d productions", len(prods))
	}
	for _, p := range prods {
		var want []string
		switch p.LHS.Name {
		case "S":
			want = []string{"A", "B"}
		case "A":
			want = []string{"B"}
		case "B":
			want = nil
		default:
			t.Errorf("unexpected LHS %s", p.LHS.Name)
			continue
		}
		if len(p.Chain) != len(want) {
			t.Errorf("%s: expected chain %v, got %v", p.LHS.Name, want, p.Chain)
			continue
		}
		for i, via := range want {
			if p.Chain[i].Via.Name != via {
				t.Errorf("%s: expected chain step %d through %s, got %s",
					p.LHS.Name, i, via, p.Chain[i].Via.Name)
			}
		}
	}
}

func TestNormalizeUnitCycle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cnf")
	defer teardown()
	//
	b := cfg.NewGrammarBuilder("G")
	b.LHS("S").N("A").End()
	b.LHS("A").N("B").End()
	b.LHS("B").N("A").End()
	b.LHS("B").T("b").End()
	g, _ := b.Grammar()
	n, err := Normalize(g)
	if err != nil {
		t.Fatalf("normalization returned error: %v", err)
	}
	if len(n.TerminalProductions("b")) != 3 {
		t.Errorf("expected S, A and B to derive b despite the unit cycle")
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cnf")
	defer teardown()
	//
	g := balancedGrammar(t)
	first, err := Normalize(g)
	if err != nil {
		t.Fatalf("normalization returned error: %v", err)
	}
	second, err := Normalize(g)
	if err != nil {
		t.Fatalf("normalization returned error: %v", err)
	}
	if len(first.Productions()) != len(second.Productions()) {
		t.Fatalf("normalization is not deterministic: %d vs %d productions",
			len(first.Productions()), len(second.Productions()))
	}
	for i, p := range first.Productions() {
		q := second.Productions()[i]
		if p.String() != q.String() || p.Origin != q.Origin {
			t.Errorf("production %d differs between runs: %s vs %s", i, p, q)
		}
	}
}

func TestNormalizeHelperNameCollision(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cnf")
	defer teardown()
	//
	// the grammar already uses the names S0 and T_0
	b := cfg.NewGrammarBuilder("G")
	b.LHS("S").T("a").N("S").T("b").End()
	b.LHS("S").N("S0").End()
	b.LHS("S0").N("T_0").End()
	b.LHS("T_0").T("c").End()
	g, _ := b.Grammar()
	n, err := Normalize(g)
	if err != nil {
		t.Fatalf("normalization returned error: %v", err)
	}
	if n.Start().Name != "S00" {
		t.Errorf("expected start helper to dodge the taken name S0, got %s", n.Start().Name)
	}
	if n.Synthetic(cfg.N("T_0")) != nil {
		t.Errorf("user-defined T_0 must not be shadowed by a terminal proxy")
	}
}
