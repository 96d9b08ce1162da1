package cfg

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestGrammarBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cfg")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").N("B").End()
	b.LHS("A").T("a").End()
	b.LHS("B").T("b").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar builder returned error: %v", err)
	}
	if g.Start() != N("S") {
		t.Errorf("expected start symbol S, got %v", g.Start())
	}
	if len(g.Productions()) != 3 {
		t.Errorf("expected 3 productions, got %d", len(g.Productions()))
	}
	if !g.IsNonterminal("S") || !g.IsNonterminal("A") || !g.IsNonterminal("B") {
		t.Errorf("missing non-terminal in N = %v", g.Nonterminals())
	}
	if !g.IsTerminal("a") || !g.IsTerminal("b") {
		t.Errorf("missing terminal in T = %v", g.Terminals())
	}
}

func TestBuilderStartDefault(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cfg")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("E").N("F").End()
	b.LHS("F").T("x").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar builder returned error: %v", err)
	}
	if g.Start().Name != "E" {
		t.Errorf("expected default start E (first LHS), got %s", g.Start().Name)
	}
	b = NewGrammarBuilder("G")
	b.LHS("E").N("F").End()
	b.LHS("F").T("x").End()
	b.Start("F")
	g, err = b.Grammar()
	if err != nil {
		t.Fatalf("grammar builder returned error: %v", err)
	}
	if g.Start().Name != "F" {
		t.Errorf("expected overridden start F, got %s", g.Start().Name)
	}
}

func TestBuilderEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cfg")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").T("a").N("S").End()
	b.LHS("S").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar builder returned error: %v", err)
	}
	prods := g.ProductionsOf(N("S"))
	if len(prods) != 2 {
		t.Fatalf("expected 2 productions for S, got %d", len(prods))
	}
	if !prods[1].IsEps() {
		t.Errorf("expected second production to be epsilon, got %s", prods[1])
	}
}

func TestNewDisambiguatesRHS(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cfg")
	defer teardown()
	//
	g, err := New("G",
		[]string{"S", "A"},
		[]string{"a"},
		[]ProductionSpec{
			{LHS: "S", RHS: []string{"a", "A"}},
			{LHS: "A", RHS: []string{"a"}},
		}, "S")
	if err != nil {
		t.Fatalf("grammar construction returned error: %v", err)
	}
	rhs := g.Productions()[0].RHS
	if !rhs[0].IsTerminal() {
		t.Errorf("expected RHS symbol %q to be resolved as terminal", rhs[0].Name)
	}
	if rhs[1].IsTerminal() {
		t.Errorf("expected RHS symbol %q to be resolved as non-terminal", rhs[1].Name)
	}
}

func TestValidateStartSymbol(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cfg")
	defer teardown()
	//
	_, err := New("G", []string{"S"}, []string{"a"},
		[]ProductionSpec{{LHS: "S", RHS: []string{"a"}}}, "X")
	if err == nil {
		t.Fatalf("expected error for start symbol outside N")
	}
	if _, ok := err.(*InvalidGrammarError); !ok {
		t.Errorf("expected *InvalidGrammarError, got %T", err)
	}
	t.Logf("validation message: %v", err)
}

func TestValidateDisjointness(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cfg")
	defer teardown()
	//
	_, err := New("G", []string{"S", "a"}, []string{"a"},
		[]ProductionSpec{{LHS: "S", RHS: []string{"a"}}}, "S")
	if err == nil {
		t.Fatalf("expected error for overlapping N and T")
	}
	if _, ok := err.(*InvalidGrammarError); !ok {
		t.Errorf("expected *InvalidGrammarError, got %T", err)
	}
}

func TestValidateUndefinedSymbol(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cfg")
	defer teardown()
	//
	_, err := New("G", []string{"S"}, []string{"a"},
		[]ProductionSpec{{LHS: "S", RHS: []string{"a", "B"}}}, "S")
	if err == nil {
		t.Fatalf("expected error for undefined RHS symbol")
	}
	if _, ok := err.(*InvalidGrammarError); !ok {
		t.Errorf("expected *InvalidGrammarError, got %T", err)
	}
}

func TestValidateMissingProduction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cfg")
	defer teardown()
	//
	_, err := New("G", []string{"S", "B"}, []string{"a"},
		[]ProductionSpec{{LHS: "S", RHS: []string{"a"}}}, "S")
	if err == nil {
		t.Fatalf("expected error for non-terminal without productions")
	}
	if _, ok := err.(*InvalidGrammarError); !ok {
		t.Errorf("expected *InvalidGrammarError, got %T", err)
	}
}

func TestSymbolSetsOrdered(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cfg")
	defer teardown()
	//
	g, err := New("G", []string{"Z", "A", "M"}, []string{"z", "a"},
		[]ProductionSpec{
			{LHS: "Z", RHS: []string{"z"}},
			{LHS: "A", RHS: []string{"a"}},
			{LHS: "M", RHS: []string{"A"}},
		}, "Z")
	if err != nil {
		t.Fatalf("grammar construction returned error: %v", err)
	}
	n := g.Nonterminals()
	if n[0] != "A" || n[1] != "M" || n[2] != "Z" {
		t.Errorf("expected N in lexicographic order, got %v", n)
	}
	tt := g.Terminals()
	if tt[0] != "a" || tt[1] != "z" {
		t.Errorf("expected T in lexicographic order, got %v", tt)
	}
}

func TestProductionSerials(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chomsky.cfg")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").T("a").N("S").T("b").End()
	b.LHS("S").T("a").T("b").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar builder returned error: %v", err)
	}
	for i, p := range g.Productions() {
		if p.Serial != i {
			t.Errorf("expected serial %d in declaration order, got %d", i, p.Serial)
		}
	}
}
