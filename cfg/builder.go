package cfg

// GrammarBuilder is a builder object for grammars. Clients add productions,
// consisting of non-terminal and terminal symbols, then call Grammar() to
// construct and validate the result.
//
// The builder collects N and T from the symbols mentioned in productions.
// The start symbol defaults to the LHS of the first production; this may
// be overridden with Start().
type GrammarBuilder struct {
	name     string
	start    string
	nonterms []string
	terms    []string
	seenN    map[string]bool
	seenT    map[string]bool
	prods    []ProductionSpec
}

// NewGrammarBuilder creates a builder for a grammar with the given name.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{
		name:  name,
		seenN: make(map[string]bool),
		seenT: make(map[string]bool),
	}
}

// RuleBuilder is a builder type for a single production.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs string
	rhs []string
}

// LHS starts a new production with the given non-terminal on the left-hand
// side.
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	gb.noteN(name)
	return &RuleBuilder{gb: gb, lhs: name}
}

// Start overrides the default start symbol.
func (gb *GrammarBuilder) Start(name string) *GrammarBuilder {
	gb.start = name
	return gb
}

func (gb *GrammarBuilder) noteN(name string) {
	if !gb.seenN[name] {
		gb.seenN[name] = true
		gb.nonterms = append(gb.nonterms, name)
	}
}

func (gb *GrammarBuilder) noteT(name string) {
	if !gb.seenT[name] {
		gb.seenT[name] = true
		gb.terms = append(gb.terms, name)
	}
}

// N appends a non-terminal to the production's right-hand side.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.gb.noteN(name)
	rb.rhs = append(rb.rhs, name)
	return rb
}

// T appends a terminal to the production's right-hand side.
func (rb *RuleBuilder) T(name string) *RuleBuilder {
	rb.gb.noteT(name)
	rb.rhs = append(rb.rhs, name)
	return rb
}

// End finishes the production and hands it over to the grammar builder.
func (rb *RuleBuilder) End() {
	rb.gb.prods = append(rb.gb.prods, ProductionSpec{LHS: rb.lhs, RHS: rb.rhs})
}

// Epsilon finishes the production with an empty right-hand side.
func (rb *RuleBuilder) Epsilon() {
	rb.rhs = nil
	rb.End()
}

// Grammar constructs and validates the grammar.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if len(gb.prods) == 0 {
		return nil, invalid("grammar %q has no productions", gb.name)
	}
	start := gb.start
	if start == "" {
		start = gb.prods[0].LHS
	}
	return New(gb.name, gb.nonterms, gb.terms, gb.prods, start)
}
