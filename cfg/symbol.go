package cfg

import "strings"

// SymbolKind is the tag of the symbol variant: terminal or non-terminal.
type SymbolKind int8

// A symbol is either a non-terminal (variable) or a terminal (alphabet
// letter).
const (
	NonterminalKind SymbolKind = iota
	TerminalKind
)

// Symbol is a tagged variant over an interned name. Symbols are small value
// types, comparable by (kind, name), and may be used as map keys.
type Symbol struct {
	Name string
	Kind SymbolKind
}

// N creates a non-terminal symbol.
func N(name string) Symbol {
	return Symbol{Name: name, Kind: NonterminalKind}
}

// T creates a terminal symbol.
func T(name string) Symbol {
	return Symbol{Name: name, Kind: TerminalKind}
}

// IsTerminal returns true for terminal symbols.
func (s Symbol) IsTerminal() bool {
	return s.Kind == TerminalKind
}

func (s Symbol) String() string {
	if s.IsTerminal() {
		return "'" + s.Name + "'"
	}
	return s.Name
}

// Production is a single grammar rule: LHS -> RHS. An empty RHS denotes an
// epsilon production. Serial is assigned in declaration order at
// grammar-construction time and is used for deterministic tie-breaking
// throughout the module.
type Production struct {
	LHS    Symbol
	RHS    []Symbol
	Serial int
}

// IsEps is true for epsilon productions (empty RHS).
func (p *Production) IsEps() bool {
	return len(p.RHS) == 0
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
