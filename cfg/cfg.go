/*
Package cfg defines the grammar model for context-free grammars.

A grammar is a tuple G = (N, T, P, S): a set of non-terminal symbols, a set
of terminal symbols (disjoint from N), an ordered sequence of productions
and a start symbol. Grammars are specified either with a grammar builder
object, or constructed directly from the interchange shape used by package
store.

Example:

    b := cfg.NewGrammarBuilder("G")
    b.LHS("S").N("A").N("B").End()   // S  ->  A B
    b.LHS("A").T("a").End()          // A  ->  a
    b.LHS("B").T("b").End()          // B  ->  b
    g, err := b.Grammar()

Grammars are validated at construction time and are immutable afterwards.
Edits are modeled as constructing a new grammar. All downstream components
(normalizer, recognizer, generator) only ever read a grammar, therefore
independent calls may run concurrently on a shared grammar instance.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cfg

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chomsky.cfg'.
func tracer() tracing.Trace {
	return tracing.Select("chomsky.cfg")
}

// InvalidGrammarError signals a malformed grammar tuple at construction or
// load time. It is fatal to that grammar instance and will not be recovered
// from internally.
type InvalidGrammarError struct {
	Reason string
}

func (e *InvalidGrammarError) Error() string {
	return "invalid grammar: " + e.Reason
}

func invalid(format string, args ...interface{}) error {
	return &InvalidGrammarError{Reason: fmt.Sprintf(format, args...)}
}
