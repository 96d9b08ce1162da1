/*
Package cnf normalizes context-free grammars into Chomsky Normal Form.

In CNF every production is either A → a (a single terminal), A → B C (two
non-terminals), or S → ε for the start symbol only. Normalization is a
deterministic, total function over any valid grammar and preserves the
generated language. The stages are applied in a fixed order:

  1. start isolation: a fresh start symbol if S occurs on any RHS
  2. epsilon elimination: nullable closure, then subset-deletion variants
  3. unit-chain elimination: closure over A → B chains
  4. reduction: terminal proxies and right-branching binarization helpers

Every non-terminal and production introduced along the way carries
provenance: a record of which original construct it stands in for. Package
cyk consults this provenance to reconstruct derivation trees in terms of
the original grammar's shape, with all normalization artifacts collapsed
away.

Helper names are generated from per-call counters, never from memory
addresses or map iteration, so repeated normalization of the same grammar
yields byte-identical output.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cnf

import (
	"fmt"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chomsky.cnf'.
func tracer() tracing.Trace {
	return tracing.Select("chomsky.cnf")
}

// ConversionError signals an internal-invariant violation during
// normalization. It indicates a bug and is not expected in normal
// operation: normalization always succeeds on a validated grammar.
type ConversionError struct {
	Reason string
}

func (e *ConversionError) Error() string {
	return "CNF conversion: " + e.Reason
}

func conversionError(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	tracer().Errorf(msg)
	if gconf.GetBool("panic-on-conversion-error") {
		panic(`CNF conversion failed an internal invariant.

Configuration flag panic-on-conversion-error is set to true. It is aimed at
helping to debug a grammar transformation and do a post-mortem. If this is a
production environment and you did not expect this to panic, please unset
panic-on-conversion-error to its default (false).

` + msg)
	}
	return &ConversionError{Reason: msg}
}
