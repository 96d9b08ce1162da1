/*
Package cyk implements the Cocke–Younger–Kasami membership algorithm.

The recognizer consumes a grammar in Chomsky Normal Form (package cnf) and
a sequence of terminal tokens, and decides by dynamic programming whether
the token sequence is in the grammar's language. A successful parse yields
one derivation tree, reconstructed in terms of the original grammar's
shape: unit chains collapsed during normalization are re-inserted as unary
links, binarization helpers and terminal proxies are spliced away, and
nullable symbols removed by epsilon elimination reappear as zero-width
ε-derivation subtrees. The tree's yield always equals the parsed input.

Runtime is O(n³·|P|), space O(n²·|N|); both are strictly bounded by the
input length, so no separate cancellation is needed. Parse rejection is a
normal outcome, not an error. All structures allocated by a parse call are
call-scoped; concurrent parses over a shared grammar need no coordination.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cyk

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chomsky.cyk'.
func tracer() tracing.Trace {
	return tracing.Select("chomsky.cyk")
}

// UnknownSymbolError signals a parse input token outside the grammar's
// terminal alphabet. It is fatal to that parse call only.
type UnknownSymbolError struct {
	Token    string
	Position int
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("token %q at position %d is not a terminal of the grammar",
		e.Token, e.Position)
}
