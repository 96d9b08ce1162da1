/*
Package chomsky/main provides an interactive command line tool for
context-free grammars. Users load or create a grammar, inspect its
Chomsky normal form, test input strings with the CYK parser and
enumerate the shortest strings of the grammar's language.


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chomsky.cli'
func tracer() tracing.Trace {
	return tracing.Select("chomsky.cli")
}
