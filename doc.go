/*
Package chomsky is a toolbox for context-free grammars.

It recognizes and generates strings for context-free grammars (and their
regular-grammar subset). Package structure is as follows:

■ cfg: Package cfg defines the grammar model G = (N, T, P, S), together with
a builder and validation.

■ cnf: Package cnf normalizes a grammar into Chomsky Normal Form, keeping
provenance for every helper symbol it introduces.

■ cyk: Package cyk implements the Cocke–Younger–Kasami membership algorithm
over CNF grammars and reconstructs derivation trees shaped like the
original grammar.

■ gen: Package gen enumerates the shortest strings of a grammar's language.

■ store: Package store reads and writes grammars in a JSON/YAML interchange
format.

■ scanner: Package scanner splits input lines into terminal tokens of a
grammar.

The base package contains data types which are used throughout all the
other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package chomsky
