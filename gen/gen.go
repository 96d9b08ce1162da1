/*
Package gen enumerates the shortest strings of a grammar's language.

The generator runs a breadth-first search over sentential forms, starting
at the start symbol and always expanding the leftmost non-terminal with
every applicable production. The frontier is a priority queue ordered by
terminal count (which never decreases along a derivation), so completed
strings surface in non-decreasing length. Two configurable bounds, a
maximum derivation length and a maximum frontier size, guarantee
termination on grammars with infinite or highly branching languages;
hitting a bound is an informational condition signaled in the result,
never an error.

The generator consumes the original grammar directly, not its CNF, and is
independent of the parser. Nevertheless every string it emits is accepted by
package cyk on the normalized grammar, and vice versa.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gen

import (
	"sort"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/npillmayer/chomsky/cfg"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chomsky.gen'.
func tracer() tracing.Trace {
	return tracing.Select("chomsky.gen")
}

// Bounds caps the exploration of the generator. MaxDerivation limits the
// number of derivation steps applied to a single sentential form;
// MaxFrontier limits the number of unexplored forms held at once.
type Bounds struct {
	MaxDerivation int
	MaxFrontier   int
}

// DefaultBounds are safe defaults: deep enough to cover typical textbook
// grammars, small enough to terminate quickly on heavily branching ones.
var DefaultBounds = Bounds{
	MaxDerivation: 64,
	MaxFrontier:   100_000,
}

// Result carries the generated strings, sorted by length and
// lexicographically within equal lengths, without duplicates. Complete is
// false iff exploration was cut short by a bound before the requested
// count was reached.
type Result struct {
	Strings  []string
	Complete bool
}

// DefaultCount is the number of shortest strings generated when the caller
// does not say otherwise.
const DefaultCount = 10

// ShortestStrings generates up to k distinct shortest strings of the
// grammar's language under DefaultBounds. k ≤ 0 requests DefaultCount.
func ShortestStrings(g *cfg.Grammar, k int) Result {
	return Generate(g, k, DefaultBounds)
}

// frontier entry: a sentential form and its derivation length so far.
type entry struct {
	form  []cfg.Symbol
	depth int
	count int    // number of terminal symbols in form
	key   string // lexicographic tie-break key
}

// sentForm exists only to give sentential forms a stable structhash
// fingerprint for the seen-set.
type sentForm struct {
	Syms []cfg.Symbol
}

func formKey(form []cfg.Symbol) string {
	var b strings.Builder
	for _, sym := range form {
		b.WriteString(sym.String())
		b.WriteByte(' ')
	}
	return b.String()
}

// byShortness orders frontier entries by terminal count, then by form
// length, then lexicographically: the smallest unexplored form is always
// expanded first.
func byShortness(a, b interface{}) int {
	ea, eb := a.(*entry), b.(*entry)
	if ea.count != eb.count {
		return ea.count - eb.count
	}
	if len(ea.form) != len(eb.form) {
		return len(ea.form) - len(eb.form)
	}
	return strings.Compare(ea.key, eb.key)
}

// Generate runs the bounded breadth-first enumeration. The result may hold
// fewer than k strings, either because the language is finite and
// exhausted, or because a bound was reached (Complete reports which).
func Generate(g *cfg.Grammar, k int, bounds Bounds) Result {
	if k <= 0 {
		k = DefaultCount
	}
	frontier := binaryheap.NewWith(byShortness)
	seen := make(map[string]bool)
	start := []cfg.Symbol{g.Start()}
	frontier.Push(&entry{form: start, key: formKey(start)})
	seen[string(structhash.Sha1(sentForm{Syms: start}, 1))] = true

	type completed struct {
		str    string
		tokens int
	}
	var results []completed
	resultSet := make(map[string]bool)
	pruned := false
	for len(results) < k {
		v, ok := frontier.Pop()
		if !ok {
			break
		}
		e := v.(*entry)
		nt := leftmostNonterminal(e.form)
		if nt < 0 {
			s := flatten(e.form)
			if !resultSet[s] {
				resultSet[s] = true
				results = append(results, completed{str: s, tokens: e.count})
				tracer().Debugf("completed %q after %d derivation steps", s, e.depth)
			}
			continue
		}
		if e.depth+1 > bounds.MaxDerivation {
			pruned = true
			continue
		}
		prefix, suffix := e.form[:nt], e.form[nt+1:]
		for _, p := range g.ProductionsOf(e.form[nt]) { // in declaration order
			form := make([]cfg.Symbol, 0, len(e.form)-1+len(p.RHS))
			form = append(form, prefix...)
			form = append(form, p.RHS...)
			form = append(form, suffix...)
			fp := string(structhash.Sha1(sentForm{Syms: form}, 1))
			if seen[fp] {
				continue
			}
			if frontier.Size() >= bounds.MaxFrontier {
				pruned = true
				continue
			}
			seen[fp] = true
			frontier.Push(&entry{
				form:  form,
				depth: e.depth + 1,
				count: countTerminals(form),
				key:   formKey(form),
			})
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].tokens != results[j].tokens {
			return results[i].tokens < results[j].tokens
		}
		return results[i].str < results[j].str
	})
	if len(results) > k {
		results = results[:k]
	}
	strs := make([]string, len(results))
	for i, r := range results {
		strs[i] = r.str
	}
	return Result{
		Strings:  strs,
		Complete: len(strs) >= k || !pruned,
	}
}

func leftmostNonterminal(form []cfg.Symbol) int {
	for i, sym := range form {
		if !sym.IsTerminal() {
			return i
		}
	}
	return -1
}

func countTerminals(form []cfg.Symbol) int {
	n := 0
	for _, sym := range form {
		if sym.IsTerminal() {
			n++
		}
	}
	return n
}

func flatten(form []cfg.Symbol) string {
	var b strings.Builder
	for _, sym := range form {
		b.WriteString(sym.Name)
	}
	return b.String()
}
