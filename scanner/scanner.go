/*
Package scanner splits input lines into terminal tokens of a grammar.

The parser in package cyk consumes sequences of terminal tokens. For
single-letter alphabets an input string can simply be split into runes,
but grammars may declare multi-character terminals. The scanner compiles
the grammar's terminal alphabet into a lexmachine DFA and tokenizes input
by maximal munch, skipping whitespace between tokens.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"strings"
	"unicode"

	"github.com/npillmayer/chomsky/cfg"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'chomsky.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("chomsky.scanner")
}

// Tokenizer splits input strings into terminal tokens of one grammar.
// A tokenizer is safe for concurrent use once created.
type Tokenizer struct {
	lexer *lexmachine.Lexer
}

// New compiles a tokenizer for the terminal alphabet of a grammar. It
// returns an error if compiling the DFA fails (e.g. for an empty alphabet).
func New(g *cfg.Grammar) (*Tokenizer, error) {
	lexer := lexmachine.NewLexer()
	lexer.Add([]byte(`( |\t)+`), skip)
	for id, t := range g.Terminals() {
		lexer.Add([]byte(literalPattern(t)), makeToken(t, id))
	}
	if err := lexer.Compile(); err != nil {
		return nil, errors.Wrapf(err, "cannot compile tokenizer for grammar %q", g.Name)
	}
	return &Tokenizer{lexer: lexer}, nil
}

// Tokenize splits an input string into terminal tokens. It fails on input
// that matches no terminal of the grammar.
func (tz *Tokenizer) Tokenize(input string) ([]string, error) {
	s, err := tz.lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	var tokens []string
	for tok, err, eof := s.Next(); !eof; tok, err, eof = s.Next() {
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				return nil, errors.Errorf("input %q does not match any terminal at position %d",
					input, ui.StartTC)
			}
			return nil, err
		}
		if tok == nil {
			continue // skipped whitespace
		}
		t := tok.(*lexmachine.Token)
		tracer().Debugf("token %q", t.Value.(string))
		tokens = append(tokens, t.Value.(string))
	}
	return tokens, nil
}

// literalPattern turns a terminal literal into a regex matching it
// verbatim. Letters and digits stand for themselves; everything else is
// backslash-escaped so that metacharacters like '(' or '*' match literally
// (escaping a letter would turn it into an escape sequence instead).
func literalPattern(lit string) string {
	var b strings.Builder
	for _, r := range lit {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// skip is a lexer action which ignores the scanned match.
func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// makeToken is a lexer action which wraps a scanned match into a token
// carrying the terminal name.
func makeToken(terminal string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, terminal, m), nil
	}
}
