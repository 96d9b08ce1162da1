/*
Package store reads and writes grammars in an interchange format.

A grammar file is an object with fields N (non-terminal names), T
(terminal names), S (start symbol name) and P (productions, each with a
lhs name and a rhs name sequence; an empty rhs denotes ε). Symbol names in
a rhs are disambiguated by membership in N or T. JSON is the primary
encoding; YAML is accepted as well. Loading re-validates the grammar, so a
malformed file surfaces as *cfg.InvalidGrammarError.

Round-trip guarantee: loading a saved grammar yields an equivalent grammar,
with the same N, T, S and production set, and serials reassigned by
declaration order.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package store

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/npillmayer/chomsky/cfg"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'chomsky.store'.
func tracer() tracing.Trace {
	return tracing.Select("chomsky.store")
}

type grammarDoc struct {
	N []string        `json:"N" yaml:"N"`
	T []string        `json:"T" yaml:"T"`
	S string          `json:"S" yaml:"S"`
	P []productionDoc `json:"P" yaml:"P"`
}

type productionDoc struct {
	LHS string   `json:"lhs" yaml:"lhs"`
	RHS []string `json:"rhs" yaml:"rhs"`
}

func (doc *grammarDoc) grammar(name string) (*cfg.Grammar, error) {
	specs := make([]cfg.ProductionSpec, len(doc.P))
	for i, p := range doc.P {
		specs[i] = cfg.ProductionSpec{LHS: p.LHS, RHS: p.RHS}
	}
	return cfg.New(name, doc.N, doc.T, specs, doc.S)
}

func document(g *cfg.Grammar) *grammarDoc {
	doc := &grammarDoc{
		N: g.Nonterminals(),
		T: g.Terminals(),
		S: g.Start().Name,
	}
	for _, p := range g.Productions() {
		rhs := make([]string, len(p.RHS))
		for i, sym := range p.RHS {
			rhs[i] = sym.Name
		}
		doc.P = append(doc.P, productionDoc{LHS: p.LHS.Name, RHS: rhs})
	}
	return doc
}

// Load parses a JSON grammar document and constructs a validated grammar
// from it.
func Load(data []byte, name string) (*cfg.Grammar, error) {
	var doc grammarDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "cannot decode grammar document")
	}
	return doc.grammar(name)
}

// LoadYAML parses a YAML grammar document and constructs a validated
// grammar from it.
func LoadYAML(data []byte, name string) (*cfg.Grammar, error) {
	var doc grammarDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "cannot decode grammar document")
	}
	return doc.grammar(name)
}

// Save serializes a grammar to its JSON interchange form, indented for
// human consumption.
func Save(g *cfg.Grammar) ([]byte, error) {
	data, err := json.MarshalIndent(document(g), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "cannot encode grammar document")
	}
	return data, nil
}

// SaveYAML serializes a grammar to its YAML interchange form.
func SaveYAML(g *cfg.Grammar) ([]byte, error) {
	data, err := yaml.Marshal(document(g))
	if err != nil {
		return nil, errors.Wrap(err, "cannot encode grammar document")
	}
	return data, nil
}

// LoadFile loads a grammar from a file, decoding by file extension
// (.yaml/.yml for YAML, JSON otherwise). The grammar is named after the
// file's base name.
func LoadFile(path string) (*cfg.Grammar, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read grammar file %q", path)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	tracer().Infof("loading grammar %q from %s", name, path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(data, name)
	default:
		return Load(data, name)
	}
}

// SaveFile writes a grammar to a file, encoding by file extension
// (.yaml/.yml for YAML, JSON otherwise).
func SaveFile(g *cfg.Grammar, path string) error {
	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = SaveYAML(g)
	default:
		data, err = Save(g)
	}
	if err != nil {
		return err
	}
	tracer().Infof("saving grammar %q to %s", g.Name, path)
	return errors.Wrapf(ioutil.WriteFile(path, data, 0644), "cannot write grammar file %q", path)
}
