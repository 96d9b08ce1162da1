package main

import (
	"flag"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/chomsky/cfg"
	"github.com/npillmayer/chomsky/cnf"
	"github.com/npillmayer/chomsky/cyk"
	"github.com/npillmayer/chomsky/gen"
	"github.com/npillmayer/chomsky/scanner"
	"github.com/npillmayer/chomsky/store"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

const prompt = "chomsky> "

// main() starts an interactive CLI for working with context-free grammars.
// Users load a grammar from a JSON or YAML file (or enter one manually),
// inspect it and its Chomsky normal form, test strings with the CYK parser
// and generate the shortest strings of the grammar's language.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	gfile := flag.String("grammar", "", "Grammar file to load at startup")
	flag.Parse()
	tracer().SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("Welcome to the Chomsky grammar workbench") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// set up REPL
	repl, err := readline.New(prompt)
	if err != nil {
		tracer().Errorf(err.Error())
		return
	}
	sess := &session{repl: repl}
	if *gfile != "" {
		if err := sess.load(*gfile); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
	//
	// start receiving commands
	tracer().Infof("Quit with <ctrl>D")
	pterm.Info.Println("Type 'help' for a list of commands")
	sess.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// session is our interpreter object. It holds the grammar currently worked
// on, together with its lazily computed normal form and tokenizer.
type session struct {
	repl    *readline.Instance
	grammar *cfg.Grammar
	norm    *cnf.Grammar
	tokz    *scanner.Tokenizer
}

// REPL starts interactive mode.
func (sess *session) REPL() {
	for {
		line, err := sess.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		args := strings.Fields(line)
		quit, err := sess.Execute(args[0], args[1:])
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Execute runs a single command line, already split into a command word
// and its arguments.
func (sess *session) Execute(cmd string, args []string) (bool, error) {
	tracer().Debugf("command %q, args = %v", cmd, args)
	switch cmd {
	case "help":
		sess.help()
	case "load":
		if len(args) != 1 {
			return false, errors.New("usage: load <file>")
		}
		return false, sess.load(args[0])
	case "save":
		if len(args) != 1 {
			return false, errors.New("usage: save <file>")
		}
		return false, sess.save(args[0])
	case "show":
		return false, sess.show()
	case "cnf":
		return false, sess.showCNF()
	case "parse":
		return false, sess.parse(args)
	case "gen":
		return false, sess.generate(args)
	case "new":
		return false, sess.create()
	case "trace":
		if len(args) != 1 {
			return false, errors.New("usage: trace <Debug|Info|Error>")
		}
		tracer().SetTraceLevel(traceLevel(args[0]))
	case "quit", "exit":
		return true, nil
	default:
		return false, errors.Errorf("unknown command %q, try 'help'", cmd)
	}
	return false, nil
}

func (sess *session) help() {
	pterm.Println("Commands:")
	pterm.Println("  load <file>      load a grammar from a JSON or YAML file")
	pterm.Println("  save <file>      save the current grammar")
	pterm.Println("  show             display the current grammar")
	pterm.Println("  cnf              display its Chomsky normal form")
	pterm.Println("  parse <string>   test a string with the CYK parser")
	pterm.Println("  gen [k]          generate the k shortest strings (default 10)")
	pterm.Println("  new              enter a grammar manually")
	pterm.Println("  trace <level>    set the trace level [Debug|Info|Error]")
	pterm.Println("  quit             leave the workbench")
}

// current guards commands which need a grammar to work on.
func (sess *session) current() (*cfg.Grammar, error) {
	if sess.grammar == nil {
		return nil, errors.New("no grammar loaded, use 'load' or 'new' first")
	}
	return sess.grammar, nil
}

// use installs a grammar as the current one, invalidating the cached
// normal form and tokenizer of its predecessor.
func (sess *session) use(g *cfg.Grammar) {
	sess.grammar = g
	sess.norm = nil
	sess.tokz = nil
}

// normalized returns the Chomsky normal form of the current grammar,
// computing and caching it on first use, together with a tokenizer for
// the grammar's terminal alphabet.
func (sess *session) normalized() (*cnf.Grammar, error) {
	if sess.norm != nil {
		return sess.norm, nil
	}
	g, err := sess.current()
	if err != nil {
		return nil, err
	}
	n, err := cnf.Normalize(g)
	if err != nil {
		return nil, err
	}
	tokz, err := scanner.New(g)
	if err != nil {
		return nil, err
	}
	sess.norm = n
	sess.tokz = tokz
	return n, nil
}

func (sess *session) load(path string) error {
	g, err := store.LoadFile(path)
	if err != nil {
		return err
	}
	sess.use(g)
	pterm.Info.Printf("grammar %q loaded, %d productions\n", g.Name, len(g.Productions()))
	return nil
}

func (sess *session) save(path string) error {
	g, err := sess.current()
	if err != nil {
		return err
	}
	if err := store.SaveFile(g, path); err != nil {
		return err
	}
	pterm.Info.Printf("grammar %q saved to %s\n", g.Name, path)
	return nil
}

func (sess *session) show() error {
	g, err := sess.current()
	if err != nil {
		return err
	}
	pterm.Info.Printf("grammar %q, start symbol %s\n", g.Name, g.Start().Name)
	pterm.Printf("N = { %s }\n", strings.Join(g.Nonterminals(), ", "))
	pterm.Printf("T = { %s }\n", strings.Join(g.Terminals(), ", "))
	for _, p := range g.Productions() {
		pterm.Printf("%4d: %s\n", p.Serial, p)
	}
	return nil
}

func (sess *session) showCNF() error {
	n, err := sess.normalized()
	if err != nil {
		return err
	}
	pterm.Info.Printf("Chomsky normal form of grammar %q\n", n.Original().Name)
	if n.AcceptsEmpty() {
		pterm.Println("the language contains the empty string")
	}
	for _, p := range n.Productions() {
		pterm.Printf("%4d: %s\n", p.Serial, p)
	}
	return nil
}

func (sess *session) parse(args []string) error {
	n, err := sess.normalized()
	if err != nil {
		return err
	}
	input := strings.Join(args, " ")
	tokens, err := sess.tokz.Tokenize(input)
	if err != nil {
		return err
	}
	tracer().Debugf("tokens = %v", tokens)
	result, err := cyk.Parse(n, tokens)
	if err != nil {
		return err
	}
	if !result.Accepted {
		pterm.Error.Println("string REJECTED")
		return nil
	}
	pterm.Info.Println("string ACCEPTED")
	printTree(result.Tree)
	return nil
}

// printTree displays a parse tree on the terminal.
func printTree(node *cyk.Node) {
	ll := leveledTree(node, pterm.LeveledList{}, 0)
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

func leveledTree(node *cyk.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	ll = append(ll, pterm.LeveledListItem{
		Level: level,
		Text:  node.Symbol.String(),
	})
	for _, ch := range node.Children {
		ll = leveledTree(ch, ll, level+1)
	}
	return ll
}

func (sess *session) generate(args []string) error {
	g, err := sess.current()
	if err != nil {
		return err
	}
	k := gen.DefaultCount
	if len(args) > 0 {
		k, err = strconv.Atoi(args[0])
		if err != nil || k <= 0 {
			return errors.Errorf("not a string count: %q", args[0])
		}
	}
	result := gen.ShortestStrings(g, k)
	for i, str := range result.Strings {
		pterm.Printf("%3d: %q\n", i+1, str)
	}
	if !result.Complete {
		pterm.Info.Println("search was bounded, the list may be incomplete")
	}
	return nil
}

// create asks the user for the parts of a grammar, reading productions
// line by line until an empty line.
func (sess *session) create() error {
	name, err := sess.ask("name: ")
	if err != nil {
		return err
	}
	if name == "" {
		name = "G"
	}
	nonterms, err := sess.ask("non-terminals (comma separated): ")
	if err != nil {
		return err
	}
	terms, err := sess.ask("terminals (comma separated): ")
	if err != nil {
		return err
	}
	pterm.Println("productions like \"S -> a S b\", one per line, empty line to finish")
	var specs []cfg.ProductionSpec
	for {
		line, err := sess.ask("  | ")
		if err != nil {
			return err
		}
		if line == "" {
			break
		}
		spec, err := parseProduction(line)
		if err != nil {
			return err
		}
		specs = append(specs, spec)
	}
	start, err := sess.ask("start symbol: ")
	if err != nil {
		return err
	}
	g, err := cfg.New(name, splitList(nonterms), splitList(terms), specs, start)
	if err != nil {
		return err
	}
	sess.use(g)
	pterm.Info.Printf("grammar %q created, %d productions\n", g.Name, len(g.Productions()))
	return nil
}

// ask prompts for a single line of input.
func (sess *session) ask(question string) (string, error) {
	sess.repl.SetPrompt(question)
	defer sess.repl.SetPrompt(prompt)
	line, err := sess.repl.Readline()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// parseProduction converts a line "A -> B C" into a production spec. Both
// "->" and "→" are accepted as arrows; an empty or "ε" right-hand side
// denotes an epsilon production.
func parseProduction(line string) (cfg.ProductionSpec, error) {
	var left, right string
	switch {
	case strings.Contains(line, "->"):
		parts := strings.SplitN(line, "->", 2)
		left, right = parts[0], parts[1]
	case strings.Contains(line, "→"):
		parts := strings.SplitN(line, "→", 2)
		left, right = parts[0], parts[1]
	default:
		return cfg.ProductionSpec{}, errors.Errorf("not a production: %q", line)
	}
	left = strings.TrimSpace(left)
	if left == "" {
		return cfg.ProductionSpec{}, errors.Errorf("production has no left-hand side: %q", line)
	}
	var rhs []string
	for _, sym := range strings.Fields(right) {
		if sym == "ε" {
			continue
		}
		rhs = append(rhs, sym)
	}
	return cfg.ProductionSpec{LHS: left, RHS: rhs}, nil
}

// splitList splits a comma separated list, trimming whitespace and
// dropping empty items.
func splitList(list string) []string {
	var items []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
