// Command yalex compiles lexer specifications and runs, renders or dumps
// the resulting automata.
package main

import (
	"io"
	"log"
	"os"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/cyberczar01/yalex/internal/lexgen"
	"github.com/cyberczar01/yalex/internal/regex"
	"github.com/cyberczar01/yalex/internal/yalex"
)

type cli struct {
	StrictRefs bool   `help:"Reject multi-letter identifiers that name no definition" env:"YALEX_STRICT_REFS"`
	Minimize   bool   `help:"Minimize every rule DFA" env:"YALEX_MINIMIZE"`
	Workers    int    `help:"Rules compiled in parallel (0 = GOMAXPROCS)" default:"0" env:"YALEX_WORKERS"`
	MaxStates  int    `help:"DFA state limit per rule (-1 = no limit)" default:"10000" env:"YALEX_MAX_STATES"`
	Alphabet   string `help:"Symbols covered by '_' and negated classes" enum:"ascii,latin1" default:"ascii" env:"YALEX_ALPHABET"`
	Verbose    bool   `short:"v" help:"Log compilation progress to stderr" env:"YALEX_VERBOSE"`
	Metrics    string `help:"Write Prometheus metrics to this file when done" placeholder:"FILE" type:"path"`

	Tokens tokensCmd `cmd:"" help:"Scan an input file and print its tokens"`
	Dot    dotCmd    `cmd:"" help:"Render one rule as a Graphviz graph"`
	Tables tablesCmd `cmd:"" help:"Dump the compiled transition tables as YAML"`

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("yalex: ")

	params := cli{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	ctx := kong.Parse(&params, kong.Description("A lex-style lexer generator."))
	err := ctx.Run(&params)
	if params.Metrics != "" {
		if merr := writeMetrics(params.Metrics); merr != nil {
			log.Print(merr)
		}
	}
	if err != nil {
		log.Fatal(err)
	}
}

func (c *cli) options() lexgen.Options {
	opts := lexgen.Options{
		Strict:    c.StrictRefs,
		Minimize:  c.Minimize,
		Workers:   c.Workers,
		MaxStates: c.MaxStates,
		Alphabet:  regex.ASCIIText,
	}
	if c.Alphabet == "latin1" {
		opts.Alphabet = regex.Latin1
	}
	if c.Verbose {
		opts.Logger = log.New(c.stderr, "yalex: ", 0)
	}
	return opts
}

// compile loads and compiles a specification file.
func (c *cli) compile(path string) (*lexgen.Program, error) {
	f, err := yalex.Load(path)
	if err != nil {
		return nil, err
	}
	return lexgen.Compile(f.Spec(), c.options())
}

// output opens path for writing; "-" is stdout.
func (c *cli) output(path string) (io.Writer, func() error, error) {
	if path == "-" {
		return c.stdout, func() error { return nil }, nil
	}
	fd, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return fd, fd.Close, nil
}

func writeMetrics(path string) error {
	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(fd, mf); err != nil {
			fd.Close()
			return err
		}
	}
	return fd.Close()
}
