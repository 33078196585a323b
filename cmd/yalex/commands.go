package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/cyberczar01/yalex/internal/automata"
	"github.com/cyberczar01/yalex/internal/diag"
	"github.com/cyberczar01/yalex/internal/dot"
	"github.com/cyberczar01/yalex/internal/lexer"
)

type tokensCmd struct {
	Spec        string `arg:"" type:"existingfile" help:"Specification (.yal, .yaml or .json)"`
	Input       string `arg:"" help:"File to scan, '-' for stdin"`
	Parallel    int    `help:"Goroutines evaluating the rules of one scan step (0 or 1 = sequential)"`
	StrictInput bool   `help:"Exit with an error if the input has lexical errors"`
}

func (t *tokensCmd) Run(c *cli) error {
	prog, err := c.compile(t.Spec)
	if err != nil {
		return err
	}
	var src []byte
	if t.Input == "-" {
		src, err = io.ReadAll(c.stdin)
	} else {
		src, err = os.ReadFile(t.Input)
	}
	if err != nil {
		return err
	}

	out := bufio.NewWriter(c.stdout)
	var opts []lexer.Option
	if t.Parallel > 1 {
		opts = append(opts, lexer.WithParallel(t.Parallel))
	}
	errs := 0
	for tok := range prog.Lexer(string(src), opts...).All() {
		if tok.Type == lexer.Error {
			errs++
			if err := out.Flush(); err != nil {
				return err
			}
			if err := diag.Report(c.stderr, t.Input, string(src), tok); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintln(out, tok)
	}
	if err := out.Flush(); err != nil {
		return err
	}
	if errs > 0 && t.StrictInput {
		return fmt.Errorf("%s: %d lexical errors", t.Input, errs)
	}
	return nil
}

type dotCmd struct {
	Spec   string `arg:"" type:"existingfile" help:"Specification (.yal, .yaml or .json)"`
	Rule   int    `help:"Index of the rule to render" default:"0"`
	Stage  string `help:"What to render" enum:"tree,nfa,dfa" default:"dfa"`
	Output string `short:"o" help:"Output file, '-' for stdout" default:"-"`
	PNG    bool   `name:"png" help:"Render PNG through the dot binary (needs -o)"`
}

func (d *dotCmd) Run(c *cli) error {
	prog, err := c.compile(d.Spec)
	if err != nil {
		return err
	}
	if d.Rule < 0 || d.Rule >= len(prog.Rules) {
		return fmt.Errorf("rule %d out of range, the spec has %d rules", d.Rule, len(prog.Rules))
	}
	rule := prog.Rules[d.Rule]

	var g any
	switch d.Stage {
	case "tree":
		g = rule.Tree
	case "nfa":
		opts := c.options()
		n, err := automata.BuildNFA(rule.Tree, automata.WithStateLimit(opts.MaxStates))
		if err != nil {
			return err
		}
		n.SetAction(rule.Action)
		g = n
	default:
		g = rule.DFA
	}

	var buf bytes.Buffer
	if err := dot.Export(&buf, g); err != nil {
		return err
	}

	if d.PNG {
		if d.Output == "-" {
			return fmt.Errorf("--png needs an output file")
		}
		cmd := exec.Command("dot", "-Tpng", "-o", d.Output)
		cmd.Stdin = &buf
		cmd.Stderr = c.stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("dot failed: %w", err)
		}
		return nil
	}

	w, closeFn, err := c.output(d.Output)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, &buf); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

type tablesCmd struct {
	Spec   string `arg:"" type:"existingfile" help:"Specification (.yal, .yaml or .json)"`
	Output string `short:"o" help:"Output file, '-' for stdout" default:"-"`
}

func (t *tablesCmd) Run(c *cli) error {
	prog, err := c.compile(t.Spec)
	if err != nil {
		return err
	}
	data, err := prog.MarshalYAML()
	if err != nil {
		return err
	}
	w, closeFn, err := c.output(t.Output)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}
