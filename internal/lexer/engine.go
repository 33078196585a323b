package lexer

import (
	"iter"

	"golang.org/x/sync/errgroup"

	"github.com/cyberczar01/yalex/internal/automata"
)

// Automaton is a deterministic recognizer. Step reports false when the
// state has no transition on r.
type Automaton interface {
	Start() int
	Step(state int, r rune) (next int, ok bool)
	Accepting(state int) bool
}

// Rule pairs an automaton with its action. A rule with an empty action
// consumes its matches without emitting tokens.
type Rule struct {
	Automaton Automaton
	Action    automata.Action
}

// Option configures an Engine.
type Option func(*Engine)

// WithParallel runs the rules of one scan step on up to n goroutines. The
// token stream is the same as in sequential mode.
func WithParallel(n int) Option {
	return func(e *Engine) { e.parallel = n }
}

// Engine scans input with the longest match over all rules. Among matches
// of equal length the earliest rule wins; empty matches never win.
type Engine struct {
	rules    []Rule
	input    []rune
	cur      Pos
	parallel int
	lens     []int
}

// New returns an engine positioned at the start of input.
func New(rules []Rule, input string, opts ...Option) *Engine {
	e := &Engine{
		rules: rules,
		input: []rune(input),
		cur:   Pos{Line: 1, Column: 1},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.parallel > 1 {
		e.lens = make([]int, len(rules))
	}
	return e
}

// Pos returns the current cursor.
func (e *Engine) Pos() Pos { return e.cur }

// NextToken scans the next token. Every call past the end of input returns
// an EOF token; an unmatched symbol comes back as a one-symbol Error token.
func (e *Engine) NextToken() Token {
	for {
		start := e.cur
		if start.Offset >= len(e.input) {
			return Token{Type: EOF, Start: start, End: start}
		}
		rule, n := e.longest()
		if n == 0 {
			e.advance(1)
			metricLexicalErrors.Inc()
			return Token{Type: Error, Text: e.text(start), Start: start, End: e.cur}
		}
		e.advance(n)
		action := e.rules[rule].Action
		if action == "" {
			metricSkipped.Inc()
			continue
		}
		metricTokens.WithLabelValues(string(action)).Inc()
		return Token{Type: Match, Action: action, Text: e.text(start), Start: start, End: e.cur}
	}
}

// Tokenize scans the rest of the input. The result ends with the EOF
// token; lexical errors stay in the stream.
func (e *Engine) Tokenize() []Token {
	var toks []Token
	for {
		tok := e.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

// All yields the remaining tokens, stopping before EOF.
func (e *Engine) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok := e.NextToken()
			if tok.Type == EOF || !yield(tok) {
				return
			}
		}
	}
}

func (e *Engine) text(from Pos) string {
	return string(e.input[from.Offset:e.cur.Offset])
}

func (e *Engine) advance(n int) {
	for _, r := range e.input[e.cur.Offset : e.cur.Offset+n] {
		e.cur.advance(r)
	}
}

// longest returns the winning rule and its match length, or a zero length
// when no rule matches a non-empty prefix.
func (e *Engine) longest() (rule, n int) {
	if e.parallel > 1 && len(e.rules) > 1 {
		return e.longestParallel()
	}
	rule = -1
	for i, r := range e.rules {
		if l := matchLen(r.Automaton, e.input, e.cur.Offset); l > n {
			rule, n = i, l
		}
	}
	return rule, n
}

func (e *Engine) longestParallel() (rule, n int) {
	var g errgroup.Group
	g.SetLimit(e.parallel)
	for i, r := range e.rules {
		g.Go(func() error {
			e.lens[i] = matchLen(r.Automaton, e.input, e.cur.Offset)
			return nil
		})
	}
	_ = g.Wait()
	rule = -1
	for i, l := range e.lens {
		if l > n {
			rule, n = i, l
		}
	}
	return rule, n
}

// matchLen runs a from input[at:] until it has no transition and returns
// the length of the last accepting prefix.
func matchLen(a Automaton, input []rune, at int) int {
	state := a.Start()
	last := 0
	for i := at; i < len(input); i++ {
		next, ok := a.Step(state, input[i])
		if !ok {
			break
		}
		state = next
		if a.Accepting(state) {
			last = i - at + 1
		}
	}
	return last
}
