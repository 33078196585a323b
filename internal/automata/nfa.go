package automata

import (
	"fmt"
	"sort"

	"github.com/cyberczar01/yalex/internal/regex"
)

// StateID indexes NFA.States or DFA.States.
type StateID int

// Action is the label a rule attaches to its accepting states. The empty
// action marks a rule whose matches are consumed without a token.
type Action string

// NFAState is one state of a Thompson automaton.
type NFAState struct {
	Trans     map[rune][]StateID
	Eps       []StateID
	Accepting bool
	Action    Action
}

// NFA is an arena of states. Identifiers are dense, assigned at creation
// and never reused.
type NFA struct {
	States []NFAState
	Start  StateID
	Accept []StateID
}

// Len returns the number of states.
func (n *NFA) Len() int { return len(n.States) }

// SetAction tags every accepting state with a.
func (n *NFA) SetAction(a Action) {
	for _, id := range n.Accept {
		n.States[id].Action = a
	}
}

// Alphabet returns the sorted set of symbols used by any transition.
func (n *NFA) Alphabet() []rune {
	seen := map[rune]struct{}{}
	for i := range n.States {
		for r := range n.States[i].Trans {
			seen[r] = struct{}{}
		}
	}
	out := make([]rune, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (n *NFA) newState() StateID {
	n.States = append(n.States, NFAState{})
	return StateID(len(n.States) - 1)
}

func (n *NFA) addTrans(from StateID, r rune, to StateID) {
	s := &n.States[from]
	if s.Trans == nil {
		s.Trans = map[rune][]StateID{}
	}
	s.Trans[r] = append(s.Trans[r], to)
}

func (n *NFA) addEps(from, to StateID) {
	n.States[from].Eps = append(n.States[from].Eps, to)
}

type frag struct {
	start, end StateID
}

type builder struct {
	nfa  *NFA
	tree *regex.Tree
	opts []Option
}

// BuildNFA translates a tree into an NFA with a single accepting state and
// no action. The options only matter for "#" operands that are not plain
// symbol sets: those are determinized on the way.
func BuildNFA(t *regex.Tree, opts ...Option) (*NFA, error) {
	b := &builder{nfa: &NFA{}, tree: t, opts: opts}
	f, err := b.build(t.Root)
	if err != nil {
		return nil, err
	}
	b.nfa.Start = f.start
	b.nfa.States[f.end].Accepting = true
	b.nfa.Accept = []StateID{f.end}
	return b.nfa, nil
}

func (b *builder) build(id regex.NodeID) (frag, error) {
	n := b.tree.Node(id)
	switch n.Kind {
	case regex.Char:
		s, e := b.nfa.newState(), b.nfa.newState()
		if n.Ch == regex.Epsilon {
			b.nfa.addEps(s, e)
		} else {
			b.nfa.addTrans(s, n.Ch, e)
		}
		return frag{s, e}, nil
	case regex.Class:
		return b.symbols(n.Set), nil
	case regex.Concat:
		l, err := b.build(n.Left)
		if err != nil {
			return frag{}, err
		}
		r, err := b.build(n.Right)
		if err != nil {
			return frag{}, err
		}
		b.nfa.addEps(l.end, r.start)
		return frag{l.start, r.end}, nil
	case regex.Union:
		l, err := b.build(n.Left)
		if err != nil {
			return frag{}, err
		}
		r, err := b.build(n.Right)
		if err != nil {
			return frag{}, err
		}
		s, e := b.nfa.newState(), b.nfa.newState()
		b.nfa.addEps(s, l.start)
		b.nfa.addEps(s, r.start)
		b.nfa.addEps(l.end, e)
		b.nfa.addEps(r.end, e)
		return frag{s, e}, nil
	case regex.Star, regex.Plus, regex.Optional:
		sub, err := b.build(n.Left)
		if err != nil {
			return frag{}, err
		}
		s, e := b.nfa.newState(), b.nfa.newState()
		b.nfa.addEps(s, sub.start)
		if n.Kind != regex.Plus {
			b.nfa.addEps(s, e)
		}
		if n.Kind != regex.Optional {
			b.nfa.addEps(sub.end, sub.start)
		}
		b.nfa.addEps(sub.end, e)
		return frag{s, e}, nil
	case regex.Diff:
		l, r := b.tree.Node(n.Left), b.tree.Node(n.Right)
		if isSymbolSet(l) && isSymbolSet(r) {
			return b.symbols(regex.Subtract(symbolSet(l), symbolSet(r))), nil
		}
		return b.difference(n.Left, n.Right)
	}
	return frag{}, fmt.Errorf("automata: unknown node kind %v", n.Kind)
}

// symbols builds the two-state automaton of a symbol set. An empty set
// accepts nothing.
func (b *builder) symbols(set []rune) frag {
	s, e := b.nfa.newState(), b.nfa.newState()
	for _, r := range set {
		b.nfa.addTrans(s, r, e)
	}
	return frag{s, e}
}

// difference embeds the product automaton of L(left) minus L(right).
func (b *builder) difference(left, right regex.NodeID) (frag, error) {
	l, err := b.subDFA(left)
	if err != nil {
		return frag{}, err
	}
	r, err := b.subDFA(right)
	if err != nil {
		return frag{}, err
	}
	d, err := Difference(l, r, b.opts...)
	if err != nil {
		return frag{}, err
	}
	return b.embed(d), nil
}

func (b *builder) subDFA(id regex.NodeID) (*DFA, error) {
	n, err := BuildNFA(b.tree.Sub(id), b.opts...)
	if err != nil {
		return nil, err
	}
	return Determinize(n, b.opts...)
}

// embed copies a DFA into the NFA; every accepting state gets an ε edge to
// a fresh end state.
func (b *builder) embed(d *DFA) frag {
	base := StateID(len(b.nfa.States))
	for range d.States {
		b.nfa.newState()
	}
	end := b.nfa.newState()
	for i, s := range d.States {
		from := base + StateID(i)
		for _, r := range d.Alphabet {
			if to, ok := s.Trans[r]; ok {
				b.nfa.addTrans(from, r, base+to)
			}
		}
		if s.Accepting {
			b.nfa.addEps(from, end)
		}
	}
	return frag{base, end}
}

func isSymbolSet(n *regex.Node) bool {
	return n.Kind == regex.Class || (n.Kind == regex.Char && n.Ch != regex.Epsilon)
}

func symbolSet(n *regex.Node) []rune {
	if n.Kind == regex.Char {
		return []rune{n.Ch}
	}
	return n.Set
}
