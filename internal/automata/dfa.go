package automata

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrStateLimit is returned when determinization would create more states
// than allowed by WithStateLimit.
var ErrStateLimit = errors.New("DFA state limit exceeded")

// Option configures Determinize, BuildNFA and Difference.
type Option func(*options)

type options struct {
	stateLimit int
}

// WithStateLimit caps the number of DFA states. Zero or less disables the
// guard.
func WithStateLimit(n int) Option {
	return func(o *options) { o.stateLimit = n }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) check(states int) error {
	if o.stateLimit > 0 && states > o.stateLimit {
		return fmt.Errorf("%w: more than %d states", ErrStateLimit, o.stateLimit)
	}
	return nil
}

// DFAState is one deterministic state. NFAStates is the sorted subset it
// was built from.
type DFAState struct {
	Trans     map[rune]StateID
	NFAStates []StateID
	Accepting bool
	Action    Action
}

// DFA is a deterministic automaton whose start state is always 0. Missing
// transitions lead to an implicit dead state.
type DFA struct {
	States   []DFAState
	Alphabet []rune
}

// Len returns the number of states.
func (d *DFA) Len() int { return len(d.States) }

// Start returns the start state.
func (d *DFA) Start() int { return 0 }

// Step follows the transition on r.
func (d *DFA) Step(state int, r rune) (int, bool) {
	to, ok := d.States[state].Trans[r]
	return int(to), ok
}

// Accepting reports whether state is accepting.
func (d *DFA) Accepting(state int) bool { return d.States[state].Accepting }

// Accepts reports whether the whole of s is in the language.
func (d *DFA) Accepts(s string) bool {
	state := d.Start()
	for _, r := range s {
		next, ok := d.Step(state, r)
		if !ok {
			return false
		}
		state = next
	}
	return d.Accepting(state)
}

// EpsilonClosure returns the sorted set of states reachable from set
// through ε edges, set included.
func EpsilonClosure(n *NFA, set []StateID) []StateID {
	seen := make(map[StateID]bool, len(set))
	stack := make([]StateID, 0, len(set))
	for _, s := range set {
		if !seen[s] {
			seen[s] = true
			stack = append(stack, s)
		}
	}
	out := make([]StateID, 0, len(set))
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, s)
		for _, to := range n.States[s].Eps {
			if !seen[to] {
				seen[to] = true
				stack = append(stack, to)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func move(n *NFA, set []StateID, r rune) []StateID {
	var out []StateID
	seen := map[StateID]bool{}
	for _, s := range set {
		for _, to := range n.States[s].Trans[r] {
			if !seen[to] {
				seen[to] = true
				out = append(out, to)
			}
		}
	}
	return out
}

func setKey(set []StateID) string {
	var b strings.Builder
	buf := make([]byte, 0, 8)
	for i, s := range set {
		if i > 0 {
			b.WriteByte(',')
		}
		b.Write(strconv.AppendInt(buf[:0], int64(s), 10))
	}
	return b.String()
}

// Determinize runs the subset construction. States are numbered in the
// order they are discovered, breadth first from the start.
func Determinize(n *NFA, opts ...Option) (*DFA, error) {
	o := buildOptions(opts)
	d := &DFA{Alphabet: n.Alphabet()}
	index := map[string]StateID{}

	add := func(set []StateID) (StateID, error) {
		key := setKey(set)
		if id, ok := index[key]; ok {
			return id, nil
		}
		if err := o.check(len(d.States) + 1); err != nil {
			return 0, err
		}
		st := DFAState{NFAStates: set}
		for _, s := range set {
			if n.States[s].Accepting {
				st.Accepting = true
				st.Action = n.States[s].Action
				break
			}
		}
		id := StateID(len(d.States))
		d.States = append(d.States, st)
		index[key] = id
		return id, nil
	}

	if _, err := add(EpsilonClosure(n, []StateID{n.Start})); err != nil {
		return nil, err
	}
	for cur := 0; cur < len(d.States); cur++ {
		for _, r := range d.Alphabet {
			next := move(n, d.States[cur].NFAStates, r)
			if len(next) == 0 {
				continue
			}
			to, err := add(EpsilonClosure(n, next))
			if err != nil {
				return nil, err
			}
			if d.States[cur].Trans == nil {
				d.States[cur].Trans = map[rune]StateID{}
			}
			d.States[cur].Trans[r] = to
		}
	}
	return d, nil
}
