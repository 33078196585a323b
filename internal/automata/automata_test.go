package automata

import (
	"errors"
	"regexp"
	"slices"
	"testing"

	"github.com/cyberczar01/yalex/internal/regex"
)

// ------------------------------------------------------------------- helpers

func nfaOf(t *testing.T, pat string) *NFA {
	t.Helper()
	tree, err := regex.Parse(pat, nil)
	if err != nil {
		t.Fatalf("parse %q: %v", pat, err)
	}
	n, err := BuildNFA(tree)
	if err != nil {
		t.Fatalf("nfa %q: %v", pat, err)
	}
	return n
}

func dfaOf(t *testing.T, pat string) *DFA {
	t.Helper()
	d, err := Determinize(nfaOf(t, pat))
	if err != nil {
		t.Fatalf("dfa %q: %v", pat, err)
	}
	return d
}

// words lists every string over alpha up to length max.
func words(alpha string, max int) []string {
	out := []string{""}
	level := []string{""}
	for n := 0; n < max; n++ {
		var next []string
		for _, w := range level {
			for _, r := range alpha {
				next = append(next, w+string(r))
			}
		}
		out = append(out, next...)
		level = next
	}
	return out
}

// ------------------------------------------------------------------- Language

var languageCases = []struct {
	pat string
	ref string // Go regexp with the same language over {a,b,c}
}{
	{"a", "a"},
	{"ab", "ab"},
	{"a|b", "a|b"},
	{"a*", "a*"},
	{"(ab)+", "(ab)+"},
	{"a?b", "a?b"},
	{"[a-b]*c", "[ab]*c"},
	{"[^a]", "[^a]"},
	{"_b", ".b"},
	{"(a|b)*abb", "(a|b)*abb"},
	{"", ""},
	{"(a|)b", "(a|)b"},
	{`"ab"c`, "abc"},
	{"a+b*", "a+b*"},
	{"[a-c]#[b]", "[ac]"},
	{"a*#(aa)", "|a|aaa+"},
	{"(a|b)*#(a*)", "[ab]*b[ab]*"},
	{"((a|b|c)(a|b|c))#(aa|bb|cc)", "ab|ac|ba|bc|ca|cb"},
	{"((a|b)#b)*", "a*"},
}

func TestDFAMatchesReference(t *testing.T) {
	inputs := words("abc", 4)
	for _, tt := range languageCases {
		ref := regexp.MustCompile(`^(?:` + tt.ref + `)$`)
		d := dfaOf(t, tt.pat)
		m := Minimize(d)
		for _, w := range inputs {
			want := ref.MatchString(w)
			if got := d.Accepts(w); got != want {
				t.Fatalf("%q on %q: want %v got %v", tt.pat, w, want, got)
			}
			if got := m.Accepts(w); got != want {
				t.Fatalf("minimized %q on %q: want %v got %v", tt.pat, w, want, got)
			}
		}
	}
}

func TestEmptyPatternAcceptsOnlyEpsilon(t *testing.T) {
	d := dfaOf(t, "")
	if d.Len() != 1 || len(d.Alphabet) != 0 {
		t.Fatalf("want one state over an empty alphabet, got %d states %q", d.Len(), string(d.Alphabet))
	}
	if !d.Accepts("") || d.Accepts("a") {
		t.Fatalf("ε DFA accepts the wrong language")
	}
}

// ------------------------------------------------------------------- Thompson

func TestBuildNFAShape(t *testing.T) {
	tests := []struct {
		pat    string
		states int
	}{
		{"a", 2},
		{"ab", 4},
		{"a|b", 6},
		{"a*", 4},
		{"a+", 4},
		{"a?", 4},
		{"[a-z]", 2},
		{"[a-c]#[b]", 2},
	}
	for _, tt := range tests {
		n := nfaOf(t, tt.pat)
		if n.Len() != tt.states {
			t.Fatalf("%q: want %d states got %d", tt.pat, tt.states, n.Len())
		}
		if len(n.Accept) != 1 || !n.States[n.Accept[0]].Accepting {
			t.Fatalf("%q: want exactly one accepting state", tt.pat)
		}
		for i, s := range n.States {
			if s.Action != "" {
				t.Fatalf("%q: state %d carries action %q before SetAction", tt.pat, i, s.Action)
			}
		}
	}
}

func TestPlusHasNoBypass(t *testing.T) {
	n := nfaOf(t, "a+")
	closure := EpsilonClosure(n, []StateID{n.Start})
	if slices.Contains(closure, n.Accept[0]) {
		t.Fatalf("a+ accepts ε")
	}
}

func TestSetActionReachesDFA(t *testing.T) {
	n := nfaOf(t, "a|b")
	n.SetAction("ID")
	d, err := Determinize(n)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range d.States {
		if s.Accepting && s.Action != "ID" {
			t.Fatalf("state %d: want action ID got %q", i, s.Action)
		}
		if !s.Accepting && s.Action != "" {
			t.Fatalf("state %d: non-accepting state has action %q", i, s.Action)
		}
	}
}

// ------------------------------------------------------------------- Subsets

func TestEpsilonClosureIdempotent(t *testing.T) {
	for _, pat := range []string{"(a|b)*c?", "((a*)*)*", "a?b?c?", ""} {
		n := nfaOf(t, pat)
		for i := range n.States {
			once := EpsilonClosure(n, []StateID{StateID(i)})
			twice := EpsilonClosure(n, once)
			if !slices.Equal(once, twice) {
				t.Fatalf("%q state %d: %v != %v", pat, i, once, twice)
			}
			if !slices.Contains(once, StateID(i)) {
				t.Fatalf("%q state %d: closure misses the state itself", pat, i)
			}
		}
	}
}

func TestDeterminizeSubsetsAreUnique(t *testing.T) {
	d := dfaOf(t, "(a|b)*abb(a|b)*")
	seen := map[string]int{}
	for i, s := range d.States {
		key := setKey(s.NFAStates)
		if j, ok := seen[key]; ok {
			t.Fatalf("states %d and %d share subset %v", j, i, s.NFAStates)
		}
		seen[key] = i
		if !slices.IsSorted(s.NFAStates) {
			t.Fatalf("state %d: subset not sorted: %v", i, s.NFAStates)
		}
		for r, to := range s.Trans {
			if int(to) >= d.Len() {
				t.Fatalf("state %d: transition on %q to missing state %d", i, r, to)
			}
		}
	}
}

func TestStateLimit(t *testing.T) {
	n := nfaOf(t, "(a|b)*a(a|b)(a|b)(a|b)(a|b)")
	_, err := Determinize(n, WithStateLimit(8))
	if !errors.Is(err, ErrStateLimit) {
		t.Fatalf("want ErrStateLimit got %v", err)
	}
	if _, err := Determinize(n, WithStateLimit(0)); err != nil {
		t.Fatalf("no limit: %v", err)
	}
}

func TestStateLimitReachesDifference(t *testing.T) {
	tree := regex.MustParse("((a|b)*a(a|b)(a|b)(a|b)(a|b))#b")
	if _, err := BuildNFA(tree, WithStateLimit(8)); !errors.Is(err, ErrStateLimit) {
		t.Fatalf("want ErrStateLimit got %v", err)
	}
}

// ------------------------------------------------------------------- Minimize

func TestMinimize(t *testing.T) {
	tests := []struct {
		pat    string
		states int
	}{
		{"(a|b)*abb", 4},
		{"a|b", 2},
		{"(a|b)*", 1},
		{"a*#(aa)", 4},
	}
	for _, tt := range tests {
		m := Minimize(dfaOf(t, tt.pat))
		if m.Len() != tt.states {
			t.Fatalf("%q: want %d states got %d", tt.pat, tt.states, m.Len())
		}
	}
}

func TestMinimizeKeepsActionsApart(t *testing.T) {
	d := &DFA{
		Alphabet: []rune{'a', 'b'},
		States: []DFAState{
			{Trans: map[rune]StateID{'a': 1, 'b': 2}},
			{Accepting: true, Action: "A", NFAStates: []StateID{1}},
			{Accepting: true, Action: "B", NFAStates: []StateID{2}},
		},
	}
	if m := Minimize(d); m.Len() != 3 {
		t.Fatalf("states with different actions merged: %d states", m.Len())
	}
	d.States[2].Action = "A"
	m := Minimize(d)
	if m.Len() != 2 {
		t.Fatalf("want 2 states got %d", m.Len())
	}
	if got := m.States[1].NFAStates; !slices.Equal(got, []StateID{1, 2}) {
		t.Fatalf("merged subset: %v", got)
	}
}

func TestMinimizeDropsDeadStates(t *testing.T) {
	d := &DFA{
		Alphabet: []rune{'a', 'b'},
		States: []DFAState{
			{Trans: map[rune]StateID{'a': 1, 'b': 2}},
			{Accepting: true},
			{Trans: map[rune]StateID{'a': 2}},
		},
	}
	m := Minimize(d)
	if m.Len() != 2 {
		t.Fatalf("want 2 states got %d", m.Len())
	}
	if _, ok := m.Step(0, 'b'); ok {
		t.Fatalf("transition into a dead state survived")
	}
}
