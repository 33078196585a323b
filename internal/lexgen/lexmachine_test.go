package lexgen

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/d4l3k/messagediff"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/cyberczar01/yalex/internal/automata"
)

// The same token set written for both engines. lexmachine also picks the
// longest match and breaks ties by rule order, so on input without
// lexical errors both must agree token for token.
var oracleRules = []struct {
	ours   string
	theirs string
	action automata.Action
}{
	{`"if"|"else"|"while"`, `if|else|while`, "KW"},
	{"[a-z][a-z0-9]*", "[a-z][a-z0-9]*", "ID"},
	{"[0-9]+", "[0-9]+", "NUM"},
	{"[0-9]+'.'[0-9]+", `[0-9]+\.[0-9]+`, "FLOAT"},
	{`"=="`, "==", "EQ"},
	{"'='", "=", "ASSIGN"},
	{"'+'|'-'", `\+|-`, "ADD"},
	{`[\s\t\n]+`, "[ \t\n]+", ""},
}

func oracle(t *testing.T) *lexmachine.Lexer {
	t.Helper()
	lx := lexmachine.NewLexer()
	for _, r := range oracleRules {
		action := r.action
		lx.Add([]byte(r.theirs), func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
			if action == "" {
				return nil, nil
			}
			return lexeme{action, string(m.Bytes)}, nil
		})
	}
	if err := lx.Compile(); err != nil {
		t.Fatalf("lexmachine: %v", err)
	}
	return lx
}

func oracleScan(t *testing.T, lx *lexmachine.Lexer, input string) []lexeme {
	t.Helper()
	s, err := lx.Scanner([]byte(input))
	if err != nil {
		t.Fatalf("lexmachine: %v", err)
	}
	var out []lexeme
	for tok, err, eos := s.Next(); !eos; tok, err, eos = s.Next() {
		if err != nil {
			t.Fatalf("lexmachine on %q: %v", input, err)
		}
		out = append(out, tok.(lexeme))
	}
	return out
}

func TestAgreesWithLexmachine(t *testing.T) {
	var spec Spec
	for _, r := range oracleRules {
		spec.Rules = append(spec.Rules, Rule{Pattern: r.ours, Action: r.action})
	}
	p := compile(t, spec, Options{Minimize: true})
	lx := oracle(t)

	pieces := []string{"if", "else", "while", "x1", "abc", "12", "9", " 3.5 ", "==", "=", "+", "-", " ", "\n", "\t"}
	rng := rand.New(rand.NewSource(1))
	inputs := []string{"if x1 == 12\n\tx1 = x1 + 3.25 - y"}
	for i := 0; i < 200; i++ {
		var b strings.Builder
		for n := rng.Intn(12); n >= 0; n-- {
			b.WriteString(pieces[rng.Intn(len(pieces))])
		}
		inputs = append(inputs, b.String())
	}

	for _, in := range inputs {
		want := oracleScan(t, lx, in)
		got := scan(p, in)
		if diff, equal := messagediff.PrettyDiff(want, got); !equal {
			t.Fatalf("%q:\n%s", in, diff)
		}
	}
}
