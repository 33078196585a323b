package lexgen

import (
	"sigs.k8s.io/yaml"

	"github.com/cyberczar01/yalex/internal/automata"
	"github.com/cyberczar01/yalex/internal/lexer"
	"github.com/cyberczar01/yalex/internal/regex"
)

// CompiledRule is a rule with its automaton. Tree is kept for rendering.
type CompiledRule struct {
	Index     int
	Pattern   string
	Action    automata.Action
	Tree      *regex.Tree
	DFA       *automata.DFA
	NFAStates int
}

// Program holds one DFA per rule, in rule order.
type Program struct {
	Rules []CompiledRule
}

// LexerRules adapts the compiled rules for the scanning engine.
func (p *Program) LexerRules() []lexer.Rule {
	out := make([]lexer.Rule, len(p.Rules))
	for i, r := range p.Rules {
		out[i] = lexer.Rule{Automaton: r.DFA, Action: r.Action}
	}
	return out
}

// Lexer returns an engine scanning input with the program's rules.
func (p *Program) Lexer(input string, opts ...lexer.Option) *lexer.Engine {
	return lexer.New(p.LexerRules(), input, opts...)
}

// Table is the serializable form of one rule's DFA.
type Table struct {
	Rule    int             `json:"rule"`
	Pattern string          `json:"pattern"`
	Action  automata.Action `json:"action,omitempty"`
	States  []TableState    `json:"states"`
}

// TableState is one DFA state. Transition keys are symbols written as in
// patterns.
type TableState struct {
	ID        int                `json:"id"`
	Accepting bool               `json:"accepting,omitempty"`
	NFAStates []automata.StateID `json:"nfaStates,omitempty"`
	Trans     map[string]int     `json:"trans,omitempty"`
}

// Tables lists the transition tables of every rule.
func (p *Program) Tables() []Table {
	out := make([]Table, len(p.Rules))
	for i, r := range p.Rules {
		t := Table{Rule: r.Index, Pattern: r.Pattern, Action: r.Action}
		for id, s := range r.DFA.States {
			ts := TableState{ID: id, Accepting: s.Accepting, NFAStates: s.NFAStates}
			if len(s.Trans) > 0 {
				ts.Trans = make(map[string]int, len(s.Trans))
				for sym, to := range s.Trans {
					ts.Trans[regex.SymbolString(sym)] = int(to)
				}
			}
			t.States = append(t.States, ts)
		}
		out[i] = t
	}
	return out
}

// MarshalYAML renders the transition tables as YAML.
func (p *Program) MarshalYAML() ([]byte, error) {
	return yaml.Marshal(p.Tables())
}
