package lexgen

import (
	"fmt"
	"log"
	"runtime"

	"github.com/cyberczar01/yalex/internal/automata"
	"github.com/cyberczar01/yalex/internal/regex"
)

// Rule is one (pattern, action) pair. An empty action skips the match.
type Rule struct {
	Pattern string          `json:"pattern"`
	Action  automata.Action `json:"action,omitempty"`
}

// Spec is a lexical specification. Rule order decides ties.
type Spec struct {
	Definitions map[string]string `json:"definitions,omitempty"`
	Rules       []Rule            `json:"rules"`
}

const (
	DefaultMaxStates = 10000
	DefaultCacheSize = 256
)

// Options tune compilation. The zero value is usable.
type Options struct {
	Strict    bool           // unknown multi-letter identifiers are errors
	Minimize  bool           // minimize every rule's DFA
	Workers   int            // rules compiled at once; 0 means GOMAXPROCS
	MaxStates int            // per-DFA state limit; 0 means DefaultMaxStates, <0 none
	CacheSize int            // compiled rules kept across Compile calls
	Alphabet  regex.Alphabet // working alphabet; nil means regex.ASCIIText
	Logger    *log.Logger    // per-rule progress; nil is silent
}

func (o *Options) setDefaults() {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.MaxStates == 0 {
		o.MaxStates = DefaultMaxStates
	}
	if o.CacheSize <= 0 {
		o.CacheSize = DefaultCacheSize
	}
	if len(o.Alphabet) == 0 {
		o.Alphabet = regex.ASCIIText
	}
}

func (o *Options) parseOptions() []regex.ParseOption {
	opts := []regex.ParseOption{regex.WithAlphabet(o.Alphabet)}
	if o.Strict {
		opts = append(opts, regex.Strict())
	}
	return opts
}

func (o *Options) automataOptions() []automata.Option {
	return []automata.Option{automata.WithStateLimit(o.MaxStates)}
}

// RuleError reports a rule that failed to compile.
type RuleError struct {
	Index   int
	Pattern string
	Action  automata.Action
	Err     error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %d %s: %v", e.Index, actionLabel(e.Action), e.Err)
}

func (e *RuleError) Unwrap() error { return e.Err }

func actionLabel(a automata.Action) string {
	if a == "" {
		return "(skip)"
	}
	return string(a)
}
