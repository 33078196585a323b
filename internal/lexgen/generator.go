package lexgen

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/cyberczar01/yalex/internal/automata"
	"github.com/cyberczar01/yalex/internal/regex"
)

// Generator compiles specifications. Compiled rules are cached, so
// recompiling a spec after editing one rule only rebuilds that rule. A
// Generator is safe for concurrent use.
type Generator struct {
	opts  Options
	cache *lru.Cache[cacheKey, compiled]
}

// cacheKey holds everything a rule's automaton depends on. Options that
// are fixed per Generator are left out.
type cacheKey struct {
	defs    string
	pattern string
	action  automata.Action
}

type compiled struct {
	tree      *regex.Tree
	dfa       *automata.DFA
	nfaStates int
}

// New returns a Generator with the given options.
func New(opts Options) (*Generator, error) {
	opts.setDefaults()
	cache, err := lru.New[cacheKey, compiled](opts.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Generator{opts: opts, cache: cache}, nil
}

// Compile is a shorthand for New(opts) followed by Compile(spec).
func Compile(spec Spec, opts Options) (*Program, error) {
	g, err := New(opts)
	if err != nil {
		return nil, err
	}
	return g.Compile(spec)
}

// Compile builds one DFA per rule. Every rule is attempted; if any fails
// the errors are joined and no Program is returned.
func (g *Generator) Compile(spec Spec) (*Program, error) {
	defs, err := regex.Resolve(spec.Definitions, g.opts.parseOptions()...)
	if err != nil {
		return nil, fmt.Errorf("resolving definitions: %w", err)
	}
	if g.opts.Logger != nil && len(spec.Definitions) > 0 {
		g.opts.Logger.Printf("definitions: %s", strings.Join(defs.Names(), " "))
	}
	defsKey := definitionsKey(spec.Definitions)

	rules := make([]CompiledRule, len(spec.Rules))
	errs := make([]error, len(spec.Rules))
	var eg errgroup.Group
	eg.SetLimit(g.opts.Workers)
	for i, r := range spec.Rules {
		eg.Go(func() error {
			c, err := g.compileRule(defs, defsKey, r)
			if err != nil {
				metricRuleFailures.Inc()
				errs[i] = &RuleError{Index: i, Pattern: r.Pattern, Action: r.Action, Err: err}
				return nil
			}
			rules[i] = CompiledRule{
				Index:     i,
				Pattern:   r.Pattern,
				Action:    r.Action,
				Tree:      c.tree,
				DFA:       c.dfa,
				NFAStates: c.nfaStates,
			}
			return nil
		})
	}
	_ = eg.Wait()
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &Program{Rules: rules}, nil
}

func (g *Generator) compileRule(defs *regex.Definitions, defsKey string, r Rule) (compiled, error) {
	key := cacheKey{defs: defsKey, pattern: r.Pattern, action: r.Action}
	if c, ok := g.cache.Get(key); ok {
		metricCacheHits.Inc()
		return c, nil
	}

	tree, err := regex.Parse(r.Pattern, defs, g.opts.parseOptions()...)
	if err != nil {
		return compiled{}, err
	}
	n, err := automata.BuildNFA(tree, g.opts.automataOptions()...)
	if err != nil {
		return compiled{}, err
	}
	n.SetAction(r.Action)
	d, err := automata.Determinize(n, g.opts.automataOptions()...)
	if err != nil {
		return compiled{}, err
	}
	if g.opts.Minimize {
		d = automata.Minimize(d)
	}
	metricDFAStates.Observe(float64(d.Len()))
	if g.opts.Logger != nil {
		g.opts.Logger.Printf("compiled %q %s: %d NFA states, %d DFA states",
			r.Pattern, actionLabel(r.Action), n.Len(), d.Len())
	}

	c := compiled{tree: tree, dfa: d, nfaStates: n.Len()}
	g.cache.Add(key, c)
	return c, nil
}

// definitionsKey renders a definition table in a stable order.
func definitionsKey(defs map[string]string) string {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(defs[name])
		b.WriteByte(0)
	}
	return b.String()
}
