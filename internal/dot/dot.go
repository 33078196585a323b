// Package dot renders regex trees and automata as Graphviz digraphs.
package dot

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cyberczar01/yalex/internal/automata"
	"github.com/cyberczar01/yalex/internal/regex"
)

// Export writes g, a *regex.Tree, *automata.NFA or *automata.DFA, in DOT
// syntax. Accepting states are double circles; ε edges are labelled ε.
func Export(w io.Writer, g any) error {
	var b strings.Builder
	b.WriteString("digraph G {\n")

	switch t := g.(type) {
	case *regex.Tree:
		writeTree(&b, t)
	case *automata.NFA:
		b.WriteString("    rankdir=LR;\n")
		writeNFA(&b, t)
	case *automata.DFA:
		b.WriteString("    rankdir=LR;\n")
		writeDFA(&b, t)
	default:
		return fmt.Errorf("dot: cannot render %T", g)
	}

	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

//------------------------------------------------------------------ tree

func writeTree(b *strings.Builder, t *regex.Tree) {
	b.WriteString("    node [shape=box];\n")
	var walk func(id regex.NodeID)
	walk = func(id regex.NodeID) {
		n := t.Node(id)
		fmt.Fprintf(b, "    t%d [label=\"%s\"];\n", id, escape(nodeLabel(n)))
		for _, c := range []regex.NodeID{n.Left, n.Right} {
			if c != regex.None {
				fmt.Fprintf(b, "    t%d -> t%d;\n", id, c)
				walk(c)
			}
		}
	}
	walk(t.Root)
}

func nodeLabel(n *regex.Node) string {
	switch n.Kind {
	case regex.Char:
		return regex.SymbolString(n.Ch)
	case regex.Class:
		if n.Any {
			return "_"
		}
		return "[" + regex.RangeString(n.Set) + "]"
	case regex.Concat:
		return "·"
	case regex.Union:
		return "|"
	case regex.Star:
		return "*"
	case regex.Plus:
		return "+"
	case regex.Optional:
		return "?"
	case regex.Diff:
		return "#"
	}
	return n.Kind.String()
}

//------------------------------------------------------------------ NFA

func writeNFA(b *strings.Builder, n *automata.NFA) {
	for i, s := range n.States {
		fmt.Fprintf(b, "    n%d [shape=%s%s];\n", i, shape(s.Accepting), actionAttr(s.Accepting, s.Action, fmt.Sprint(i)))
		edges := map[automata.StateID][]rune{}
		for r, tos := range s.Trans {
			for _, to := range tos {
				edges[to] = append(edges[to], r)
			}
		}
		writeEdges(b, "n", i, edges)
		for _, to := range s.Eps {
			fmt.Fprintf(b, "    n%d -> n%d [label=\"ε\"];\n", i, to)
		}
	}
	fmt.Fprintf(b, "    _start [shape=point]; _start -> n%d;\n", n.Start)
}

//------------------------------------------------------------------ DFA

func writeDFA(b *strings.Builder, d *automata.DFA) {
	for i, s := range d.States {
		fmt.Fprintf(b, "    q%d [shape=%s%s];\n", i, shape(s.Accepting), actionAttr(s.Accepting, s.Action, fmt.Sprint(i)))
		edges := map[automata.StateID][]rune{}
		for r, to := range s.Trans {
			edges[to] = append(edges[to], r)
		}
		writeEdges(b, "q", i, edges)
	}
	fmt.Fprintf(b, "    _start [shape=point]; _start -> q%d;\n", d.Start())
}

// writeEdges emits one edge per destination, labelled with the symbol
// ranges leading there.
func writeEdges(b *strings.Builder, prefix string, from int, edges map[automata.StateID][]rune) {
	dests := make([]automata.StateID, 0, len(edges))
	for to, set := range edges {
		sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
		dests = append(dests, to)
	}
	sort.Slice(dests, func(i, j int) bool { return dests[i] < dests[j] })
	for _, to := range dests {
		fmt.Fprintf(b, "    %s%d -> %s%d [label=\"%s\"];\n", prefix, from, prefix, to, escape(regex.RangeString(edges[to])))
	}
}

func shape(accepting bool) string {
	if accepting {
		return "doublecircle"
	}
	return "circle"
}

func actionAttr(accepting bool, a automata.Action, id string) string {
	if !accepting || a == "" {
		return ""
	}
	return fmt.Sprintf(", label=\"%s\\n%s\"", id, escape(string(a)))
}

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
