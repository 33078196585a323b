package regex

import (
	"fmt"
	"strings"
)

// Kind tags a Node.
type Kind uint8

const (
	Char     Kind = iota // single symbol, or ε
	Class                // character class, "_" included
	Concat               // left right
	Union                // left | right
	Star                 // inner*
	Plus                 // inner+
	Optional             // inner?
	Diff                 // left # right
)

var kindNames = [...]string{"Char", "Class", "Concat", "Union", "Star", "Plus", "Optional", "Diff"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Epsilon is the symbol of the empty string. A Char node holding Epsilon
// matches without consuming input.
const Epsilon rune = -1

// NodeID indexes Tree.Nodes.
type NodeID int32

// None marks an absent child.
const None NodeID = -1

// Node is one vertex of a parsed expression. Unary nodes use Left only.
type Node struct {
	Kind  Kind
	Ch    rune   // Char
	Set   []rune // Class, sorted and unique
	Any   bool   // Class built from "_"
	Left  NodeID
	Right NodeID
}

// Tree is an arena of nodes. Children always have smaller indices than
// their parents, so the arena never holds a cycle.
type Tree struct {
	Nodes []Node
	Root  NodeID
}

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) *Node { return &t.Nodes[id] }

// Sub returns a tree sharing t's arena but rooted at id.
func (t *Tree) Sub(id NodeID) *Tree { return &Tree{Nodes: t.Nodes, Root: id} }

func (t *Tree) add(n Node) NodeID {
	t.Nodes = append(t.Nodes, n)
	return NodeID(len(t.Nodes) - 1)
}

func (t *Tree) char(r rune) NodeID {
	return t.add(Node{Kind: Char, Ch: r, Left: None, Right: None})
}

func (t *Tree) class(set []rune, any bool) NodeID {
	return t.add(Node{Kind: Class, Set: set, Any: any, Left: None, Right: None})
}

func (t *Tree) unary(k Kind, inner NodeID) NodeID {
	return t.add(Node{Kind: k, Left: inner, Right: None})
}

func (t *Tree) binary(k Kind, l, r NodeID) NodeID {
	return t.add(Node{Kind: k, Left: l, Right: r})
}

// graft copies the reachable part of src into t and returns the new id of
// src's root.
func (t *Tree) graft(src *Tree) NodeID {
	var walk func(NodeID) NodeID
	walk = func(id NodeID) NodeID {
		n := src.Nodes[id]
		if n.Left != None {
			n.Left = walk(n.Left)
		}
		if n.Right != None {
			n.Right = walk(n.Right)
		}
		return t.add(n)
	}
	return walk(src.Root)
}

// Len returns the number of nodes reachable from the root.
func (t *Tree) Len() int {
	var count func(NodeID) int
	count = func(id NodeID) int {
		if id == None {
			return 0
		}
		n := &t.Nodes[id]
		return 1 + count(n.Left) + count(n.Right)
	}
	return count(t.Root)
}

// String renders the tree as nested constructors, e.g.
// Concat(Char(a), Star(Class(0-9))).
func (t *Tree) String() string {
	var b strings.Builder
	t.write(&b, t.Root)
	return b.String()
}

func (t *Tree) write(b *strings.Builder, id NodeID) {
	n := &t.Nodes[id]
	switch n.Kind {
	case Char:
		fmt.Fprintf(b, "Char(%s)", SymbolString(n.Ch))
	case Class:
		if n.Any {
			b.WriteString("Class(any)")
			return
		}
		fmt.Fprintf(b, "Class(%s)", RangeString(n.Set))
	case Concat, Union, Diff:
		b.WriteString(n.Kind.String())
		b.WriteByte('(')
		t.write(b, n.Left)
		b.WriteString(", ")
		t.write(b, n.Right)
		b.WriteByte(')')
	default:
		b.WriteString(n.Kind.String())
		b.WriteByte('(')
		t.write(b, n.Left)
		b.WriteByte(')')
	}
}

// SymbolString prints a symbol the way it is written in patterns.
func SymbolString(r rune) string {
	switch r {
	case Epsilon:
		return "ε"
	case '\t':
		return `\t`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case ' ':
		return `\s`
	}
	return string(r)
}

// RangeString compresses a sorted set into ranges: "0-9a-f_".
func RangeString(set []rune) string {
	var b strings.Builder
	for i := 0; i < len(set); {
		j := i
		for j+1 < len(set) && set[j+1] == set[j]+1 {
			j++
		}
		b.WriteString(SymbolString(set[i]))
		switch {
		case j-i >= 2:
			b.WriteByte('-')
			b.WriteString(SymbolString(set[j]))
		case j-i == 1:
			b.WriteString(SymbolString(set[j]))
		}
		i = j + 1
	}
	return b.String()
}
