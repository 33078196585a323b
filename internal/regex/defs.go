package regex

import "sort"

// Definitions holds named patterns, each parsed once. It is only built by
// Resolve, so every reference between definitions is known to terminate.
type Definitions struct {
	trees map[string]*Tree
	order []string
}

// Names returns the definition names in dependency order: a name always
// follows the names it references.
func (d *Definitions) Names() []string { return d.order }

// Tree returns the parsed tree of a definition.
func (d *Definitions) Tree(name string) (*Tree, bool) {
	t, ok := d.trees[name]
	return t, ok
}

// Resolve parses a table of named patterns. Definitions may reference each
// other in any order; a reference loop fails with a *CycleError.
func Resolve(raw map[string]string, opts ...ParseOption) (*Definitions, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(raw))
	var order, stack []string
	var visit func(string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			path := []string{name}
			for i := len(stack) - 1; i >= 0; i-- {
				path = append(path, stack[i])
				if stack[i] == name {
					break
				}
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return &CycleError{Path: path}
		}
		state[name] = visiting
		stack = append(stack, name)
		for _, ref := range References(raw[name]) {
			if _, ok := raw[ref]; !ok {
				continue
			}
			if err := visit(ref); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = done
		order = append(order, name)
		return nil
	}
	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}

	defs := &Definitions{trees: make(map[string]*Tree, len(raw)), order: order}
	for _, name := range order {
		t, err := Parse(raw[name], defs, opts...)
		if err != nil {
			return nil, err
		}
		defs.trees[name] = t
	}
	return defs, nil
}

// References lists the identifiers a pattern mentions outside quotes and
// classes, in order of appearance and without duplicates. It walks the
// pattern with the parser, so a malformed pattern yields the references
// found before the error.
func References(pattern string) []string {
	p := newParser(pattern, nil, nil)
	p.record = true
	_, _ = p.parseRegex()
	return p.refs
}
