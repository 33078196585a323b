package automata

const dead = -1

// Product runs two DFAs in lockstep. A side without a transition moves to
// an implicit dead state; a pair is accepting when op says so. Only pairs
// that are reachable and not dead on both sides become states.
func Product(a, b *DFA, op func(x, y bool) bool, opts ...Option) (*DFA, error) {
	o := buildOptions(opts)
	type pair struct{ i, j int }
	alpha := unionRunes(a.Alphabet, b.Alphabet)
	d := &DFA{Alphabet: alpha}
	index := map[pair]StateID{}

	accepting := func(x *DFA, s int) bool { return s != dead && x.Accepting(s) }
	step := func(x *DFA, s int, r rune) int {
		if s == dead {
			return dead
		}
		if to, ok := x.Step(s, r); ok {
			return to
		}
		return dead
	}

	var pairs []pair
	add := func(p pair) (StateID, error) {
		if id, ok := index[p]; ok {
			return id, nil
		}
		if err := o.check(len(d.States) + 1); err != nil {
			return 0, err
		}
		st := DFAState{Accepting: op(accepting(a, p.i), accepting(b, p.j))}
		if st.Accepting && p.i != dead {
			st.Action = a.States[p.i].Action
		}
		id := StateID(len(d.States))
		d.States = append(d.States, st)
		pairs = append(pairs, p)
		index[p] = id
		return id, nil
	}

	if _, err := add(pair{a.Start(), b.Start()}); err != nil {
		return nil, err
	}
	for cur := 0; cur < len(d.States); cur++ {
		p := pairs[cur]
		for _, r := range alpha {
			np := pair{step(a, p.i, r), step(b, p.j, r)}
			if np.i == dead && np.j == dead {
				continue
			}
			to, err := add(np)
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

// Difference accepts the strings of a that b rejects. The result is
// minimized, which prunes the pairs where a is already dead.
func Difference(a, b *DFA, opts ...Option) (*DFA, error) {
	p, err := Product(a, b, func(x, y bool) bool { return x && !y }, opts...)
	if err != nil {
		return nil, err
	}
	return Minimize(p), nil
}

func unionRunes(a, b []rune) []rune {
	out := make([]rune, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j == len(b) || (i < len(a) && a[i] < b[j]):
			out = append(out, a[i])
			i++
		case i == len(a) || b[j] < a[i]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}
