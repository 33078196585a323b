package automata

import (
	"sort"
	"strconv"
	"strings"
)

// Minimize merges equivalent states by partition refinement. The first
// partition separates states by accepting flag and action, so merged
// states never mix actions. States that cannot reach an accepting state are
// dropped along with the transitions into them; the start state always
// survives.
func Minimize(d *DFA) *DFA {
	if d == nil || len(d.States) == 0 {
		return d
	}
	live := coreachable(d)

	block := make([]int, len(d.States))
	count := 0
	{
		ids := map[string]int{}
		for i, s := range d.States {
			key := strconv.FormatBool(s.Accepting) + "/" + string(s.Action)
			id, ok := ids[key]
			if !ok {
				id = len(ids)
				ids[key] = id
			}
			block[i] = id
		}
		count = len(ids)
	}

	for {
		ids := map[string]int{}
		next := make([]int, len(d.States))
		var b strings.Builder
		for i := range d.States {
			b.Reset()
			b.WriteString(strconv.Itoa(block[i]))
			for _, r := range d.Alphabet {
				b.WriteByte(' ')
				to, ok := d.States[i].Trans[r]
				if !ok || !live[to] {
					b.WriteByte('-')
					continue
				}
				b.WriteString(strconv.Itoa(block[to]))
			}
			key := b.String()
			id, ok := ids[key]
			if !ok {
				id = len(ids)
				ids[key] = id
			}
			next[i] = id
		}
		block = next
		if len(ids) == count {
			break
		}
		count = len(ids)
	}

	// number the blocks breadth first from the start
	members := make([][]int, count)
	for i, bl := range block {
		members[bl] = append(members[bl], i)
	}
	newID := make([]StateID, count)
	for i := range newID {
		newID[i] = -1
	}
	out := &DFA{Alphabet: d.Alphabet}
	queue := []int{block[0]}
	newID[block[0]] = 0
	out.States = append(out.States, DFAState{})
	for len(queue) > 0 {
		bl := queue[0]
		queue = queue[1:]
		rep := d.States[members[bl][0]]
		st := DFAState{
			Accepting: rep.Accepting,
			Action:    rep.Action,
			NFAStates: mergeSubsets(d, members[bl]),
		}
		for _, r := range d.Alphabet {
			to, ok := rep.Trans[r]
			if !ok || !live[to] {
				continue
			}
			tb := block[to]
			if newID[tb] < 0 {
				newID[tb] = StateID(len(out.States))
				out.States = append(out.States, DFAState{})
				queue = append(queue, tb)
			}
			if st.Trans == nil {
				st.Trans = map[rune]StateID{}
			}
			st.Trans[r] = newID[tb]
		}
		out.States[newID[bl]] = st
	}
	return out
}

// coreachable marks the states from which an accepting state is reachable.
func coreachable(d *DFA) []bool {
	rev := make([][]StateID, len(d.States))
	var stack []StateID
	live := make([]bool, len(d.States))
	for i, s := range d.States {
		for _, to := range s.Trans {
			rev[to] = append(rev[to], StateID(i))
		}
		if s.Accepting {
			live[i] = true
			stack = append(stack, StateID(i))
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, from := range rev[s] {
			if !live[from] {
				live[from] = true
				stack = append(stack, from)
			}
		}
	}
	return live
}

func mergeSubsets(d *DFA, states []int) []StateID {
	if len(states) == 1 {
		return d.States[states[0]].NFAStates
	}
	seen := map[StateID]bool{}
	var out []StateID
	for _, i := range states {
		for _, s := range d.States[i].NFAStates {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
