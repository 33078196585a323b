package regex

import "sort"

// Alphabet is the working symbol set that "_" and negated classes range
// over. It is kept sorted.
type Alphabet []rune

// ASCIIText is the default alphabet: tab, newline, carriage return and the
// printable ASCII range.
var ASCIIText = func() Alphabet {
	a := Alphabet{'\t', '\n', '\r'}
	for r := rune(0x20); r <= 0x7e; r++ {
		a = append(a, r)
	}
	return a
}()

// Latin1 extends ASCIIText with the printable Latin-1 supplement.
var Latin1 = func() Alphabet {
	a := append(Alphabet{}, ASCIIText...)
	for r := rune(0xa0); r <= 0xff; r++ {
		a = append(a, r)
	}
	return a
}()

// NewAlphabet returns the sorted, de-duplicated alphabet of the given
// symbols.
func NewAlphabet(symbols ...rune) Alphabet {
	return Alphabet(normalize(symbols))
}

// Contains reports whether r belongs to the alphabet.
func (a Alphabet) Contains(r rune) bool {
	i := sort.Search(len(a), func(i int) bool { return a[i] >= r })
	return i < len(a) && a[i] == r
}

// Complement returns the symbols of a that are not in the sorted set.
func (a Alphabet) Complement(set []rune) []rune {
	return Subtract(a, set)
}

// normalize sorts and de-duplicates a symbol slice in place.
func normalize(set []rune) []rune {
	if len(set) == 0 {
		return set
	}
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
	out := set[:1]
	for _, r := range set[1:] {
		if r != out[len(out)-1] {
			out = append(out, r)
		}
	}
	return out
}

// Subtract returns the symbols of the sorted set a that are not in the
// sorted set b.
func Subtract(a, b []rune) []rune {
	out := make([]rune, 0, len(a))
	j := 0
	for _, r := range a {
		for j < len(b) && b[j] < r {
			j++
		}
		if j < len(b) && b[j] == r {
			continue
		}
		out = append(out, r)
	}
	return out
}
