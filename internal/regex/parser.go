package regex

import (
	"fmt"
	"slices"
	"unicode"
)

// ParseOption configures Parse and Resolve.
type ParseOption func(*parseOptions)

type parseOptions struct {
	strict   bool
	alphabet Alphabet
}

// Strict makes multi-letter identifiers that name no definition an error
// instead of a literal string.
func Strict() ParseOption {
	return func(o *parseOptions) { o.strict = true }
}

// WithAlphabet sets the working alphabet used by "_" and negated classes.
func WithAlphabet(a Alphabet) ParseOption {
	return func(o *parseOptions) {
		if len(a) > 0 {
			o.alphabet = a
		}
	}
}

func buildParseOptions(opts []ParseOption) parseOptions {
	o := parseOptions{alphabet: ASCIIText}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type parser struct {
	pattern string
	src     []rune
	pos     int
	tree    *Tree
	defs    *Definitions
	opts    parseOptions
	refs    []string // identifiers seen, when recording
	record  bool
}

func newParser(pattern string, defs *Definitions, opts []ParseOption) *parser {
	return &parser{
		pattern: pattern,
		src:     []rune(pattern),
		tree:    &Tree{},
		defs:    defs,
		opts:    buildParseOptions(opts),
	}
}

// Parse turns a pattern into a tree. Identifiers naming an entry of defs
// are replaced by that definition's tree; defs may be nil. Any other
// identifier is its literal text taken as one atom, so an operator after it
// applies to the whole word: "ab*" is (ab)*, not a(b*).
//
//	regex  := term ('|' regex)?
//	term   := factor*
//	factor := atom ('*' | '+' | '?')* ('#' factor)?
//	atom   := '(' regex ')' | '_' | '[' class ']' | "'" char "'"
//	        | '"' string '"' | identifier | char
func Parse(pattern string, defs *Definitions, opts ...ParseOption) (*Tree, error) {
	p := newParser(pattern, defs, opts)
	root, err := p.parseRegex()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		if p.peek() == ')' {
			return nil, p.errorf("unbalanced ')'")
		}
		return nil, p.errorf("unexpected %q", p.peek())
	}
	p.tree.Root = root
	return p.tree, nil
}

// MustParse is like Parse but panics on error.
func MustParse(pattern string) *Tree {
	t, err := Parse(pattern, nil)
	if err != nil {
		panic(err)
	}
	return t
}

func (p *parser) eof() bool  { return p.pos >= len(p.src) }
func (p *parser) peek() rune { return p.src[p.pos] }

func (p *parser) errorf(format string, args ...any) error {
	return &PatternError{
		Pattern: p.pattern,
		Offset:  p.pos,
		Msg:     fmt.Sprintf(format, args...),
		Err:     ErrMalformedPattern,
	}
}

func (p *parser) parseRegex() (NodeID, error) {
	left, err := p.parseTerm()
	if err != nil {
		return None, err
	}
	if !p.eof() && p.peek() == '|' {
		p.pos++
		right, err := p.parseRegex()
		if err != nil {
			return None, err
		}
		return p.tree.binary(Union, left, right), nil
	}
	return left, nil
}

func (p *parser) parseTerm() (NodeID, error) {
	result := None
	for !p.eof() && p.peek() != '|' && p.peek() != ')' {
		f, err := p.parseFactor()
		if err != nil {
			return None, err
		}
		if result == None {
			result = f
		} else {
			result = p.tree.binary(Concat, result, f)
		}
	}
	if result == None {
		return p.tree.char(Epsilon), nil
	}
	return result, nil
}

func (p *parser) parseFactor() (NodeID, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return None, err
	}
	for !p.eof() {
		switch p.peek() {
		case '*':
			atom = p.tree.unary(Star, atom)
		case '+':
			atom = p.tree.unary(Plus, atom)
		case '?':
			atom = p.tree.unary(Optional, atom)
		case '#':
			p.pos++
			if p.eof() || p.peek() == '|' || p.peek() == ')' {
				return None, p.errorf("operator '#' has no right operand")
			}
			right, err := p.parseFactor()
			if err != nil {
				return None, err
			}
			return p.tree.binary(Diff, atom, right), nil
		default:
			return atom, nil
		}
		p.pos++
	}
	return atom, nil
}

func (p *parser) parseAtom() (NodeID, error) {
	r := p.peek()
	switch {
	case r == '(':
		open := p.pos
		p.pos++
		inner, err := p.parseRegex()
		if err != nil {
			return None, err
		}
		if p.eof() || p.peek() != ')' {
			p.pos = open
			return None, p.errorf("missing ')'")
		}
		p.pos++
		return inner, nil
	case r == '_':
		p.pos++
		return p.tree.class(append([]rune(nil), p.opts.alphabet...), true), nil
	case r == '[':
		p.pos++
		return p.parseClass()
	case r == '\'':
		p.pos++
		c, err := p.readQuoted()
		if err != nil {
			return None, err
		}
		return p.tree.char(c), nil
	case r == '"':
		p.pos++
		return p.parseString()
	case r == '*' || r == '+' || r == '?' || r == '#':
		return None, p.errorf("operator %q has no operand", r)
	case isIdentStart(r):
		return p.parseIdent()
	}
	p.pos++
	return p.tree.char(r), nil
}

func (p *parser) parseIdent() (NodeID, error) {
	start := p.pos
	for !p.eof() && isIdentPart(p.peek()) {
		p.pos++
	}
	name := string(p.src[start:p.pos])
	if p.record && !slices.Contains(p.refs, name) {
		p.refs = append(p.refs, name)
	}
	if p.defs != nil {
		if def, ok := p.defs.trees[name]; ok {
			return p.tree.graft(def), nil
		}
	}
	if p.opts.strict && p.pos-start > 1 {
		return None, &PatternError{
			Pattern: p.pattern,
			Offset:  start,
			Msg:     fmt.Sprintf("identifier %q", name),
			Err:     ErrUndefinedReference,
		}
	}
	// unknown names are literal text, which is how keywords are written
	id := p.tree.char(p.src[start])
	for _, c := range p.src[start+1 : p.pos] {
		id = p.tree.binary(Concat, id, p.tree.char(c))
	}
	return id, nil
}

func (p *parser) parseString() (NodeID, error) {
	open := p.pos - 1
	id := None
	for {
		if p.eof() {
			p.pos = open
			return None, p.errorf("unterminated string")
		}
		if p.peek() == '"' {
			p.pos++
			break
		}
		c, err := p.readChar()
		if err != nil {
			return None, err
		}
		if id == None {
			id = p.tree.char(c)
		} else {
			id = p.tree.binary(Concat, id, p.tree.char(c))
		}
	}
	if id == None {
		return p.tree.char(Epsilon), nil
	}
	return id, nil
}

// parseClass is entered after '['.
func (p *parser) parseClass() (NodeID, error) {
	open := p.pos - 1
	negate := false
	if !p.eof() && p.peek() == '^' {
		negate = true
		p.pos++
	}
	var set []rune
	for {
		if p.eof() {
			p.pos = open
			return None, p.errorf("missing ']'")
		}
		if p.peek() == ']' {
			p.pos++
			break
		}
		if p.stringAt(p.pos) {
			p.pos++
			for {
				if p.eof() {
					p.pos = open
					return None, p.errorf("missing ']'")
				}
				if p.peek() == '"' {
					p.pos++
					break
				}
				c, err := p.readChar()
				if err != nil {
					return None, err
				}
				set = append(set, c)
			}
			continue
		}
		lo, err := p.classItem()
		if err != nil {
			return None, err
		}
		if p.pos+1 < len(p.src) && p.peek() == '-' && p.src[p.pos+1] != ']' {
			p.pos++
			hi, err := p.classItem()
			if err != nil {
				return None, err
			}
			if hi < lo {
				return None, p.errorf("bad range %s-%s", SymbolString(lo), SymbolString(hi))
			}
			for c := lo; c <= hi; c++ {
				set = append(set, c)
			}
			continue
		}
		set = append(set, lo)
	}
	set = normalize(set)
	if negate {
		return p.tree.class(p.opts.alphabet.Complement(set), false), nil
	}
	if len(set) == 0 {
		return p.tree.char(Epsilon), nil
	}
	return p.tree.class(set, false), nil
}

// classItem reads one class member: a quoted char, an escape or a plain
// char.
func (p *parser) classItem() (rune, error) {
	if p.quotedAt(p.pos) {
		p.pos++
		return p.readQuoted()
	}
	return p.readChar()
}

// quotedAt reports whether a complete 'c' or '\c' literal starts at i.
func (p *parser) quotedAt(i int) bool {
	if p.src[i] != '\'' {
		return false
	}
	if i+2 < len(p.src) && p.src[i+1] != '\\' && p.src[i+2] == '\'' {
		return true
	}
	return i+3 < len(p.src) && p.src[i+1] == '\\' && p.src[i+3] == '\''
}

// stringAt reports whether a "..." run starts at i and the enclosing class
// can still close after it; a lone '"' is a plain member.
func (p *parser) stringAt(i int) bool {
	if p.src[i] != '"' {
		return false
	}
	for j := i + 1; j < len(p.src); j++ {
		switch p.src[j] {
		case '\\':
			j++
		case '"':
			return slices.Contains(p.src[j+1:], ']')
		}
	}
	return false
}

// readQuoted reads the char and closing quote of a 'c' literal; the
// opening quote is already consumed.
func (p *parser) readQuoted() (rune, error) {
	open := p.pos - 1
	if p.eof() {
		p.pos = open
		return 0, p.errorf("unterminated quote")
	}
	c, err := p.readChar()
	if err != nil {
		return 0, err
	}
	if p.eof() || p.peek() != '\'' {
		p.pos = open
		return 0, p.errorf("unterminated quote")
	}
	p.pos++
	return c, nil
}

// readChar consumes one char, resolving backslash escapes.
func (p *parser) readChar() (rune, error) {
	c := p.peek()
	p.pos++
	if c != '\\' {
		return c, nil
	}
	if p.eof() {
		return 0, p.errorf("trailing backslash")
	}
	c = p.peek()
	p.pos++
	return unescape(c), nil
}

func unescape(c rune) rune {
	switch c {
	case 't':
		return '\t'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 's':
		return ' '
	}
	return c
}

func isIdentStart(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }
func isIdentPart(r rune) bool  { return isIdentStart(r) || r == '_' }
