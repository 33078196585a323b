package lexer

import (
	"fmt"

	"github.com/cyberczar01/yalex/internal/automata"
)

// TokenType tells matches, lexical errors and end of input apart.
type TokenType int

const (
	Match TokenType = iota
	Error
	EOF
)

func (t TokenType) String() string {
	switch t {
	case Match:
		return "Match"
	case Error:
		return "Error"
	case EOF:
		return "EOF"
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Pos is a point in the input. Offset counts runes; Line and Column start
// at 1.
type Pos struct {
	Offset int
	Line   int
	Column int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// advance moves past r. A newline starts the next line.
func (p *Pos) advance(r rune) {
	p.Offset++
	if r == '\n' {
		p.Line++
		p.Column = 1
		return
	}
	p.Column++
}

// Token is one scanned lexeme. End is the position right after the text.
type Token struct {
	Type   TokenType
	Action automata.Action
	Text   string
	Start  Pos
	End    Pos
}

func (t Token) String() string {
	switch t.Type {
	case Match:
		return fmt.Sprintf("%s %s %q", t.Start, t.Action, t.Text)
	case Error:
		return fmt.Sprintf("%s error %q", t.Start, t.Text)
	}
	return fmt.Sprintf("%s EOF", t.Start)
}
