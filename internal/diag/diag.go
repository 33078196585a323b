// Package diag prints lexical errors with the offending source line.
package diag

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/width"

	"github.com/cyberczar01/yalex/internal/lexer"
)

// Report writes an error token as
//
//	name:line:col: unrecognized symbol 'x'
//	|the source line
//	|    ^
//
// src must be the input the token was scanned from.
func Report(w io.Writer, name string, src string, tok lexer.Token) error {
	var b strings.Builder
	sym := []rune(tok.Text)
	var r rune
	if len(sym) > 0 {
		r = sym[0]
	}
	fmt.Fprintf(&b, "%s:%s: unrecognized symbol %q\n", name, tok.Start, r)

	line, col := lineAt([]rune(src), tok.Start.Offset)
	fmt.Fprintf(&b, "|%s\n", string(line))
	b.WriteByte('|')
	pad(&b, line[:col])
	b.WriteString("^\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// lineAt returns the line holding offset, without its newline, and the
// offset's index inside it.
func lineAt(src []rune, offset int) ([]rune, int) {
	if offset > len(src) {
		offset = len(src)
	}
	start := offset
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	end := offset
	for end < len(src) && src[end] != '\n' {
		end++
	}
	return src[start:end], offset - start
}

// pad writes blanks covering the cells taken by prefix. Tabs are copied so
// the caret lines up whatever the tab width.
func pad(b *strings.Builder, prefix []rune) {
	for _, r := range prefix {
		switch {
		case r == '\t':
			b.WriteByte('\t')
		case !unicode.IsGraphic(r):
		default:
			b.WriteString(strings.Repeat(" ", cells(r)))
		}
	}
}

// cells is the number of terminal cells r takes with a monospaced font.
func cells(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianFullwidth, width.EastAsianWide:
		return 2
	}
	return 1
}
