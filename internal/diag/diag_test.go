package diag

import (
	"strings"
	"testing"

	"github.com/cyberczar01/yalex/internal/lexer"
)

func errorToken(offset, line, col int, text string) lexer.Token {
	start := lexer.Pos{Offset: offset, Line: line, Column: col}
	return lexer.Token{Type: lexer.Error, Text: text, Start: start}
}

func TestReport(t *testing.T) {
	tests := []struct {
		name string
		src  string
		tok  lexer.Token
		want string
	}{
		{
			name: "first column",
			src:  "$ab",
			tok:  errorToken(0, 1, 1, "$"),
			want: "in.txt:1:1: unrecognized symbol '$'\n|$ab\n|^\n",
		},
		{
			name: "second line",
			src:  "ab\ncd$e\nfg",
			tok:  errorToken(5, 2, 3, "$"),
			want: "in.txt:2:3: unrecognized symbol '$'\n|cd$e\n|  ^\n",
		},
		{
			name: "wide runes",
			src:  "日本$",
			tok:  errorToken(2, 1, 3, "$"),
			want: "in.txt:1:3: unrecognized symbol '$'\n|日本$\n|    ^\n",
		},
		{
			name: "tabs are kept",
			src:  "\tx$",
			tok:  errorToken(2, 1, 3, "$"),
			want: "in.txt:1:3: unrecognized symbol '$'\n|\tx$\n|\t ^\n",
		},
		{
			name: "newline symbol",
			src:  "ab\n",
			tok:  errorToken(2, 1, 3, "\n"),
			want: "in.txt:1:3: unrecognized symbol '\\n'\n|ab\n|  ^\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			if err := Report(&b, "in.txt", tt.src, tt.tok); err != nil {
				t.Fatal(err)
			}
			if got := b.String(); got != tt.want {
				t.Fatalf("want\n%q\ngot\n%q", tt.want, got)
			}
		})
	}
}

func TestReportFromEngine(t *testing.T) {
	src := "aa\n a?"
	var tok lexer.Token
	for tk := range lexer.New(nil, src).All() {
		if tk.Text == "?" {
			tok = tk
			break
		}
	}
	var b strings.Builder
	if err := Report(&b, "x", src, tok); err != nil {
		t.Fatal(err)
	}
	if want := "x:2:3: unrecognized symbol '?'\n| a?\n|  ^\n"; b.String() != want {
		t.Fatalf("got %q", b.String())
	}
}
