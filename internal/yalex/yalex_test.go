package yalex

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/d4l3k/messagediff"

	"github.com/cyberczar01/yalex/internal/lexgen"
)

const calcYal = `(* simple calculator *)
{ import tokens }

let delim = [' ' '\t' '\n']
let ws = delim+
let letter = ['A'-'Z' 'a'-'z']
let digit = ['0'-'9']
let id = letter (letter | digit)*
let number = digit+ ('.' digit+)?

rule tokens [lexbuf, state] =
    ws        { pass }        (* skipped *)
  | id        { return ID }
  | number    { return NUMBER }
  | '+' | '-' { return ADD }
  | '*'       { TIMES }
  | "=="      { return EQ; }
  | '('       { return LPAREN }
  | ')'       { return RPAREN }
  | _         {}

{ print("done") }
`

func TestParseFile(t *testing.T) {
	f, err := Parse("calc.yal", []byte(calcYal))
	if err != nil {
		t.Fatal(err)
	}
	want := &File{
		Header:     "import tokens",
		Trailer:    `print("done")`,
		Entrypoint: "tokens",
		Args:       []string{"lexbuf", "state"},
		Definitions: []Definition{
			{"delim", `[' ' '\t' '\n']`},
			{"ws", "(delim)+"},
			{"letter", "['A'-'Z' 'a'-'z']"},
			{"digit", "['0'-'9']"},
			{"id", "(letter)((letter)|(digit))*"},
			{"number", "(digit)+('.'(digit)+)?"},
		},
		Rules: []lexgen.Rule{
			{Pattern: "(ws)"},
			{Pattern: "(id)", Action: "ID"},
			{Pattern: "(number)", Action: "NUMBER"},
			{Pattern: "'+'|'-'", Action: "ADD"},
			{Pattern: "'*'", Action: "TIMES"},
			{Pattern: `"=="`, Action: "EQ"},
			{Pattern: "'('", Action: "LPAREN"},
			{Pattern: "')'", Action: "RPAREN"},
			{Pattern: "_"},
		},
	}
	if diff, equal := messagediff.PrettyDiff(want, f); !equal {
		t.Fatalf("parsed file differs:\n%s", diff)
	}
}

func TestParsedSpecCompiles(t *testing.T) {
	f, err := Parse("calc.yal", []byte(calcYal))
	if err != nil {
		t.Fatal(err)
	}
	p, err := lexgen.Compile(f.Spec(), lexgen.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for tok := range p.Lexer("x1 == (3.5 + y) $").All() {
		got = append(got, string(tok.Action)+":"+tok.Text)
	}
	want := []string{"ID:x1", "EQ:==", "LPAREN:(", "NUMBER:3.5", "ADD:+", "ID:y", "RPAREN:)"}
	if diff, equal := messagediff.PrettyDiff(want, got); !equal {
		t.Fatalf("tokens differ:\n%s", diff)
	}
}

func TestParseMinimal(t *testing.T) {
	f, err := Parse("min.yal", []byte("rule tokens = 'a' { A }"))
	if err != nil {
		t.Fatal(err)
	}
	if f.Header != "" || f.Trailer != "" || len(f.Definitions) != 0 || len(f.Rules) != 1 {
		t.Fatalf("got %+v", f)
	}
	if s := f.Spec(); s.Definitions != nil {
		t.Fatalf("want nil definitions got %v", s.Definitions)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"let a = 'x'",
		"rule tokens = 'a'",
		"let = 'x' rule tokens = 'a' { A }",
		"let a = 'x' let a = 'y' rule tokens = a { A }",
	}
	for _, src := range tests {
		if _, err := Parse("bad.yal", []byte(src)); err == nil {
			t.Fatalf("%q: want error", src)
		}
	}
}

func TestAction(t *testing.T) {
	tests := map[string]string{
		"{ return ID }":   "ID",
		"{ID}":            "ID",
		"{ return ID; }":  "ID",
		"{}":              "",
		"{ pass }":        "",
		"{ returnValue }": "returnValue",
		"{ return }":      "",
	}
	for in, want := range tests {
		if got := action(in); string(got) != want {
			t.Fatalf("%q: want %q got %q", in, want, got)
		}
	}
}

func TestLoadYAML(t *testing.T) {
	doc := `
entrypoint: tokens
definitions:
  - name: digit
    pattern: "[0-9]"
rules:
  - pattern: digit+
    action: NUM
  - pattern: "' '"
`
	f, err := LoadYAML([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	want := lexgen.Spec{
		Definitions: map[string]string{"digit": "[0-9]"},
		Rules:       []lexgen.Rule{{Pattern: "digit+", Action: "NUM"}, {Pattern: "' '"}},
	}
	if diff, equal := messagediff.PrettyDiff(want, f.Spec()); !equal {
		t.Fatalf("spec differs:\n%s", diff)
	}

	if _, err := LoadYAML([]byte("rules: []")); !errors.Is(err, ErrNoRules) {
		t.Fatalf("want ErrNoRules got %v", err)
	}
	if _, err := LoadYAML([]byte("rulez: [{pattern: a}]")); err == nil {
		t.Fatalf("unknown field accepted")
	}
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	yal := filepath.Join(dir, "calc.yal")
	js := filepath.Join(dir, "calc.json")
	if err := os.WriteFile(yal, []byte(calcYal), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(js, []byte(`{"rules":[{"pattern":"a","action":"A"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(yal)
	if err != nil || f.Entrypoint != "tokens" {
		t.Fatalf("yal: %v %+v", err, f)
	}
	f, err = Load(js)
	if err != nil || len(f.Rules) != 1 || f.Rules[0].Action != "A" {
		t.Fatalf("json: %v %+v", err, f)
	}
	if _, err := Load(filepath.Join(dir, "missing.yal")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want ErrNotExist got %v", err)
	}
}
