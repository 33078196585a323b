// Package yalex reads lexer specifications: the YALex text format and an
// equivalent YAML or JSON document.
package yalex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/cyberczar01/yalex/internal/automata"
	"github.com/cyberczar01/yalex/internal/lexgen"
)

// ErrNoRules is returned for a specification without rules.
var ErrNoRules = errors.New("no rules")

// Definition is a named pattern.
type Definition struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
}

// File is a parsed specification. Definitions keep their source order.
type File struct {
	Header      string        `json:"header,omitempty"`
	Trailer     string        `json:"trailer,omitempty"`
	Entrypoint  string        `json:"entrypoint,omitempty"`
	Args        []string      `json:"args,omitempty"`
	Definitions []Definition  `json:"definitions,omitempty"`
	Rules       []lexgen.Rule `json:"rules"`
}

// Spec returns the input of the generator.
func (f *File) Spec() lexgen.Spec {
	spec := lexgen.Spec{Rules: f.Rules}
	if len(f.Definitions) > 0 {
		spec.Definitions = make(map[string]string, len(f.Definitions))
		for _, d := range f.Definitions {
			spec.Definitions[d.Name] = d.Pattern
		}
	}
	return spec
}

func (f *File) validate() error {
	seen := map[string]bool{}
	for _, d := range f.Definitions {
		if d.Name == "" {
			return errors.New("definition without a name")
		}
		if seen[d.Name] {
			return fmt.Errorf("definition %q redefined", d.Name)
		}
		seen[d.Name] = true
	}
	if len(f.Rules) == 0 {
		return ErrNoRules
	}
	return nil
}

// Parse reads the YALex format:
//
//	{ header }
//	let name = regexp
//	rule entrypoint [args] =
//	    regexp { action }
//	  | regexp { action }
//	{ trailer }
//
// Comments are written (* like this *). Whitespace in regexps only matters
// inside quotes and classes.
func Parse(name string, src []byte) (*File, error) {
	ast, err := yalParser.ParseBytes(name, src)
	if err != nil {
		return nil, err
	}
	f := &File{
		Header:     code(ast.Header),
		Trailer:    code(ast.Trailer),
		Entrypoint: ast.Rule.Name,
	}
	if ast.Rule.Args != nil {
		f.Args = strings.FieldsFunc(strings.Trim(*ast.Rule.Args, "[]"), func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n'
		})
	}
	for _, l := range ast.Lets {
		f.Definitions = append(f.Definitions, Definition{Name: l.Name, Pattern: pattern(l.Pieces)})
	}
	for _, alt := range ast.Rule.Alts {
		f.Rules = append(f.Rules, lexgen.Rule{Pattern: pattern(alt.Pieces), Action: action(alt.Action)})
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

// LoadYAML reads a specification from YAML or JSON. Unknown fields are
// rejected.
func LoadYAML(data []byte) (*File, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, err
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads a specification file, choosing the format by extension:
// .yaml, .yml and .json are structured, anything else is YALex.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		f, err := LoadYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return f, nil
	}
	return Parse(path, data)
}

// pattern rebuilds regexp text from tokens. Identifiers are wrapped in
// parentheses so adjacent names stay apart.
func pattern(pieces []*piece) string {
	var b strings.Builder
	for _, p := range pieces {
		if p.Ident != nil {
			b.WriteByte('(')
			b.WriteString(*p.Ident)
			b.WriteByte(')')
			continue
		}
		b.WriteString(*p.Text)
	}
	return b.String()
}

func code(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(*s, "{"), "}"))
}

// action turns "{ return ID }" or "{ ID }" into ID. An empty body or
// "pass" skips the match.
func action(s string) automata.Action {
	body := strings.TrimSpace(strings.TrimSuffix(code(&s), ";"))
	if rest, ok := strings.CutPrefix(body, "return"); ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t') {
		body = strings.TrimSpace(rest)
	}
	if body == "pass" {
		return ""
	}
	return automata.Action(body)
}
