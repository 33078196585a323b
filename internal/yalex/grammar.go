package yalex

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var yalLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `\(\*(?s:.*?)\*\)`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Code", Pattern: `\{[^}]*\}`},
	{Name: "Keyword", Pattern: `\b(let|rule)\b`},
	{Name: "Char", Pattern: `'(\\.|[^'\\])'`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Class", Pattern: `\[(\\.|'(\\.|[^'\\])'|"(\\.|[^"\\])*"|[^\]\\])*\]`},
	{Name: "Ident", Pattern: `[\p{L}\p{N}][\p{L}\p{N}_]*`},
	{Name: "Punct", Pattern: `[()|=*+?#_]`},
	{Name: "Other", Pattern: `\S`},
})

type yalFile struct {
	Header  *string     `parser:"@Code?"`
	Lets    []*letDef   `parser:"@@*"`
	Rule    ruleSection `parser:"@@"`
	Trailer *string     `parser:"@Code?"`
}

type letDef struct {
	Name   string   `parser:"'let' @Ident '='"`
	Pieces []*piece `parser:"@@+"`
}

type ruleSection struct {
	Name string         `parser:"'rule' @Ident"`
	Args *string        `parser:"@Class?"`
	Alts []*alternative `parser:"'=' '|'? @@+"`
}

// alternative is one "regexp { action }" entry. A '|' right after the
// action separates entries; any other '|' belongs to the regexp.
type alternative struct {
	Pieces []*piece `parser:"@@+"`
	Action string   `parser:"@Code '|'?"`
}

type piece struct {
	Ident *string `parser:"  @Ident"`
	Text  *string `parser:"| @(Char | String | Class | Punct | Other)"`
}

var yalParser = participle.MustBuild[yalFile](
	participle.Lexer(yalLexer),
	participle.Elide("Whitespace", "Comment"),
)
