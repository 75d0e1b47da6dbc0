package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `\d+`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[:;]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	scriptParser = participle.MustBuild[Script](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Script is the root AST node of a .koma scene script.
type Script struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Title  *StringLiteral `parser:"Newline* 'script' @String?"`
	Scenes []*Scene       `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Scene is one page: an optional number, an optional layout hint and its panels.
type Scene struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Number *int           `parser:"'scene' @Number?"`
	Layout string         `parser:"@Ident?"`
	Panels []*Panel       `parser:"'{' Newline* ( @@ Newline* )* '}'"`
}

// Panel holds an optional number, an optional kind and the panel statements.
type Panel struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Number     *int           `parser:"'panel' @Number?"`
	Kind       string         `parser:"@Ident?"`
	Statements []*Statement   `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement inside a panel: a dialogue line or a property assignment.
type Statement struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Say        *StringLiteral `parser:"  'say' @String"`
	Assignment *Assignment    `parser:"| @@"`
}

// Assignment uses colon syntax (key: "value").
type Assignment struct {
	Key   string        `parser:"@Ident"`
	Value StringLiteral `parser:"':' Newline* @String"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Dialogue returns the panel's say lines in order.
func (p *Panel) Dialogue() []string {
	var out []string
	for _, st := range p.Statements {
		if st.Say != nil {
			out = append(out, string(*st.Say))
		}
	}
	return out
}

// Property returns the last value assigned to key, if any.
func (p *Panel) Property(key string) (string, bool) {
	var (
		val   string
		found bool
	)
	for _, st := range p.Statements {
		if st.Assignment != nil && st.Assignment.Key == key {
			val, found = string(st.Assignment.Value), true
		}
	}
	return val, found
}

// Parse parses a scene script from an io.Reader.
func Parse(r io.Reader) (*Script, error) {
	return scriptParser.Parse("", r)
}

// ParseString parses a scene script from a string.
func ParseString(input string) (*Script, error) {
	return scriptParser.ParseString("", input)
}
