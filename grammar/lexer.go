package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var RacoonLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments (must precede the "/" operator)
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "BlockComment", Pattern: `(?s)/\*.*?\*/`},

	// Keywords and identifiers share one token kind; the grammar matches keywords by value.
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},

	// Integer literals: hex, octal and decimal
	{Name: "Int", Pattern: `0[xX][0-9a-fA-F]+|[0-9]+`},

	// Operators, longest first
	{Name: "Operator", Pattern: `\|\||&&|==|!=|<=|>=|[-+*/%<>=!]`},

	{Name: "Punctuation", Pattern: `[(){}\[\];,]`},

	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},

	// Anything else. The parser skips these; ScanInvalid reports them.
	{Name: "Invalid", Pattern: `(?s).`},
})

// InvalidSpan is a run of adjacent characters that no token rule accepts.
type InvalidSpan struct {
	Pos  lexer.Position
	Text string
}

// ScanInvalid lexes source and returns every invalid span in order.
func ScanInvalid(filename, source string) ([]InvalidSpan, error) {
	lex, err := RacoonLexer.LexString(filename, source)
	if err != nil {
		return nil, err
	}
	invalid := RacoonLexer.Symbols()["Invalid"]

	var spans []InvalidSpan
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF() {
			return spans, nil
		}
		if tok.Type != invalid {
			continue
		}
		if n := len(spans); n > 0 && spans[n-1].Pos.Offset+len(spans[n-1].Text) == tok.Pos.Offset {
			spans[n-1].Text += tok.Value
			continue
		}
		spans = append(spans, InvalidSpan{Pos: tok.Pos, Text: tok.Value})
	}
}
