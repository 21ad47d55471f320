package grammar

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
)

var parser = buildParser()

func buildParser() *participle.Parser[CompUnit] {
	p, err := participle.Build[CompUnit](
		participle.Lexer(RacoonLexer),
		participle.Elide("Whitespace", "Comment", "BlockComment", "Invalid"),
		participle.UseLookahead(4),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build parser: %w", err))
	}
	return p
}

// ParseFile reads and parses a SysY source file.
func ParseFile(path string) (*CompUnit, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseString(path, string(source))
}

// ParseString parses SysY source text. Errors are participle.Error values
// carrying the offending position. Invalid characters are skipped here; use
// ScanInvalid to report them.
func ParseString(filename, source string) (*CompUnit, error) {
	return parser.ParseString(filename, source)
}
