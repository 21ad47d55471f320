package errors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/tu10ng/racoon/internal/ast"
)

// ErrorLevel represents the severity of an error
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// CompilerError represents a structured error with suggestions and context
type CompilerError struct {
	Level       ErrorLevel
	Code        string       // Error code like E0001
	Message     string       // Primary error message
	Position    ast.Position // Location in source
	Length      int          // Length of the problematic region
	Suggestions []Suggestion // Suggested fixes
	Notes       []string     // Additional context notes
	HelpText    string       // Help text for the error
}

func (e CompilerError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%d:%d: %s", e.Position.Line, e.Position.Column, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s[%s]: %s", e.Position.Line, e.Position.Column, e.Level, e.Code, e.Message)
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string       // Description of the suggestion
	Replacement string       // Suggested replacement text (optional)
	Position    ast.Position // Position to apply the fix (optional)
	Length      int          // Length of text to replace (optional)
}

// ErrorReporter renders CompilerErrors against the source they refer to
type ErrorReporter struct {
	filename string
	source   string
	lines    []string
}

// NewErrorReporter creates a new error reporter for a file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		source:   source,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatError renders err as a header, a source excerpt with one line of
// context on each side, a caret under the span and any suggestions.
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var b strings.Builder
	width := er.getLineNumberWidth(err.Position.Line + 1)
	gutter := strings.Repeat(" ", width)
	dim := color.New(color.Faint).SprintFunc()

	er.writeHeader(&b, err)
	fmt.Fprintf(&b, "%s %s %s:%d:%d\n", gutter, dim("-->"), er.filename, err.Position.Line, err.Position.Column)
	fmt.Fprintf(&b, "%s %s\n", gutter, dim("│"))
	er.writeExcerpt(&b, err, width)
	er.writeSuggestions(&b, err.Suggestions, gutter)

	for _, note := range err.Notes {
		fmt.Fprintf(&b, "%s %s %s %s\n", gutter, dim("│"), color.New(color.FgBlue).Sprint("note:"), note)
	}
	if err.HelpText != "" {
		fmt.Fprintf(&b, "%s %s %s %s\n", gutter, dim("│"), color.New(color.FgGreen).Sprint("help:"), err.HelpText)
	}

	b.WriteString("\n")
	return b.String()
}

func (er *ErrorReporter) writeHeader(b *strings.Builder, err CompilerError) {
	level := er.getLevelColor(err.Level)(string(err.Level))
	if err.Code != "" {
		fmt.Fprintf(b, "%s[%s]: %s\n", level, err.Code, err.Message)
		return
	}
	fmt.Fprintf(b, "%s: %s\n", level, err.Message)
}

// writeExcerpt prints the lines around err.Position. Only the error line is
// bold and carries the marker.
func (er *ErrorReporter) writeExcerpt(b *strings.Builder, err CompilerError, width int) {
	dim := color.New(color.Faint).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()
	line := err.Position.Line

	for n := line - 1; n <= line+1; n++ {
		if n < 1 || n > len(er.lines) {
			continue
		}
		content := er.lines[n-1]
		number := fmt.Sprintf("%*d", width, n)
		if n != line {
			fmt.Fprintf(b, "%s %s %s\n", dim(number), dim("│"), content)
			continue
		}
		fmt.Fprintf(b, "%s %s %s\n", bold(number), dim("│"), content)
		marker := er.createMarker(content, err.Position.Column, err.Length, err.Level)
		fmt.Fprintf(b, "%s %s %s\n", strings.Repeat(" ", width), dim("│"), marker)
	}
}

func (er *ErrorReporter) writeSuggestions(b *strings.Builder, suggestions []Suggestion, gutter string) {
	if len(suggestions) == 0 {
		return
	}
	dim := color.New(color.Faint).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintf(b, "%s %s\n", gutter, dim("│"))
	for i, s := range suggestions {
		if i == 0 {
			fmt.Fprintf(b, "%s %s %s: %s\n", gutter, cyan("help"), cyan("try"), s.Message)
		} else {
			fmt.Fprintf(b, "%s      %s\n", gutter, s.Message)
		}
		if s.Replacement == "" {
			continue
		}
		fmt.Fprintf(b, "%s %s\n", gutter, dim("│"))
		for _, line := range strings.Split(s.Replacement, "\n") {
			fmt.Fprintf(b, "%s %s %s\n", gutter, cyan("│"), cyan(line))
		}
	}
}

// FormatErrors formats every error in order
func (er *ErrorReporter) FormatErrors(errs []CompilerError) string {
	var result strings.Builder
	for _, err := range errs {
		result.WriteString(er.FormatError(err))
	}
	return result.String()
}

// getLevelColor returns the appropriate color function for an error level
func (er *ErrorReporter) getLevelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// createMarker creates the underline marker. Column counts runes; the
// padding is measured in display cells so wide characters line up.
func (er *ErrorReporter) createMarker(line string, column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}

	runes := []rune(line)
	prefix := runes[:min(len(runes), max(0, column-1))]
	var pad strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			pad.WriteRune('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	if missing := column - 1 - len(prefix); missing > 0 {
		pad.WriteString(strings.Repeat(" ", missing))
	}

	markerColor := er.getLevelColor(level)
	if level != Warning {
		markerColor = color.New(color.FgRed, color.Bold).SprintFunc()
	}
	return pad.String() + markerColor(strings.Repeat("^", length))
}

// getLineNumberWidth is the gutter width for line numbers up to line, never
// narrower than three columns.
func (er *ErrorReporter) getLineNumberWidth(line int) int {
	return max(3, len(strconv.Itoa(line)))
}
