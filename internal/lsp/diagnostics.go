package lsp

import (
	"strings"

	"fortio.org/safecast"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/tu10ng/racoon/internal/ast"
	"github.com/tu10ng/racoon/internal/errors"
)

const diagnosticSource = "racoon"

// ConvertCompilerErrors transforms compiler errors and warnings into LSP
// diagnostics. Suggestions and notes are appended to the message since the
// protocol has no place of their own for them.
func ConvertCompilerErrors(errs []errors.CompilerError) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(errs))

	for _, err := range errs {
		severity := protocol.DiagnosticSeverityError
		if err.Level == errors.Warning {
			severity = protocol.DiagnosticSeverityWarning
		}

		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    spanRange(err.Position, err.Length),
			Severity: &severity,
			Code:     &protocol.IntegerOrString{Value: err.Code},
			Source:   ptrString(diagnosticSource),
			Message:  diagnosticMessage(err),
		})
	}

	return diagnostics
}

func diagnosticMessage(err errors.CompilerError) string {
	var b strings.Builder
	b.WriteString(err.Message)
	for _, s := range err.Suggestions {
		b.WriteString("\nhelp: ")
		b.WriteString(s.Message)
	}
	for _, note := range err.Notes {
		b.WriteString("\nnote: ")
		b.WriteString(note)
	}
	return b.String()
}

// spanRange converts a 1-based source position and a length into a 0-based
// LSP range on one line.
func spanRange(pos ast.Position, length int) protocol.Range {
	line := toUInteger(pos.Line - 1)
	start := toUInteger(pos.Column - 1)
	return protocol.Range{
		Start: protocol.Position{Line: line, Character: start},
		End:   protocol.Position{Line: line, Character: start + toUInteger(max(length, 1))},
	}
}

// toUInteger clamps positions that do not fit the protocol to zero.
func toUInteger(v int) protocol.UInteger {
	u, err := safecast.Conv[uint32](v)
	if err != nil {
		return 0
	}
	return protocol.UInteger(u)
}

func ptrString(s string) *string {
	return &s
}
