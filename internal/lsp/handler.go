package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/tu10ng/racoon/internal/driver"
	"github.com/tu10ng/racoon/internal/errors"
)

var log = commonlog.GetLogger("racoon.lsp")

// Semantic token types advertised in the legend.
var SemanticTokenTypes = []string{
	"function",
	"variable",
	"parameter",
}

// Define the set of supported semantic token modifiers
var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
	"defaultLibrary",
}

var keywords = []string{"int", "void", "const", "if", "else", "while", "break", "continue", "return"}

// RacoonHandler implements the LSP server handlers for SysY sources
type RacoonHandler struct {
	mu      sync.RWMutex
	content map[string]string
	results map[string]*driver.Result
}

// NewRacoonHandler creates and returns a new RacoonHandler instance
func NewRacoonHandler() *RacoonHandler {
	return &RacoonHandler{
		content: make(map[string]string),
		results: make(map[string]*driver.Result),
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *RacoonHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{Name: "racoon"},
	}, nil
}

// Initialized is called after the client receives the server's capabilities and completes initialization
func (h *RacoonHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("racoon LSP initialized")
	return nil
}

// Shutdown handles the LSP shutdown request
func (h *RacoonHandler) Shutdown(ctx *glsp.Context) error {
	log.Info("racoon LSP shutdown")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (h *RacoonHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen compiles the opened document and publishes its diagnostics
func (h *RacoonHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Infof("opened file: %s", params.TextDocument.URI)

	diagnostics, err := h.update(params.TextDocument.URI, params.TextDocument.Text)
	if err != nil {
		return err
	}
	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

// TextDocumentDidChange applies the changes, recompiles and publishes the new diagnostics
func (h *RacoonHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("changed file: %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.RLock()
	text := h.content[path]
	h.mu.RUnlock()

	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			text = applyChange(text, c)
		}
	}

	diagnostics, err := h.update(params.TextDocument.URI, text)
	if err != nil {
		return err
	}
	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

// TextDocumentDidClose forgets the document and clears its diagnostics
func (h *RacoonHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Infof("closed file: %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.Lock()
	delete(h.content, path)
	delete(h.results, path)
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

// TextDocumentCompletion offers keywords, runtime routines and the names
// declared at the top level of the document
func (h *RacoonHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	items := make([]protocol.CompletionItem, 0, len(keywords))
	for _, kw := range keywords {
		items = append(items, completionItem(kw, protocol.CompletionItemKindKeyword, ""))
	}

	h.mu.RLock()
	result := h.results[path]
	h.mu.RUnlock()

	items = append(items, builtinCompletions()...)
	if result != nil {
		items = append(items, programCompletions(result.Program)...)
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *RacoonHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	log.Debugf("semantic tokens requested for %s", params.TextDocument.URI)

	result, err := h.getOrUpdate(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	tokens := collectSemanticTokens(result.Program)
	sort.SliceStable(tokens, func(i, j int) bool {
		if tokens[i].Line != tokens[j].Line {
			return tokens[i].Line < tokens[j].Line
		}
		return tokens[i].StartChar < tokens[j].StartChar
	})

	var data []uint32
	var prevLine, prevStart uint32

	// Encode tokens into LSP wire format (using delta-line, delta-start compression)
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return &protocol.SemanticTokens{
		Data: data,
	}, nil
}

// getOrUpdate returns the last compilation of the document, compiling it
// from disk when it was never opened.
func (h *RacoonHandler) getOrUpdate(ctx *glsp.Context, rawURI protocol.DocumentUri) (*driver.Result, error) {
	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	h.mu.RLock()
	result, ok := h.results[path]
	h.mu.RUnlock()
	if ok {
		return result, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	diagnostics, err := h.update(rawURI, string(content))
	if err != nil {
		return nil, err
	}
	if ctx != nil && ctx.Notify != nil {
		sendDiagnosticNotification(ctx, rawURI, diagnostics)
	}

	h.mu.RLock()
	result = h.results[path]
	h.mu.RUnlock()
	return result, nil
}

// update compiles text as the new content of the document and returns the
// diagnostics to publish. The slice is empty, not nil, when the document is
// clean so that earlier diagnostics are cleared.
func (h *RacoonHandler) update(rawURI protocol.DocumentUri, text string) ([]protocol.Diagnostic, error) {
	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	// Compile errors are carried by the result itself.
	result, _ := driver.Compile(path, text)

	h.mu.Lock()
	h.content[path] = text
	h.results[path] = result
	h.mu.Unlock()

	reported := make([]errors.CompilerError, 0, len(result.Errors)+len(result.Warnings))
	reported = append(reported, result.Errors...)
	reported = append(reported, result.Warnings...)
	return ConvertCompilerErrors(reported), nil
}

// applyChange replaces the range of c in text. Positions count runes, which
// matches UTF-16 offsets for all but astral characters.
func applyChange(text string, c protocol.TextDocumentContentChangeEvent) string {
	if c.Range == nil {
		return c.Text
	}
	start := offsetOf(text, c.Range.Start)
	end := offsetOf(text, c.Range.End)
	if end < start {
		start, end = end, start
	}
	return text[:start] + c.Text + text[end:]
}

func offsetOf(text string, pos protocol.Position) int {
	line := protocol.UInteger(0)
	offset := 0
	for line < pos.Line {
		i := strings.IndexByte(text[offset:], '\n')
		if i < 0 {
			return len(text)
		}
		offset += i + 1
		line++
	}
	col := protocol.UInteger(0)
	for i, r := range text[offset:] {
		if col == pos.Character || r == '\n' {
			return offset + i
		}
		col++
	}
	return len(text)
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) → C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	// Normalize to platform-specific separators
	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
