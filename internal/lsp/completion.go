package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/tu10ng/racoon/internal/ast"
	"github.com/tu10ng/racoon/internal/semantic"
)

func completionItem(label string, kind protocol.CompletionItemKind, detail string) protocol.CompletionItem {
	item := protocol.CompletionItem{Label: label, Kind: &kind}
	if detail != "" {
		item.Detail = ptrString(detail)
	}
	return item
}

func builtinCompletions() []protocol.CompletionItem {
	var items []protocol.CompletionItem
	for _, b := range semantic.Builtins() {
		items = append(items, completionItem(b.Name, protocol.CompletionItemKindFunction, b.Type.String()))
	}
	return items
}

// programCompletions lists the functions and globals of prog. Types are only
// known once the checker ran, so detail may be empty.
func programCompletions(prog *ast.Program) []protocol.CompletionItem {
	if prog == nil {
		return nil
	}

	var items []protocol.CompletionItem
	for _, item := range prog.Items {
		switch v := item.(type) {
		case *ast.FuncDecl:
			detail := ""
			if v.Ty != nil {
				detail = v.Ty.String()
			}
			items = append(items, completionItem(v.Name.Value, protocol.CompletionItemKindFunction, detail))
		case *ast.VarDecl:
			kind := protocol.CompletionItemKindVariable
			if v.Const {
				kind = protocol.CompletionItemKindConstant
			}
			for _, def := range v.Defs {
				detail := ""
				if def.Type != nil {
					detail = def.Type.String()
				}
				items = append(items, completionItem(def.Name.Value, kind, detail))
			}
		}
	}
	return items
}
