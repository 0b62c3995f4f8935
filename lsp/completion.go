package lsp

import (
	"context"
	"strings"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/mkerr/ergols"
	"github.com/mkerr/ergols/analysis"
)

// Completion handles textDocument/completion requests. It never fails:
// any position yields at least the general catalog.
func (s *Server) Completion(_ context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	s.logger.Debug("Completion",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Uint32("line", params.Position.Line),
		zap.Uint32("character", params.Position.Character))

	doc, ok := s.getDocument(params.TextDocument.URI)
	if !ok {
		return nil, nil //nolint:nilnil
	}

	// Trigger character from LSP context if provided
	var triggerChar string
	if params.Context != nil && params.Context.TriggerCharacter != "" {
		triggerChar = params.Context.TriggerCharacter
	}

	result := analysis.Complete(doc.Content, int(params.Position.Line), int(params.Position.Character), triggerChar)

	items := make([]protocol.CompletionItem, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, completionItem(item))
	}

	return &protocol.CompletionList{
		IsIncomplete: result.IsIncomplete,
		Items:        items,
	}, nil
}

// completionItem converts a vocabulary item to an LSP completion item.
func completionItem(item ergols.Item) protocol.CompletionItem {
	ci := protocol.CompletionItem{
		Label:      item.Label,
		Kind:       completionKind(item.Kind),
		Detail:     item.Detail,
		InsertText: item.Insert,
		Documentation: &protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: item.Doc,
		},
	}

	if strings.Contains(item.Insert, "${") || strings.Contains(item.Insert, "$0") {
		ci.InsertTextFormat = protocol.InsertTextFormatSnippet
	}

	return ci
}

// completionKind maps vocabulary kinds onto LSP kinds.
func completionKind(kind ergols.ItemKind) protocol.CompletionItemKind {
	switch kind {
	case ergols.KindKeyword:
		return protocol.CompletionItemKindKeyword
	case ergols.KindConstant:
		return protocol.CompletionItemKindConstant
	case ergols.KindFunction:
		return protocol.CompletionItemKindFunction
	case ergols.KindProperty:
		return protocol.CompletionItemKindProperty
	case ergols.KindMethod:
		return protocol.CompletionItemKindMethod
	case ergols.KindVariable:
		return protocol.CompletionItemKindVariable
	default:
		return protocol.CompletionItemKindText
	}
}
