package lsp

import (
	"context"
	"strings"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/mkerr/ergols/analysis"
)

// Hover handles textDocument/hover requests.
func (s *Server) Hover(_ context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	s.logger.Debug("Hover",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Uint32("line", params.Position.Line),
		zap.Uint32("character", params.Position.Character))

	doc, ok := s.getDocument(params.TextDocument.URI)
	if !ok {
		return nil, nil //nolint:nilnil
	}

	info, ok := analysis.HoverAt(doc.Content, int(params.Position.Line), int(params.Position.Character))
	if !ok {
		return nil, nil //nolint:nilnil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverMarkdown(info),
		},
		Range: wordRangeAt(doc.Content, params.Position),
	}, nil
}

// hoverMarkdown renders hover info as markdown.
func hoverMarkdown(info analysis.HoverInfo) string {
	var b strings.Builder

	if info.Signature != "" {
		b.WriteString("```ergoscript\n")
		b.WriteString(info.Signature)
		b.WriteString("\n```\n\n")
	}

	b.WriteString(info.Description)

	if info.Category != "" {
		b.WriteString("\n\n*")
		b.WriteString(info.Category)
		b.WriteString("*")
	}

	return b.String()
}
