package lsp

import (
	"context"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/mkerr/ergols/analysis"
)

// Definition handles textDocument/definition requests by resolving
// user-declared values to their declaration line.
func (s *Server) Definition(_ context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error) {
	s.logger.Debug("Definition",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Uint32("line", params.Position.Line))

	doc, ok := s.getDocument(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	offset, ok := analysis.OffsetAt(doc.Content, int(params.Position.Line), int(params.Position.Character))
	if !ok {
		return nil, nil
	}

	word, _, _ := analysis.WordAt(doc.Content, offset)
	if word == "" {
		return nil, nil
	}

	sym, ok := analysis.ExtractSymbols(doc.Content)[word]
	if !ok {
		return nil, nil
	}

	line := uint32(sym.Line) //nolint:gosec // G115: line numbers are small

	return []protocol.Location{{
		URI: params.TextDocument.URI,
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: 0},
			End:   protocol.Position{Line: line, Character: 0},
		},
	}}, nil
}
