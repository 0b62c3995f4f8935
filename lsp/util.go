package lsp

import (
	"strings"

	"go.lsp.dev/protocol"

	"github.com/mkerr/ergols/analysis"
)

// wordRangeAt returns the range of the identifier at the given
// position, or nil when there is none.
func wordRangeAt(content string, pos protocol.Position) *protocol.Range {
	offset, ok := analysis.OffsetAt(content, int(pos.Line), int(pos.Character))
	if !ok {
		return nil
	}

	word, start, end := analysis.WordAt(content, offset)
	if word == "" {
		return nil
	}

	lineStart := strings.LastIndexByte(content[:offset], '\n') + 1

	return &protocol.Range{
		Start: protocol.Position{
			Line:      pos.Line,
			Character: uint32(max(0, start-lineStart)), //nolint:gosec // G115: values are small column numbers
		},
		End: protocol.Position{
			Line:      pos.Line,
			Character: uint32(max(0, end-lineStart)), //nolint:gosec // G115: values are small column numbers
		},
	}
}
