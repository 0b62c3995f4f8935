package lsp

import (
	"context"
	"errors"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/mkerr/ergols/template"
)

// publishDiagnostics validates annotated contract documents and
// publishes template validation errors. Documents without a @contract
// annotation always get an empty diagnostic set.
func (s *Server) publishDiagnostics(ctx context.Context, doc *Document) {
	diagnostics := []protocol.Diagnostic{}

	if isContractDocument(doc.Content) {
		_, err := template.Extract(doc.Content)
		if err != nil {
			diagnostics = append(diagnostics, templateDiagnostic(err))
		}
	}

	err := s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     uint32(doc.Version), //nolint:gosec // LSP version numbers are always non-negative
		Diagnostics: diagnostics,
	})
	if err != nil {
		s.logger.Error("Failed to publish diagnostics", zap.Error(err))
	}
}

// templateDiagnostic converts a template validation error to an LSP
// diagnostic anchored at the offending line.
func templateDiagnostic(err error) protocol.Diagnostic {
	diag := protocol.Diagnostic{
		Severity: protocol.DiagnosticSeverityError,
		Source:   "ergols",
		Message:  err.Error(),
		Code:     "template-error",
	}

	var terr *template.Error
	if errors.As(err, &terr) {
		diag.Code = string(terr.Kind)

		if terr.Line > 0 {
			line := uint32(terr.Line - 1) //nolint:gosec // G115: line numbers are small
			diag.Range = protocol.Range{
				Start: protocol.Position{Line: line, Character: 0},
				End:   protocol.Position{Line: line + 1, Character: 0},
			}
		}
	}

	return diag
}
