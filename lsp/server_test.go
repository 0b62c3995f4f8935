package lsp_test

import (
	"context"
	"testing"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/mkerr/ergols/lsp"
)

// mockClient implements protocol.Client for testing.
type mockClient struct {
	diagnostics []protocol.PublishDiagnosticsParams
}

func (m *mockClient) PublishDiagnostics(_ context.Context, params *protocol.PublishDiagnosticsParams) error {
	m.diagnostics = append(m.diagnostics, *params)

	return nil
}

// Stub out remaining Client interface methods.
func (m *mockClient) Progress(context.Context, *protocol.ProgressParams) error { return nil }
func (m *mockClient) WorkDoneProgressCreate(context.Context, *protocol.WorkDoneProgressCreateParams) error {
	return nil
}
func (m *mockClient) ShowMessage(context.Context, *protocol.ShowMessageParams) error { return nil }
func (m *mockClient) ShowMessageRequest(
	context.Context, *protocol.ShowMessageRequestParams,
) (*protocol.MessageActionItem, error) {
	return nil, nil //nolint:nilnil // Mock stub returns nil for tests
}
func (m *mockClient) LogMessage(context.Context, *protocol.LogMessageParams) error { return nil }
func (m *mockClient) Telemetry(context.Context, any) error                         { return nil }
func (m *mockClient) RegisterCapability(context.Context, *protocol.RegistrationParams) error {
	return nil
}
func (m *mockClient) UnregisterCapability(context.Context, *protocol.UnregistrationParams) error {
	return nil
}
func (m *mockClient) ApplyEdit(context.Context, *protocol.ApplyWorkspaceEditParams) (bool, error) {
	return false, nil
}
func (m *mockClient) Configuration(context.Context, *protocol.ConfigurationParams) ([]any, error) {
	return nil, nil
}
func (m *mockClient) WorkspaceFolders(context.Context) ([]protocol.WorkspaceFolder, error) {
	return nil, nil
}

func newTestServer(t *testing.T) (*lsp.Server, *mockClient) {
	t.Helper()

	logger := zap.NewNop()
	client := &mockClient{}
	server := lsp.NewServer(client, logger)

	return server, client
}

// openDoc initializes the server and opens a document with the given
// content.
func openDoc(t *testing.T, server *lsp.Server, uri protocol.DocumentURI, text string) {
	t.Helper()

	ctx := context.Background()

	_, _ = server.Initialize(ctx, &protocol.InitializeParams{})
	_ = server.Initialized(ctx, &protocol.InitializedParams{})

	err := server.DidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:     uri,
			Version: 1,
			Text:    text,
		},
	})
	if err != nil {
		t.Fatalf("DidOpen() error: %v", err)
	}
}

func TestServer_Initialize(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	ctx := context.Background()

	result, err := server.Initialize(ctx, &protocol.InitializeParams{})
	if err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}

	if result.Capabilities.TextDocumentSync == nil {
		t.Error("TextDocumentSync capability not set")
	}

	hoverEnabled, ok := result.Capabilities.HoverProvider.(bool)
	if !ok || !hoverEnabled {
		t.Error("HoverProvider not enabled")
	}

	defEnabled, ok := result.Capabilities.DefinitionProvider.(bool)
	if !ok || !defEnabled {
		t.Error("DefinitionProvider not enabled")
	}

	if result.Capabilities.CompletionProvider == nil {
		t.Fatal("CompletionProvider not set")
	}

	triggers := result.Capabilities.CompletionProvider.TriggerCharacters
	if len(triggers) != 2 || triggers[0] != "." || triggers[1] != "(" {
		t.Errorf("TriggerCharacters = %v, want [. (]", triggers)
	}

	if result.ServerInfo == nil || result.ServerInfo.Name != "ergols-lsp" {
		t.Error("ServerInfo not set correctly")
	}
}

func TestServer_DidOpen_ValidScript(t *testing.T) {
	t.Parallel()

	server, client := newTestServer(t)

	openDoc(t, server, "file:///test.es", "val deadline = 100\nsigmaProp(HEIGHT > deadline)\n")

	if len(client.diagnostics) == 0 {
		t.Fatal("Expected diagnostics to be published")
	}

	diag := client.diagnostics[0]
	if len(diag.Diagnostics) != 0 {
		t.Errorf("Expected 0 diagnostics for plain script, got %d", len(diag.Diagnostics))
	}
}

func TestServer_DidOpen_InvalidContract(t *testing.T) {
	t.Parallel()

	server, client := newTestServer(t)

	// Contract with a parameter missing its @param documentation.
	openDoc(t, server, "file:///bad.es", `/** Contract.
 */
@contract def f(x: Int = 1) = { sigmaProp(true) }
`)

	if len(client.diagnostics) == 0 {
		t.Fatal("Expected diagnostics to be published")
	}

	diag := client.diagnostics[0]
	if len(diag.Diagnostics) == 0 {
		t.Fatal("Expected template validation diagnostic")
	}

	d := diag.Diagnostics[0]
	if d.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("severity = %v, want error", d.Severity)
	}

	if d.Code != "MissingParamDoc" {
		t.Errorf("code = %v, want MissingParamDoc", d.Code)
	}

	if d.Range.Start.Line != 2 {
		t.Errorf("diagnostic line = %d, want 2", d.Range.Start.Line)
	}
}

func TestServer_DidChange_UpdatesDiagnostics(t *testing.T) {
	t.Parallel()

	server, client := newTestServer(t)
	ctx := context.Background()

	openDoc(t, server, "file:///test.es", `/** Contract.
 */
@contract def f(x: Int = 1) = { sigmaProp(true) }
`)

	err := server.DidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: "file:///test.es"},
			Version:                2,
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{
			{Text: "/** Contract.\n * @param x doc\n */\n@contract def f(x: Int = 1) = { sigmaProp(true) }\n"},
		},
	})
	if err != nil {
		t.Fatalf("DidChange() error: %v", err)
	}

	if len(client.diagnostics) < 2 {
		t.Fatalf("Expected diagnostics after open and change, got %d", len(client.diagnostics))
	}

	first := client.diagnostics[0]
	if len(first.Diagnostics) == 0 {
		t.Error("Expected a diagnostic after open")
	}

	last := client.diagnostics[len(client.diagnostics)-1]
	if len(last.Diagnostics) != 0 {
		t.Errorf("Expected diagnostics cleared after fix, got %d", len(last.Diagnostics))
	}
}

func TestServer_DidChange_UnknownDocument(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	ctx := context.Background()

	err := server.DidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: "file:///nope.es"},
			Version:                1,
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{{Text: "x"}},
	})
	if err != nil {
		t.Errorf("DidChange() for unknown document should not fail: %v", err)
	}
}

func TestServer_DidClose_ClearsDiagnostics(t *testing.T) {
	t.Parallel()

	server, client := newTestServer(t)
	ctx := context.Background()

	openDoc(t, server, "file:///test.es", "val x = 1\n")

	err := server.DidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///test.es"},
	})
	if err != nil {
		t.Fatalf("DidClose() error: %v", err)
	}

	last := client.diagnostics[len(client.diagnostics)-1]
	if len(last.Diagnostics) != 0 {
		t.Errorf("Expected empty diagnostics on close, got %d", len(last.Diagnostics))
	}
}

func TestServer_ShutdownExit(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	ctx := context.Background()

	if err := server.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error: %v", err)
	}

	if err := server.Exit(ctx); err != nil {
		t.Errorf("Exit() error: %v", err)
	}
}
