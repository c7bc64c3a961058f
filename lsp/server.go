// Package lsp serves front-end diagnostics over the Language Server
// Protocol: every open document is re-lexed and re-parsed on change and
// the collected diagnostics are published to the client.
package lsp

import (
	"net/url"
	"strings"

	"github.com/dhamidi/zest/diagnostics"
	"github.com/dhamidi/zest/lex"
	"github.com/dhamidi/zest/parse"
	"github.com/dhamidi/zest/source"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "zest"

// Server is a stdio LSP server over the lex and parse stages.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
}

func NewServer(version string) *Server {
	s := &Server{version: version}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,
		TextDocumentDidSave:   s.textDocumentDidSave,
	}

	s.server = server.NewServer(&s.handler, lsName, false)
	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.publishDiagnostics(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.publishDiagnostics(ctx, params.TextDocument.URI, textChange.Text)
	}
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		s.publishDiagnostics(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

// collectingConsumer gathers diagnostics for conversion to LSP.
type collectingConsumer struct {
	collected []diagnostics.Diagnostic
}

func (c *collectingConsumer) HandleDiagnostic(d diagnostics.Diagnostic) {
	c.collected = append(c.collected, d)
}

func (c *collectingConsumer) Flush() {}

// publishDiagnostics runs the front end over the document text and
// pushes the resulting diagnostics to the client.
func (s *Server) publishDiagnostics(ctx *glsp.Context, uri string, text string) {
	collector := &collectingConsumer{}
	sorting := diagnostics.NewSortingConsumer(collector)

	src := source.NewFromText(text, uriToPath(uri))
	tokens := lex.Lex(src, sorting)
	parse.Parse(tokens, sorting)
	sorting.Flush()

	published := make([]protocol.Diagnostic, 0, len(collector.collected))
	for _, d := range collector.collected {
		severity := protocol.DiagnosticSeverityError
		if d.Level == diagnostics.Warning {
			severity = protocol.DiagnosticSeverityWarning
		}
		line := protocol.UInteger(0)
		if d.Location.LineNumber > 0 {
			line = protocol.UInteger(d.Location.LineNumber - 1)
		}
		column := protocol.UInteger(0)
		if d.Location.ColumnNumber > 0 {
			column = protocol.UInteger(d.Location.ColumnNumber - 1)
		}
		sourceName := lsName
		published = append(published, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: line, Character: column},
				End:   protocol.Position{Line: line, Character: column + 1},
			},
			Severity: &severity,
			Source:   &sourceName,
			Message:  d.Message(),
		})
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: published,
	})
}

func uriToPath(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != "file" {
		return strings.TrimPrefix(uri, "file://")
	}
	return parsed.Path
}

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *protocol.TextDocumentSyncKind {
	kind := protocol.TextDocumentSyncKind(i)
	return &kind
}
