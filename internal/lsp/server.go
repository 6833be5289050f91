package lsp

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync/atomic"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/multierr"

	"github.com/harry-hov/debughover/internal/env"
	"github.com/harry-hov/debughover/internal/hover"
	"github.com/harry-hov/debughover/internal/version"
)

const versionCommand = "debughover.version"

type server struct {
	conn jsonrpc2.Conn
	env  *env.Env

	snapshot    *Snapshot
	controllers *Cache
	frame       *activeFrame

	// clock is nil outside tests.
	clock hover.Clock

	shutdown atomic.Bool
}

// BuildServerHandler returns the handler serving conn. Requests are handled
// in order but off the connection's read loop, since showing a hover waits
// for the client to answer debug/evaluate on the same connection.
func BuildServerHandler(conn jsonrpc2.Conn, env *env.Env) jsonrpc2.Handler {
	return newServer(conn, env).handler()
}

func newServer(conn jsonrpc2.Conn, env *env.Env) *server {
	return &server{
		conn: conn,

		env: env,

		snapshot:    NewSnapshot(),
		controllers: NewCache(),
		frame:       &activeFrame{},
	}
}

func (s *server) handler() jsonrpc2.Handler {
	return jsonrpc2.AsyncHandler(jsonrpc2.ReplyHandler(s.ServerHandler))
}

func (s *server) ServerHandler(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	if s.shutdown.Load() && req.Method() != "exit" {
		return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.InvalidRequest, "server is shut down: "+req.Method()))
	}

	switch req.Method() {
	case "exit":
		return s.Exit(ctx, reply, req)
	case "initialize":
		return s.Initialize(ctx, reply, req)
	case "initialized":
		return s.Initialized(ctx, reply, req)
	case "shutdown":
		return s.Shutdown(ctx, reply, req)
	case "textDocument/didChange":
		return s.DidChange(ctx, reply, req)
	case "textDocument/didClose":
		return s.DidClose(ctx, reply, req)
	case "textDocument/didOpen":
		return s.DidOpen(ctx, reply, req)
	case "textDocument/hover":
		return s.Hover(ctx, reply, req)
	case "workspace/executeCommand":
		return s.ExecuteCommand(ctx, reply, req)
	case MethodSetActiveFrame:
		return s.SetActiveFrame(ctx, reply, req)
	case MethodShowHover:
		return s.ShowHover(ctx, reply, req)
	case MethodHideHover:
		return s.HideHover(ctx, reply, req)
	case MethodResolveExpression:
		return s.ResolveExpression(ctx, reply, req)
	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

func (s *server) Initialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.InitializeParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return sendParseError(ctx, reply, err)
	}

	return reply(ctx, protocol.InitializeResult{
		ServerInfo: &protocol.ServerInfo{
			Name:    "debughover",
			Version: version.Version,
		},
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				Change:    protocol.TextDocumentSyncKindFull,
				OpenClose: true,
			},
			HoverProvider: true,
			ExecuteCommandProvider: &protocol.ExecuteCommandOptions{
				Commands: []string{
					versionCommand,
				},
			},
		},
	}, nil)
}

func (s *server) Initialized(ctx context.Context, reply jsonrpc2.Replier, _ jsonrpc2.Request) error {
	slog.Info("initialized")
	return reply(ctx, nil, nil)
}

func (s *server) Shutdown(ctx context.Context, reply jsonrpc2.Replier, _ jsonrpc2.Request) error {
	slog.Info("shutdown")
	s.shutdown.Store(true)
	s.controllers.DisposeAll()
	return reply(ctx, nil, nil)
}

func (s *server) Exit(ctx context.Context, reply jsonrpc2.Replier, _ jsonrpc2.Request) error {
	slog.Info("exit")
	s.controllers.DisposeAll()
	err := multierr.Append(reply(ctx, nil, nil), s.conn.Close())
	if err != nil {
		slog.Error("exit", "err", err)
	}
	if s.shutdown.Load() {
		os.Exit(0)
	}
	os.Exit(1)
	return nil
}

func (s *server) ExecuteCommand(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.ExecuteCommandParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return sendParseError(ctx, reply, err)
	}

	switch params.Command {
	case versionCommand:
		return reply(ctx, version.GetVersion(ctx), nil)
	default:
		return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.InvalidParams, "unknown command "+params.Command))
	}
}
