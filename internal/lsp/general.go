package lsp

import (
	"context"
	"encoding/json"
	"log/slog"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

func (s *server) DidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return sendParseError(ctx, reply, err)
	}

	u := uri.URI(params.TextDocument.URI)
	s.snapshot.Set(&Document{
		URI:     params.TextDocument.URI,
		Version: params.TextDocument.Version,
		Src:     []byte(params.TextDocument.Text),
	})
	s.controllers.Put(u, s.newController(u))

	slog.Info("open " + string(u))
	return reply(ctx, nil, nil)
}

func (s *server) DidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return sendParseError(ctx, reply, err)
	}

	u := uri.URI(params.TextDocument.URI)
	s.controllers.Dispose(u)
	s.snapshot.Remove(u)

	slog.Info("close " + string(u))
	return reply(ctx, nil, nil)
}

func (s *server) DidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return sendParseError(ctx, reply, err)
	}

	u := uri.URI(params.TextDocument.URI)
	if _, ok := s.snapshot.Get(u); !ok {
		return sendDocumentNotFound(ctx, reply, u)
	}
	if len(params.ContentChanges) == 0 {
		return reply(ctx, nil, nil)
	}

	// full sync: the last change holds the whole document
	change := params.ContentChanges[len(params.ContentChanges)-1]
	s.snapshot.Set(&Document{
		URI:     params.TextDocument.URI,
		Version: params.TextDocument.Version,
		Src:     []byte(change.Text),
	})

	slog.Info("change " + string(u))
	return reply(ctx, nil, nil)
}
