package lsp

import (
	"context"
	"fmt"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/uri"
)

func sendParseError(ctx context.Context, reply jsonrpc2.Replier, err error) error {
	return reply(ctx, nil, fmt.Errorf("%w: %s", jsonrpc2.ErrParse, err))
}

func sendDocumentNotFound(ctx context.Context, reply jsonrpc2.Replier, u uri.URI) error {
	return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.InvalidParams, "document not open: "+string(u)))
}
