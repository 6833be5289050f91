package lsp

import (
	"context"
	"errors"
	"io"
	"os"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/pkg/fakenet"

	"github.com/harry-hov/debughover/internal/env"
)

// RunServer serves the protocol on stdin/stdout until the client goes away.
func RunServer(ctx context.Context, env *env.Env) error {
	return Serve(ctx, fakenet.NewConn("stdio", os.Stdin, os.Stdout), env)
}

// Serve serves the protocol on rwc.
func Serve(ctx context.Context, rwc io.ReadWriteCloser, env *env.Env) error {
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(rwc))
	handler := BuildServerHandler(conn, env)
	stream := jsonrpc2.HandlerServer(handler)
	err := stream.ServeStream(ctx, conn)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
