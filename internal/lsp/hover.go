package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/harry-hov/debughover/internal/expr"
)

// Hover resolves the expression under the cursor. The loose range is the
// single character at the cursor position.
func (s *server) Hover(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.HoverParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return sendParseError(ctx, reply, err)
	}

	u := uri.URI(params.TextDocument.URI)
	doc, ok := s.snapshot.Get(u)
	if !ok {
		return sendDocumentNotFound(ctx, reply, u)
	}

	line := int(params.Position.Line) + 1 // starts at 0, so adding 1
	text, err := doc.LineText(line)
	if err != nil {
		return reply(ctx, nil, nil)
	}
	col := runeColumn(text, params.Position.Character)
	expression, r := expr.Expression(text, col, col+1)

	slog.Info("hover", "line", line, "column", col, "expression", expression)
	if r.IsZero() {
		return reply(ctx, nil, nil)
	}

	rng := exprToRange(params.Position.Line, text, r)
	return reply(ctx, protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: FormatHoverContent(expression),
		},
		Range: &rng,
	}, nil)
}

func FormatHoverContent(expression string) string {
	return fmt.Sprintf("```\n%s\n```", expression)
}
