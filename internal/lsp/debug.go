package lsp

import (
	"context"
	"encoding/json"
	"log/slog"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/harry-hov/debughover/internal/expr"
	"github.com/harry-hov/debughover/internal/hover"
)

// Debug hover extensions to the protocol.
const (
	// client -> server
	MethodSetActiveFrame    = "debug/setActiveFrame"
	MethodShowHover         = "debug/showHover"
	MethodHideHover         = "debug/hideHover"
	MethodResolveExpression = "debug/resolveExpression"

	// server -> client
	MethodEvaluate    = "debug/evaluate"
	MethodHoverLayout = "debug/hoverLayout"
)

type SetActiveFrameParams struct {
	// URI is the source of the current stack frame. Nil clears it.
	URI *protocol.DocumentURI `json:"uri,omitempty"`
}

type ShowHoverParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
	Range        protocol.Range                  `json:"range"`
	Focus        bool                            `json:"focus,omitempty"`
	// Immediate defaults to true.
	Immediate *bool `json:"immediate,omitempty"`
}

type HideHoverParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
	// Immediate defaults to true.
	Immediate *bool `json:"immediate,omitempty"`
}

type ResolveExpressionParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
	Range        protocol.Range                  `json:"range"`
}

type ResolveExpressionResult struct {
	Expression string         `json:"expression"`
	Range      protocol.Range `json:"range"`
}

type EvaluateParams struct {
	URI        protocol.DocumentURI `json:"uri"`
	Expression string               `json:"expression"`
}

type EvaluateResult struct {
	// Displayable reports whether the evaluation produced a value worth a hover.
	Displayable bool `json:"displayable"`
}

type HoverLayoutParams struct {
	URI        protocol.DocumentURI `json:"uri"`
	Visible    bool                 `json:"visible"`
	Expression string               `json:"expression,omitempty"`
	Focus      bool                 `json:"focus,omitempty"`
	Position   *protocol.Position   `json:"position,omitempty"`
	Preference []string             `json:"preference,omitempty"`
}

func immediate(p *bool) bool {
	return p == nil || *p
}

func (s *server) SetActiveFrame(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params SetActiveFrameParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return sendParseError(ctx, reply, err)
	}

	if params.URI == nil {
		s.frame.clear()
		slog.Info("active frame cleared")
		return reply(ctx, nil, nil)
	}
	s.frame.set(uri.URI(*params.URI))
	slog.Info("active frame", "uri", string(*params.URI))
	return reply(ctx, nil, nil)
}

func (s *server) ShowHover(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params ShowHoverParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return sendParseError(ctx, reply, err)
	}

	u := uri.URI(params.TextDocument.URI)
	doc, ok := s.snapshot.Get(u)
	if !ok {
		return sendDocumentNotFound(ctx, reply, u)
	}
	ctrl, ok := s.controllers.Get(u)
	if !ok {
		return sendDocumentNotFound(ctx, reply, u)
	}

	sel := selectionFromRange(doc, params.Range)
	slog.Debug("show hover", "uri", string(u), "selection", sel, "immediate", immediate(params.Immediate))
	ctrl.RequestShow(hover.ShowOptions{
		Selection: sel,
		Focus:     params.Focus,
		Debounce:  !immediate(params.Immediate),
	})
	return reply(ctx, nil, nil)
}

func (s *server) HideHover(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params HideHoverParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return sendParseError(ctx, reply, err)
	}

	u := uri.URI(params.TextDocument.URI)
	ctrl, ok := s.controllers.Get(u)
	if !ok {
		return sendDocumentNotFound(ctx, reply, u)
	}

	slog.Debug("hide hover", "uri", string(u), "immediate", immediate(params.Immediate))
	ctrl.RequestHide(hover.HideOptions{
		Debounce: !immediate(params.Immediate),
	})
	return reply(ctx, nil, nil)
}

func (s *server) ResolveExpression(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params ResolveExpressionParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return sendParseError(ctx, reply, err)
	}

	u := uri.URI(params.TextDocument.URI)
	doc, ok := s.snapshot.Get(u)
	if !ok {
		return sendDocumentNotFound(ctx, reply, u)
	}

	sel := selectionFromRange(doc, params.Range)
	text, err := doc.LineText(sel.StartLine)
	if err != nil {
		return reply(ctx, nil, nil)
	}
	expression, r := expr.Expression(text, sel.StartColumn, sel.EndColumn)
	if r.IsZero() {
		return reply(ctx, nil, nil)
	}
	return reply(ctx, ResolveExpressionResult{
		Expression: expression,
		Range:      exprToRange(params.Range.Start.Line, text, r),
	}, nil)
}
