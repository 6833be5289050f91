package lsp

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/uri"

	"github.com/harry-hov/debughover/internal/hover"
)

// activeFrame tracks the source of the debugger's current stack frame, as
// reported by the client.
type activeFrame struct {
	mu     sync.RWMutex
	source uri.URI
	ok     bool
}

func (f *activeFrame) CurrentDebugSource() (uri.URI, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.source, f.ok
}

func (f *activeFrame) set(u uri.URI) {
	f.mu.Lock()
	f.source, f.ok = u, true
	f.mu.Unlock()
}

func (f *activeFrame) clear() {
	f.mu.Lock()
	f.source, f.ok = "", false
	f.mu.Unlock()
}

// clientEvaluator asks the client's debug session to evaluate expressions.
type clientEvaluator struct {
	conn    jsonrpc2.Conn
	uri     uri.URI
	timeout time.Duration
}

func (e *clientEvaluator) Evaluate(ctx context.Context, expression string) (bool, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	var result EvaluateResult
	_, err := e.conn.Call(ctx, MethodEvaluate, &EvaluateParams{
		URI:        e.uri,
		Expression: expression,
	}, &result)
	if err != nil {
		return false, fmt.Errorf("%s %q: %w", MethodEvaluate, expression, err)
	}
	return result.Displayable, nil
}

// clientLayouter tells the client where the hover of one document goes.
type clientLayouter struct {
	conn     jsonrpc2.Conn
	snapshot *Snapshot
	uri      uri.URI
	ctrl     *hover.Controller
}

func (l *clientLayouter) Relayout(ctx context.Context) {
	if err := l.conn.Notify(ctx, MethodHoverLayout, l.params()); err != nil {
		slog.Error("hover layout", "uri", string(l.uri), "err", err)
	}
}

func (l *clientLayouter) params() *HoverLayoutParams {
	params := &HoverLayoutParams{URI: l.uri}
	anchor, ok := l.ctrl.Anchor()
	if !ok {
		return params
	}
	st := l.ctrl.State()
	params.Visible = true
	params.Expression = st.Expression
	if st.Options != nil {
		params.Focus = st.Options.Focus
	}
	if doc, ok := l.snapshot.Get(l.uri); ok {
		pos := positionFromHover(doc, anchor.Position)
		params.Position = &pos
	}
	for _, p := range anchor.Preference {
		params.Preference = append(params.Preference, p.String())
	}
	return params
}

func (s *server) newController(u uri.URI) *hover.Controller {
	layout := &clientLayouter{
		conn:     s.conn,
		snapshot: s.snapshot,
		uri:      u,
	}
	ctrl := hover.NewController(
		hover.Config{
			Document: u,
			Delay:    s.env.HoverDelay,
			Clock:    s.clock,
			Logger:   slog.Default(),
		},
		s.frame,
		s.snapshot.Lines(u),
		&clientEvaluator{conn: s.conn, uri: u, timeout: s.env.EvaluateTimeout},
		layout,
	)
	layout.ctrl = ctrl
	return ctrl
}
