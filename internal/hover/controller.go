package hover

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.lsp.dev/uri"

	"github.com/harry-hov/debughover/internal/expr"
)

type Config struct {
	// Document is the URI of the document the controller serves. Show
	// requests are dropped unless it is the current debug frame's source.
	Document uri.URI
	Delay    time.Duration
	Clock    Clock
	Logger   *slog.Logger
}

// Controller is the show/hide state machine of one document's debug hover.
//
// Requests are expected from a single event source. A show resolves its
// expression before RequestShow returns; evaluation and the relayout that
// follows run on their own goroutine, so a later hide wins over an
// evaluation still in flight. State is guarded by a mutex that is never held
// while a collaborator runs, so a Layouter may call Anchor from Relayout.
type Controller struct {
	doc    uri.URI
	guard  FrameGuard
	lines  LineSource
	eval   Evaluator
	layout Layouter
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	debounce   *debouncer
	visible    bool
	active     *ShowOptions
	expression string
	gen        uint64 // bumped on every show and hide
	disposed   bool

	inflight sync.WaitGroup
}

func NewController(cfg Config, guard FrameGuard, lines LineSource, eval Evaluator, layout Layouter) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		doc:      cfg.Document,
		guard:    guard,
		lines:    lines,
		eval:     eval,
		layout:   layout,
		logger:   logger.With("document", string(cfg.Document)),
		ctx:      ctx,
		cancel:   cancel,
		debounce: newDebouncer(cfg.Clock, cfg.Delay),
	}
}

// RequestShow shows the hover for opts.Selection if the document is where
// the debugger is currently stopped.
func (c *Controller) RequestShow(opts ShowOptions) {
	source, ok := c.guard.CurrentDebugSource()
	if !ok || source != c.doc {
		c.logger.Debug("hover: document is not the current frame source")
		return
	}
	c.schedule(opts.Debounce, func() {
		c.show(opts)
	})
}

func (c *Controller) RequestHide(opts HideOptions) {
	c.schedule(opts.Debounce, c.hide)
}

// schedule runs action now, cancelling any pending delayed action, or makes
// it the only pending delayed action.
func (c *Controller) schedule(debounce bool, action func()) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	if !debounce {
		c.debounce.cancel()
		c.mu.Unlock()
		action()
		return
	}
	c.debounce.schedule(func(token uint64) {
		c.mu.Lock()
		ok := !c.disposed && c.debounce.take(token)
		c.mu.Unlock()
		if ok {
			action()
		}
	})
	c.mu.Unlock()
}

func (c *Controller) show(opts ShowOptions) {
	c.mu.Lock()
	if c.disposed || (c.active != nil && c.active.Selection == opts.Selection) {
		c.mu.Unlock()
		return
	}
	c.active = &opts
	c.visible = true
	c.expression = ""
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	expression := c.resolve(opts.Selection)
	if expression == "" {
		c.hideIfCurrent(gen)
		return
	}

	c.mu.Lock()
	if c.disposed || c.gen != gen {
		c.mu.Unlock()
		return
	}
	c.expression = expression
	c.inflight.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.inflight.Done()
		c.evaluate(gen, expression)
	}()
}

func (c *Controller) evaluate(gen uint64, expression string) {
	ok, err := c.eval.Evaluate(c.ctx, expression)
	if err != nil {
		c.logger.Debug("hover: evaluation failed", "expression", expression, "err", err)
	}
	if err != nil || !ok {
		c.hideIfCurrent(gen)
		return
	}
	if !c.current(gen) {
		c.logger.Debug("hover: dropping superseded evaluation", "expression", expression)
		return
	}
	c.layout.Relayout(c.ctx)
}

func (c *Controller) resolve(sel Selection) string {
	line, err := c.lines.LineText(sel.StartLine)
	if err != nil {
		c.logger.Debug("hover: cannot read line", "line", sel.StartLine, "err", err)
		return ""
	}
	text, r := expr.Expression(line, sel.StartColumn, sel.EndColumn)
	c.logger.Debug("hover: resolved expression",
		"line", sel.StartLine,
		"loose", []int{sel.StartColumn, sel.EndColumn},
		"exact", []int{r.Start, r.End},
		"expression", text,
	)
	return text
}

func (c *Controller) current(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen == gen && c.visible
}

// hideIfCurrent hides the hover immediately unless a later show or hide
// has already taken over.
func (c *Controller) hideIfCurrent(gen uint64) {
	c.mu.Lock()
	if c.disposed || c.gen != gen || !c.visible {
		c.mu.Unlock()
		return
	}
	c.debounce.cancel()
	c.markHidden()
	c.mu.Unlock()

	c.layout.Relayout(c.ctx)
}

func (c *Controller) hide() {
	c.mu.Lock()
	if !c.visible {
		c.mu.Unlock()
		return
	}
	c.markHidden()
	c.mu.Unlock()

	c.layout.Relayout(c.ctx)
}

func (c *Controller) markHidden() {
	c.visible = false
	c.active = nil
	c.expression = ""
	c.gen++
}

// Anchor returns where the hover attaches, or false when it is hidden.
func (c *Controller) Anchor() (Anchor, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.visible || c.active == nil {
		return Anchor{}, false
	}
	return Anchor{
		Position:   c.active.Selection.Start(),
		Preference: []Placement{PlacementAbove, PlacementBelow},
	}, true
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := State{
		Visible:    c.visible,
		Expression: c.expression,
	}
	if c.active != nil {
		opts := *c.active
		st.Options = &opts
	}
	return st
}

// pending reports whether a debounced request is waiting to run.
func (c *Controller) pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.debounce.pending()
}

// Dispose cancels any pending request, hides the hover and abandons
// in-flight evaluations, returning once they have ended. Later requests are
// ignored.
func (c *Controller) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.debounce.cancel()
	c.disposed = true
	c.mu.Unlock()

	c.hide()
	c.cancel()
	c.inflight.Wait()
}

// wait blocks until every in-flight evaluation has ended.
func (c *Controller) wait() {
	c.inflight.Wait()
}
