package hover

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.lsp.dev/uri"
)

type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, delay: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	live := !t.stopped && !t.fired
	t.stopped = true
	return live
}

// Fire runs every timer that was neither stopped nor fired and returns how
// many ran.
func (c *fakeClock) Fire() int {
	c.mu.Lock()
	var live []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			live = append(live, t)
		}
	}
	c.mu.Unlock()

	for _, t := range live {
		t.f()
	}
	return len(live)
}

type fakeGuard struct {
	source uri.URI
	ok     bool
}

func (g *fakeGuard) CurrentDebugSource() (uri.URI, bool) {
	return g.source, g.ok
}

type fakeLines map[int]string

func (l fakeLines) LineText(line int) (string, error) {
	text, ok := l[line]
	if !ok {
		return "", errors.New("line out of range")
	}
	return text, nil
}

type fakeEvaluator struct {
	mu     sync.Mutex
	calls  []string
	result bool
	err    error
	// expressions that evaluate to not displayable regardless of result
	fail map[string]bool

	// when set, Evaluate signals entered and waits for release.
	entered chan struct{}
	release chan struct{}
}

func (e *fakeEvaluator) Evaluate(ctx context.Context, expression string) (bool, error) {
	e.mu.Lock()
	e.calls = append(e.calls, expression)
	entered, release := e.entered, e.release
	e.mu.Unlock()

	if entered != nil {
		select {
		case entered <- struct{}{}:
		case <-ctx.Done():
			return false, ctx.Err()
		}
		select {
		case <-release:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fail[expression] {
		return false, nil
	}
	return e.result, e.err
}

func (e *fakeEvaluator) set(result bool, err error) {
	e.mu.Lock()
	e.result, e.err = result, err
	e.mu.Unlock()
}

func (e *fakeEvaluator) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}

// fakeLayouter records the anchor the controller reports on each relayout.
type fakeLayouter struct {
	mu      sync.Mutex
	ctrl    *Controller
	anchors []*Anchor
}

func (l *fakeLayouter) Relayout(ctx context.Context) {
	var got *Anchor
	if a, ok := l.ctrl.Anchor(); ok {
		got = &a
	}
	l.mu.Lock()
	l.anchors = append(l.anchors, got)
	l.mu.Unlock()
}

func (l *fakeLayouter) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.anchors)
}

func (l *fakeLayouter) Last() *Anchor {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.anchors) == 0 {
		return nil
	}
	return l.anchors[len(l.anchors)-1]
}
