package hover

import "time"

// DefaultDelay is the quiescence window for debounced requests.
const DefaultDelay = 300 * time.Millisecond

// Clock schedules delayed work.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// debouncer keeps at most one pending action. Every schedule or cancel bumps
// seq, so a timer that already fired but has not yet been taken can tell it
// was superseded.
//
// debouncer is not safe for concurrent use; the owning Controller guards it.
type debouncer struct {
	clock Clock
	delay time.Duration
	timer Timer
	seq   uint64
}

func newDebouncer(clock Clock, delay time.Duration) *debouncer {
	if clock == nil {
		clock = systemClock{}
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &debouncer{
		clock: clock,
		delay: delay,
	}
}

// schedule replaces any pending action. fire receives the token it must
// hand back to take.
func (d *debouncer) schedule(fire func(token uint64)) {
	d.cancel()
	token := d.seq
	d.timer = d.clock.AfterFunc(d.delay, func() {
		fire(token)
	})
}

func (d *debouncer) cancel() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}

// take reports whether token still names the pending action and, if so,
// consumes it.
func (d *debouncer) take(token uint64) bool {
	if d.timer == nil || token != d.seq {
		return false
	}
	d.timer = nil
	d.seq++
	return true
}

func (d *debouncer) pending() bool {
	return d.timer != nil
}
