// Package counter drives a numeric display from zero to a target value with
// an ease-out curve. Progress is advanced by an injected Scheduler, so the
// same counter runs against a terminal refresh loop or a fake clock.
package counter

import (
	"math"
	"time"
)

const (
	DefaultDuration = 1500 * time.Millisecond
	DefaultDecimals = 0
)

type State int

const (
	Idle State = iota
	Running
	Settled
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Settled:
		return "settled"
	default:
		return "idle"
	}
}

// Run is one count-up from zero towards Target.
type Run struct {
	Target   float64
	Duration time.Duration

	start    time.Time
	started  bool
	progress float64
}

// Progress is the clamped fraction of Duration that has elapsed.
func (r *Run) Progress() float64 {
	return r.progress
}

// Frame is what an observer sees after every change of the displayed value.
type Frame struct {
	Value float64
	Text  string
	State State
}

type Option func(*Counter)

// WithDuration sets the run length. A non-positive duration makes Bind snap
// straight to the target.
func WithDuration(d time.Duration) Option {
	return func(c *Counter) { c.duration = d }
}

func WithDecimals(n int) Option {
	return func(c *Counter) {
		if n < 0 {
			n = 0
		}
		c.decimals = n
	}
}

func WithObserver(fn func(Frame)) Option {
	return func(c *Counter) { c.observer = fn }
}

// Counter owns at most one Run at a time. It is meant to be used from the
// goroutine that drives its Scheduler.
type Counter struct {
	sched    Scheduler
	duration time.Duration
	decimals int
	observer func(Frame)

	run   *Run
	frame FrameID
	gen   uint64
	value float64
	state State
}

func New(s Scheduler, opts ...Option) *Counter {
	c := &Counter{
		sched:    s,
		duration: DefaultDuration,
		decimals: DefaultDecimals,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start creates a counter and binds target in one call.
func Start(s Scheduler, target float64, d time.Duration, decimals int) *Counter {
	c := New(s, WithDuration(d), WithDecimals(decimals))
	c.Bind(target)
	return c
}

// Bind discards any run in flight and starts counting from zero to target.
func (c *Counter) Bind(target float64) {
	c.cancelFrame()
	c.gen++
	c.run = &Run{Target: target, Duration: c.duration}
	c.value = 0

	if c.duration <= 0 {
		c.run.progress = 1
		c.settle()
		return
	}

	c.state = Running
	c.notify()
	c.schedule()
}

// Cancel tears the counter down. The displayed value is kept.
func (c *Counter) Cancel() {
	c.cancelFrame()
	c.gen++
	c.state = Idle
}

func (c *Counter) Value() float64 { return c.value }

func (c *Counter) String() string { return Format(c.value, c.decimals) }

func (c *Counter) State() State { return c.state }

// Target returns the bound target, or zero when nothing was ever bound.
func (c *Counter) Target() float64 {
	if c.run == nil {
		return 0
	}
	return c.run.Target
}

// Run returns the current run, nil before the first Bind.
func (c *Counter) Run() *Run { return c.run }

func (c *Counter) schedule() {
	gen := c.gen
	c.frame = c.sched.RequestFrame(func(now time.Time) {
		if gen != c.gen {
			return
		}
		c.frame = 0
		c.tick(now)
	})
}

func (c *Counter) tick(now time.Time) {
	r := c.run
	if !r.started {
		r.start = now
		r.started = true
	}

	p := float64(now.Sub(r.start)) / float64(r.Duration)
	p = math.Min(math.Max(p, r.progress), 1)
	r.progress = p

	if p >= 1 {
		c.settle()
		return
	}
	c.value = EaseOutExpo(p) * r.Target
	c.notify()
	c.schedule()
}

// settle pins the value to the exact target; the exponential curve alone
// stops just short of it.
func (c *Counter) settle() {
	c.value = c.run.Target
	c.state = Settled
	c.notify()
}

func (c *Counter) cancelFrame() {
	if c.frame != 0 {
		c.sched.CancelFrame(c.frame)
		c.frame = 0
	}
}

func (c *Counter) notify() {
	if c.observer != nil {
		c.observer(Frame{Value: c.value, Text: c.String(), State: c.state})
	}
}
