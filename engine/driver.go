package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/gridpath/constants"
)

var errAlreadyRunning = errors.New("engine: driver already running")

// Command mutates the session from the driver goroutine
type Command func(s *Session)

// Driver advances a session in real time on a fixed frame interval
// The session is touched only from the Run goroutine; other goroutines go through Submit
type Driver struct {
	session  *Session
	clock    Clock
	interval time.Duration

	commands chan Command
	onFrame  func(s *Session)

	lastFrame time.Time
	frames    atomic.Uint64
	running   atomic.Bool
}

// NewDriver creates a driver for s. A zero interval uses FrameUpdateInterval
func NewDriver(s *Session, clock Clock, interval time.Duration) *Driver {
	if interval <= 0 {
		interval = constants.FrameUpdateInterval
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Driver{
		session:  s,
		clock:    clock,
		interval: interval,
		commands: make(chan Command, constants.CommandQueueSize),
	}
}

// OnFrame registers fn to run after every frame advance, must be called before Run
func (d *Driver) OnFrame(fn func(s *Session)) {
	d.onFrame = fn
}

// Submit queues cmd for the driver goroutine
// Returns false if ctx is cancelled before the command is queued
func (d *Driver) Submit(ctx context.Context, cmd Command) bool {
	select {
	case d.commands <- cmd:
		return true
	case <-ctx.Done():
		return false
	}
}

// Frames returns the number of frames advanced so far
func (d *Driver) Frames() uint64 {
	return d.frames.Load()
}

// Run drives frames until ctx is cancelled. Only one Run may be active
func (d *Driver) Run(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return errAlreadyRunning
	}
	defer d.running.Store(false)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.lastFrame = d.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return nil

		case cmd := <-d.commands:
			cmd(d.session)

		case <-ticker.C:
			d.frame()
		}
	}
}

// frame measures the delta since the previous frame and advances the session
func (d *Driver) frame() {
	now := d.clock.Now()
	dt := now.Sub(d.lastFrame)
	d.lastFrame = now

	if dt < 0 {
		dt = 0
	}
	if dt > constants.MaxFrameDelta {
		dt = constants.MaxFrameDelta
	}

	d.session.Advance(dt)
	d.frames.Add(1)

	if d.onFrame != nil {
		d.onFrame(d.session)
	}
}
