package engine

import (
	"fmt"
	"time"

	"github.com/lixenwraith/gridpath/core"
)

// RevealState is the scheduler's two-state machine
type RevealState uint8

const (
	RevealIdle RevealState = iota
	RevealRevealing
)

func (s RevealState) String() string {
	if s == RevealRevealing {
		return "revealing"
	}
	return "idle"
}

// RevealOrder selects which end of the path is emitted first
type RevealOrder uint8

const (
	// RevealGoalFirst pops from the Goal end of the stored path: Goal is emitted on the
	// first tick, which ends the reveal
	RevealGoalFirst RevealOrder = iota

	// RevealStartFirst emits from the first step after Start through Goal
	RevealStartFirst
)

func (o RevealOrder) String() string {
	if o == RevealStartFirst {
		return "start-first"
	}
	return "goal-first"
}

// ParseRevealOrder accepts "goal-first" or "start-first"
func ParseRevealOrder(s string) (RevealOrder, error) {
	switch s {
	case "goal-first", "":
		return RevealGoalFirst, nil
	case "start-first":
		return RevealStartFirst, nil
	default:
		return RevealGoalFirst, fmt.Errorf("unknown reveal order %q", s)
	}
}

// RevealScheduler paces path marker emission on a fixed interval
// Elapsed time accumulates only while revealing; a tick fires when the accumulator
// reaches the interval and resets it to zero, so at most one cell is emitted per Tick call
type RevealScheduler struct {
	interval time.Duration
	order    RevealOrder

	state   RevealState
	stack   []core.Cell // Top of stack is the next emission
	goal    core.Cell
	elapsed time.Duration

	// Markers emitted since the last Clear
	placed []core.Cell
}

// NewRevealScheduler panics on a non-positive interval
func NewRevealScheduler(interval time.Duration, order RevealOrder) *RevealScheduler {
	if interval <= 0 {
		panic(fmt.Sprintf("engine: reveal interval must be positive, got %v", interval))
	}
	return &RevealScheduler{interval: interval, order: order}
}

// Start begins revealing path, replacing any reveal in progress
// path runs from the first step after Start through Goal
func (r *RevealScheduler) Start(path []core.Cell) {
	r.stack = make([]core.Cell, len(path))
	switch r.order {
	case RevealStartFirst:
		for i, c := range path {
			r.stack[len(path)-1-i] = c
		}
	default:
		copy(r.stack, path)
	}
	if len(path) > 0 {
		r.goal = path[len(path)-1]
	}
	r.elapsed = 0
	r.state = RevealRevealing
}

// Tick accumulates dt and, when the interval elapses, pops one cell
// Returns the cell and true on emission. Popping Goal ends the reveal; an empty
// stack ends it on the tick that finds it empty, without emission
func (r *RevealScheduler) Tick(dt time.Duration) (core.Cell, bool) {
	if r.state != RevealRevealing {
		return core.Cell{}, false
	}

	r.elapsed += dt
	if r.elapsed < r.interval {
		return core.Cell{}, false
	}
	r.elapsed = 0

	if len(r.stack) == 0 {
		r.finish()
		return core.Cell{}, false
	}

	c := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.placed = append(r.placed, c)

	if c == r.goal {
		r.finish()
	}
	return c, true
}

// Clear aborts any reveal and forgets placed markers
// Returns true if there was anything for a consumer to clear
func (r *RevealScheduler) Clear() bool {
	had := r.state == RevealRevealing || len(r.placed) > 0
	r.finish()
	r.placed = nil
	return had
}

func (r *RevealScheduler) finish() {
	r.state = RevealIdle
	r.stack = nil
	r.elapsed = 0
}

// State returns the current scheduler state
func (r *RevealScheduler) State() RevealState { return r.state }

// Pending returns the number of cells left in the stored path
func (r *RevealScheduler) Pending() int { return len(r.stack) }

// Elapsed returns the accumulated time toward the next tick
func (r *RevealScheduler) Elapsed() time.Duration { return r.elapsed }

// Markers returns a copy of markers emitted since the last Clear
func (r *RevealScheduler) Markers() []core.Cell {
	out := make([]core.Cell, len(r.placed))
	copy(out, r.placed)
	return out
}

// Interval returns the tick period
func (r *RevealScheduler) Interval() time.Duration { return r.interval }

// Order returns the configured emission order
func (r *RevealScheduler) Order() RevealOrder { return r.order }
