package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/gridpath/core"
)

const tick = 50 * time.Millisecond

var revealPath = []core.Cell{{2, 1}, {3, 1}, {4, 1}}

// drain ticks one full interval at a time until the scheduler goes idle
func drain(r *RevealScheduler) []core.Cell {
	var out []core.Cell
	for i := 0; i < 100 && r.State() == RevealRevealing; i++ {
		if c, ok := r.Tick(tick); ok {
			out = append(out, c)
		}
	}
	return out
}

func TestReveal_GoalFirstEmitsGoalAndStops(t *testing.T) {
	r := NewRevealScheduler(tick, RevealGoalFirst)
	r.Start(revealPath)
	require.Equal(t, RevealRevealing, r.State())

	c, ok := r.Tick(tick)
	require.True(t, ok)
	assert.Equal(t, core.Cell{X: 4, Y: 1}, c, "tail of the stored path is popped first")
	assert.Equal(t, RevealIdle, r.State(), "popping Goal ends the reveal")
	assert.Zero(t, r.Pending(), "remaining path is discarded")

	_, ok = r.Tick(tick)
	assert.False(t, ok)
}

func TestReveal_StartFirstWalksToGoal(t *testing.T) {
	r := NewRevealScheduler(tick, RevealStartFirst)
	r.Start(revealPath)

	assert.Equal(t, revealPath, drain(r))
	assert.Equal(t, RevealIdle, r.State())
	assert.Equal(t, revealPath, r.Markers())
}

func TestReveal_OneEmissionPerInterval(t *testing.T) {
	r := NewRevealScheduler(tick, RevealStartFirst)
	r.Start(revealPath)

	// 16ms frames: fires on the 4th frame (64ms), accumulator resets to zero
	var fired []int
	for frame := 1; frame <= 12; frame++ {
		if _, ok := r.Tick(16 * time.Millisecond); ok {
			fired = append(fired, frame)
		}
	}
	assert.Equal(t, []int{4, 8, 12}, fired)
	assert.Equal(t, RevealIdle, r.State())
}

func TestReveal_LargeDeltaFiresOnce(t *testing.T) {
	r := NewRevealScheduler(tick, RevealStartFirst)
	r.Start(revealPath)

	_, ok := r.Tick(10 * tick)
	assert.True(t, ok)
	assert.Equal(t, 2, r.Pending(), "a long frame still emits a single marker")
	assert.Zero(t, r.Elapsed())
}

func TestReveal_EmptyPathGoesIdleWithoutEmission(t *testing.T) {
	r := NewRevealScheduler(tick, RevealGoalFirst)
	r.Start(nil)
	require.Equal(t, RevealRevealing, r.State())

	_, ok := r.Tick(tick / 2)
	assert.False(t, ok)
	assert.Equal(t, RevealRevealing, r.State(), "idle only on the tick that finds the path empty")

	_, ok = r.Tick(tick / 2)
	assert.False(t, ok)
	assert.Equal(t, RevealIdle, r.State())
	assert.False(t, r.Clear(), "nothing was placed")
}

func TestReveal_IdleDoesNotAccumulate(t *testing.T) {
	r := NewRevealScheduler(tick, RevealStartFirst)
	_, ok := r.Tick(time.Second)
	assert.False(t, ok)
	assert.Zero(t, r.Elapsed())

	r.Start(revealPath)
	_, ok = r.Tick(tick - time.Millisecond)
	assert.False(t, ok, "time spent idle does not carry into a new reveal")
}

func TestReveal_ClearMidReveal(t *testing.T) {
	r := NewRevealScheduler(tick, RevealStartFirst)
	r.Start(revealPath)
	_, ok := r.Tick(tick)
	require.True(t, ok)

	assert.True(t, r.Clear())
	assert.Equal(t, RevealIdle, r.State())
	assert.Empty(t, r.Markers())
	assert.Zero(t, r.Pending())

	_, ok = r.Tick(tick)
	assert.False(t, ok, "no emission from a stale path")
	assert.False(t, r.Clear(), "second clear has nothing to do")
}

func TestReveal_ClearAfterFinishedReportsMarkers(t *testing.T) {
	r := NewRevealScheduler(tick, RevealGoalFirst)
	r.Start(revealPath)
	drain(r)
	require.Equal(t, RevealIdle, r.State())
	assert.True(t, r.Clear(), "placed markers still need clearing")
}

func TestReveal_StartCopiesPath(t *testing.T) {
	path := []core.Cell{{2, 1}, {3, 1}}
	r := NewRevealScheduler(tick, RevealStartFirst)
	r.Start(path)
	path[0] = core.Cell{X: 9, Y: 9}

	c, _ := r.Tick(tick)
	assert.Equal(t, core.Cell{X: 2, Y: 1}, c)
}

func TestReveal_InvalidInterval(t *testing.T) {
	assert.Panics(t, func() { NewRevealScheduler(0, RevealGoalFirst) })
}

func TestParseRevealOrder(t *testing.T) {
	o, err := ParseRevealOrder("start-first")
	require.NoError(t, err)
	assert.Equal(t, RevealStartFirst, o)

	o, err = ParseRevealOrder("goal-first")
	require.NoError(t, err)
	assert.Equal(t, RevealGoalFirst, o)
	assert.Equal(t, "goal-first", o.String())

	_, err = ParseRevealOrder("sideways")
	assert.Error(t, err)
}
