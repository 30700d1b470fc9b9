package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/gridpath/core"
	"github.com/lixenwraith/gridpath/events"
)

func TestDriver_FrameUsesMeasuredDelta(t *testing.T) {
	s, rec, clock := newTestSession(t, RevealStartFirst)
	s.SetStart(core.Cell{X: 1, Y: 1})
	s.SetGoal(core.Cell{X: 4, Y: 1})
	s.RunSearch()
	rec.Reset()

	d := NewDriver(s, clock, time.Millisecond)
	d.lastFrame = clock.Now()

	clock.Advance(30 * time.Millisecond)
	d.frame()
	assert.Empty(t, rec.Events)

	clock.Advance(30 * time.Millisecond)
	d.frame()
	assert.Len(t, rec.OfType(events.EventPathMarkerPlaced), 1)
	assert.Equal(t, uint64(2), d.Frames())
}

func TestDriver_StallIsClamped(t *testing.T) {
	s, rec, clock := newTestSession(t, RevealStartFirst)
	s.SetStart(core.Cell{X: 1, Y: 1})
	s.SetGoal(core.Cell{X: 10, Y: 1})
	s.RunSearch()
	rec.Reset()

	d := NewDriver(s, clock, time.Millisecond)
	d.lastFrame = clock.Now()
	clock.Advance(time.Hour)
	d.frame()

	assert.Len(t, rec.OfType(events.EventPathMarkerPlaced), 1)
}

func TestDriver_RunAppliesCommandsAndStops(t *testing.T) {
	q := events.NewEventQueue()
	s := NewSession(DefaultSessionConfig(), q)
	d := NewDriver(s, SystemClock{}, time.Millisecond)

	var mu sync.Mutex
	var sizes []int
	d.OnFrame(func(s *Session) {
		mu.Lock()
		sizes = append(sizes, len(s.Snapshot().Obstacles))
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	applied := make(chan bool, 1)
	require.True(t, d.Submit(ctx, func(s *Session) {
		applied <- s.PlaceObstacle(core.Cell{X: 3, Y: 3})
	}))

	select {
	case ok := <-applied:
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("command not applied")
	}

	seen := d.Frames()
	assert.Eventually(t, func() bool { return d.Frames() > seen+1 }, 2*time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("driver did not stop")
	}

	evs := q.Consume()
	require.Len(t, evs, 1)
	assert.Equal(t, events.EventObstaclePlaced, evs[0].Type)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, sizes[len(sizes)-1])
}

func TestDriver_SubmitCancelled(t *testing.T) {
	s, _, clock := newTestSession(t, RevealGoalFirst)
	d := NewDriver(s, clock, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Fill the buffer so Submit must select on ctx
	for i := 0; i < cap(d.commands); i++ {
		d.commands <- func(*Session) {}
	}
	assert.False(t, d.Submit(ctx, func(*Session) {}))
}
