package render

import (
	"fmt"

	"github.com/lixenwraith/gridpath/core"
	"github.com/lixenwraith/gridpath/events"
)

// FrameContext is routed alongside every event during a frame's dispatch
type FrameContext struct {
	Frame uint64
}

// SearchStatus is the outcome shown in the status bar
type SearchStatus uint8

const (
	StatusNone SearchStatus = iota
	StatusFound
	StatusFailed
)

// BoardView is the renderer's copy of the board, updated only from core events
type BoardView struct {
	size      int
	obstacles map[core.Cell]struct{}
	markers   map[core.Cell]struct{}

	start, goal       core.Cell
	hasStart, hasGoal bool

	revealing bool
	status    SearchStatus
	summary   string
}

// NewBoardView creates an empty view of a size×size board
func NewBoardView(size int) *BoardView {
	return &BoardView{
		size:      size,
		obstacles: make(map[core.Cell]struct{}),
		markers:   make(map[core.Cell]struct{}),
	}
}

// HandleEvent applies one core event
func (v *BoardView) HandleEvent(_ FrameContext, ev events.GameEvent) {
	switch ev.Type {
	case events.EventObstaclePlaced:
		if p, ok := ev.Payload.(*events.CellPayload); ok {
			v.obstacles[p.Cell] = struct{}{}
		}
	case events.EventObstacleRemoved:
		if p, ok := ev.Payload.(*events.CellPayload); ok {
			delete(v.obstacles, p.Cell)
		}
	case events.EventStartSet:
		if p, ok := ev.Payload.(*events.CellPayload); ok {
			v.start, v.hasStart = p.Cell, true
		}
	case events.EventStartCleared:
		v.hasStart = false
	case events.EventGoalSet:
		if p, ok := ev.Payload.(*events.CellPayload); ok {
			v.goal, v.hasGoal = p.Cell, true
		}
	case events.EventGoalCleared:
		v.hasGoal = false
	case events.EventPathMarkerPlaced:
		if p, ok := ev.Payload.(*events.CellPayload); ok {
			v.markers[p.Cell] = struct{}{}
		}
	case events.EventAllMarkersCleared:
		clear(v.markers)
		v.revealing = false
	case events.EventSearchFailed:
		v.status = StatusFailed
		v.revealing = false
		if p, ok := ev.Payload.(*events.SearchFailedPayload); ok {
			v.summary = fmt.Sprintf("no path: %s (expanded %d)", p.Reason, p.Expanded)
		}
	case events.EventSearchCompleted:
		v.status = StatusFound
		v.revealing = true
		if p, ok := ev.Payload.(*events.SearchCompletedPayload); ok {
			v.summary = fmt.Sprintf("cost %d  steps %d  expanded %d", p.Cost, p.Steps, p.Expanded)
		}
	case events.EventRevealFinished:
		v.revealing = false
	case events.EventBoardReset, events.EventLayoutLoaded:
		if p, ok := ev.Payload.(*events.BoardPayload); ok {
			v.replace(p)
		}
	}
}

// EventTypes returns every core event type
func (v *BoardView) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventObstaclePlaced,
		events.EventObstacleRemoved,
		events.EventStartSet,
		events.EventStartCleared,
		events.EventGoalSet,
		events.EventGoalCleared,
		events.EventPathMarkerPlaced,
		events.EventAllMarkersCleared,
		events.EventSearchFailed,
		events.EventSearchCompleted,
		events.EventRevealFinished,
		events.EventBoardReset,
		events.EventLayoutLoaded,
	}
}

func (v *BoardView) replace(p *events.BoardPayload) {
	v.size = p.Size
	clear(v.obstacles)
	clear(v.markers)
	for _, c := range p.Obstacles {
		v.obstacles[c] = struct{}{}
	}
	v.hasStart = p.Start != nil
	if v.hasStart {
		v.start = *p.Start
	}
	v.hasGoal = p.Goal != nil
	if v.hasGoal {
		v.goal = *p.Goal
	}
	v.revealing = false
	v.status = StatusNone
	v.summary = ""
}

// Size returns the board edge length
func (v *BoardView) Size() int { return v.size }

// IsBorder reports whether c is on the outer ring
func (v *BoardView) IsBorder(c core.Cell) bool {
	return c.X == 0 || c.Y == 0 || c.X == v.size-1 || c.Y == v.size-1
}

// HasObstacle reports a user obstacle at c
func (v *BoardView) HasObstacle(c core.Cell) bool {
	_, ok := v.obstacles[c]
	return ok
}

// HasMarker reports a revealed path marker at c
func (v *BoardView) HasMarker(c core.Cell) bool {
	_, ok := v.markers[c]
	return ok
}

// MarkerCount returns the number of placed markers
func (v *BoardView) MarkerCount() int { return len(v.markers) }

// Start returns the start endpoint
func (v *BoardView) Start() (core.Cell, bool) { return v.start, v.hasStart }

// Goal returns the goal endpoint
func (v *BoardView) Goal() (core.Cell, bool) { return v.goal, v.hasGoal }

// Revealing reports whether markers are still being revealed
func (v *BoardView) Revealing() bool { return v.revealing }

// Status returns the last search outcome and its description
func (v *BoardView) Status() (SearchStatus, string) { return v.status, v.summary }
