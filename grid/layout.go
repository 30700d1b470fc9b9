package grid

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/gridpath/constants"
	"github.com/lixenwraith/gridpath/core"
)

// ErrInvalidLayout is wrapped by every Load rejection
var ErrInvalidLayout = errors.New("invalid layout")

// Layout is a portable description of a board
// Start and Goal are nil when unset
type Layout struct {
	Size      int         `json:"size"`
	Obstacles []core.Cell `json:"obstacles"`
	Start     *core.Cell  `json:"start,omitempty"`
	Goal      *core.Cell  `json:"goal,omitempty"`
}

// Layout captures the current board
func (g *Grid) Layout() Layout {
	l := Layout{Size: g.size, Obstacles: g.Obstacles()}
	if s, ok := g.Start(); ok {
		l.Start = &s
	}
	if q, ok := g.Goal(); ok {
		l.Goal = &q
	}
	return l
}

// FromLayout builds a board from l, validating every cell
func FromLayout(l Layout) (*Grid, error) {
	if l.Size < constants.MinGridSize {
		return nil, fmt.Errorf("%w: size %d below minimum %d", ErrInvalidLayout, l.Size, constants.MinGridSize)
	}

	g := New(l.Size)
	// Endpoints first so obstacle placement rejects overlaps
	if l.Start != nil && !g.SetStart(*l.Start) {
		return nil, fmt.Errorf("%w: start %v is blocked", ErrInvalidLayout, *l.Start)
	}
	if l.Goal != nil && !g.SetGoal(*l.Goal) {
		return nil, fmt.Errorf("%w: goal %v is blocked or equals start", ErrInvalidLayout, *l.Goal)
	}
	for _, c := range l.Obstacles {
		if g.IsObstacle(c) {
			continue
		}
		if !g.PlaceObstacle(c) {
			return nil, fmt.Errorf("%w: obstacle %v on border or endpoint", ErrInvalidLayout, c)
		}
	}
	return g, nil
}
