// Package grid holds the board state read by the search: a fixed square lattice whose
// outer ring is always blocked, a set of user-placed obstacles, and the two endpoints.
//
// Mutators report whether they were applied; rejected commands leave the board untouched.
package grid

import (
	"sort"

	"github.com/lixenwraith/gridpath/core"
)

// Grid is a Size×Size board. Not safe for concurrent use
type Grid struct {
	size      int
	obstacles map[core.Cell]struct{}

	start, goal       core.Cell
	hasStart, hasGoal bool
}

// New creates an empty board of side length size
func New(size int) *Grid {
	return &Grid{
		size:      size,
		obstacles: make(map[core.Cell]struct{}),
	}
}

// Size returns the side length, border ring included
func (g *Grid) Size() int { return g.size }

// InBounds reports whether c lies on the board (border included)
func (g *Grid) InBounds(c core.Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.size && c.Y < g.size
}

// IsBorder reports whether c is on the impassable outer ring
// Out-of-bounds cells are treated as border
func (g *Grid) IsBorder(c core.Cell) bool {
	if !g.InBounds(c) {
		return true
	}
	last := g.size - 1
	return c.X == 0 || c.Y == 0 || c.X == last || c.Y == last
}

// IsObstacle reports whether c holds a user-placed obstacle
func (g *Grid) IsObstacle(c core.Cell) bool {
	_, ok := g.obstacles[c]
	return ok
}

// IsBlocked returns true for border cells and registered obstacles
func (g *Grid) IsBlocked(c core.Cell) bool {
	return g.IsBorder(c) || g.IsObstacle(c)
}

// PlaceObstacle blocks c unless it is already blocked or is an endpoint
func (g *Grid) PlaceObstacle(c core.Cell) bool {
	if g.IsBlocked(c) || g.isEndpoint(c) {
		return false
	}
	g.obstacles[c] = struct{}{}
	return true
}

// RemoveObstacle unblocks c if it is a user-placed obstacle; border cells are never removable
func (g *Grid) RemoveObstacle(c core.Cell) bool {
	if !g.IsObstacle(c) {
		return false
	}
	delete(g.obstacles, c)
	return true
}

// SetStart places the start endpoint, replacing any prior one
// Rejected when c is blocked or equals the goal
func (g *Grid) SetStart(c core.Cell) bool {
	if g.IsBlocked(c) || (g.hasGoal && g.goal == c) {
		return false
	}
	g.start, g.hasStart = c, true
	return true
}

// SetGoal places the goal endpoint, replacing any prior one
// Rejected when c is blocked or equals the start
func (g *Grid) SetGoal(c core.Cell) bool {
	if g.IsBlocked(c) || (g.hasStart && g.start == c) {
		return false
	}
	g.goal, g.hasGoal = c, true
	return true
}

// ClearStart unsets the start endpoint. Returns false if it was already unset
func (g *Grid) ClearStart() bool {
	if !g.hasStart {
		return false
	}
	g.start, g.hasStart = core.Cell{}, false
	return true
}

// ClearGoal unsets the goal endpoint. Returns false if it was already unset
func (g *Grid) ClearGoal() bool {
	if !g.hasGoal {
		return false
	}
	g.goal, g.hasGoal = core.Cell{}, false
	return true
}

// Start returns the start endpoint and whether it is set
func (g *Grid) Start() (core.Cell, bool) { return g.start, g.hasStart }

// Goal returns the goal endpoint and whether it is set
func (g *Grid) Goal() (core.Cell, bool) { return g.goal, g.hasGoal }

// Obstacles returns user-placed obstacles sorted row-major (Y, then X)
func (g *Grid) Obstacles() []core.Cell {
	out := make([]core.Cell, 0, len(g.obstacles))
	for c := range g.obstacles {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// ObstacleCount returns the number of user-placed obstacles
func (g *Grid) ObstacleCount() int { return len(g.obstacles) }

// Reset removes all obstacles and both endpoints
func (g *Grid) Reset() {
	clear(g.obstacles)
	g.start, g.hasStart = core.Cell{}, false
	g.goal, g.hasGoal = core.Cell{}, false
}

func (g *Grid) isEndpoint(c core.Cell) bool {
	return (g.hasStart && g.start == c) || (g.hasGoal && g.goal == c)
}
