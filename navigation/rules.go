package navigation

import (
	"github.com/lixenwraith/gridpath/constants"
	"github.com/lixenwraith/gridpath/core"
)

// Direction indexes DirVectors. Orthogonals come first so that the legal
// orthogonal set is known before any diagonal is considered
type Direction int8

const (
	DirUp        Direction = 0 // +X
	DirLeft      Direction = 1 // -Y
	DirDown      Direction = 2 // -X
	DirRight     Direction = 3 // +Y
	DirUpLeft    Direction = 4
	DirDownLeft  Direction = 5
	DirDownRight Direction = 6
	DirUpRight   Direction = 7

	DirOrthogonalCount = 4
	DirCount           = 8
)

// DirVectors matches the Direction index order
var DirVectors = [DirCount][2]int{
	{1, 0}, {0, -1}, {-1, 0}, {0, 1},
	{1, -1}, {-1, -1}, {-1, 1}, {1, 1},
}

// Per-direction step cost matching DirVectors index order
var dirCosts = [DirCount]int{
	constants.CostOrthogonal, constants.CostOrthogonal, constants.CostOrthogonal, constants.CostOrthogonal,
	constants.CostDiagonal, constants.CostDiagonal, constants.CostDiagonal, constants.CostDiagonal,
}

// diagonalFlanks pairs each diagonal (index - DirOrthogonalCount) with the two
// orthogonal directions it passes between
var diagonalFlanks = [DirCount - DirOrthogonalCount][2]Direction{
	{DirUp, DirLeft},
	{DirDown, DirLeft},
	{DirDown, DirRight},
	{DirUp, DirRight},
}

// Cost returns the step cost of moving one cell along d
func (d Direction) Cost() int { return dirCosts[d] }

// IsDiagonal reports whether d moves along both axes
func (d Direction) IsDiagonal() bool { return d >= DirOrthogonalCount }

// Flanks returns the two orthogonal directions adjacent to diagonal d
func (d Direction) Flanks() (Direction, Direction) {
	f := diagonalFlanks[d-DirOrthogonalCount]
	return f[0], f[1]
}

// WallChecker returns true if cell blocks navigation
type WallChecker func(c core.Cell) bool

// orthoSet is the fixed-size set of orthogonal directions legal from one cell
type orthoSet uint8

func (s orthoSet) has(d Direction) bool { return s&(1<<uint(d)) != 0 }

func (s *orthoSet) add(d Direction) { *s |= 1 << uint(d) }

// Rules configures which steps the search may take
type Rules struct {
	// AllowDiagonal enables the four diagonal directions
	AllowDiagonal bool

	// AllowCornerCutting relaxes the diagonal rule from "both flanks legal"
	// to "at least one flank legal"
	AllowCornerCutting bool
}

// DirectionCount returns 8 with diagonals enabled, otherwise 4
func (r Rules) DirectionCount() int {
	if r.AllowDiagonal {
		return DirCount
	}
	return DirOrthogonalCount
}

// Move is one legal step out of a cell
type Move struct {
	Dir  Direction
	To   core.Cell
	Cost int
}

// Moves appends the legal steps out of from to buf, in direction-table order
//
// Orthogonal step: legal iff the target is passable.
// Diagonal step: target must be passable; then, without corner cutting, both
// flanking orthogonal steps must be legal; in every mode at least one must be
func (r Rules) Moves(from core.Cell, isBlocked WallChecker, buf []Move) []Move {
	var legal orthoSet

	for d := Direction(0); d < DirOrthogonalCount; d++ {
		next := from.Add(DirVectors[d][0], DirVectors[d][1])
		if isBlocked(next) {
			continue
		}
		legal.add(d)
		buf = append(buf, Move{Dir: d, To: next, Cost: dirCosts[d]})
	}

	if !r.AllowDiagonal {
		return buf
	}

	for d := Direction(DirOrthogonalCount); d < DirCount; d++ {
		next := from.Add(DirVectors[d][0], DirVectors[d][1])
		if isBlocked(next) {
			continue
		}
		if !r.diagonalLegal(d, legal) {
			continue
		}
		buf = append(buf, Move{Dir: d, To: next, Cost: dirCosts[d]})
	}
	return buf
}

// diagonalLegal applies the corner rule first, then the squeeze rule
func (r Rules) diagonalLegal(d Direction, legal orthoSet) bool {
	a, b := d.Flanks()
	if !r.AllowCornerCutting {
		if !legal.has(a) || !legal.has(b) {
			return false
		}
	}
	return legal.has(a) || legal.has(b)
}
