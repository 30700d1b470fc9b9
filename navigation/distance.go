package navigation

import (
	"github.com/lixenwraith/gridpath/constants"
	"github.com/lixenwraith/gridpath/core"
)

// DirNone marks a cell with no step toward the source
const DirNone Direction = -1

// DistanceField stores exact step costs from one source cell under a rule set,
// plus the steepest-descent step from every reachable cell back to the source
type DistanceField struct {
	Size       int
	Source     core.Cell
	Distances  []int       // Weighted cost from source, CostUnreachable if not reached
	Directions []Direction // Per-cell step toward source, DirNone if unreachable or source

	Valid bool

	// Reusable buffers across recomputes
	open  openSet
	moves []Move
}

// NewDistanceField creates an empty field for a size x size board
func NewDistanceField(size int) *DistanceField {
	n := size * size
	return &DistanceField{
		Size:       size,
		Distances:  make([]int, n),
		Directions: make([]Direction, n),
		open:       make(openSet, 0, n/4),
		moves:      make([]Move, 0, DirCount),
	}
}

func (f *DistanceField) inBounds(c core.Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < f.Size && c.Y < f.Size
}

func (f *DistanceField) index(c core.Cell) int { return c.Y*f.Size + c.X }

// Compute runs Dijkstra outward from source, then derives per-cell directions
// from the distance gradient
//
// Step legality is symmetric under Rules, so the field doubles as cost-to-source
func (f *DistanceField) Compute(source core.Cell, rules Rules, isBlocked WallChecker) {
	blocked := func(c core.Cell) bool {
		return !f.inBounds(c) || isBlocked(c)
	}

	for i := range f.Distances {
		f.Distances[i] = constants.CostUnreachable
		f.Directions[i] = DirNone
	}
	f.Source = source
	f.Valid = false
	if !f.inBounds(source) {
		return
	}

	// Phase 1: Dijkstra, f = g so the open set orders by distance
	var seq uint64
	f.open = f.open[:0]
	f.Distances[f.index(source)] = 0
	f.open.push(openEntry{cell: source})

	for f.open.len() > 0 {
		cur := f.open.pop()
		if cur.g > f.Distances[f.index(cur.cell)] {
			continue // Stale entry
		}

		f.moves = rules.Moves(cur.cell, blocked, f.moves[:0])
		for _, m := range f.moves {
			nIdx := f.index(m.To)
			d := cur.g + m.Cost
			if d < f.Distances[nIdx] {
				f.Distances[nIdx] = d
				seq++
				f.open.push(openEntry{cell: m.To, g: d, f: d, seq: seq})
			}
		}
	}

	// Phase 2: first legal move (table order) that lands exactly one step closer
	for y := 0; y < f.Size; y++ {
		for x := 0; x < f.Size; x++ {
			c := core.Cell{X: x, Y: y}
			d := f.Distances[f.index(c)]
			if d >= constants.CostUnreachable || d == 0 {
				continue
			}
			f.moves = rules.Moves(c, blocked, f.moves[:0])
			for _, m := range f.moves {
				if f.Distances[f.index(m.To)]+m.Cost == d {
					f.Directions[f.index(c)] = m.Dir
					break
				}
			}
		}
	}

	f.Valid = true
}

// Distance returns the cost from source to c, -1 if unreachable
func (f *DistanceField) Distance(c core.Cell) int {
	if !f.Valid || !f.inBounds(c) {
		return -1
	}
	d := f.Distances[f.index(c)]
	if d >= constants.CostUnreachable {
		return -1
	}
	return d
}

// Step returns the direction from c toward source
func (f *DistanceField) Step(c core.Cell) Direction {
	if !f.Valid || !f.inBounds(c) {
		return DirNone
	}
	return f.Directions[f.index(c)]
}

// Trace follows steps from c back to source and returns the cells strictly between them
// Nil if c is unreachable
func (f *DistanceField) Trace(c core.Cell) []core.Cell {
	if f.Distance(c) < 0 {
		return nil
	}
	var out []core.Cell
	for c != f.Source {
		d := f.Step(c)
		if d == DirNone {
			return nil
		}
		c = c.Add(DirVectors[d][0], DirVectors[d][1])
		out = append(out, c)
	}
	if len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out
}

// Farthest returns the reachable cell with the largest distance
// Ties resolve to the last such cell in row-major order
func (f *DistanceField) Farthest() core.Cell {
	best, bestDist := f.Source, 0
	if !f.Valid {
		return best
	}
	for i, d := range f.Distances {
		if d < constants.CostUnreachable && d >= bestDist {
			best, bestDist = core.Cell{X: i % f.Size, Y: i / f.Size}, d
		}
	}
	return best
}
