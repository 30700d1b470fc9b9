package navigation

import (
	"github.com/lixenwraith/gridpath/constants"
	"github.com/lixenwraith/gridpath/core"
)

// Board is the read-only view of the grid the search needs
type Board interface {
	Size() int
	IsBlocked(c core.Cell) bool
	Start() (core.Cell, bool)
	Goal() (core.Cell, bool)
}

// Failure discriminates why no path was produced
type Failure uint8

const (
	FailureNone Failure = iota
	FailureNoStart
	FailureNoGoal
	FailureUnreachable
)

func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureNoStart:
		return "start unset"
	case FailureNoGoal:
		return "goal unset"
	default:
		return "goal unreachable"
	}
}

// Result is the outcome of one search invocation
type Result struct {
	Found   bool
	Failure Failure

	Start, Goal core.Cell

	// Predecessors maps each discovered cell to its best-known parent; Start maps to itself
	Predecessors map[core.Cell]core.Cell

	// Path is Reconstruct(Predecessors, Goal): first step after Start through Goal
	Path []core.Cell

	// Cost is the accumulated step cost at Goal
	Cost int

	// Expanded counts cells closed during the search
	Expanded int
}

// searcher owns the per-invocation tables
type searcher struct {
	size   int
	best   []int  // Lowest f ever enqueued per cell
	closed []bool // Finalized cells
	open   openSet
	seq    uint64
	moves  []Move
}

func newSearcher(size int) *searcher {
	n := size * size
	s := &searcher{
		size:   size,
		best:   make([]int, n),
		closed: make([]bool, n),
		open:   make(openSet, 0, n/4),
		moves:  make([]Move, 0, DirCount),
	}
	for i := range s.best {
		s.best[i] = constants.CostUnreachable
	}
	return s
}

func (s *searcher) index(c core.Cell) int { return c.Y*s.size + c.X }

// heuristic is the Manhattan distance scaled to orthogonal step cost. It is exact for
// orthogonal movement and overestimates diagonal routes, so diagonal results are
// near-optimal rather than guaranteed optimal
func heuristic(a, b core.Cell) int {
	return core.Manhattan(a, b) * constants.CostOrthogonal
}

func (s *searcher) push(c core.Cell, g, f int) {
	s.open.push(openEntry{cell: c, g: g, f: f, seq: s.seq})
	s.seq++
}

// Search runs A* from the board's Start to its Goal
//
// The open set is keyed by f = g + heuristic(cell, goal), ties broken FIFO by push order.
// A popped entry is discarded if its cell is closed or if its f exceeds the best f
// recorded for that cell. A neighbor is (re)queued only when its f strictly improves
func Search(b Board, rules Rules) Result {
	start, ok := b.Start()
	if !ok {
		return Result{Failure: FailureNoStart}
	}
	goal, ok := b.Goal()
	if !ok {
		return Result{Failure: FailureNoGoal, Start: start}
	}

	size := b.Size()
	isBlocked := func(c core.Cell) bool {
		if c.X < 0 || c.Y < 0 || c.X >= size || c.Y >= size {
			return true
		}
		return b.IsBlocked(c)
	}

	s := newSearcher(size)
	pred := map[core.Cell]core.Cell{start: start}

	h := heuristic(start, goal)
	s.push(start, 0, h)
	s.best[s.index(start)] = h

	expanded := 0
	for s.open.len() > 0 {
		cur := s.open.pop()
		idx := s.index(cur.cell)

		if s.closed[idx] {
			continue
		}
		if s.best[idx] < cur.f {
			continue // Superseded by a better entry
		}

		s.closed[idx] = true
		expanded++

		if cur.cell == goal {
			return Result{
				Found:        true,
				Start:        start,
				Goal:         goal,
				Predecessors: pred,
				Path:         Reconstruct(pred, goal),
				Cost:         cur.g,
				Expanded:     expanded,
			}
		}

		s.moves = rules.Moves(cur.cell, isBlocked, s.moves[:0])
		for _, m := range s.moves {
			nIdx := s.index(m.To)
			if s.closed[nIdx] {
				continue
			}

			g := cur.g + m.Cost
			f := g + heuristic(m.To, goal)
			if f < s.best[nIdx] {
				s.best[nIdx] = f
				s.push(m.To, g, f)
				pred[m.To] = cur.cell
			}
		}
	}

	return Result{
		Failure:  FailureUnreachable,
		Start:    start,
		Goal:     goal,
		Expanded: expanded,
	}
}
