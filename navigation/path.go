package navigation

import (
	"fmt"

	"github.com/lixenwraith/gridpath/core"
)

// Reconstruct walks the predecessor map back from goal until it reaches the cell that
// is its own predecessor (Start). The returned sequence runs from the first step after
// Start through goal; Start itself is dropped
func Reconstruct(pred map[core.Cell]core.Cell, goal core.Cell) []core.Cell {
	path := make([]core.Cell, 0, 16)
	cur := goal
	for {
		path = append(path, cur)
		prev, ok := pred[cur]
		if !ok {
			panic(fmt.Sprintf("navigation: predecessor chain broken at %v", cur))
		}
		if prev == cur {
			break
		}
		if len(path) > len(pred) {
			panic(fmt.Sprintf("navigation: predecessor cycle through %v", cur))
		}
		cur = prev
	}

	// Drop Start, then reverse into start-to-goal order
	path = path[:len(path)-1]
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// StepCost returns the cost of a single step between adjacent cells
// Panics if a and b are not neighbors under the direction table
func StepCost(a, b core.Cell) int {
	dx, dy := b.X-a.X, b.Y-a.Y
	for d := Direction(0); d < DirCount; d++ {
		if DirVectors[d][0] == dx && DirVectors[d][1] == dy {
			return dirCosts[d]
		}
	}
	panic(fmt.Sprintf("navigation: %v and %v are not adjacent", a, b))
}

// PathCost sums step costs along start followed by path
func PathCost(start core.Cell, path []core.Cell) int {
	total := 0
	prev := start
	for _, c := range path {
		total += StepCost(prev, c)
		prev = c
	}
	return total
}
