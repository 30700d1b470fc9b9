package navigation

import "github.com/lixenwraith/gridpath/core"

// openEntry is one queued search node. Stale entries are left in the heap
// and discarded on pop
type openEntry struct {
	cell core.Cell
	g    int    // Accumulated cost from start
	f    int    // g + heuristic to goal
	seq  uint64 // Push order; FIFO among equal f
}

// openSet is a binary min-heap ordered by (f, seq)
type openSet []openEntry

func (e openEntry) less(o openEntry) bool {
	if e.f != o.f {
		return e.f < o.f
	}
	return e.seq < o.seq
}

func (h *openSet) push(e openEntry) {
	*h = append(*h, e)
	// Sift up
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !(*h)[i].less((*h)[parent]) {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

// pop removes the lowest entry. Popping an empty set is a programming error
func (h *openSet) pop() openEntry {
	old := *h
	n := len(old)
	if n == 0 {
		panic("navigation: pop from empty open set")
	}
	e := old[0]
	old[0] = old[n-1]
	*h = old[:n-1]

	// Sift down
	i := 0
	for {
		left := 2*i + 1
		if left >= len(*h) {
			break
		}
		smallest := left
		if right := left + 1; right < len(*h) && (*h)[right].less((*h)[left]) {
			smallest = right
		}
		if !(*h)[smallest].less((*h)[i]) {
			break
		}
		(*h)[i], (*h)[smallest] = (*h)[smallest], (*h)[i]
		i = smallest
	}
	return e
}

func (h openSet) len() int { return len(h) }
