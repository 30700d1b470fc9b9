// Package maze generates obstacle layouts for the board
package maze

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/gridpath/core"
	"github.com/lixenwraith/gridpath/grid"
	"github.com/lixenwraith/gridpath/navigation"
)

// Cell types
const (
	Wall    = true
	Passage = false
)

type Config struct {
	// Size is the board side length, border ring included
	Size int

	// Braiding: 0.0 (Perfect Maze/Tree) to 1.0 (No dead ends/Graph).
	// Higher values add cycles. Constraints (No Plazas/Pillars) take precedence.
	Braiding float64

	// Density is the fraction of carved maze walls kept as obstacles
	// 1.0 keeps the full maze; 0.0 leaves an empty board
	Density float64

	// Keep lists cells that must stay passable
	Keep []core.Cell

	// Endpoints places Start at (1,1) and Goal at the passage farthest from it
	Endpoints bool

	Seed int64 // Optional (0 = Random)
}

// Generate creates a stochastic obstacle layout
func Generate(cfg Config) grid.Layout {
	size := cfg.Size
	if size < 3 {
		size = 3
	}

	// 1. Initialize board (filled with walls, border included)
	cells := make([][]bool, size)
	for i := range cells {
		cells[i] = make([]bool, size)
		for j := range cells[i] {
			cells[i][j] = Wall
		}
	}

	// 2. RNG Setup
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// 3. Core Generation (Recursive Backtracker) on the odd lattice
	start := core.Cell{X: 1, Y: 1}
	recursiveBacktracker(cells, start, rng)

	// 4. Even sizes leave one interior row and column off the lattice; open them
	if size%2 == 0 {
		last := size - 2
		for i := 1; i <= last; i++ {
			cells[last][i] = Passage
			cells[i][last] = Passage
		}
	}

	// 5. Apply Braiding (Homological Complexity)
	if cfg.Braiding > 0 {
		applySmartBraiding(cells, cfg.Braiding, rng)
	}

	// 6. Thin interior walls
	if cfg.Density < 1 {
		thin(cells, cfg.Density, rng)
	}

	// 7. Keep cells and endpoints open
	for _, c := range cfg.Keep {
		forceOpen(cells, c)
	}

	layout := grid.Layout{Size: size}
	if cfg.Endpoints && size > 3 {
		forceOpen(cells, start)
		goal := farthestPassage(cells, start)
		if goal != start {
			s, g := start, goal
			layout.Start, layout.Goal = &s, &g
		}
	}

	// 8. Collect interior walls row-major
	for y := 1; y < size-1; y++ {
		for x := 1; x < size-1; x++ {
			if cells[y][x] == Wall {
				layout.Obstacles = append(layout.Obstacles, core.Cell{X: x, Y: y})
			}
		}
	}
	return layout
}

// --- Core Algorithms ---

func recursiveBacktracker(cells [][]bool, start core.Cell, rng *rand.Rand) {
	rows, cols := len(cells), len(cells[0])

	stack := []core.Cell{start}
	cells[start.Y][start.X] = Passage

	dirs := []core.Cell{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates := make([]core.Cell, 0, 4)

		for _, d := range dirs {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			// Check Bounds (Leave 1 cell border for walls)
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 {
				if cells[ny][nx] == Wall {
					candidates = append(candidates, d)
				}
			}
		}

		if len(candidates) > 0 {
			d := candidates[rng.Intn(len(candidates))]
			wallX, wallY := curr.X+d.X/2, curr.Y+d.Y/2
			nextX, nextY := curr.X+d.X, curr.Y+d.Y

			cells[wallY][wallX] = Passage
			cells[nextY][nextX] = Passage

			stack = append(stack, core.Cell{X: nextX, Y: nextY})
		} else {
			stack = stack[:len(stack)-1]
		}
	}
}

func applySmartBraiding(cells [][]bool, probability float64, rng *rand.Rand) {
	rows, cols := len(cells), len(cells[0])
	checkDirs := []core.Cell{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	jumpDirs := []core.Cell{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}

	// Iterate over odd nodes (Rooms)
	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			if cells[y][x] == Wall {
				continue
			}

			// A node is a dead end if it has exactly 1 Passage neighbor
			exits := 0
			for _, d := range checkDirs {
				if cells[y+d.Y][x+d.X] == Passage {
					exits++
				}
			}

			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			candidates := make([]core.Cell, 0, 4)
			for _, jd := range jumpDirs {
				nx, ny := x+jd.X, y+jd.Y     // Target Neighbor
				wx, wy := x+jd.X/2, y+jd.Y/2 // The intervening Wall

				// Never open the border ring
				if nx <= 0 || nx >= cols-1 || ny <= 0 || ny >= rows-1 {
					continue
				}
				if cells[ny][nx] == Passage && cells[wy][wx] == Wall && canSafelyRemoveWall(cells, wx, wy) {
					candidates = append(candidates, core.Cell{X: wx, Y: wy})
				}
			}

			if len(candidates) > 0 {
				c := candidates[rng.Intn(len(candidates))]
				cells[c.Y][c.X] = Passage
			}
		}
	}
}

// canSafelyRemoveWall checks if removing cells[y][x] creates prohibited topology:
// 1. Plazas (2x2 Passages).
// 2. Pillars (Isolated Walls).
func canSafelyRemoveWall(cells [][]bool, x, y int) bool {
	rows, cols := len(cells), len(cells[0])

	isP := func(tx, ty int) bool {
		if tx < 0 || tx >= cols || ty < 0 || ty >= rows {
			return false
		}
		return cells[ty][tx] == Passage
	}

	// No Plazas: check the 4 quadrants around (x,y)
	if isP(x-1, y-1) && isP(x, y-1) && isP(x-1, y) {
		return false
	}
	if isP(x, y-1) && isP(x+1, y-1) && isP(x+1, y) {
		return false
	}
	if isP(x-1, y) && isP(x-1, y+1) && isP(x, y+1) {
		return false
	}
	if isP(x+1, y) && isP(x, y+1) && isP(x+1, y+1) {
		return false
	}

	// No Pillars: each orthogonal wall neighbor needs another wall connection
	ortho := []core.Cell{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	for _, d := range ortho {
		nx, ny := x+d.X, y+d.Y
		if nx < 0 || nx >= cols || ny < 0 || ny >= rows || cells[ny][nx] != Wall {
			continue
		}

		wallConnections := 0
		for _, d2 := range ortho {
			nnx, nny := nx+d2.X, ny+d2.Y
			// (x,y) is about to become a passage
			if nnx == x && nny == y {
				continue
			}
			if nnx >= 0 && nnx < cols && nny >= 0 && nny < rows && cells[nny][nnx] == Wall {
				wallConnections++
			}
		}
		if wallConnections == 0 {
			return false
		}
	}

	return true
}

// thin turns interior walls into passages, keeping each with probability density
func thin(cells [][]bool, density float64, rng *rand.Rand) {
	rows, cols := len(cells), len(cells[0])
	for y := 1; y < rows-1; y++ {
		for x := 1; x < cols-1; x++ {
			if cells[y][x] == Wall && rng.Float64() >= density {
				cells[y][x] = Passage
			}
		}
	}
}

// --- Helpers ---

// forceOpen clears an interior cell and, if it ends up isolated, one interior neighbor
func forceOpen(cells [][]bool, p core.Cell) {
	rows, cols := len(cells), len(cells[0])
	if p.X <= 0 || p.Y <= 0 || p.Y >= rows-1 || p.X >= cols-1 {
		return
	}
	cells[p.Y][p.X] = Passage

	dirs := []core.Cell{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	for _, d := range dirs {
		if cells[p.Y+d.Y][p.X+d.X] == Passage {
			return
		}
	}
	for _, d := range dirs {
		nx, ny := p.X+d.X, p.Y+d.Y
		if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 {
			cells[ny][nx] = Passage
			return
		}
	}
}

// farthestPassage returns the passage with the largest orthogonal step cost from start
// Ties resolve to the last such cell in row-major order
func farthestPassage(cells [][]bool, start core.Cell) core.Cell {
	field := navigation.NewDistanceField(len(cells))
	field.Compute(start, navigation.Rules{}, func(c core.Cell) bool {
		return cells[c.Y][c.X] == Wall
	})
	return field.Farthest()
}
