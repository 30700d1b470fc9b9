package navigation

import (
	"testing"

	"github.com/lixenwraith/gridpath/core"
)

func movesTo(moves []Move) map[core.Cell]int {
	m := make(map[core.Cell]int, len(moves))
	for _, mv := range moves {
		m[mv.To] = mv.Cost
	}
	return m
}

func TestMoves_OrthogonalOnly(t *testing.T) {
	open := func(core.Cell) bool { return false }
	moves := Rules{}.Moves(core.Cell{X: 5, Y: 5}, open, nil)

	if len(moves) != 4 {
		t.Fatalf("Expected 4 moves, got %d", len(moves))
	}
	expected := []core.Cell{{6, 5}, {5, 4}, {4, 5}, {5, 6}}
	for i, mv := range moves {
		if mv.To != expected[i] {
			t.Errorf("Move %d: expected %v, got %v", i, expected[i], mv.To)
		}
		if mv.Cost != 100 {
			t.Errorf("Move %d: expected cost 100, got %d", i, mv.Cost)
		}
	}
}

func TestMoves_DiagonalTableOrder(t *testing.T) {
	open := func(core.Cell) bool { return false }
	moves := Rules{AllowDiagonal: true}.Moves(core.Cell{X: 5, Y: 5}, open, nil)

	if len(moves) != 8 {
		t.Fatalf("Expected 8 moves, got %d", len(moves))
	}
	expected := []core.Cell{{6, 4}, {4, 4}, {4, 6}, {6, 6}}
	for i, c := range expected {
		mv := moves[4+i]
		if mv.To != c || mv.Cost != 140 || !mv.Dir.IsDiagonal() {
			t.Errorf("Diagonal %d: expected %v cost 140, got %v cost %d", i, c, mv.To, mv.Cost)
		}
	}
}

func TestMoves_CornerRules(t *testing.T) {
	from := core.Cell{X: 5, Y: 5}
	upRight := core.Cell{X: 6, Y: 6}

	tests := []struct {
		name    string
		blocked []core.Cell
		cutting bool
		want    bool
	}{
		{"Both flanks open, strict", nil, false, true},
		{"One flank blocked, strict", []core.Cell{{6, 5}}, false, false},
		{"Other flank blocked, strict", []core.Cell{{5, 6}}, false, false},
		{"One flank blocked, cutting", []core.Cell{{6, 5}}, true, true},
		{"Both flanks blocked, cutting", []core.Cell{{6, 5}, {5, 6}}, true, false},
		{"Both flanks blocked, strict", []core.Cell{{6, 5}, {5, 6}}, false, false},
		{"Target blocked", []core.Cell{{6, 6}}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			walls := make(map[core.Cell]bool)
			for _, c := range tt.blocked {
				walls[c] = true
			}
			isBlocked := func(c core.Cell) bool { return walls[c] }

			rules := Rules{AllowDiagonal: true, AllowCornerCutting: tt.cutting}
			_, got := movesTo(rules.Moves(from, isBlocked, nil))[upRight]
			if got != tt.want {
				t.Errorf("Expected diagonal legal=%v, got %v", tt.want, got)
			}
		})
	}
}

func TestDirection_Flanks(t *testing.T) {
	for d := Direction(DirOrthogonalCount); d < DirCount; d++ {
		a, b := d.Flanks()
		dx := DirVectors[a][0] + DirVectors[b][0]
		dy := DirVectors[a][1] + DirVectors[b][1]
		if dx != DirVectors[d][0] || dy != DirVectors[d][1] {
			t.Errorf("Direction %d: flanks %d+%d do not compose to the diagonal", d, a, b)
		}
	}
}

func TestRules_DirectionCount(t *testing.T) {
	if (Rules{}).DirectionCount() != 4 {
		t.Error("Expected 4 directions without diagonals")
	}
	if (Rules{AllowDiagonal: true}).DirectionCount() != 8 {
		t.Error("Expected 8 directions with diagonals")
	}
}
