package core

import "testing"

func TestManhattan(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Cell
		expected int
	}{
		{"Same cell", Cell{4, 4}, Cell{4, 4}, 0},
		{"Horizontal", Cell{1, 1}, Cell{4, 1}, 3},
		{"Vertical", Cell{2, 9}, Cell{2, 3}, 6},
		{"Diagonal offset", Cell{1, 1}, Cell{4, 5}, 7},
		{"Symmetric", Cell{4, 5}, Cell{1, 1}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Manhattan(tt.a, tt.b); got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestCellAsMapKey(t *testing.T) {
	m := map[Cell]bool{{X: 3, Y: 7}: true}
	if !m[Cell{3, 7}] {
		t.Error("Expected equal coordinates to hash to the same key")
	}
	if m[Cell{7, 3}] {
		t.Error("Expected swapped coordinates to be a different key")
	}
	if got := (Cell{1, 2}).Add(-1, 3); got != (Cell{0, 5}) {
		t.Errorf("Expected (0,5), got %v", got)
	}
}
