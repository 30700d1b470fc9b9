package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/gridpath/core"
)

func TestLayoutRoundTrip(t *testing.T) {
	g := New(12)
	g.PlaceObstacle(core.Cell{X: 4, Y: 4})
	g.PlaceObstacle(core.Cell{X: 3, Y: 7})
	g.SetStart(core.Cell{X: 1, Y: 1})

	l := g.Layout()
	require.NotNil(t, l.Start)
	assert.Nil(t, l.Goal)
	assert.Equal(t, []core.Cell{{4, 4}, {3, 7}}, l.Obstacles)

	g2, err := FromLayout(l)
	require.NoError(t, err)
	assert.Equal(t, l, g2.Layout())
}

func TestFromLayout_Rejects(t *testing.T) {
	start := core.Cell{X: 2, Y: 2}
	border := core.Cell{X: 0, Y: 5}

	tests := []struct {
		name   string
		layout Layout
	}{
		{"Too small", Layout{Size: 2}},
		{"Start on border", Layout{Size: 10, Start: &border}},
		{"Goal equals start", Layout{Size: 10, Start: &start, Goal: &start}},
		{"Obstacle on border", Layout{Size: 10, Obstacles: []core.Cell{border}}},
		{"Obstacle on start", Layout{Size: 10, Start: &start, Obstacles: []core.Cell{start}}},
		{"Obstacle out of bounds", Layout{Size: 10, Obstacles: []core.Cell{{X: 40, Y: 3}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromLayout(tt.layout)
			assert.ErrorIs(t, err, ErrInvalidLayout)
		})
	}
}

func TestFromLayout_DuplicateObstaclesCollapse(t *testing.T) {
	c := core.Cell{X: 3, Y: 3}
	g, err := FromLayout(Layout{Size: 8, Obstacles: []core.Cell{c, c}})
	require.NoError(t, err)
	assert.Equal(t, 1, g.ObstacleCount())
}
