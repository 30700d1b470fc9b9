package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/gridpath/core"
	"github.com/lixenwraith/gridpath/grid"
	"github.com/lixenwraith/gridpath/navigation"
)

func TestGenerate_Deterministic(t *testing.T) {
	cfg := Config{Size: 36, Braiding: 0.3, Density: 0.8, Seed: 42, Endpoints: true}
	a := Generate(cfg)
	b := Generate(cfg)
	assert.Equal(t, a, b)

	cfg.Seed = 43
	c := Generate(cfg)
	assert.NotEqual(t, a.Obstacles, c.Obstacles)
}

func TestGenerate_LoadableAndSolvable(t *testing.T) {
	for _, size := range []int{5, 10, 21, 36} {
		for _, seed := range []int64{1, 2, 3, 4} {
			l := Generate(Config{Size: size, Braiding: 0.2, Density: 1, Seed: seed, Endpoints: true})

			g, err := grid.FromLayout(l)
			require.NoError(t, err, "size %d seed %d", size, seed)
			require.NotNil(t, l.Start)
			require.NotNil(t, l.Goal)

			for _, rules := range []navigation.Rules{{}, {AllowDiagonal: true}, {AllowDiagonal: true, AllowCornerCutting: true}} {
				res := navigation.Search(g, rules)
				assert.True(t, res.Found, "size %d seed %d rules %+v", size, seed, rules)
			}
		}
	}
}

func TestGenerate_NeverBlocksBorderOrKeep(t *testing.T) {
	keep := []core.Cell{{2, 2}, {5, 7}, {20, 20}}
	l := Generate(Config{Size: 24, Density: 1, Seed: 9, Keep: keep})

	last := l.Size - 1
	for _, c := range l.Obstacles {
		assert.True(t, c.X > 0 && c.Y > 0 && c.X < last && c.Y < last, "border cell %v emitted", c)
		assert.NotContains(t, keep, c)
	}
	assert.Nil(t, l.Start)
	assert.Nil(t, l.Goal)
}

func TestGenerate_DensityZeroIsEmpty(t *testing.T) {
	l := Generate(Config{Size: 12, Density: 0, Seed: 5, Endpoints: true})
	assert.Empty(t, l.Obstacles)
	assert.Equal(t, core.Cell{X: 1, Y: 1}, *l.Start)
	assert.Equal(t, core.Cell{X: 10, Y: 10}, *l.Goal)
}

func TestGenerate_ObstaclesSortedRowMajor(t *testing.T) {
	l := Generate(Config{Size: 17, Density: 1, Seed: 3})
	require.NotEmpty(t, l.Obstacles)
	for i := 1; i < len(l.Obstacles); i++ {
		a, b := l.Obstacles[i-1], l.Obstacles[i]
		assert.True(t, a.Y < b.Y || (a.Y == b.Y && a.X < b.X), "%v before %v", a, b)
	}
}

func TestCanSafelyRemoveWall_Plaza(t *testing.T) {
	// Removing (1,1) would complete a 2x2 open square
	cells := [][]bool{
		{Passage, Passage, Wall},
		{Passage, Wall, Wall},
		{Wall, Wall, Wall},
	}
	assert.False(t, canSafelyRemoveWall(cells, 1, 1))
}

func TestGenerate_TinyBoard(t *testing.T) {
	l := Generate(Config{Size: 1, Seed: 1, Endpoints: true})
	assert.Equal(t, 3, l.Size)
	assert.Empty(t, l.Obstacles)
}
