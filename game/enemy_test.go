package game_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/plus3/invaders/ecs"
	"github.com/plus3/invaders/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormationMakerGroups(t *testing.T) {
	maker := game.NewFormationMaker(rand.New(rand.NewPCG(1, 2)), 2)

	a := maker.Make(field)
	b := maker.Make(field)
	c := maker.Make(field)

	assert.Equal(t, a, b, "second member shares the template")
	assert.NotEqual(t, a.Group, c.Group)
	assert.Equal(t, maker.Make(field).Group, c.Group)
}

func TestFormationMakerBounds(t *testing.T) {
	maker := game.NewFormationMaker(rand.New(rand.NewPCG(3, 4)), 1)

	for range 200 {
		f := maker.Make(field)

		assert.Equal(t, field.HalfWidth+100, abs(f.Start[0]))
		assert.Less(t, abs(f.Start[1]), field.HalfHeight+100)
		assert.LessOrEqual(t, abs(f.Pivot[0]), field.HalfWidth/2)
		assert.GreaterOrEqual(t, f.Pivot[1], float32(0))
		assert.GreaterOrEqual(t, f.Radius[0], float32(80))
		assert.Less(t, f.Radius[0], float32(150))
		assert.Equal(t, float32(100), f.Radius[1])
		assert.Equal(t, game.BaseSpeed, f.Speed)
	}
}

func TestFormationMakerReset(t *testing.T) {
	maker := game.NewFormationMaker(rand.New(rand.NewPCG(5, 6)), 2)
	first := maker.Make(field)
	maker.Reset()

	assert.NotEqual(t, first.Group, maker.Make(field).Group)
}

func TestFormationMovementSpeedCap(t *testing.T) {
	g := newGame(t, quietGameplay())
	f := game.NewFormationMaker(rand.New(rand.NewPCG(9, 9)), 2).Make(field)
	id := g.Storage().Spawn(
		game.Position{X: f.Start[0], Y: f.Start[1]},
		game.EnemySize,
		game.Enemy{},
		f,
	)

	maxStep := float64(game.TimeStep*f.Speed) + 1e-3
	prev := game.Position{X: f.Start[0], Y: f.Start[1]}
	for range 300 {
		g.Step(game.Input{})

		pos := ecs.ReadComponent[game.Position](g.Storage(), id)
		require.NotNil(t, pos)
		step := math.Hypot(float64(pos.X-prev.X), float64(pos.Y-prev.Y))
		require.LessOrEqual(t, step, maxStep)
		prev = *pos
	}

	// Five seconds in, the enemy circles inside the playfield near its pivot.
	assert.Less(t, abs(prev.X-f.Pivot[0]), f.Radius[0]+50)
	assert.Less(t, abs(prev.Y-f.Pivot[1]), f.Radius[1]+50)
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
