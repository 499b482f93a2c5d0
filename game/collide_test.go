package game_test

import (
	"testing"

	"github.com/plus3/invaders/game"
	"github.com/stretchr/testify/assert"
)

func TestCollide(t *testing.T) {
	tests := []struct {
		name string
		b    game.Position
		want bool
	}{
		{"same center", game.Position{}, true},
		{"partial overlap", game.Position{X: 9, Y: 4}, true},
		{"touching right edge", game.Position{X: 10}, false},
		{"touching top edge", game.Position{Y: 5}, false},
		{"apart", game.Position{X: 30, Y: 30}, false},
		{"diagonal graze", game.Position{X: 9.9, Y: 4.9}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, game.Collide(game.Position{}, 10, 5, tt.b, 10, 5))
			assert.Equal(t, tt.want, game.Collide(tt.b, 10, 5, game.Position{}, 10, 5), "symmetric")
		})
	}
}

func TestSpriteSizeExtent(t *testing.T) {
	w, h := game.PlayerSize.Extent()
	assert.Equal(t, float32(72), w)
	assert.Equal(t, float32(37.5), h)
}

func TestSessionCounters(t *testing.T) {
	var s game.Session
	s.Reset(3)

	assert.Equal(t, uint32(2), s.LoseLife())
	assert.Equal(t, uint32(1), s.LoseLife())
	assert.Equal(t, uint32(0), s.LoseLife())
	assert.Equal(t, uint32(0), s.LoseLife(), "life floors at zero")

	s.EnemyDestroyed()
	assert.Zero(t, s.EnemyCount)
	assert.Equal(t, uint32(1), s.Score)

	s.EnemyCount = 2
	s.EnemyDestroyed()
	assert.Equal(t, uint32(1), s.EnemyCount)
	assert.Equal(t, uint32(2), s.Score)

	s.Player.Shot(4)
	s.Reset(3)
	assert.Equal(t, uint32(3), s.PlayerLife)
	assert.Zero(t, s.Score)
	assert.False(t, s.Player.Alive)
	assert.Negative(t, s.Player.LastDeath)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "splash", game.StateSplash.String())
	assert.Equal(t, "game", game.StateGame.String())
	assert.Equal(t, "end", game.StateEnd.String())
	assert.Equal(t, "unknown", game.State(9).String())
}
