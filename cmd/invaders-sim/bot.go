package main

import (
	"math/rand/v2"

	"github.com/plus3/invaders/game"
)

// bot drives the player without a keyboard: it sweeps left and right for random
// stretches, keeps the trigger held and restarts as soon as the game ends.
type bot struct {
	rng   *rand.Rand
	dir   int
	ticks int
}

func newBot(seed uint64) *bot {
	return &bot{rng: rand.New(rand.NewPCG(seed, seed+1))}
}

func (b *bot) Input(snap game.Snapshot) game.Input {
	if snap.State == game.StateEnd {
		return game.Input{Restart: true}
	}

	if b.ticks <= 0 {
		b.dir = b.rng.IntN(3) - 1
		b.ticks = 30 + b.rng.IntN(60)
	}
	b.ticks--

	return game.Input{
		Left:  b.dir < 0,
		Right: b.dir > 0,
		Fire:  true,
	}
}
