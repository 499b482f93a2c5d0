package game

import "github.com/plus3/invaders/ecs"

// PlayerSpawnY is the player's spawn height for a playfield of the given half height.
func PlayerSpawnY(halfHeight float32) float32 {
	return -halfHeight + PlayerSize.H*PlayerSize.Scale/2 + 5
}

// PlayerSpawnSystem spawns the player when none is alive, right away at the start of a
// round and respawnDelay seconds after each death.
type PlayerSpawnSystem struct {
	Session   ecs.Singleton[Session]
	Clock     ecs.Singleton[Clock]
	Playfield ecs.Singleton[Playfield]
	Flow      ecs.Singleton[Flow]

	respawnDelay float64
}

func (s *PlayerSpawnSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Flow.Get().Current != StateGame {
		return
	}

	state := &s.Session.Get().Player
	if state.Alive {
		return
	}

	now := s.Clock.Get().Elapsed
	if state.LastDeath >= 0 && now-state.LastDeath <= s.respawnDelay {
		return
	}

	frame.Commands.Spawn(
		Position{X: 0, Y: PlayerSpawnY(s.Playfield.Get().HalfHeight)},
		Velocity{},
		Movable{AutoDespawn: false},
		PlayerSize,
		Player{},
		Sprite{Kind: SpritePlayer},
	)
	state.Spawned()
}

// PlayerInputSystem maps the horizontal controls onto the player's velocity.
type PlayerInputSystem struct {
	Players ecs.Query[struct {
		*Velocity
		*Player
	}]
	Input ecs.Singleton[Input]
	Flow  ecs.Singleton[Flow]
}

func (s *PlayerInputSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Flow.Get().Current != StateGame {
		return
	}

	in := s.Input.Get()
	var dx float32
	switch {
	case in.Left && !in.Right:
		dx = -1
	case in.Right && !in.Left:
		dx = 1
	}

	for p := range s.Players.Values() {
		p.Velocity.X = dx
	}
}

// PlayerFireSystem fires a pair of lasers from the player's wings while fire is held,
// at most once per fireInterval seconds.
type PlayerFireSystem struct {
	Players ecs.Query[struct {
		ecs.EntityId
		*Position
		*Player
	}]
	Input   ecs.Singleton[Input]
	Session ecs.Singleton[Session]
	Clock   ecs.Singleton[Clock]
	Flow    ecs.Singleton[Flow]

	fireInterval float64
}

func (s *PlayerFireSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Flow.Get().Current != StateGame || !s.Input.Get().Fire {
		return
	}

	player, ok := s.Players.Single()
	if !ok || frame.Commands.Deleting(player.EntityId) {
		return
	}

	state := &s.Session.Get().Player
	now := s.Clock.Get().Elapsed
	if state.LastFire >= 0 && now-state.LastFire < s.fireInterval {
		return
	}
	state.LastFire = now

	wing := PlayerSize.W/2*PlayerSize.Scale - 5
	y := player.Position.Y + 15
	for _, x := range [2]float32{player.Position.X - wing, player.Position.X + wing} {
		frame.Commands.Spawn(
			Position{X: x, Y: y},
			Velocity{X: 0, Y: 1},
			Movable{AutoDespawn: true},
			PlayerLaserSize,
			Laser{},
			FromPlayer{},
			Sprite{Kind: SpritePlayerLaser},
		)
	}
}
