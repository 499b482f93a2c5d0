package game

import "github.com/plus3/invaders/ecs"

// MovementSystem integrates every movable with explicit Euler at the fixed TimeStep
// and despawns auto-despawn movables that end the step outside the playfield plus
// DespawnMargin.
type MovementSystem struct {
	Movables ecs.Query[struct {
		ecs.EntityId
		*Position
		*Velocity
		*Movable
	}]
	Playfield ecs.Singleton[Playfield]
	Flow      ecs.Singleton[Flow]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Flow.Get().Current != StateGame {
		return
	}

	field := s.Playfield.Get()
	maxX := field.HalfWidth + DespawnMargin
	maxY := field.HalfHeight + DespawnMargin

	for m := range s.Movables.Values() {
		m.Position.X += m.Velocity.X * TimeStep * BaseSpeed
		m.Position.Y += m.Velocity.Y * TimeStep * BaseSpeed

		if !m.Movable.AutoDespawn {
			continue
		}
		if m.Position.X > maxX || m.Position.X < -maxX ||
			m.Position.Y > maxY || m.Position.Y < -maxY {
			frame.Commands.Delete(m.EntityId)
		}
	}
}
